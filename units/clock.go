package units

import (
	"fmt"
)

// TimeDayHrMinSec is a clock time of day with a day counter for runs past midnight
type TimeDayHrMinSec struct {
	Day int
	Hr  int
	Min int
	Sec int
}

func Clock(hr, min, sec int) TimeDayHrMinSec {
	return TimeDayHrMinSec{}.AddSeconds(int64(hr)*3600 + int64(min)*60 + int64(sec))
}

func (c TimeDayHrMinSec) totalSeconds() int64 {
	return int64(c.Day)*86400 + int64(c.Hr)*3600 + int64(c.Min)*60 + int64(c.Sec)
}

// AddSeconds carries every field explicitly. Borrowing below day zero is clamped at
// day zero so no field is ever negative.
func (c TimeDayHrMinSec) AddSeconds(s int64) TimeDayHrMinSec {
	sec := int64(c.Sec) + s
	min := int64(c.Min) + floorDiv(sec, 60)
	sec = floorMod(sec, 60)
	hr := int64(c.Hr) + floorDiv(min, 60)
	min = floorMod(min, 60)
	day := int64(c.Day) + floorDiv(hr, 24)
	hr = floorMod(hr, 24)
	if day < 0 {
		day = 0
	}
	return TimeDayHrMinSec{Day: int(day), Hr: int(hr), Min: int(min), Sec: int(sec)}
}

// Add projects the clock forward by an elapsed time rounded to the second
func (c TimeDayHrMinSec) Add(t TimeHr) TimeDayHrMinSec {
	return c.AddSeconds(t.Seconds())
}

// Sub returns the elapsed time between two clock values
func (c TimeDayHrMinSec) Sub(o TimeDayHrMinSec) TimeHr {
	return TimeHr(float64(c.totalSeconds()-o.totalSeconds()) / 3600)
}

func (c TimeDayHrMinSec) Before(o TimeDayHrMinSec) bool {
	return c.totalSeconds() < o.totalSeconds()
}

func (c TimeDayHrMinSec) String() string {
	if c.Day > 0 {
		return fmt.Sprintf("%02d:%02d:%02d+%d", c.Hr, c.Min, c.Sec, c.Day)
	}
	return fmt.Sprintf("%02d:%02d:%02d", c.Hr, c.Min, c.Sec)
}

func floorDiv(a, n int64) int64 {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}

func floorMod(a, n int64) int64 {
	return a - n*floorDiv(a, n)
}
