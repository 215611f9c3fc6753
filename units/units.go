package units

import (
	"fmt"
	"math"
	"strconv"
)

// Distance in kilometers
type Distance float64

// Speed in kilometers per hour
type Speed float64

// TimeHr is a duration expressed as a fraction of hours
type TimeHr float64

const (
	// Millimeter is the tolerance used when comparing waypoint distances
	Millimeter Distance = 0.000001
	Meter      Distance = 0.001
)

func Km(v float64) Distance {
	return Distance(v)
}

func Kmh(v float64) Speed {
	return Speed(v)
}

func Hours(v float64) TimeHr {
	return TimeHr(v)
}

func (d Distance) Km() float64 {
	return float64(d)
}

func (d Distance) Add(o Distance) Distance {
	return d + o
}

// Sub leaves an infinite distance infinite
func (d Distance) Sub(o Distance) Distance {
	if math.IsInf(float64(d), 0) {
		return d
	}
	return d - o
}

func (d Distance) Scale(f float64) Distance {
	return Distance(float64(d) * f)
}

// Div returns the time needed to cover d at speed s. A zero speed gives an infinite time.
func (d Distance) Div(s Speed) TimeHr {
	return TimeHr(float64(d) / float64(s))
}

// Per returns the average speed covering d in t
func (d Distance) Per(t TimeHr) Speed {
	return Speed(float64(d) / float64(t))
}

func (d Distance) Abs() Distance {
	return Distance(math.Abs(float64(d)))
}

func (d Distance) IsInf() bool {
	return math.IsInf(float64(d), 0)
}

func (d Distance) String() string {
	return strconv.FormatFloat(round3(float64(d)), 'f', -1, 64)
}

func (s Speed) Kmh() float64 {
	return float64(s)
}

func (s Speed) Times(t TimeHr) Distance {
	return Distance(float64(s) * float64(t))
}

func (s Speed) IsInf() bool {
	return math.IsInf(float64(s), 0)
}

func (s Speed) IsFinite() bool {
	return !math.IsInf(float64(s), 0) && !math.IsNaN(float64(s))
}

func (s Speed) String() string {
	return strconv.FormatFloat(round3(float64(s)), 'f', -1, 64)
}

func (t TimeHr) Hours() float64 {
	return float64(t)
}

func (t TimeHr) Add(o TimeHr) TimeHr {
	return t + o
}

// Sub leaves an infinite time infinite instead of producing NaN
func (t TimeHr) Sub(o TimeHr) TimeHr {
	if math.IsInf(float64(t), 0) {
		return t
	}
	return t - o
}

func (t TimeHr) Neg() TimeHr {
	return -t
}

func (t TimeHr) IsInf() bool {
	return math.IsInf(float64(t), 0)
}

func (t TimeHr) IsFinite() bool {
	return !math.IsInf(float64(t), 0) && !math.IsNaN(float64(t))
}

// Max0 floors negative times at zero
func (t TimeHr) Max0() TimeHr {
	if t < 0 {
		return 0
	}
	return t
}

// Seconds rounds to the nearest whole second
func (t TimeHr) Seconds() int64 {
	return int64(math.Round(float64(t) * 3600))
}

func (t TimeHr) MinSec() TimeMinSec {
	if !t.IsFinite() {
		return InfiniteMinSec
	}
	secs := t.Seconds()
	neg := secs < 0
	if neg {
		secs = -secs
	}
	return TimeMinSec{Negative: neg, Min: secs / 60, Sec: int(secs % 60)}
}

func (t TimeHr) String() string {
	return t.MinSec().String()
}

// TimeMinSec is the minute:second rendering of an elapsed time. Minutes are not
// capped at 60.
type TimeMinSec struct {
	Negative bool
	Infinite bool
	Min      int64
	Sec      int
}

// InfiniteMinSec is the display value of an infinite elapsed time
var InfiniteMinSec = TimeMinSec{Infinite: true}

func MinSec(min int64, sec int) TimeMinSec {
	return TimeMinSec{Min: min, Sec: sec}
}

func (t TimeMinSec) TimeHr() TimeHr {
	if t.Infinite {
		return TimeHr(math.Inf(1))
	}
	h := TimeHr(float64(t.Min)/60 + float64(t.Sec)/3600)
	if t.Negative {
		return -h
	}
	return h
}

func (t TimeMinSec) String() string {
	if t.Infinite {
		return "∞"
	}
	sign := ""
	if t.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%d:%02d", sign, t.Min, t.Sec)
}

func round3(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return math.Round(v*1000) / 1000
}
