package units

import (
	"math"
	"testing"
)

func TestDistanceDiv(t *testing.T) {
	d := Km(90).Div(Kmh(60))
	if d != 1.5 {
		t.Errorf("90km / 60kmh = (%f); want (1.5)", d)
	}

	d = Km(10).Div(Kmh(0))
	if !d.IsInf() {
		t.Errorf("10km / 0kmh = (%f); want (+Inf)", d)
	}

	s := Km(90).Per(Hours(1.5))
	if s != 60 {
		t.Errorf("90km per 1.5h = (%f); want (60)", s)
	}
}

func TestInfiniteSub(t *testing.T) {
	inf := TimeHr(math.Inf(1))

	r := inf.Sub(inf)
	if !r.IsInf() {
		t.Errorf("Inf - Inf = (%f); want (+Inf)", r)
	}

	r = inf.Sub(Hours(2))
	if !r.IsInf() {
		t.Errorf("Inf - 2 = (%f); want (+Inf)", r)
	}

	r = Hours(1).Sub(inf)
	if !math.IsInf(float64(r), -1) {
		t.Errorf("1 - Inf = (%f); want (-Inf)", r)
	}

	dist := Distance(math.Inf(1)).Sub(Km(3))
	if !dist.IsInf() {
		t.Errorf("Inf km - 3 km = (%f); want (+Inf)", dist)
	}
}

func TestMinSec(t *testing.T) {
	tests := []struct {
		in   TimeHr
		want string
	}{
		{Hours(1.5), "90:00"},
		{Hours(0.5 / 60), "0:30"},
		{Hours(1.0 / 120), "0:30"},
		{Hours(59.6 / 3600), "1:00"},
		{Hours(59.4 / 3600), "0:59"},
		{Hours(-0.25), "-15:00"},
		{TimeHr(math.Inf(1)), "∞"},
	}

	for _, tt := range tests {
		if got := tt.in.MinSec().String(); got != tt.want {
			t.Errorf("MinSec(%f) = (%s); want (%s)", tt.in, got, tt.want)
		}
	}

	if !TimeHr(math.Inf(1)).MinSec().Infinite {
		t.Errorf("MinSec(Inf) is not the infinite sentinel")
	}
}

func TestMinSecRoundTrip(t *testing.T) {
	m := MinSec(75, 30)
	if got := m.TimeHr().MinSec(); got != m {
		t.Errorf("MinSec(75:30).TimeHr().MinSec() = (%s); want (75:30)", got)
	}
}

func TestClockAdd(t *testing.T) {
	c := Clock(10, 0, 0).Add(Hours(0.5))
	if c.String() != "10:30:00" {
		t.Errorf("10:00:00 + 0.5h = (%s); want (10:30:00)", c)
	}

	c = Clock(23, 59, 30).AddSeconds(45)
	if c != (TimeDayHrMinSec{Day: 1, Hr: 0, Min: 0, Sec: 15}) {
		t.Errorf("23:59:30 + 45s = (%+v); want (day 1 00:00:15)", c)
	}

	c = Clock(10, 0, 5).AddSeconds(-10)
	if c != (TimeDayHrMinSec{Hr: 9, Min: 59, Sec: 55}) {
		t.Errorf("10:00:05 - 10s = (%+v); want (09:59:55)", c)
	}

	c = Clock(0, 0, 5).AddSeconds(-10)
	if c.Day < 0 || c.Hr < 0 || c.Min < 0 || c.Sec < 0 {
		t.Errorf("00:00:05 - 10s = (%+v); has a negative field", c)
	}
}

func TestClockSub(t *testing.T) {
	d := Clock(11, 30, 0).Sub(Clock(10, 0, 0))
	if d != 1.5 {
		t.Errorf("11:30:00 - 10:00:00 = (%f); want (1.5)", d)
	}
}

func TestVectorRebase(t *testing.T) {
	v := TimeHrVector{Hours(0.25)}
	r := v.Rebase(Hours(1))

	if len(r) != 2 || r.Inner() != 0.25 || r.Outer() != 1.25 {
		t.Errorf("Rebase(1) = (%v); want ([0.25 1.25])", r)
	}
	if len(v) != 1 {
		t.Errorf("Rebase modified its receiver: %v", v)
	}
}
