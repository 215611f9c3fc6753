package units

// TimeHrVector holds one elapsed time per enclosing zone, innermost first. The last
// value is the time since the start of the roadmap.
type TimeHrVector []TimeHr

func (v TimeHrVector) Inner() TimeHr {
	if len(v) == 0 {
		return 0
	}
	return v[0]
}

func (v TimeHrVector) Outer() TimeHr {
	if len(v) == 0 {
		return 0
	}
	return v[len(v)-1]
}

// Rebase returns a copy with a new outer value equal to the current outer plus base
func (v TimeHrVector) Rebase(base TimeHr) TimeHrVector {
	res := make(TimeHrVector, len(v), len(v)+1)
	copy(res, v)
	return append(res, v.Outer()+base)
}
