package options

import "time"

var _ Range = (*TimeRange)(nil)

// TimeRange describes a lower and upper bound for Time values
// Either bound is optional
type TimeRange struct {
	Low  *time.Time
	High *time.Time
}

func (r *TimeRange) From() (interface{}, bool) {
	if r.Low != nil {
		return r.Low, true
	}
	return nil, false
}

func (r *TimeRange) To() (interface{}, bool) {
	if r.High != nil {
		return r.High, true
	}
	return nil, false
}

// Contains reports whether t falls inside the range (bounds inclusive)
func (r *TimeRange) Contains(t time.Time) bool {
	if r.Low != nil && t.Before(*r.Low) {
		return false
	}
	if r.High != nil && t.After(*r.High) {
		return false
	}
	return true
}
