package value

import "fmt"

// ValueRange is a closed numeric interval used by sliders.
type ValueRange struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Contains reports whether v lies within [Start, End].
func (r ValueRange) Contains(v float64) bool { return v >= r.Start && v <= r.End }

// Check requires Start < End.
func (r ValueRange) Check() []string {
	if r.Start >= r.End {
		return []string{fmt.Sprintf("valueRange.start (%g) must be < valueRange.end (%g)", r.Start, r.End)}
	}
	return nil
}
