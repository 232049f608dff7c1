// Package value holds the small immutable value objects carried by UI tokens:
// spacing, colors, backgrounds, actions, accessibility descriptors, template
// strings and the closed enums used by individual variants.
package value

import "fmt"

// Spacing describes padding or margin. Every field is optional.
//
// When applied, All overrides everything, then Horizontal/Vertical override
// the four sides they cover, then Start/Top/End/Bottom apply.
type Spacing struct {
	All        *int `json:"all,omitempty" yaml:"all,omitempty"`
	Horizontal *int `json:"horizontal,omitempty" yaml:"horizontal,omitempty"`
	Vertical   *int `json:"vertical,omitempty" yaml:"vertical,omitempty"`
	Start      *int `json:"start,omitempty" yaml:"start,omitempty"`
	Top        *int `json:"top,omitempty" yaml:"top,omitempty"`
	End        *int `json:"end,omitempty" yaml:"end,omitempty"`
	Bottom     *int `json:"bottom,omitempty" yaml:"bottom,omitempty"`
}

// Padding is inner spacing of a node.
type Padding = Spacing

// Margin is outer spacing of a node.
type Margin = Spacing

// Insets are resolved four-sided measurements.
type Insets struct {
	Start  int `json:"start"`
	Top    int `json:"top"`
	End    int `json:"end"`
	Bottom int `json:"bottom"`
}

// Int returns a pointer to v. Handy for optional fields.
func Int(v int) *int { return &v }

// Uniform returns spacing with only All set.
func Uniform(v int) *Spacing { return &Spacing{All: Int(v)} }

// Symmetric returns spacing with only Horizontal and Vertical set.
func Symmetric(horizontal, vertical int) *Spacing {
	return &Spacing{Horizontal: Int(horizontal), Vertical: Int(vertical)}
}

// Resolve applies the precedence rules and returns concrete insets.
// Unset sides resolve to zero.
func (s *Spacing) Resolve() Insets {
	if s == nil {
		return Insets{}
	}
	return Insets{
		Start:  first(s.All, s.Horizontal, s.Start),
		Top:    first(s.All, s.Vertical, s.Top),
		End:    first(s.All, s.Horizontal, s.End),
		Bottom: first(s.All, s.Vertical, s.Bottom),
	}
}

// IsZero reports whether no field is set.
func (s *Spacing) IsZero() bool {
	return s == nil || (s.All == nil && s.Horizontal == nil && s.Vertical == nil &&
		s.Start == nil && s.Top == nil && s.End == nil && s.Bottom == nil)
}

// Check returns one message per negative measurement.
func (s *Spacing) Check() []string {
	if s == nil {
		return nil
	}
	var out []string
	for _, f := range []struct {
		name string
		v    *int
	}{
		{"all", s.All}, {"horizontal", s.Horizontal}, {"vertical", s.Vertical},
		{"start", s.Start}, {"top", s.Top}, {"end", s.End}, {"bottom", s.Bottom},
	} {
		if f.v != nil && *f.v < 0 {
			out = append(out, fmt.Sprintf("%s must be >= 0, got %d", f.name, *f.v))
		}
	}
	return out
}

// Clone returns a deep copy.
func (s *Spacing) Clone() *Spacing {
	if s == nil {
		return nil
	}
	return &Spacing{
		All:        cloneInt(s.All),
		Horizontal: cloneInt(s.Horizontal),
		Vertical:   cloneInt(s.Vertical),
		Start:      cloneInt(s.Start),
		Top:        cloneInt(s.Top),
		End:        cloneInt(s.End),
		Bottom:     cloneInt(s.Bottom),
	}
}

func first(vs ...*int) int {
	for _, v := range vs {
		if v != nil {
			return *v
		}
	}
	return 0
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
