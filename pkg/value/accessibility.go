package value

import "fmt"

// Role is the semantic role announced by assistive technology.
type Role string

const (
	RoleNone        Role = "None"
	RoleButton      Role = "Button"
	RoleCheckbox    Role = "Checkbox"
	RoleSwitch      Role = "Switch"
	RoleRadioButton Role = "RadioButton"
	RoleTab         Role = "Tab"
	RoleImage       Role = "Image"
	RoleHeader      Role = "Header"
)

// Roles lists every Role.
func Roles() []string {
	return []string{
		string(RoleNone), string(RoleButton), string(RoleCheckbox), string(RoleSwitch),
		string(RoleRadioButton), string(RoleTab), string(RoleImage), string(RoleHeader),
	}
}

// LiveRegion controls how updates are announced.
type LiveRegion string

const (
	LiveRegionNone      LiveRegion = "None"
	LiveRegionPolite    LiveRegion = "Polite"
	LiveRegionAssertive LiveRegion = "Assertive"
)

// LiveRegions lists every LiveRegion.
func LiveRegions() []string {
	return []string{string(LiveRegionNone), string(LiveRegionPolite), string(LiveRegionAssertive)}
}

// Accessibility describes a node to assistive technology.
type Accessibility struct {
	Role       Role       `json:"role,omitempty" yaml:"role,omitempty"`
	Label      string     `json:"label,omitempty" yaml:"label,omitempty"`
	LiveRegion LiveRegion `json:"liveRegion,omitempty" yaml:"liveRegion,omitempty"`
	Enabled    bool       `json:"enabled" yaml:"enabled"`
	Focusable  bool       `json:"focusable" yaml:"focusable"`
}

// Check validates the enums. Empty values mean "unset".
func (a *Accessibility) Check() []string {
	if a == nil {
		return nil
	}
	var out []string
	if a.Role != "" && !contains(Roles(), string(a.Role)) {
		out = append(out, fmt.Sprintf("unknown accessibility role %q", a.Role))
	}
	if a.LiveRegion != "" && !contains(LiveRegions(), string(a.LiveRegion)) {
		out = append(out, fmt.Sprintf("unknown live region %q", a.LiveRegion))
	}
	return out
}

// Clone returns a copy.
func (a *Accessibility) Clone() *Accessibility {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}
