package value

import (
	"fmt"
	"maps"
)

// ActionType is the closed set of interaction kinds.
type ActionType string

const (
	ActionNavigate ActionType = "Navigate"
	ActionDeepLink ActionType = "DeepLink"
	ActionOpenURL  ActionType = "OpenUrl"
	ActionCustom   ActionType = "Custom"
)

// ActionTypes lists every ActionType in declaration order.
func ActionTypes() []string {
	return []string{string(ActionNavigate), string(ActionDeepLink), string(ActionOpenURL), string(ActionCustom)}
}

// Valid reports membership in the closed set.
func (t ActionType) Valid() bool {
	switch t {
	case ActionNavigate, ActionDeepLink, ActionOpenURL, ActionCustom:
		return true
	}
	return false
}

// Action is fired by interactive nodes.
type Action struct {
	Type ActionType        `json:"type" yaml:"type"`
	Data map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
}

// Navigate returns a Navigate action to the given route.
func Navigate(route string) *Action {
	return &Action{Type: ActionNavigate, Data: map[string]string{"route": route}}
}

// Check validates the action type.
func (a *Action) Check() []string {
	if a == nil {
		return nil
	}
	if !a.Type.Valid() {
		return []string{fmt.Sprintf("unknown action type %q", a.Type)}
	}
	return nil
}

// Resolve returns a copy with TemplateString resolution applied to every
// data value.
func (a *Action) Resolve(bindings map[string]string) *Action {
	if a == nil {
		return nil
	}
	out := a.Clone()
	for k, v := range out.Data {
		out.Data[k] = TemplateString(v).Resolve(bindings)
	}
	return out
}

// Clone returns a deep copy.
func (a *Action) Clone() *Action {
	if a == nil {
		return nil
	}
	return &Action{Type: a.Type, Data: maps.Clone(a.Data)}
}
