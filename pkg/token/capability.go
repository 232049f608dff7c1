package token

import (
	"strings"

	"github.com/Mindburn-Labs/sdui/pkg/value"
)

// Capability is a set of variant traits.
type Capability uint8

const (
	CapContainer Capability = 1 << iota
	CapInteractive
	CapLeaf
)

// Has reports whether all bits of f are set.
func (c Capability) Has(f Capability) bool { return c&f == f }

func (c Capability) String() string {
	var parts []string
	if c.Has(CapContainer) {
		parts = append(parts, "container")
	}
	if c.Has(CapLeaf) {
		parts = append(parts, "leaf")
	}
	if c.Has(CapInteractive) {
		parts = append(parts, "interactive")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// CapabilitiesOf returns the traits of kind k.
func CapabilitiesOf(k Kind) Capability {
	v, ok := Lookup(k)
	if !ok {
		return 0
	}
	return v.Capabilities
}

// ChildrenOf returns the children of a container node. ok is false for
// nodes that cannot hold children.
func ChildrenOf(n Node) (children []Node, ok bool) {
	switch v := n.(type) {
	case *Column:
		return v.Children, true
	case *Row:
		return v.Children, true
	case *Box:
		return v.Children, true
	case *LazyColumn:
		return v.Children, true
	case *LazyRow:
		return v.Children, true
	case *Card:
		return v.Children, true
	case *Text, *Spacer, *Divider, *Button, *Slider, *AsyncImage:
		return nil, false
	}
	return nil, false
}

// SetChildren replaces the children of a container in place.
func SetChildren(n Node, children []Node) bool {
	switch v := n.(type) {
	case *Column:
		v.Children = children
	case *Row:
		v.Children = children
	case *Box:
		v.Children = children
	case *LazyColumn:
		v.Children = children
	case *LazyRow:
		v.Children = children
	case *Card:
		v.Children = children
	default:
		return false
	}
	return true
}

// ActionOf returns the action of an interactive node. ok is false for
// non-interactive nodes; action may be nil when the variant's action is
// optional and unset.
func ActionOf(n Node) (action *value.Action, ok bool) {
	switch v := n.(type) {
	case *Card:
		return v.OnClick, true
	case *Button:
		return &v.OnClick, true
	case *Slider:
		return v.OnClick, true
	case *AsyncImage:
		return v.OnClick, true
	case *Column, *Row, *Box, *LazyColumn, *LazyRow, *Text, *Spacer, *Divider:
		return nil, false
	}
	return nil, false
}

// IsContainer reports whether n can hold children.
func IsContainer(n Node) bool {
	_, ok := ChildrenOf(n)
	return ok
}

// IsInteractive reports whether n carries an action slot.
func IsInteractive(n Node) bool {
	_, ok := ActionOf(n)
	return ok
}

// Shallow returns a copy of n with every value field deep-copied. The
// children slice is fresh but holds the same child nodes.
func Shallow(n Node) Node {
	switch v := n.(type) {
	case *Column:
		c := *v
		c.Base = v.Base.clone()
		c.Children = copyList(v.Children)
		c.Padding, c.Margin, c.Background = v.Padding.Clone(), v.Margin.Clone(), v.Background.Clone()
		return &c
	case *Row:
		c := *v
		c.Base = v.Base.clone()
		c.Children = copyList(v.Children)
		c.Padding, c.Margin, c.Background = v.Padding.Clone(), v.Margin.Clone(), v.Background.Clone()
		return &c
	case *Box:
		c := *v
		c.Base = v.Base.clone()
		c.Children = copyList(v.Children)
		c.Padding, c.Margin, c.Background = v.Padding.Clone(), v.Margin.Clone(), v.Background.Clone()
		return &c
	case *LazyColumn:
		c := *v
		c.Base = v.Base.clone()
		c.Children = copyList(v.Children)
		c.Padding, c.Margin, c.Background = v.Padding.Clone(), v.Margin.Clone(), v.Background.Clone()
		c.ItemSpacing = cloneInt(v.ItemSpacing)
		return &c
	case *LazyRow:
		c := *v
		c.Base = v.Base.clone()
		c.Children = copyList(v.Children)
		c.Padding, c.Margin, c.Background = v.Padding.Clone(), v.Margin.Clone(), v.Background.Clone()
		c.ItemSpacing = cloneInt(v.ItemSpacing)
		return &c
	case *Card:
		c := *v
		c.Base = v.Base.clone()
		c.Children = copyList(v.Children)
		c.Padding, c.Margin, c.Background = v.Padding.Clone(), v.Margin.Clone(), v.Background.Clone()
		c.Elevation = cloneInt(v.Elevation)
		c.OnClick = v.OnClick.Clone()
		return &c
	case *Text:
		c := *v
		c.Base = v.Base.clone()
		c.Color = v.Color.Clone()
		c.MaxLines = cloneInt(v.MaxLines)
		c.Padding = v.Padding.Clone()
		return &c
	case *Spacer:
		c := *v
		c.Base = v.Base.clone()
		c.Width, c.Height = cloneInt(v.Width), cloneInt(v.Height)
		return &c
	case *Divider:
		c := *v
		c.Base = v.Base.clone()
		c.Color = v.Color.Clone()
		c.Padding = v.Padding.Clone()
		return &c
	case *Button:
		c := *v
		c.Base = v.Base.clone()
		if v.Enabled != nil {
			e := *v.Enabled
			c.Enabled = &e
		}
		c.OnClick = *v.OnClick.Clone()
		c.Padding = v.Padding.Clone()
		return &c
	case *Slider:
		c := *v
		c.Base = v.Base.clone()
		c.OnClick = v.OnClick.Clone()
		return &c
	case *AsyncImage:
		c := *v
		c.Base = v.Base.clone()
		c.Width, c.Height = cloneInt(v.Width), cloneInt(v.Height)
		c.OnClick = v.OnClick.Clone()
		return &c
	}
	return nil
}

// Clone returns a deep copy of the tree rooted at n. Shared or cyclic
// subtrees are copied once and the sharing is preserved.
func Clone(n Node) Node {
	return cloneTree(n, make(map[Node]Node))
}

func cloneTree(n Node, done map[Node]Node) Node {
	if n == nil {
		return nil
	}
	if c, ok := done[n]; ok {
		return c
	}
	c := Shallow(n)
	done[n] = c
	if children, ok := ChildrenOf(c); ok && children != nil {
		out := make([]Node, len(children))
		for i, ch := range children {
			out[i] = cloneTree(ch, done)
		}
		SetChildren(c, out)
	}
	return c
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the node's children. Each node is visited
// at most once.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, make(map[Node]bool), fn)
}

func walk(n Node, depth int, seen map[Node]bool, fn func(Node, int) bool) {
	if n == nil || seen[n] {
		return
	}
	seen[n] = true
	if !fn(n, depth) {
		return
	}
	children, _ := ChildrenOf(n)
	for _, c := range children {
		walk(c, depth+1, seen, fn)
	}
}

// Bind returns a shallow copy of n with every template field resolved
// against bindings. Children are not visited.
func Bind(n Node, bindings map[string]string) Node {
	c := Shallow(n)
	if c == nil {
		return nil
	}
	if a := c.Common().Accessibility; a != nil {
		a.Label = value.TemplateString(a.Label).Resolve(bindings)
	}
	switch v := c.(type) {
	case *Text:
		v.Text = value.TemplateString(v.Text.Resolve(bindings))
	case *Button:
		v.Text = value.TemplateString(v.Text.Resolve(bindings))
		v.OnClick = *v.OnClick.Resolve(bindings)
	case *AsyncImage:
		v.URL = value.TemplateString(v.URL.Resolve(bindings))
		v.ContentDescription = value.TemplateString(v.ContentDescription.Resolve(bindings))
		v.OnClick = v.OnClick.Resolve(bindings)
	case *Card:
		v.OnClick = v.OnClick.Resolve(bindings)
	case *Slider:
		v.OnClick = v.OnClick.Resolve(bindings)
	case *Column, *Row, *Box, *LazyColumn, *LazyRow, *Spacer, *Divider:
	}
	return c
}

func copyList(l NodeList) NodeList {
	if l == nil {
		return nil
	}
	return append(NodeList(nil), l...)
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
