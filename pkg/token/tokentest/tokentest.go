// Package tokentest builds nodes for tests in other packages.
package tokentest

import (
	"fmt"

	"github.com/Mindburn-Labs/sdui/pkg/token"
	"github.com/Mindburn-Labs/sdui/pkg/value"
)

// Build returns a node of kind k at version. Each bit of mask switches on
// one optional field so callers can cover every combination, including
// all optional fields absent (mask 0). text feeds string fields.
func Build(k token.Kind, mask uint16, text string, version int) token.Node {
	bit := func(i uint) bool { return mask&(1<<i) != 0 }
	base := token.Base{ID: fmt.Sprintf("%s_%d", k, mask), Version: version}
	if bit(0) {
		base.Accessibility = &value.Accessibility{Role: value.RoleButton, Label: text, Enabled: true, Focusable: bit(1)}
	}
	var pad *value.Padding
	if bit(2) {
		pad = &value.Spacing{All: value.Int(4), Start: value.Int(2)}
	}
	var margin *value.Margin
	if bit(3) {
		margin = value.Symmetric(8, 2)
	}
	var bg *value.Background
	if bit(4) {
		bg = &value.Background{Color: value.RGB(1, 2, 3), BorderWidth: value.Int(1)}
	}
	var action *value.Action
	if bit(5) {
		action = &value.Action{Type: value.ActionCustom, Data: map[string]string{"k": text}}
	}
	var num *int
	if bit(6) {
		num = value.Int(int(mask%7) + 1)
	}
	var color *value.ColorValue
	if bit(7) {
		color = &value.ColorValue{Red: 10, Green: 20, Blue: 30, Alpha: 40}
	}

	switch k {
	case token.KindColumn:
		n := &token.Column{Base: base, Padding: pad, Margin: margin, Background: bg}
		if bit(8) {
			n.HorizontalAlignment = value.AlignEnd
		}
		return n
	case token.KindRow:
		n := &token.Row{Base: base, Padding: pad, Margin: margin, Background: bg}
		if bit(8) {
			n.VerticalAlignment = value.AlignBottom
		}
		return n
	case token.KindBox:
		n := &token.Box{Base: base, Padding: pad, Margin: margin, Background: bg}
		if bit(8) {
			n.ContentAlignment = value.BoxBottomEnd
		}
		return n
	case token.KindLazyColumn:
		return &token.LazyColumn{Base: base, Padding: pad, Margin: margin, Background: bg, ItemSpacing: num}
	case token.KindLazyRow:
		return &token.LazyRow{Base: base, Padding: pad, Margin: margin, Background: bg, ItemSpacing: num}
	case token.KindCard:
		return &token.Card{Base: base, Padding: pad, Margin: margin, Background: bg, Elevation: num, OnClick: action}
	case token.KindText:
		n := &token.Text{Base: base, Text: value.TemplateString(text), Color: color, MaxLines: num, Padding: pad}
		if bit(8) {
			n.Style = value.TextBodySmall
		}
		return n
	case token.KindSpacer:
		n := &token.Spacer{Base: base, Width: num}
		if bit(8) {
			n.Height = value.Int(3)
		}
		return n
	case token.KindDivider:
		return &token.Divider{Base: base, Thickness: int(mask%3) + 1, Color: color, Padding: pad}
	case token.KindButton:
		n := &token.Button{Base: base, Text: value.TemplateString("b" + text), OnClick: value.Action{Type: value.ActionNavigate}, Padding: pad}
		if action != nil {
			n.OnClick = *action
		}
		if bit(8) {
			n.Style = value.ButtonElevated
		}
		if bit(9) {
			e := bit(10)
			n.Enabled = &e
		}
		return n
	case token.KindSlider:
		n := &token.Slider{Base: base, InitialValue: 2.5, ValueRange: value.ValueRange{Start: 0, End: 10}, OnClick: action}
		if bit(8) {
			n.Steps = 5
		}
		return n
	case token.KindAsyncImage:
		n := &token.AsyncImage{Base: base, URL: value.TemplateString("https://x/" + text), Width: num, OnClick: action}
		if bit(8) {
			n.ContentScale = value.ScaleNone
		}
		if bit(9) {
			n.ContentDescription = value.TemplateString(text)
		}
		return n
	}
	return nil
}

// Tree returns a container of kind k holding one child per leaf kind, all
// at version. Ids are prefixed with prefix.
func Tree(k token.Kind, prefix string, mask uint16, version int) token.Node {
	root := Build(k, mask, prefix, version)
	if root == nil {
		return nil
	}
	root.Common().ID = prefix + "root"
	var children []token.Node
	for i, lk := range []token.Kind{token.KindText, token.KindButton, token.KindAsyncImage, token.KindDivider} {
		c := Build(lk, mask, prefix, version)
		c.Common().ID = fmt.Sprintf("%schild_%d", prefix, i)
		children = append(children, c)
	}
	token.SetChildren(root, children)
	return root
}
