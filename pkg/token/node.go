// Package token defines the closed set of UI description nodes.
//
// A Node is one of twelve pointer variants. Container-ness and interactivity
// are capability flags on the variant, and every capability query is an
// exhaustive type switch in this package so adding a variant fails loudly in
// exactly one place.
package token

import "github.com/Mindburn-Labs/sdui/pkg/value"

// Kind names a node variant. It is also the wire discriminator.
type Kind string

const (
	KindColumn     Kind = "Column"
	KindRow        Kind = "Row"
	KindBox        Kind = "Box"
	KindLazyColumn Kind = "LazyColumn"
	KindLazyRow    Kind = "LazyRow"
	KindCard       Kind = "Card"
	KindText       Kind = "Text"
	KindSpacer     Kind = "Spacer"
	KindDivider    Kind = "Divider"
	KindButton     Kind = "Button"
	KindSlider     Kind = "Slider"
	KindAsyncImage Kind = "AsyncImage"
)

// Kinds returns every variant in canonical order.
func Kinds() []Kind {
	return []Kind{
		KindColumn, KindRow, KindBox, KindLazyColumn, KindLazyRow, KindCard,
		KindText, KindSpacer, KindDivider, KindButton, KindSlider, KindAsyncImage,
	}
}

// Node is implemented only by the variants in this package.
type Node interface {
	Kind() Kind
	// Common returns the identity/version/accessibility header.
	Common() *Base
	sealed()
}

// Base is the contract shared by all variants.
type Base struct {
	ID            string               `json:"id"`
	Version       int                  `json:"version"`
	Accessibility *value.Accessibility `json:"accessibility,omitempty"`
}

func (b *Base) Common() *Base { return b }
func (*Base) sealed()         {}

func (b Base) clone() Base {
	b.Accessibility = b.Accessibility.Clone()
	return b
}

// ID returns n's id, or "" for nil.
func ID(n Node) string {
	if n == nil {
		return ""
	}
	return n.Common().ID
}

// VersionOf returns n's declared version.
func VersionOf(n Node) int {
	if n == nil {
		return 0
	}
	return n.Common().Version
}

type Column struct {
	Base
	Children            NodeList                  `json:"children"`
	Padding             *value.Padding            `json:"padding,omitempty"`
	Margin              *value.Margin             `json:"margin,omitempty"`
	Background          *value.Background         `json:"background,omitempty"`
	HorizontalAlignment value.HorizontalAlignment `json:"horizontalAlignment,omitempty"`
}

type Row struct {
	Base
	Children          NodeList                `json:"children"`
	Padding           *value.Padding          `json:"padding,omitempty"`
	Margin            *value.Margin           `json:"margin,omitempty"`
	Background        *value.Background       `json:"background,omitempty"`
	VerticalAlignment value.VerticalAlignment `json:"verticalAlignment,omitempty"`
}

type Box struct {
	Base
	Children         NodeList           `json:"children"`
	Padding          *value.Padding     `json:"padding,omitempty"`
	Margin           *value.Margin      `json:"margin,omitempty"`
	Background       *value.Background  `json:"background,omitempty"`
	ContentAlignment value.BoxAlignment `json:"contentAlignment,omitempty"`
}

type LazyColumn struct {
	Base
	Children            NodeList                  `json:"children"`
	Padding             *value.Padding            `json:"padding,omitempty"`
	Margin              *value.Margin             `json:"margin,omitempty"`
	Background          *value.Background         `json:"background,omitempty"`
	HorizontalAlignment value.HorizontalAlignment `json:"horizontalAlignment,omitempty"`
	ItemSpacing         *int                      `json:"itemSpacing,omitempty"`
}

type LazyRow struct {
	Base
	Children          NodeList                `json:"children"`
	Padding           *value.Padding          `json:"padding,omitempty"`
	Margin            *value.Margin           `json:"margin,omitempty"`
	Background        *value.Background       `json:"background,omitempty"`
	VerticalAlignment value.VerticalAlignment `json:"verticalAlignment,omitempty"`
	ItemSpacing       *int                    `json:"itemSpacing,omitempty"`
}

// Card is both a container and interactive.
type Card struct {
	Base
	Children            NodeList                  `json:"children"`
	Padding             *value.Padding            `json:"padding,omitempty"`
	Margin              *value.Margin             `json:"margin,omitempty"`
	Background          *value.Background         `json:"background,omitempty"`
	HorizontalAlignment value.HorizontalAlignment `json:"horizontalAlignment,omitempty"`
	Elevation           *int                      `json:"elevation,omitempty"`
	OnClick             *value.Action             `json:"onClick,omitempty"`
}

type Text struct {
	Base
	Text     value.TemplateString `json:"text"`
	Style    value.TextStyle      `json:"style,omitempty"`
	Color    *value.ColorValue    `json:"color,omitempty"`
	MaxLines *int                 `json:"maxLines,omitempty"`
	Padding  *value.Padding       `json:"padding,omitempty"`
}

type Spacer struct {
	Base
	Width  *int `json:"width,omitempty"`
	Height *int `json:"height,omitempty"`
}

type Divider struct {
	Base
	Thickness int               `json:"thickness"`
	Color     *value.ColorValue `json:"color,omitempty"`
	Padding   *value.Padding    `json:"padding,omitempty"`
}

// Button always carries an action.
type Button struct {
	Base
	Text    value.TemplateString `json:"text"`
	Style   value.ButtonStyle    `json:"style,omitempty"`
	Enabled *bool                `json:"enabled,omitempty"`
	OnClick value.Action         `json:"onClick"`
	Padding *value.Padding       `json:"padding,omitempty"`
}

type Slider struct {
	Base
	InitialValue float64          `json:"initialValue"`
	ValueRange   value.ValueRange `json:"valueRange"`
	Steps        int              `json:"steps,omitempty"`
	OnClick      *value.Action    `json:"onClick,omitempty"`
}

type AsyncImage struct {
	Base
	URL                value.TemplateString `json:"url"`
	ContentDescription value.TemplateString `json:"contentDescription,omitempty"`
	Width              *int                 `json:"width,omitempty"`
	Height             *int                 `json:"height,omitempty"`
	ContentScale       value.ContentScale   `json:"contentScale,omitempty"`
	OnClick            *value.Action        `json:"onClick,omitempty"`
}

func (*Column) Kind() Kind     { return KindColumn }
func (*Row) Kind() Kind        { return KindRow }
func (*Box) Kind() Kind        { return KindBox }
func (*LazyColumn) Kind() Kind { return KindLazyColumn }
func (*LazyRow) Kind() Kind    { return KindLazyRow }
func (*Card) Kind() Kind       { return KindCard }
func (*Text) Kind() Kind       { return KindText }
func (*Spacer) Kind() Kind     { return KindSpacer }
func (*Divider) Kind() Kind    { return KindDivider }
func (*Button) Kind() Kind     { return KindButton }
func (*Slider) Kind() Kind     { return KindSlider }
func (*AsyncImage) Kind() Kind { return KindAsyncImage }

// New returns a zero node of the given kind, or nil for an unknown kind.
func New(k Kind) Node {
	switch k {
	case KindColumn:
		return &Column{}
	case KindRow:
		return &Row{}
	case KindBox:
		return &Box{}
	case KindLazyColumn:
		return &LazyColumn{}
	case KindLazyRow:
		return &LazyRow{}
	case KindCard:
		return &Card{}
	case KindText:
		return &Text{}
	case KindSpacer:
		return &Spacer{}
	case KindDivider:
		return &Divider{}
	case KindButton:
		return &Button{}
	case KindSlider:
		return &Slider{}
	case KindAsyncImage:
		return &AsyncImage{}
	}
	return nil
}
