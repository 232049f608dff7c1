package token

import "github.com/Mindburn-Labs/sdui/pkg/value"

// FieldKind classifies a serialized field for schema generation and
// migration.
type FieldKind int

const (
	FieldPrimitive FieldKind = iota
	FieldEnum
	FieldRef
	FieldChildren
)

func (k FieldKind) String() string {
	switch k {
	case FieldPrimitive:
		return "primitive"
	case FieldEnum:
		return "enum"
	case FieldRef:
		return "ref"
	case FieldChildren:
		return "children"
	}
	return "unknown"
}

// Field describes one serialized field of a variant.
type Field struct {
	Name     string
	Kind     FieldKind
	JSONType string   // primitive JSON type; "string" for enums
	Ref      string   // definition name for FieldRef
	Enum     []string // allowed values for FieldEnum
	Required bool
}

// Variant is the metadata entry for one node kind.
type Variant struct {
	Kind                Kind
	Title               string
	Description         string
	Capabilities        Capability
	MinSupportedVersion int
	Fields              []Field
}

// Field returns the named field.
func (v Variant) Field(name string) (Field, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Required returns the names of required fields in declaration order.
func (v Variant) Required() []string {
	var out []string
	for _, f := range v.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// Definition names shared with the schema generator.
const (
	DefBaseToken      = "BaseToken"
	DefPadding        = "Padding"
	DefMargin         = "Margin"
	DefBackground     = "Background"
	DefColorValue     = "ColorValue"
	DefAction         = "Action"
	DefAccessibility  = "Accessibility"
	DefTemplateString = "TemplateString"
	DefValueRange     = "ValueRange"
)

// BaseFields describes the header every variant carries.
func BaseFields() []Field {
	return []Field{
		{Name: "id", Kind: FieldPrimitive, JSONType: "string", Required: true},
		{Name: "version", Kind: FieldPrimitive, JSONType: "integer", Required: true},
		{Name: "accessibility", Kind: FieldRef, Ref: DefAccessibility},
	}
}

func prim(name, jsonType string) Field {
	return Field{Name: name, Kind: FieldPrimitive, JSONType: jsonType}
}

func enum(name string, values []string) Field {
	return Field{Name: name, Kind: FieldEnum, JSONType: "string", Enum: values}
}

func ref(name, def string) Field {
	return Field{Name: name, Kind: FieldRef, Ref: def}
}

func required(f Field) Field {
	f.Required = true
	return f
}

func layoutFields(alignment Field) []Field {
	return []Field{
		required(Field{Name: "children", Kind: FieldChildren, JSONType: "array"}),
		ref("padding", DefPadding),
		ref("margin", DefMargin),
		ref("background", DefBackground),
		alignment,
	}
}

var variants = buildVariants()

func buildVariants() []Variant {
	hAlign := enum("horizontalAlignment", value.HorizontalAlignments())
	vAlign := enum("verticalAlignment", value.VerticalAlignments())
	return []Variant{
		{
			Kind: KindColumn, Title: "Column", Description: "Lays out children vertically.",
			Capabilities: CapContainer, MinSupportedVersion: 1,
			Fields: layoutFields(hAlign),
		},
		{
			Kind: KindRow, Title: "Row", Description: "Lays out children horizontally.",
			Capabilities: CapContainer, MinSupportedVersion: 1,
			Fields: layoutFields(vAlign),
		},
		{
			Kind: KindBox, Title: "Box", Description: "Stacks children on top of each other.",
			Capabilities: CapContainer, MinSupportedVersion: 1,
			Fields: layoutFields(enum("contentAlignment", value.BoxAlignments())),
		},
		{
			Kind: KindLazyColumn, Title: "LazyColumn", Description: "Vertically scrolling list that composes only visible children.",
			Capabilities: CapContainer, MinSupportedVersion: 1,
			Fields: append(layoutFields(hAlign), prim("itemSpacing", "integer")),
		},
		{
			Kind: KindLazyRow, Title: "LazyRow", Description: "Horizontally scrolling list that composes only visible children.",
			Capabilities: CapContainer, MinSupportedVersion: 1,
			Fields: append(layoutFields(vAlign), prim("itemSpacing", "integer")),
		},
		{
			Kind: KindCard, Title: "Card", Description: "Elevated surface holding a column of children; optionally clickable.",
			Capabilities: CapContainer | CapInteractive, MinSupportedVersion: 1,
			Fields: append(layoutFields(hAlign), prim("elevation", "integer"), ref("onClick", DefAction)),
		},
		{
			Kind: KindText, Title: "Text", Description: "Displays a template string.",
			Capabilities: CapLeaf, MinSupportedVersion: 1,
			Fields: []Field{
				required(ref("text", DefTemplateString)),
				enum("style", value.TextStyles()),
				ref("color", DefColorValue),
				prim("maxLines", "integer"),
				ref("padding", DefPadding),
			},
		},
		{
			Kind: KindSpacer, Title: "Spacer", Description: "Empty space of a fixed size.",
			Capabilities: CapLeaf, MinSupportedVersion: 1,
			Fields: []Field{prim("width", "integer"), prim("height", "integer")},
		},
		{
			Kind: KindDivider, Title: "Divider", Description: "Thin separating line.",
			Capabilities: CapLeaf, MinSupportedVersion: 1,
			Fields: []Field{
				required(prim("thickness", "integer")),
				ref("color", DefColorValue),
				ref("padding", DefPadding),
			},
		},
		{
			Kind: KindButton, Title: "Button", Description: "Labelled button that fires an action.",
			Capabilities: CapLeaf | CapInteractive, MinSupportedVersion: 1,
			Fields: []Field{
				required(ref("text", DefTemplateString)),
				enum("style", value.ButtonStyles()),
				prim("enabled", "boolean"),
				required(ref("onClick", DefAction)),
				ref("padding", DefPadding),
			},
		},
		{
			Kind: KindSlider, Title: "Slider", Description: "Selects a value from a continuous or stepped range.",
			Capabilities: CapLeaf | CapInteractive, MinSupportedVersion: 1,
			Fields: []Field{
				required(prim("initialValue", "number")),
				required(ref("valueRange", DefValueRange)),
				prim("steps", "integer"),
				ref("onClick", DefAction),
			},
		},
		{
			Kind: KindAsyncImage, Title: "AsyncImage", Description: "Image loaded from a URL.",
			Capabilities: CapLeaf | CapInteractive, MinSupportedVersion: 1,
			Fields: []Field{
				required(ref("url", DefTemplateString)),
				ref("contentDescription", DefTemplateString),
				prim("width", "integer"),
				prim("height", "integer"),
				enum("contentScale", value.ContentScales()),
				ref("onClick", DefAction),
			},
		},
	}
}

// Variants returns the metadata table in canonical kind order.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// Lookup returns the metadata for kind k.
func Lookup(k Kind) (Variant, bool) {
	for _, v := range variants {
		if v.Kind == k {
			return v, true
		}
	}
	return Variant{}, false
}

// MinSupportedVersion returns the default version floor for kind k.
func MinSupportedVersion(k Kind) int {
	if v, ok := Lookup(k); ok && v.MinSupportedVersion > 0 {
		return v.MinSupportedVersion
	}
	return 1
}
