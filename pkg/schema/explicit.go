package schema

import (
	"github.com/Mindburn-Labs/sdui/pkg/token"
	"github.com/Mindburn-Labs/sdui/pkg/value"
)

// Explicit builds the document from hand-written variant definitions.
func Explicit(opts Options) *Schema {
	return root(opts, baseToken(), map[token.Kind]*Schema{
		token.KindColumn:     column(),
		token.KindRow:        row(),
		token.KindBox:        box(),
		token.KindLazyColumn: lazyColumn(),
		token.KindLazyRow:    lazyRow(),
		token.KindCard:       card(),
		token.KindText:       text(),
		token.KindSpacer:     spacer(),
		token.KindDivider:    divider(),
		token.KindButton:     button(),
		token.KindSlider:     slider(),
		token.KindAsyncImage: asyncImage(),
	})
}

func baseToken() *Schema {
	return object(map[string]*Schema{
		"id":            prim("string"),
		"version":       prim("integer"),
		"accessibility": ref(token.DefAccessibility),
	}, "id", "version")
}

// layout returns the fields shared by every container plus extra.
func layout(extra map[string]*Schema) map[string]*Schema {
	props := map[string]*Schema{
		"children":   children(),
		"padding":    ref(token.DefPadding),
		"margin":     ref(token.DefMargin),
		"background": ref(token.DefBackground),
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

func column() *Schema {
	return variant(token.KindColumn, "Column", "Lays out children vertically.",
		layout(map[string]*Schema{"horizontalAlignment": enum(value.HorizontalAlignments())}),
		"children")
}

func row() *Schema {
	return variant(token.KindRow, "Row", "Lays out children horizontally.",
		layout(map[string]*Schema{"verticalAlignment": enum(value.VerticalAlignments())}),
		"children")
}

func box() *Schema {
	return variant(token.KindBox, "Box", "Stacks children on top of each other.",
		layout(map[string]*Schema{"contentAlignment": enum(value.BoxAlignments())}),
		"children")
}

func lazyColumn() *Schema {
	return variant(token.KindLazyColumn, "LazyColumn", "Vertically scrolling list that composes only visible children.",
		layout(map[string]*Schema{
			"horizontalAlignment": enum(value.HorizontalAlignments()),
			"itemSpacing":         prim("integer"),
		}),
		"children")
}

func lazyRow() *Schema {
	return variant(token.KindLazyRow, "LazyRow", "Horizontally scrolling list that composes only visible children.",
		layout(map[string]*Schema{
			"verticalAlignment": enum(value.VerticalAlignments()),
			"itemSpacing":       prim("integer"),
		}),
		"children")
}

func card() *Schema {
	return variant(token.KindCard, "Card", "Elevated surface holding a column of children; optionally clickable.",
		layout(map[string]*Schema{
			"horizontalAlignment": enum(value.HorizontalAlignments()),
			"elevation":           prim("integer"),
			"onClick":             ref(token.DefAction),
		}),
		"children")
}

func text() *Schema {
	return variant(token.KindText, "Text", "Displays a template string.",
		map[string]*Schema{
			"text":     ref(token.DefTemplateString),
			"style":    enum(value.TextStyles()),
			"color":    ref(token.DefColorValue),
			"maxLines": prim("integer"),
			"padding":  ref(token.DefPadding),
		},
		"text")
}

func spacer() *Schema {
	return variant(token.KindSpacer, "Spacer", "Empty space of a fixed size.",
		map[string]*Schema{
			"width":  prim("integer"),
			"height": prim("integer"),
		})
}

func divider() *Schema {
	return variant(token.KindDivider, "Divider", "Thin separating line.",
		map[string]*Schema{
			"thickness": prim("integer"),
			"color":     ref(token.DefColorValue),
			"padding":   ref(token.DefPadding),
		},
		"thickness")
}

func button() *Schema {
	return variant(token.KindButton, "Button", "Labelled button that fires an action.",
		map[string]*Schema{
			"text":    ref(token.DefTemplateString),
			"style":   enum(value.ButtonStyles()),
			"enabled": prim("boolean"),
			"onClick": ref(token.DefAction),
			"padding": ref(token.DefPadding),
		},
		"text", "onClick")
}

func slider() *Schema {
	return variant(token.KindSlider, "Slider", "Selects a value from a continuous or stepped range.",
		map[string]*Schema{
			"initialValue": prim("number"),
			"valueRange":   ref(token.DefValueRange),
			"steps":        prim("integer"),
			"onClick":      ref(token.DefAction),
		},
		"initialValue", "valueRange")
}

func asyncImage() *Schema {
	return variant(token.KindAsyncImage, "AsyncImage", "Image loaded from a URL.",
		map[string]*Schema{
			"url":                ref(token.DefTemplateString),
			"contentDescription": ref(token.DefTemplateString),
			"width":              prim("integer"),
			"height":             prim("integer"),
			"contentScale":       enum(value.ContentScales()),
			"onClick":            ref(token.DefAction),
		},
		"url")
}
