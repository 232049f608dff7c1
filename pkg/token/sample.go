package token

import "github.com/Mindburn-Labs/sdui/pkg/value"

// Sample builds one representative node of kind k with ids drawn from gen.
// Containers get a Text and a Button child. It returns nil for unknown kinds.
func Sample(k Kind, gen *IDGen) Node {
	base := func(kind Kind) Base { return Base{ID: gen.Next(kind), Version: 1} }
	children := func() NodeList {
		return NodeList{
			&Text{Base: base(KindText), Text: "{{title}}", Style: value.TextTitleMedium},
			&Button{
				Base:    base(KindButton),
				Text:    "Continue",
				Style:   value.ButtonFilled,
				OnClick: *value.Navigate("next"),
			},
		}
	}
	switch k {
	case KindColumn:
		return &Column{Base: base(k), Children: children(), Padding: value.Uniform(16), HorizontalAlignment: value.AlignStart}
	case KindRow:
		return &Row{Base: base(k), Children: children(), Padding: value.Symmetric(16, 8), VerticalAlignment: value.AlignCenterVertically}
	case KindBox:
		return &Box{Base: base(k), Children: children(), ContentAlignment: value.BoxCenter}
	case KindLazyColumn:
		return &LazyColumn{Base: base(k), Children: children(), ItemSpacing: value.Int(8)}
	case KindLazyRow:
		return &LazyRow{Base: base(k), Children: children(), ItemSpacing: value.Int(8)}
	case KindCard:
		return &Card{
			Base:       base(k),
			Children:   children(),
			Padding:    value.Uniform(12),
			Background: &value.Background{Color: value.RGB(255, 255, 255), CornerRadius: value.Int(8)},
			Elevation:  value.Int(2),
			OnClick:    value.Navigate("details"),
		}
	case KindText:
		return &Text{Base: base(k), Text: "Hello {{name}}", Style: value.TextBodyMedium, MaxLines: value.Int(2)}
	case KindSpacer:
		return &Spacer{Base: base(k), Height: value.Int(16)}
	case KindDivider:
		return &Divider{Base: base(k), Thickness: 1, Color: value.RGB(200, 200, 200)}
	case KindButton:
		b := &Button{Base: base(k), Text: "Submit", Style: value.ButtonFilled, OnClick: *value.Navigate("submit")}
		b.Accessibility = &value.Accessibility{Role: value.RoleButton, Label: "Submit", Enabled: true, Focusable: true}
		return b
	case KindSlider:
		return &Slider{Base: base(k), InitialValue: 50, ValueRange: value.ValueRange{Start: 0, End: 100}, Steps: 10}
	case KindAsyncImage:
		return &AsyncImage{
			Base:               base(k),
			URL:                "https://cdn.example.com/{{image}}.png",
			ContentDescription: "Banner",
			Width:              value.Int(320),
			Height:             value.Int(180),
			ContentScale:       value.ScaleCrop,
		}
	}
	return nil
}
