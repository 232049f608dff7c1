package value

import "slices"

// HorizontalAlignment positions children of vertical containers.
type HorizontalAlignment string

const (
	AlignStart              HorizontalAlignment = "Start"
	AlignCenterHorizontally HorizontalAlignment = "CenterHorizontally"
	AlignEnd                HorizontalAlignment = "End"
)

// HorizontalAlignments lists every HorizontalAlignment.
func HorizontalAlignments() []string {
	return []string{string(AlignStart), string(AlignCenterHorizontally), string(AlignEnd)}
}

// VerticalAlignment positions children of horizontal containers.
type VerticalAlignment string

const (
	AlignTop              VerticalAlignment = "Top"
	AlignCenterVertically VerticalAlignment = "CenterVertically"
	AlignBottom           VerticalAlignment = "Bottom"
)

// VerticalAlignments lists every VerticalAlignment.
func VerticalAlignments() []string {
	return []string{string(AlignTop), string(AlignCenterVertically), string(AlignBottom)}
}

// BoxAlignment positions stacked children of a Box.
type BoxAlignment string

const (
	BoxTopStart     BoxAlignment = "TopStart"
	BoxTopCenter    BoxAlignment = "TopCenter"
	BoxTopEnd       BoxAlignment = "TopEnd"
	BoxCenterStart  BoxAlignment = "CenterStart"
	BoxCenter       BoxAlignment = "Center"
	BoxCenterEnd    BoxAlignment = "CenterEnd"
	BoxBottomStart  BoxAlignment = "BottomStart"
	BoxBottomCenter BoxAlignment = "BottomCenter"
	BoxBottomEnd    BoxAlignment = "BottomEnd"
)

// BoxAlignments lists every BoxAlignment.
func BoxAlignments() []string {
	return []string{
		string(BoxTopStart), string(BoxTopCenter), string(BoxTopEnd),
		string(BoxCenterStart), string(BoxCenter), string(BoxCenterEnd),
		string(BoxBottomStart), string(BoxBottomCenter), string(BoxBottomEnd),
	}
}

// TextStyle is a typography scale entry.
type TextStyle string

const (
	TextDisplayLarge   TextStyle = "DisplayLarge"
	TextHeadlineLarge  TextStyle = "HeadlineLarge"
	TextHeadlineMedium TextStyle = "HeadlineMedium"
	TextTitleLarge     TextStyle = "TitleLarge"
	TextTitleMedium    TextStyle = "TitleMedium"
	TextBodyLarge      TextStyle = "BodyLarge"
	TextBodyMedium     TextStyle = "BodyMedium"
	TextBodySmall      TextStyle = "BodySmall"
	TextLabelLarge     TextStyle = "LabelLarge"
	TextLabelSmall     TextStyle = "LabelSmall"
)

// TextStyles lists every TextStyle.
func TextStyles() []string {
	return []string{
		string(TextDisplayLarge), string(TextHeadlineLarge), string(TextHeadlineMedium),
		string(TextTitleLarge), string(TextTitleMedium), string(TextBodyLarge),
		string(TextBodyMedium), string(TextBodySmall), string(TextLabelLarge), string(TextLabelSmall),
	}
}

// ButtonStyle is the visual treatment of a Button.
type ButtonStyle string

const (
	ButtonFilled   ButtonStyle = "Filled"
	ButtonOutlined ButtonStyle = "Outlined"
	ButtonText     ButtonStyle = "Text"
	ButtonElevated ButtonStyle = "Elevated"
	ButtonTonal    ButtonStyle = "Tonal"
)

// ButtonStyles lists every ButtonStyle.
func ButtonStyles() []string {
	return []string{string(ButtonFilled), string(ButtonOutlined), string(ButtonText), string(ButtonElevated), string(ButtonTonal)}
}

// ContentScale controls how an image fills its bounds.
type ContentScale string

const (
	ScaleCrop       ContentScale = "Crop"
	ScaleFit        ContentScale = "Fit"
	ScaleFillBounds ContentScale = "FillBounds"
	ScaleInside     ContentScale = "Inside"
	ScaleNone       ContentScale = "None"
)

// ContentScales lists every ContentScale.
func ContentScales() []string {
	return []string{string(ScaleCrop), string(ScaleFit), string(ScaleFillBounds), string(ScaleInside), string(ScaleNone)}
}

// ValidEnum reports whether v is empty (unset) or one of allowed.
func ValidEnum[T ~string](v T, allowed []string) bool {
	return v == "" || contains(allowed, string(v))
}

func contains(vs []string, v string) bool { return slices.Contains(vs, v) }
