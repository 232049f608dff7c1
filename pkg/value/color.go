package value

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorValue is an RGBA color with 0-255 channels.
type ColorValue struct {
	Red   int `json:"red" yaml:"red"`
	Green int `json:"green" yaml:"green"`
	Blue  int `json:"blue" yaml:"blue"`
	Alpha int `json:"alpha" yaml:"alpha"`
}

// RGB returns an opaque color.
func RGB(r, g, b int) *ColorValue {
	return &ColorValue{Red: r, Green: g, Blue: b, Alpha: 255}
}

// ParseHex parses #RRGGBB or #AARRGGBB.
func ParseHex(s string) (*ColorValue, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 6 {
		h = "FF" + h
	}
	if len(h) != 8 {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return &ColorValue{
		Alpha: int(n >> 24 & 0xFF),
		Red:   int(n >> 16 & 0xFF),
		Green: int(n >> 8 & 0xFF),
		Blue:  int(n & 0xFF),
	}, nil
}

// Hex returns the color as #AARRGGBB.
func (c ColorValue) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", clamp(c.Alpha), clamp(c.Red), clamp(c.Green), clamp(c.Blue))
}

// Check returns one message per channel outside [0,255].
func (c *ColorValue) Check() []string {
	if c == nil {
		return nil
	}
	var out []string
	for _, ch := range []struct {
		name string
		v    int
	}{{"red", c.Red}, {"green", c.Green}, {"blue", c.Blue}, {"alpha", c.Alpha}} {
		if ch.v < 0 || ch.v > 255 {
			out = append(out, fmt.Sprintf("color channel %s must be in [0,255], got %d", ch.name, ch.v))
		}
	}
	return out
}

// Clone returns a copy.
func (c *ColorValue) Clone() *ColorValue {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Background decorates a container.
type Background struct {
	Color        *ColorValue `json:"color,omitempty" yaml:"color,omitempty"`
	BorderColor  *ColorValue `json:"borderColor,omitempty" yaml:"borderColor,omitempty"`
	BorderWidth  *int        `json:"borderWidth,omitempty" yaml:"borderWidth,omitempty"`
	CornerRadius *int        `json:"cornerRadius,omitempty" yaml:"cornerRadius,omitempty"`
}

// Check validates colors and measurements.
func (b *Background) Check() []string {
	if b == nil {
		return nil
	}
	var out []string
	out = append(out, prefix("color", b.Color.Check())...)
	out = append(out, prefix("borderColor", b.BorderColor.Check())...)
	if b.BorderWidth != nil && *b.BorderWidth < 0 {
		out = append(out, fmt.Sprintf("borderWidth must be >= 0, got %d", *b.BorderWidth))
	}
	if b.CornerRadius != nil && *b.CornerRadius < 0 {
		out = append(out, fmt.Sprintf("cornerRadius must be >= 0, got %d", *b.CornerRadius))
	}
	return out
}

// Clone returns a deep copy.
func (b *Background) Clone() *Background {
	if b == nil {
		return nil
	}
	return &Background{
		Color:        b.Color.Clone(),
		BorderColor:  b.BorderColor.Clone(),
		BorderWidth:  cloneInt(b.BorderWidth),
		CornerRadius: cloneInt(b.CornerRadius),
	}
}

func prefix(p string, msgs []string) []string {
	for i, m := range msgs {
		msgs[i] = p + ": " + m
	}
	return msgs
}
