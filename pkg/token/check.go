package token

import (
	"fmt"
	"strings"

	"github.com/Mindburn-Labs/sdui/pkg/value"
)

// Check returns one message per violated field constraint of n itself.
// Children are not visited.
func Check(n Node) []string {
	if n == nil {
		return []string{"nil node"}
	}
	var c checker
	b := n.Common()
	if strings.TrimSpace(b.ID) == "" {
		c.add("id must not be blank")
	}
	if b.Version < 1 {
		c.addf("version must be >= 1, got %d", b.Version)
	}
	c.sub("accessibility", b.Accessibility.Check())

	switch v := n.(type) {
	case *Column:
		c.layout(v.Padding, v.Margin, v.Background)
		c.enum("horizontalAlignment", string(v.HorizontalAlignment), value.HorizontalAlignments())
	case *Row:
		c.layout(v.Padding, v.Margin, v.Background)
		c.enum("verticalAlignment", string(v.VerticalAlignment), value.VerticalAlignments())
	case *Box:
		c.layout(v.Padding, v.Margin, v.Background)
		c.enum("contentAlignment", string(v.ContentAlignment), value.BoxAlignments())
	case *LazyColumn:
		c.layout(v.Padding, v.Margin, v.Background)
		c.enum("horizontalAlignment", string(v.HorizontalAlignment), value.HorizontalAlignments())
		c.nonNegative("itemSpacing", v.ItemSpacing)
	case *LazyRow:
		c.layout(v.Padding, v.Margin, v.Background)
		c.enum("verticalAlignment", string(v.VerticalAlignment), value.VerticalAlignments())
		c.nonNegative("itemSpacing", v.ItemSpacing)
	case *Card:
		c.layout(v.Padding, v.Margin, v.Background)
		c.enum("horizontalAlignment", string(v.HorizontalAlignment), value.HorizontalAlignments())
		c.nonNegative("elevation", v.Elevation)
		c.sub("onClick", v.OnClick.Check())
	case *Text:
		c.enum("style", string(v.Style), value.TextStyles())
		c.sub("color", v.Color.Check())
		c.sub("padding", v.Padding.Check())
		if v.MaxLines != nil && *v.MaxLines < 1 {
			c.addf("maxLines must be >= 1, got %d", *v.MaxLines)
		}
	case *Spacer:
		c.positive("width", v.Width)
		c.positive("height", v.Height)
	case *Divider:
		if v.Thickness <= 0 {
			c.addf("thickness must be > 0, got %d", v.Thickness)
		}
		c.sub("color", v.Color.Check())
		c.sub("padding", v.Padding.Check())
	case *Button:
		if strings.TrimSpace(string(v.Text)) == "" {
			c.add("text must not be blank")
		}
		c.enum("style", string(v.Style), value.ButtonStyles())
		c.sub("onClick", v.OnClick.Check())
		c.sub("padding", v.Padding.Check())
	case *Slider:
		c.sub("", v.ValueRange.Check())
		if v.ValueRange.Start < v.ValueRange.End && !v.ValueRange.Contains(v.InitialValue) {
			c.addf("initialValue %g must lie within valueRange [%g, %g]", v.InitialValue, v.ValueRange.Start, v.ValueRange.End)
		}
		if v.Steps < 0 {
			c.addf("steps must be >= 0, got %d", v.Steps)
		}
		c.sub("onClick", v.OnClick.Check())
	case *AsyncImage:
		if strings.TrimSpace(string(v.URL)) == "" {
			c.add("url must not be blank")
		}
		c.positive("width", v.Width)
		c.positive("height", v.Height)
		c.enum("contentScale", string(v.ContentScale), value.ContentScales())
		c.sub("onClick", v.OnClick.Check())
	default:
		c.addf("unsupported variant %T", n)
	}
	return c.msgs
}

type checker struct{ msgs []string }

func (c *checker) add(msg string) { c.msgs = append(c.msgs, msg) }

func (c *checker) addf(format string, args ...any) { c.add(fmt.Sprintf(format, args...)) }

func (c *checker) sub(prefix string, msgs []string) {
	for _, m := range msgs {
		if prefix != "" && !strings.HasPrefix(m, prefix) {
			m = prefix + ": " + m
		}
		c.add(m)
	}
}

func (c *checker) layout(p *value.Padding, m *value.Margin, bg *value.Background) {
	c.sub("padding", p.Check())
	c.sub("margin", m.Check())
	c.sub("background", bg.Check())
}

func (c *checker) enum(field, v string, allowed []string) {
	if !value.ValidEnum(v, allowed) {
		c.addf("%s: unknown value %q", field, v)
	}
}

func (c *checker) nonNegative(field string, v *int) {
	if v != nil && *v < 0 {
		c.addf("%s must be >= 0, got %d", field, *v)
	}
}

func (c *checker) positive(field string, v *int) {
	if v != nil && *v <= 0 {
		c.addf("%s must be > 0, got %d", field, *v)
	}
}
