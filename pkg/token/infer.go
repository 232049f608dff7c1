package token

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAmbiguousShape is returned when inference cannot pick a single variant.
var ErrAmbiguousShape = errors.New("token: ambiguous node shape")

// InferKind guesses the variant of an untagged serialized node from the
// fields it carries. An explicit "type" always wins. Container shapes
// without an alignment marker are reported as ambiguous rather than
// defaulted.
func InferKind(raw map[string]any) (Kind, error) {
	if t, ok := raw["type"].(string); ok && t != "" {
		if New(Kind(t)) == nil {
			return "", fmt.Errorf("%w %q", ErrUnknownKind, t)
		}
		return Kind(t), nil
	}
	has := func(k string) bool { _, ok := raw[k]; return ok }
	id, _ := raw["id"].(string)

	if has("children") {
		switch {
		case has("onClick") || has("elevation"):
			return KindCard, nil
		case has("contentAlignment"):
			return KindBox, nil
		}
		axis := containerAxis(raw)
		lazy := has("itemSpacing")
		switch {
		case axis == "vertical" && lazy:
			return KindLazyColumn, nil
		case axis == "horizontal" && lazy:
			return KindLazyRow, nil
		case axis == "vertical":
			return KindColumn, nil
		case axis == "horizontal":
			return KindRow, nil
		}
		return "", fmt.Errorf("%w: container %q has no alignment marker", ErrAmbiguousShape, id)
	}

	switch {
	case has("thickness"):
		return KindDivider, nil
	case has("valueRange") || has("initialValue"):
		return KindSlider, nil
	case has("url"):
		return KindAsyncImage, nil
	case has("text") && has("onClick"):
		return KindButton, nil
	case has("text"):
		return KindText, nil
	case has("width") || has("height"):
		return KindSpacer, nil
	}
	return "", fmt.Errorf("%w: no distinguishing fields (id %q)", ErrUnknownKind, id)
}

// containerAxis returns "vertical" for a shape that lays children out in a
// column (it aligns them horizontally), "horizontal" for a row, or "".
func containerAxis(raw map[string]any) string {
	if _, ok := raw["horizontalAlignment"]; ok {
		return "vertical"
	}
	if _, ok := raw["verticalAlignment"]; ok {
		return "horizontal"
	}
	// Legacy documents used a single "alignment" key.
	if a, ok := raw["alignment"].(string); ok {
		switch {
		case strings.Contains(a, "Horizontal"):
			return "vertical"
		case strings.Contains(a, "Vertical"):
			return "horizontal"
		}
	}
	return ""
}

// InferTypes sets a "type" on raw and on every nested child that lacks one.
func InferTypes(raw map[string]any) error {
	k, err := InferKind(raw)
	if err != nil {
		return err
	}
	raw["type"] = string(k)
	if a, ok := raw["alignment"].(string); ok {
		delete(raw, "alignment")
		switch k {
		case KindColumn, KindLazyColumn, KindCard:
			if _, set := raw["horizontalAlignment"]; !set {
				raw["horizontalAlignment"] = a
			}
		case KindRow, KindLazyRow:
			if _, set := raw["verticalAlignment"]; !set {
				raw["verticalAlignment"] = a
			}
		}
	}
	children, ok := raw["children"].([]any)
	if !ok {
		return nil
	}
	for i, c := range children {
		m, ok := c.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: children[%d] is not an object", ErrMalformed, i)
		}
		if err := InferTypes(m); err != nil {
			return fmt.Errorf("children[%d]: %w", i, err)
		}
	}
	return nil
}
