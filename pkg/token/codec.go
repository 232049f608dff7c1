package token

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMissingType is returned when a serialized node has no "type" field.
	ErrMissingType = errors.New("token: missing type discriminator")
	// ErrUnknownKind is returned for a "type" outside the variant set.
	ErrUnknownKind = errors.New("token: unknown variant")
	// ErrMalformed is returned for input that is not a JSON object.
	ErrMalformed = errors.New("token: malformed node")
)

// NodeList is an ordered list of child nodes with a polymorphic JSON form.
// It always encodes as an array; an empty array decodes to nil.
type NodeList []Node

func (l NodeList) MarshalJSON() ([]byte, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, n := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := Marshal(n)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (l *NodeList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("%w: children: %v", ErrMalformed, err)
	}
	if len(raws) == 0 {
		*l = nil
		return nil
	}
	out := make(NodeList, len(raws))
	for i, raw := range raws {
		n, err := Decode(raw)
		if err != nil {
			return fmt.Errorf("children[%d]: %w", i, err)
		}
		out[i] = n
	}
	*l = out
	return nil
}

// Marshal encodes n with its "type" discriminator as the first key.
func Marshal(n Node) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil node", ErrMalformed)
	}
	return json.Marshal(n)
}

func (n *Column) MarshalJSON() ([]byte, error) {
	type plain Column
	return tagged(KindColumn, (*plain)(n))
}

func (n *Row) MarshalJSON() ([]byte, error) {
	type plain Row
	return tagged(KindRow, (*plain)(n))
}

func (n *Box) MarshalJSON() ([]byte, error) {
	type plain Box
	return tagged(KindBox, (*plain)(n))
}

func (n *LazyColumn) MarshalJSON() ([]byte, error) {
	type plain LazyColumn
	return tagged(KindLazyColumn, (*plain)(n))
}

func (n *LazyRow) MarshalJSON() ([]byte, error) {
	type plain LazyRow
	return tagged(KindLazyRow, (*plain)(n))
}

func (n *Card) MarshalJSON() ([]byte, error) {
	type plain Card
	return tagged(KindCard, (*plain)(n))
}

func (n *Text) MarshalJSON() ([]byte, error) {
	type plain Text
	return tagged(KindText, (*plain)(n))
}

func (n *Spacer) MarshalJSON() ([]byte, error) {
	type plain Spacer
	return tagged(KindSpacer, (*plain)(n))
}

func (n *Divider) MarshalJSON() ([]byte, error) {
	type plain Divider
	return tagged(KindDivider, (*plain)(n))
}

func (n *Button) MarshalJSON() ([]byte, error) {
	type plain Button
	return tagged(KindButton, (*plain)(n))
}

func (n *Slider) MarshalJSON() ([]byte, error) {
	type plain Slider
	return tagged(KindSlider, (*plain)(n))
}

func (n *AsyncImage) MarshalJSON() ([]byte, error) {
	type plain AsyncImage
	return tagged(KindAsyncImage, (*plain)(n))
}

func tagged(k Kind, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	head := []byte(`{"type":"` + string(k) + `"`)
	if len(body) <= 2 {
		return append(head, '}'), nil
	}
	head = append(head, ',')
	return append(head, body[1:]...), nil
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	infer bool
}

// WithShapeInference lets Decode infer a missing "type" from the fields
// present, recursively. Ambiguous shapes still fail.
func WithShapeInference() DecodeOption {
	return func(c *decodeConfig) { c.infer = true }
}

// Decode parses one serialized node. The "type" field is required unless
// WithShapeInference is given.
func Decode(data []byte, opts ...DecodeOption) (Node, error) {
	var cfg decodeConfig
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.infer {
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
			return nil, fmt.Errorf("%w: expected JSON object", ErrMalformed)
		}
		if err := InferTypes(raw); err != nil {
			return nil, err
		}
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		data = b
	}

	var probe struct {
		Type     *string         `json:"type"`
		ID       string          `json:"id"`
		Children json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if probe.Type == nil || *probe.Type == "" {
		return nil, fmt.Errorf("%w (id %q)", ErrMissingType, probe.ID)
	}
	n := New(Kind(*probe.Type))
	if n == nil {
		return nil, fmt.Errorf("%w %q (id %q)", ErrUnknownKind, *probe.Type, probe.ID)
	}
	if !IsContainer(n) && !emptyList(probe.Children) {
		return nil, fmt.Errorf("%w: %s %q cannot hold children", ErrMalformed, *probe.Type, probe.ID)
	}
	if err := json.Unmarshal(data, n); err != nil {
		if errors.Is(err, ErrMissingType) || errors.Is(err, ErrUnknownKind) || errors.Is(err, ErrMalformed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s %q: %v", ErrMalformed, *probe.Type, probe.ID, err)
	}
	return n, nil
}

// emptyList reports whether data is absent, null or an empty array.
func emptyList(data json.RawMessage) bool {
	if len(data) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return true
	}
	var items []json.RawMessage
	return json.Unmarshal(data, &items) == nil && len(items) == 0
}
