package migrate

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"

	"github.com/Mindburn-Labs/sdui/pkg/token"
)

// MigrateRaw applies the same policy as Migrate to the decoded JSON form of
// a node. The input map is not modified; when nothing changes it is
// returned as is.
func (e *Engine) MigrateRaw(raw map[string]any, target int) (map[string]any, error) {
	if raw == nil {
		return nil, fail(CodeMalformed, "", "expected a JSON object")
	}
	if target < 1 {
		id, _ := raw["id"].(string)
		return nil, fail(CodeTarget, id, "target version must be >= 1, got %d", target)
	}
	run := &rawRun{
		e:      e,
		target: target,
		onPath: make(map[uintptr]bool),
	}
	return run.node(raw)
}

// MigrateJSON migrates one serialized node.
func (e *Engine) MigrateJSON(data []byte, target int) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		msg := "expected a JSON object"
		if err != nil {
			msg = err.Error()
		}
		return nil, fail(CodeMalformed, "", "%s", msg)
	}
	out, err := e.MigrateRaw(raw, target)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fail(CodeMalformed, "", "%v", err)
	}
	return b, nil
}

type rawRun struct {
	e      *Engine
	target int
	onPath map[uintptr]bool
}

func (m *rawRun) node(raw map[string]any) (map[string]any, error) {
	id, _ := raw["id"].(string)
	key := reflect.ValueOf(raw).Pointer()
	if m.onPath[key] {
		return nil, fail(CodeCycle, id, "node is its own descendant")
	}

	kind, err := m.kind(raw, id)
	if err != nil {
		return nil, err
	}
	version, err := intField(raw, "version")
	if err != nil {
		return nil, fail(CodeMalformed, id, "%s: %v", kind, err)
	}
	if version > m.target {
		return nil, fail(CodeDowngrade, id, "cannot migrate %s from version %d back to %d", kind, version, m.target)
	}

	m.onPath[key] = true
	defer delete(m.onPath, key)

	var migrated []any
	changed := false
	leaf := !token.CapabilitiesOf(kind).Has(token.CapContainer)
	if rc, ok := raw["children"]; ok {
		children, isList := rc.([]any)
		switch {
		case leaf && (rc == nil || isList && len(children) == 0):
			// Dropped, as the typed decoder does.
			changed = true
		case rc == nil:
		case !isList:
			return nil, fail(CodeMalformed, id, "children must be an array")
		case leaf:
			return nil, fail(CodeMalformed, id, "%s cannot hold children", kind)
		default:
			migrated = make([]any, len(children))
		}
		for i, c := range children {
			cm, ok := c.(map[string]any)
			if !ok {
				return nil, fail(CodeMalformed, id, "children[%d] is not an object", i)
			}
			out, err := m.node(cm)
			if err != nil {
				return nil, err
			}
			if reflect.ValueOf(out).Pointer() != reflect.ValueOf(cm).Pointer() {
				changed = true
			}
			migrated[i] = out
		}
	}

	if version == m.target && !changed {
		return raw, nil
	}

	out := make(map[string]any, len(raw)+1)
	for k, v := range raw {
		out[k] = cloneJSON(v)
	}
	if migrated != nil {
		out["children"] = migrated
	}
	if leaf {
		delete(out, "children")
	}
	if _, tagged := raw["type"]; !tagged {
		out["type"] = string(kind)
	}
	if version < m.target {
		for _, r := range m.e.applicable(kind, version, m.target) {
			v, ok := out[r.Field]
			if !ok {
				continue
			}
			if nv := r.Raw(v); nv == nil {
				delete(out, r.Field)
			} else {
				out[r.Field] = nv
			}
		}
		out["version"] = m.target
	}
	return out, nil
}

func (m *rawRun) kind(raw map[string]any, id string) (token.Kind, error) {
	t, present := raw["type"]
	if !present && m.e.infer {
		k, err := token.InferKind(raw)
		if err != nil {
			return "", fail(CodeUnknownVariant, id, "%v", err)
		}
		return k, nil
	}
	s, ok := t.(string)
	if !ok || s == "" {
		return "", fail(CodeUnknownVariant, id, "missing type discriminator")
	}
	if _, ok := token.Lookup(token.Kind(s)); !ok {
		return "", fail(CodeUnknownVariant, id, "unknown variant %q", s)
	}
	return token.Kind(s), nil
}

func intField(raw map[string]any, name string) (int, error) {
	v, ok := raw[name]
	if !ok {
		return 0, strconv.ErrSyntax
	}
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, strconv.ErrSyntax
		}
		return int(t), nil
	case json.Number:
		n, err := strconv.Atoi(t.String())
		if err != nil {
			return 0, strconv.ErrSyntax
		}
		return n, nil
	}
	return 0, strconv.ErrSyntax
}

func cloneJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneJSON(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneJSON(e)
		}
		return out
	}
	return v
}
