package migrate

import (
	"errors"
	"fmt"
)

// Error codes.
const (
	CodeDowngrade      = "ERR_MIGRATE_DOWNGRADE"
	CodeUnknownVariant = "ERR_MIGRATE_UNKNOWN_VARIANT"
	CodeMalformed      = "ERR_MIGRATE_MALFORMED"
	CodeCycle          = "ERR_MIGRATE_CYCLE"
	CodeTarget         = "ERR_MIGRATE_TARGET"
	CodeSchemaVersion  = "ERR_MIGRATE_SCHEMA_VERSION"
)

var (
	ErrUnsupportedDowngrade = errors.New("migrate: unsupported downgrade")
	ErrUnknownVariant       = errors.New("migrate: unknown variant")
	ErrMalformed            = errors.New("migrate: malformed node")
	ErrCyclicReference      = errors.New("migrate: cyclic reference")
	ErrInvalidTarget        = errors.New("migrate: invalid target version")
	ErrSchemaVersion        = errors.New("migrate: schema version cannot migrate to target")
)

var sentinels = map[string]error{
	CodeDowngrade:      ErrUnsupportedDowngrade,
	CodeUnknownVariant: ErrUnknownVariant,
	CodeMalformed:      ErrMalformed,
	CodeCycle:          ErrCyclicReference,
	CodeTarget:         ErrInvalidTarget,
	CodeSchemaVersion:  ErrSchemaVersion,
}

// Error is a typed migration failure. Callers branch on it with errors.Is
// against the sentinels or errors.As and Code.
type Error struct {
	Code    string `json:"code"`
	NodeID  string `json:"nodeId,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("%s: %s (node: %s)", e.Code, e.Message, e.NodeID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return sentinels[e.Code] }

func fail(code, id, format string, args ...any) *Error {
	return &Error{Code: code, NodeID: id, Message: fmt.Sprintf(format, args...)}
}
