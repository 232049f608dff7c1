package resolve

import (
	"log/slog"
	"strings"

	"github.com/Mindburn-Labs/sdui/pkg/versioning"
)

// Observer is told about every element the resolver could not produce.
// A renderer uses these signals to substitute its own placeholders.
type Observer interface {
	OnMissing(screenID, id string)
	OnIncompatible(screenID string, c versioning.Compatibility)
	OnCycle(screenID string, path []string)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Missing      func(screenID, id string)
	Incompatible func(screenID string, c versioning.Compatibility)
	Cycle        func(screenID string, path []string)
}

func (f ObserverFuncs) OnMissing(screenID, id string) {
	if f.Missing != nil {
		f.Missing(screenID, id)
	}
}

func (f ObserverFuncs) OnIncompatible(screenID string, c versioning.Compatibility) {
	if f.Incompatible != nil {
		f.Incompatible(screenID, c)
	}
}

func (f ObserverFuncs) OnCycle(screenID string, path []string) {
	if f.Cycle != nil {
		f.Cycle(screenID, path)
	}
}

// LogObserver reports signals as warnings.
type LogObserver struct {
	Logger *slog.Logger
}

func (o LogObserver) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o LogObserver) OnMissing(screenID, id string) {
	o.logger().Warn("resolve: token not registered", "screen", screenID, "id", id)
}

func (o LogObserver) OnIncompatible(screenID string, c versioning.Compatibility) {
	o.logger().Warn("resolve: token below minimum supported version",
		"screen", screenID,
		"id", c.ID,
		"kind", c.Kind,
		"version", c.Version,
		"min_supported", c.MinSupported,
	)
}

func (o LogObserver) OnCycle(screenID string, path []string) {
	o.logger().Warn("resolve: cyclic reference", "screen", screenID, "path", strings.Join(path, " -> "))
}
