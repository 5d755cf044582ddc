// Package ports declares the narrow interfaces through which the rule
// engine talks to collaborators that live outside this module's scope:
// a repository for authored rule sets, a cache for compiled IR keyed by
// checksum, and an event bus for operational notifications. None of these
// are implemented concretely here — persistence, cross-invocation caching,
// and event delivery are someone else's problem. The one adapter this
// package does ship, logsink.go, exists because structured logging is
// carried regardless of what's out of scope.
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rules.evalgo.org/internal/rules/ir"
)

// RuleSetRepository loads and stores compiled rule sets by marketplace and
// version. No implementation ships with this module.
type RuleSetRepository interface {
	Get(ctx context.Context, marketplace string, version ir.Version) (*ir.CompiledRuleSet, error)
	Put(ctx context.Context, rs *ir.CompiledRuleSet) error
}

// CompiledIRCache short-circuits recompilation of a rule document whose
// checksum has already been compiled once. No implementation ships with
// this module.
type CompiledIRCache interface {
	Lookup(checksum string) (*ir.CompiledRuleSet, bool)
	Store(checksum string, rs *ir.CompiledRuleSet)
}

// Event is a single operationally significant occurrence emitted during
// compilation or execution, suitable for forwarding to a message bus or
// audit log.
type Event struct {
	Type       string
	Identifier string
	OccurredAt time.Time
	Detail     map[string]any
}

// Event type constants.
const (
	EventCompileSucceeded = "compile_succeeded"
	EventCompileFailed    = "compile_failed"
	EventExecuteCompleted = "execute_completed"
	EventExecuteAborted   = "execute_aborted"
)

// NewEvent builds an Event with a fresh random identifier and the current
// time, so callers only supply what varies per occurrence.
func NewEvent(eventType string, detail map[string]any) Event {
	return Event{
		Type:       eventType,
		Identifier: uuid.NewString(),
		OccurredAt: time.Now(),
		Detail:     detail,
	}
}

// EventPublisher forwards Events to an out-of-process bus. No
// implementation ships with this module.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// ObservabilitySink records execution statistics for operator visibility.
// logsink.go provides the one concrete adapter, built on logrus.
type ObservabilitySink interface {
	RecordExecution(stats ir.ExecutionStats)
}
