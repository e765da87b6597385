// Package form implements the linear guided-form state machine.
package form

import (
	"fmt"

	"github.com/tbxark/docform/command"
	"github.com/tbxark/docform/patch"
	"github.com/tbxark/docform/schema"
	"github.com/tbxark/docform/types"
	"github.com/tbxark/docform/validation"
)

type Outcome string

const (
	OutcomeNext            Outcome = "next"
	OutcomeRejected        Outcome = "rejected"
	OutcomeCompleted       Outcome = "completed"
	OutcomeCancelled       Outcome = "cancelled"
	OutcomeNoActiveSession Outcome = "no_active_session"
)

// Result reports what a transition did.
// Field and Message carry the prompt to show for OutcomeNext, or the field to re-ask and
// the rejection text for OutcomeRejected. Collected is set for OutcomeCompleted.
type Result struct {
	Outcome   Outcome
	Field     types.FieldSpec
	Message   string
	Collected map[string]string
}

// Err maps the outcome onto the shared error kinds. Progressing outcomes return nil.
func (r Result) Err() error {
	switch r.Outcome {
	case OutcomeRejected:
		return types.ErrValidationRejected
	case OutcomeCancelled:
		return types.ErrUserCancelled
	case OutcomeNoActiveSession:
		return types.ErrNoActiveSession
	default:
		return nil
	}
}

type CancelMatcher interface {
	IsCancel(input string) bool
}

// Machine drives sessions through a schema. It holds no per-session state and is safe
// for concurrent use on distinct sessions.
type Machine struct {
	schema       *schema.Schema
	cancel       CancelMatcher
	allowedPaths map[string]bool
}

// NewMachine creates a Machine; a nil matcher uses the default cancel keywords.
func NewMachine(s *schema.Schema, cancel CancelMatcher) *Machine {
	if cancel == nil {
		cancel = command.NewLocalCommandParser()
	}
	return &Machine{
		schema: s,
		cancel: cancel,
		allowedPaths: map[string]bool{
			"/cursor":      true,
			"/lifecycle":   true,
			"/collected/*": true,
		},
	}
}

func (m *Machine) Schema() *schema.Schema {
	return m.schema
}

// Start opens a new session positioned on the first field.
func (m *Machine) Start() (*Session, Result) {
	s := &Session{
		Cursor:    0,
		Collected: map[string]string{},
		Lifecycle: types.LifecycleCollecting,
	}
	return s, m.prompt(0)
}

// Cancel ends s. It always succeeds; cancelling a finished session changes nothing.
func (m *Machine) Cancel(s *Session) Result {
	if s.Active() {
		s.Lifecycle = types.LifecycleCancelled
		s.Collected = map[string]string{}
		s.Cursor = 0
	}
	return Result{Outcome: OutcomeCancelled}
}

// Submit feeds one user answer to s. A rejected answer leaves s untouched. The error is
// non-nil only when the accepted answer could not be committed, in which case s is also
// untouched.
func (m *Machine) Submit(s *Session, raw string) (Result, error) {
	if !s.Active() {
		return Result{Outcome: OutcomeNoActiveSession}, nil
	}
	if m.cancel.IsCancel(raw) {
		return m.Cancel(s), nil
	}
	field, ok := m.schema.At(s.Cursor)
	if !ok {
		return Result{Outcome: OutcomeNoActiveSession}, nil
	}

	verdict := validation.Validate(field.Type, raw)
	if !verdict.Accepted {
		return Result{Outcome: OutcomeRejected, Field: field, Message: verdict.Message}, nil
	}

	next := s.Cursor + 1
	ops := []patch.Operation{
		patch.Add(patch.Pointer("collected", field.Key), verdict.Value),
		patch.Replace("/cursor", next),
	}
	if next == m.schema.Len() {
		ops = append(ops, patch.Replace("/lifecycle", types.LifecycleCompleted))
	}
	current := *s
	if current.Collected == nil {
		current.Collected = map[string]string{}
	}
	updated, err := patch.ApplyRFC6902(current, ops, m.allowedPaths)
	if err != nil {
		return Result{}, fmt.Errorf("%w: field %q: %w", types.ErrStateUpdate, field.Key, err)
	}
	*s = updated

	if s.Lifecycle == types.LifecycleCompleted {
		return Result{Outcome: OutcomeCompleted, Collected: s.Values()}, nil
	}
	return m.prompt(s.Cursor), nil
}

func (m *Machine) prompt(i int) Result {
	field, _ := m.schema.At(i)
	return Result{Outcome: OutcomeNext, Field: field, Message: field.Prompt}
}
