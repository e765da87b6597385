package form

import (
	"fmt"

	"github.com/tbxark/docform/schema"
	"github.com/tbxark/docform/types"
)

// Session is one conversation's progress through the form.
type Session struct {
	Cursor    int               `json:"cursor"`
	Collected map[string]string `json:"collected"`
	Lifecycle types.Lifecycle   `json:"lifecycle"`
}

// Active reports whether the session still accepts answers.
func (s *Session) Active() bool {
	return s != nil && s.Lifecycle == types.LifecycleCollecting
}

// Check verifies the session invariants against sch: the cursor is in range, Collected
// holds exactly the keys of the fields before the cursor, and a completed session has
// answered every field.
func (s *Session) Check(sch *schema.Schema) error {
	if s.Cursor < 0 || s.Cursor > sch.Len() {
		return fmt.Errorf("cursor %d out of range [0, %d]", s.Cursor, sch.Len())
	}
	switch s.Lifecycle {
	case types.LifecycleCollecting, types.LifecycleCompleted:
	case types.LifecycleCancelled:
		if len(s.Collected) != 0 {
			return fmt.Errorf("cancelled session still holds %d values", len(s.Collected))
		}
		return nil
	default:
		return fmt.Errorf("unknown lifecycle %q", s.Lifecycle)
	}
	if s.Lifecycle == types.LifecycleCompleted && s.Cursor != sch.Len() {
		return fmt.Errorf("completed session has cursor %d, want %d", s.Cursor, sch.Len())
	}
	if len(s.Collected) != s.Cursor {
		return fmt.Errorf("collected %d values for cursor %d", len(s.Collected), s.Cursor)
	}
	for i := 0; i < s.Cursor; i++ {
		field, _ := sch.At(i)
		if _, ok := s.Collected[field.Key]; !ok {
			return fmt.Errorf("missing value for %q", field.Key)
		}
	}
	return nil
}

// Values returns a copy of the collected answers.
func (s *Session) Values() map[string]string {
	out := make(map[string]string, len(s.Collected))
	for k, v := range s.Collected {
		out[k] = v
	}
	return out
}
