package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/docform/command"
	"github.com/tbxark/docform/schema"
	"github.com/tbxark/docform/types"
	"github.com/tbxark/docform/validation"
)

func contractSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New([]types.FieldSpec{
		{Key: "contract_number", Prompt: "number?", Type: types.ValidationMixed},
		{Key: "amount", Prompt: "amount?", Type: types.ValidationNumber},
	}, "contract_number")
	require.NoError(t, err)
	return s
}

func TestScenarioCompletes(t *testing.T) {
	t.Parallel()
	m := NewMachine(contractSchema(t), nil)

	s, res := m.Start()
	assert.Equal(t, OutcomeNext, res.Outcome)
	assert.Equal(t, "number?", res.Message)
	assert.Equal(t, 0, s.Cursor)
	assert.Empty(t, s.Collected)
	assert.Equal(t, types.LifecycleCollecting, s.Lifecycle)

	res, err := m.Submit(s, "2024.01.15.007")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNext, res.Outcome)
	assert.Equal(t, "amount", res.Field.Key)
	assert.Equal(t, "amount?", res.Message)

	res, err = m.Submit(s, "4000,00")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.Equal(t, map[string]string{"contract_number": "2024.01.15.007", "amount": "4000,00"}, res.Collected)
	assert.Equal(t, types.LifecycleCompleted, s.Lifecycle)
	assert.Equal(t, 2, s.Cursor)
	require.NoError(t, s.Check(m.Schema()))
	assert.NoError(t, res.Err())
}

func TestRejectedInputLeavesStateUnchanged(t *testing.T) {
	t.Parallel()
	m := NewMachine(contractSchema(t), nil)
	s, _ := m.Start()
	_, err := m.Submit(s, "007/A")
	require.NoError(t, err)
	before := *s
	beforeValues := s.Values()

	res, err := m.Submit(s, "abc")
	require.NoError(t, err)

	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, "amount", res.Field.Key)
	assert.Equal(t, validation.MessageNumber, res.Message)
	assert.True(t, errors.Is(res.Err(), types.ErrValidationRejected))
	assert.Equal(t, before.Cursor, s.Cursor)
	assert.Equal(t, beforeValues, s.Collected)
	assert.Equal(t, types.LifecycleCollecting, s.Lifecycle)
}

func TestTextFieldRejectsDigits(t *testing.T) {
	t.Parallel()
	sch := schema.MustNew([]types.FieldSpec{{Key: "customer", Type: types.ValidationText}}, "")
	m := NewMachine(sch, nil)
	s, _ := m.Start()

	res, err := m.Submit(s, "12345")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, res.Outcome)
	assert.Equal(t, 0, s.Cursor)
}

func TestEachAcceptedAnswerAdvancesByOne(t *testing.T) {
	t.Parallel()
	sch := schema.Invoice()
	m := NewMachine(sch, nil)
	s, _ := m.Start()
	answers := []string{"2024.01.15.007", "1 січня 2025р.", "ФОП Іваненко Іван", "4000,00", "чотири тисячі"}

	for i, answer := range answers {
		field, _ := sch.At(i)
		res, err := m.Submit(s, answer)
		require.NoError(t, err)
		assert.Equal(t, i+1, s.Cursor)
		assert.Equal(t, answer, s.Collected[field.Key])
		assert.Len(t, s.Collected, i+1)
		require.NoError(t, s.Check(sch))
		if i < len(answers)-1 {
			assert.Equal(t, OutcomeNext, res.Outcome)
		} else {
			assert.Equal(t, OutcomeCompleted, res.Outcome)
			assert.Len(t, res.Collected, sch.Len())
		}
	}
}

func TestAnswersAreTrimmed(t *testing.T) {
	t.Parallel()
	m := NewMachine(contractSchema(t), nil)
	s, _ := m.Start()

	_, err := m.Submit(s, "  A-1  ")
	require.NoError(t, err)
	assert.Equal(t, "A-1", s.Collected["contract_number"])
}

func TestCancelAtAnyCursor(t *testing.T) {
	t.Parallel()
	sch := schema.Invoice()
	answers := []string{"2024.01.15.007", "1 січня 2025р.", "ФОП Іваненко Іван", "4000,00"}
	for cursor := 0; cursor <= len(answers); cursor++ {
		m := NewMachine(sch, nil)
		s, _ := m.Start()
		for _, answer := range answers[:cursor] {
			_, err := m.Submit(s, answer)
			require.NoError(t, err)
		}

		res, err := m.Submit(s, command.CancelButton)
		require.NoError(t, err)

		assert.Equal(t, OutcomeCancelled, res.Outcome, "cursor %d", cursor)
		assert.True(t, errors.Is(res.Err(), types.ErrUserCancelled))
		assert.Empty(t, s.Collected)
		assert.Equal(t, types.LifecycleCancelled, s.Lifecycle)
		assert.False(t, s.Active())
		require.NoError(t, s.Check(sch))
	}
}

func TestCancelSynonyms(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"Скасувати", "STOP", "cancel", "вийти"} {
		m := NewMachine(contractSchema(t), nil)
		s, _ := m.Start()
		res, err := m.Submit(s, input)
		require.NoError(t, err)
		assert.Equal(t, OutcomeCancelled, res.Outcome, input)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	t.Parallel()
	m := NewMachine(contractSchema(t), nil)
	s, _ := m.Start()

	assert.Equal(t, OutcomeCancelled, m.Cancel(s).Outcome)
	assert.Equal(t, OutcomeCancelled, m.Cancel(s).Outcome)
	assert.Equal(t, types.LifecycleCancelled, s.Lifecycle)

	done, _ := m.Start()
	_, _ = m.Submit(done, "A1")
	_, _ = m.Submit(done, "1")
	require.Equal(t, types.LifecycleCompleted, done.Lifecycle)

	assert.Equal(t, OutcomeCancelled, m.Cancel(done).Outcome)
	assert.Equal(t, types.LifecycleCompleted, done.Lifecycle, "completed session is not reopened")
	assert.Len(t, done.Collected, 2)
}

func TestSubmitOnInactiveSession(t *testing.T) {
	t.Parallel()
	m := NewMachine(contractSchema(t), nil)
	s, _ := m.Start()
	m.Cancel(s)

	res, err := m.Submit(s, "A1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoActiveSession, res.Outcome)
	assert.True(t, errors.Is(res.Err(), types.ErrNoActiveSession))
	assert.Empty(t, s.Collected)

	var missing *Session
	res, err = m.Submit(missing, "A1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoActiveSession, res.Outcome)
}

func TestSessionCheck(t *testing.T) {
	t.Parallel()
	sch := contractSchema(t)
	cases := map[string]Session{
		"cursor too far":     {Cursor: 3, Collected: map[string]string{}, Lifecycle: types.LifecycleCollecting},
		"negative cursor":    {Cursor: -1, Lifecycle: types.LifecycleCollecting},
		"extra value":        {Cursor: 0, Collected: map[string]string{"contract_number": "x"}, Lifecycle: types.LifecycleCollecting},
		"wrong key":          {Cursor: 1, Collected: map[string]string{"amount": "1"}, Lifecycle: types.LifecycleCollecting},
		"completed early":    {Cursor: 1, Collected: map[string]string{"contract_number": "x"}, Lifecycle: types.LifecycleCompleted},
		"cancelled w/ value": {Cursor: 0, Collected: map[string]string{"a": "b"}, Lifecycle: types.LifecycleCancelled},
		"unknown lifecycle":  {Lifecycle: "paused"},
	}
	for name, s := range cases {
		s := s
		assert.Error(t, s.Check(sch), name)
	}

	ok := Session{Cursor: 1, Collected: map[string]string{"contract_number": "x"}, Lifecycle: types.LifecycleCollecting}
	assert.NoError(t, ok.Check(sch))
}
