package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/docform/types"
)

func TestInvoiceSchema(t *testing.T) {
	t.Parallel()
	s := Invoice()

	require.Equal(t, 5, s.Len())
	assert.Equal(t, []string{"contract_number", "contract_date", "customer", "amount", "items_total_text"}, s.Keys())
	assert.Equal(t, InvoicePrimaryKey, s.PrimaryKey())

	field, idx, ok := s.Lookup("amount")
	require.True(t, ok)
	assert.Equal(t, 3, idx)
	assert.Equal(t, types.ValidationNumber, field.Type)

	first, ok := s.At(0)
	require.True(t, ok)
	assert.Equal(t, types.ValidationMixed, first.Type)

	_, ok = s.At(5)
	assert.False(t, ok)
	_, ok = s.At(-1)
	assert.False(t, ok)
	_, _, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestNewRejectsBadFields(t *testing.T) {
	t.Parallel()
	cases := map[string][]types.FieldSpec{
		"empty":     nil,
		"blank key": {{Key: ""}},
		"duplicate": {{Key: "a"}, {Key: "a"}},
		"bad type":  {{Key: "a", Type: "date"}},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(fields, "")
			assert.Error(t, err)
		})
	}

	_, err := New([]types.FieldSpec{{Key: "a"}}, "b")
	assert.Error(t, err, "primary key must name a field")
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	s, err := New([]types.FieldSpec{{Key: "note"}}, "")
	require.NoError(t, err)

	field, _ := s.At(0)
	assert.Equal(t, types.ValidationText, field.Type)
	assert.NotEmpty(t, field.Prompt)
}

func TestFieldsReturnsCopy(t *testing.T) {
	t.Parallel()
	s := Invoice()
	fields := s.Fields()
	fields[0].Key = "changed"

	first, _ := s.At(0)
	assert.Equal(t, "contract_number", first.Key)
}
