package validator

import (
	"testing"

	"github.com/justinwhatley/shopify2018-backend-challenge/pkg/schema"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestValidator() *Validator {
	return New(zerolog.Nop())
}

func mustRules(t *testing.T, raw string) schema.RuleSet {
	t.Helper()
	rules, err := schema.Compile(gjson.Parse(raw))
	require.NoError(t, err)
	return rules
}

func mustCustomer(t *testing.T, raw string) Customer {
	t.Helper()
	c, err := ParseCustomer(gjson.Parse(raw))
	require.NoError(t, err)
	return c
}

func TestValidateCustomer_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		rules    string
		customer string
		wantID   string
		want     []string
	}{
		{
			name:     "length violation",
			rules:    `[{"email": {"required": true, "type": "string", "length": {"min": 3}}}]`,
			customer: `{"id": 1, "email": "ab"}`,
			wantID:   "1",
			want:     []string{"email"},
		},
		{
			name:     "null required field",
			rules:    `[{"age": {"required": true, "type": "number"}}]`,
			customer: `{"id": 2, "age": null}`,
			wantID:   "2",
			want:     []string{"age"},
		},
		{
			name:     "required field absent",
			rules:    `[{"name": {"required": true}}]`,
			customer: `{"id": 3}`,
			wantID:   "3",
			want:     []string{"name"},
		},
		{
			name: "invalid fields first then missing in declaration order",
			rules: `[
				{"name": {"required": true, "type": "string"}},
				{"email": {"required": true}},
				{"age": {"type": "number"}},
				{"password": {"required": true}}
			]`,
			customer: `{"id": "abc", "age": "old", "name": 7}`,
			wantID:   "abc",
			want:     []string{"age", "name", "email", "password"},
		},
		{
			name:     "type and length failure counted once",
			rules:    `[{"name": {"required": true, "type": "string", "length": {"min": 3}}}]`,
			customer: `{"id": 4, "name": 1}`,
			wantID:   "4",
			want:     []string{"name"},
		},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateCustomer(mustCustomer(t, tt.customer), mustRules(t, tt.rules))
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, tt.want, got.InvalidFields)
		})
	}
}

func TestValidateCustomer_Valid(t *testing.T) {
	rules := mustRules(t, `[
		{"name": {"required": true, "type": "string", "length": {"min": 2, "max": 10}}},
		{"age": {"type": "number"}},
		{"newsletter": {"type": "boolean"}}
	]`)

	tests := []string{
		`{"id": 1, "name": "Bob", "age": 30, "newsletter": true}`,
		`{"id": 2, "name": "Alice"}`,
		`{"id": 3, "name": "Al", "unknown_field": null}`,
	}

	v := newTestValidator()
	for _, raw := range tests {
		got, err := v.ValidateCustomer(mustCustomer(t, raw), rules)
		require.NoError(t, err)
		assert.Nil(t, got, raw)
	}
}

func TestValidateCustomer_PresenceSatisfiesRequired(t *testing.T) {
	// A present but invalid required field is reported once, from the
	// validity check, never again as missing.
	rules := mustRules(t, `[{"name": {"required": true, "type": "string"}}]`)

	got, err := newTestValidator().ValidateCustomer(mustCustomer(t, `{"id": 5, "name": false}`), rules)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"name"}, got.InvalidFields)
}

func TestValidateCustomer_DuplicateRequiredRemoved(t *testing.T) {
	rules := mustRules(t, `[{"name": {"required": true}}, {"name": {"required": true}}]`)

	got, err := newTestValidator().ValidateCustomer(mustCustomer(t, `{"id": 6, "name": "x"}`), rules)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestValidateCustomer_MissingID(t *testing.T) {
	rules := mustRules(t, `[]`)
	_, err := newTestValidator().ValidateCustomer(mustCustomer(t, `{"name": "x"}`), rules)
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestProcessPage(t *testing.T) {
	customers := gjson.Parse(`[
		{"id": 1, "name": "David", "email": "david@interview.com", "age": 30, "newsletter": true},
		{"id": 2, "name": "Lily", "email": null, "age": 24, "newsletter": false},
		{"id": 3, "name": "Bob", "email": "bob@example.com", "age": "old"},
		{"id": 4, "name": null, "email": "x@y.z", "age": 1}
	]`)
	validations := gjson.Parse(`[
		{"name": {"required": true, "type": "string", "length": {"min": 3, "max": 100}}},
		{"email": {"required": true}},
		{"age": {"type": "number"}},
		{"newsletter": {"required": true, "type": "boolean"}}
	]`)

	report, err := newTestValidator().ProcessPage(customers, validations)
	require.NoError(t, err)

	assert.Equal(t, []InvalidCustomer{
		{ID: "2", InvalidFields: []string{"email"}},
		{ID: "3", InvalidFields: []string{"age", "newsletter"}},
		{ID: "4", InvalidFields: []string{"name", "newsletter"}},
	}, report.InvalidCustomers)
	assert.False(t, report.Empty())
	assert.Equal(t, 5, report.InvalidFieldCount())
}

func TestProcessPage_AllValid(t *testing.T) {
	report, err := newTestValidator().ProcessPage(
		gjson.Parse(`[{"id": 1, "name": "Ann"}]`),
		gjson.Parse(`[{"name": {"required": true}}]`),
	)
	require.NoError(t, err)
	assert.True(t, report.Empty())
	assert.Nil(t, report.InvalidCustomers)
}

func TestProcessPage_Errors(t *testing.T) {
	v := newTestValidator()

	_, err := v.ProcessPage(gjson.Parse(`[{"id": 1}]`), gjson.Parse(`{}`))
	assert.ErrorIs(t, err, schema.ErrInvalidRules)

	_, err = v.ProcessPage(gjson.Parse(`["x"]`), gjson.Parse(`[]`))
	assert.ErrorIs(t, err, ErrInvalidCustomer)

	_, err = v.ProcessPage(gjson.Parse(`[{"id": 1}, {"name": "x"}]`), gjson.Parse(`[]`))
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestParseCustomer_KeepsOrder(t *testing.T) {
	c := mustCustomer(t, `{"z": 1, "a": "x", "id": 9}`)

	names := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"z", "a", "id"}, names)

	id, err := c.ID()
	require.NoError(t, err)
	assert.Equal(t, "9", id)
}
