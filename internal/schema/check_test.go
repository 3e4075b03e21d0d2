package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckValid(t *testing.T) {
	tests := []struct {
		name   string
		schema string
	}{
		{"empty schema", `{}`},
		{"object without required", `{"type":"object","properties":{"page":{"type":"integer"}}}`},
		{"yaml", "type: object\nproperties:\n  tokens:\n    type: array\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := Check([]byte(tt.schema))
			require.NoError(t, err)
			assert.Empty(t, issues)
		})
	}
}

func TestCheckReportsIssues(t *testing.T) {
	issues, err := Check([]byte(`{"type":"object","required":["page","tokens"]}`))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "", issues[0].Location)
	assert.Contains(t, issues[0].Message, "missing properties")
	assert.Contains(t, issues[0].Message, "page")
	assert.Contains(t, issues[0].Message, "tokens")
}

func TestCheckCollectsLeafErrors(t *testing.T) {
	schema := `{
		"allOf": [
			{"type": "string"},
			{"required": ["width"]}
		]
	}`
	issues, err := Check([]byte(schema))
	require.NoError(t, err)
	require.Len(t, issues, 2)
	for _, is := range issues {
		assert.NotEmpty(t, is.Message)
		assert.NotEmpty(t, is.Keyword)
	}
	assert.LessOrEqual(t, issues[0].Message, issues[1].Message)
}

func TestCheckYAMLIssues(t *testing.T) {
	issues, err := Check([]byte("type: object\nrequired:\n  - height\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "height")
}

func TestCheckInvalidSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema string
	}{
		{"empty", "   "},
		{"not a document", "{ nope: [ }"},
		{"bad type keyword", `{"type": 12}`},
		{"bad required keyword", `{"required": "page"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Check([]byte(tt.schema))
			assert.ErrorIs(t, err, ErrInvalidSchema)
		})
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]byte(`{"type":"object"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object"}`, string(out))

	out, err = Normalize([]byte("type: object\nminProperties: 1\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","minProperties":1}`, string(out))
}
