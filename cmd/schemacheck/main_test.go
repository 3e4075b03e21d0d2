package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibraindb/LexiUIServer/internal/schema"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidSchemaFromStdin(t *testing.T) {
	out, err := run(t, `{"type":"object"}`)
	require.NoError(t, err)
	assert.Equal(t, "Schema format looks valid.\n", out)
}

func TestIssuesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "response.yaml")
	require.NoError(t, os.WriteFile(path, []byte("type: object\nrequired: [page]\n"), 0o644))

	out, err := run(t, "", path)
	assert.ErrorIs(t, err, errIssues)
	assert.True(t, strings.HasPrefix(out, "Schema validation issue: "), out)
	assert.Contains(t, out, "page")
}

func TestDashReadsStdin(t *testing.T) {
	out, err := run(t, "{}", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "looks valid")
}

func TestInvalidSchema(t *testing.T) {
	out, err := run(t, `{"type": 12}`)
	assert.ErrorIs(t, err, schema.ErrInvalidSchema)
	assert.Empty(t, out)
}

func TestMissingFile(t *testing.T) {
	_, err := run(t, "", filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
