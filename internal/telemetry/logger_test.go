package telemetry

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	l := InitWriter(Config{Level: "debug", JSON: true}, &buf)

	l.Info().Str("stage", "ocr").Msg("ocr_done")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ocr_done", line["message"])
	assert.Equal(t, "ocr", line["stage"])
	assert.Equal(t, "info", line["level"])
	assert.Contains(t, line, "time")
}

func TestInitWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(Config{Level: "warn", JSON: true}, &buf)
	l := L()

	l.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitWriterBadLevelFallsBackToInfo(t *testing.T) {
	l := InitWriter(Config{Level: "loud", JSON: true}, &bytes.Buffer{})
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestInitWriterFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := InitWriter(Config{Level: "info", JSON: true, File: path}, &bytes.Buffer{})

	l.Info().Msg("to_file")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "to_file")
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{"LOG_LEVEL": "debug", "LOG_JSON": "false", "LOG_FILE": "x.log"}
	get := func(k, d string) string {
		if v, ok := env[k]; ok {
			return v
		}
		return d
	}

	cfg := FromEnv(get)
	assert.Equal(t, "debug", cfg.Level)
	assert.False(t, cfg.JSON)
	assert.Equal(t, "x.log", cfg.File)
	assert.Equal(t, 10, cfg.MaxSizeMB)
	assert.True(t, cfg.Compress)
}
