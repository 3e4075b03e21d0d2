package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibraindb/LexiUIServer/internal/img"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_HOST", "APP_PORT", "CORS_ORIGINS", "SECURE_HEADERS", "MAX_UPLOAD_MB",
		"RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW", "OCR_LANG", "TESSERACT_CONFIG",
		"TARGET_DPI", "THRESH", "BINARIZATION",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3001", c.Addr())
	assert.Equal(t, "eng", c.OCRLang)
	assert.Equal(t, "--oem 3 --psm 6", c.TesseractConfig)
	assert.Equal(t, 300, c.TargetDPI)
	assert.Equal(t, img.Adaptive(), c.Binarization)
	assert.Equal(t, []string{"*"}, c.CORSOrigins)
	assert.Equal(t, 32*1024*1024, c.MaxUploadBytes())
	assert.Equal(t, 0, c.RateLimitMax)
	assert.Equal(t, 30*time.Second, c.RateLimitWindow)
	assert.True(t, c.SecureHeaders)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OCR_LANG", "eng+deu")
	t.Setenv("TESSERACT_CONFIG", "--psm 4")
	t.Setenv("TARGET_DPI", "200")
	t.Setenv("THRESH", "170")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	c, err := Load()
	require.NoError(t, err)

	p := c.Pipeline()
	assert.Equal(t, "eng+deu", c.OCRLang)
	assert.Equal(t, "--psm 4", c.TesseractConfig)
	assert.Equal(t, 200, p.TargetDPI)
	assert.Equal(t, img.Fixed(170), p.Binarization)
	assert.Equal(t, "0.0.0.0:8080", c.Addr())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSOrigins)
}

func TestLoadSecureHeadersOff(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECURE_HEADERS", "false")
	t.Setenv("RATE_LIMIT_MAX", "20")
	t.Setenv("MAX_UPLOAD_MB", "4")

	c, err := Load()
	require.NoError(t, err)
	assert.False(t, c.SecureHeaders)
	assert.Equal(t, 20, c.RateLimitMax)
	assert.Equal(t, 4*1024*1024, c.MaxUploadBytes())
	assert.Equal(t, 5*1024*1024, c.BodyLimit())
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"non numeric dpi", "TARGET_DPI", "high"},
		{"zero dpi", "TARGET_DPI", "0"},
		{"threshold out of range", "THRESH", "300"},
		{"negative threshold", "THRESH", "-1"},
		{"unknown binarization", "BINARIZATION", "otsu"},
		{"bad window", "RATE_LIMIT_WINDOW", "soon"},
		{"zero upload limit", "MAX_UPLOAD_MB", "0"},
		{"non numeric upload limit", "MAX_UPLOAD_MB", "lots"},
		{"non numeric rate limit", "RATE_LIMIT_MAX", "ten"},
		{"negative rate limit", "RATE_LIMIT_MAX", "-1"},
		{"unparseable secure headers", "SECURE_HEADERS", "yes please"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseBinarization(t *testing.T) {
	tests := []struct {
		mode, thresh string
		want         img.Binarization
	}{
		{"", "0", img.Adaptive()},
		{"", "128", img.Fixed(128)},
		{"fixed", "0", img.Fixed(0)},
		{"FIXED", "90", img.Fixed(90)},
		{"adaptive", "90", img.Adaptive()},
	}
	for _, tt := range tests {
		got, err := parseBinarization(tt.mode, tt.thresh)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "mode=%q thresh=%q", tt.mode, tt.thresh)
	}
}
