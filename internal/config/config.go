package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aibraindb/LexiUIServer/internal/img"
	"github.com/aibraindb/LexiUIServer/internal/pipeline"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is built once at startup and never mutated afterwards.
type Config struct {
	AppEnv, AppHost, AppPort string
	CORSOrigins              []string
	SecureHeaders            bool

	MaxUploadMB     int
	RateLimitMax    int
	RateLimitWindow time.Duration

	OCRLang         string
	TesseractConfig string
	TargetDPI       int
	Binarization    img.Binarization
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		AppEnv:          get("APP_ENV", "dev"),
		AppHost:         get("APP_HOST", "0.0.0.0"),
		AppPort:         get("APP_PORT", "3001"),
		CORSOrigins:     GetEnvList("CORS_ORIGINS", []string{"*"}),
		OCRLang:         get("OCR_LANG", "eng"),
		TesseractConfig: get("TESSERACT_CONFIG", "--oem 3 --psm 6"),
	}

	var err error
	if c.SecureHeaders, err = strconv.ParseBool(get("SECURE_HEADERS", "true")); err != nil {
		return nil, fmt.Errorf("%w: SECURE_HEADERS must be a boolean, got %q", ErrInvalidConfig, os.Getenv("SECURE_HEADERS"))
	}
	if c.MaxUploadMB, err = strconv.Atoi(get("MAX_UPLOAD_MB", "32")); err != nil || c.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("%w: MAX_UPLOAD_MB must be a positive integer, got %q", ErrInvalidConfig, os.Getenv("MAX_UPLOAD_MB"))
	}
	if c.RateLimitMax, err = strconv.Atoi(get("RATE_LIMIT_MAX", "0")); err != nil || c.RateLimitMax < 0 {
		return nil, fmt.Errorf("%w: RATE_LIMIT_MAX must be a non-negative integer, got %q", ErrInvalidConfig, os.Getenv("RATE_LIMIT_MAX"))
	}
	if c.RateLimitWindow, err = time.ParseDuration(get("RATE_LIMIT_WINDOW", "30s")); err != nil {
		return nil, fmt.Errorf("%w: RATE_LIMIT_WINDOW: %v", ErrInvalidConfig, err)
	}
	if c.TargetDPI, err = strconv.Atoi(get("TARGET_DPI", "300")); err != nil || c.TargetDPI <= 0 {
		return nil, fmt.Errorf("%w: TARGET_DPI must be a positive integer, got %q", ErrInvalidConfig, os.Getenv("TARGET_DPI"))
	}
	if c.Binarization, err = parseBinarization(get("BINARIZATION", ""), get("THRESH", "0")); err != nil {
		return nil, err
	}
	return c, nil
}

// Addr is the listen address handed to fiber.
func (c *Config) Addr() string { return net.JoinHostPort(c.AppHost, c.AppPort) }

func (c *Config) MaxUploadBytes() int { return c.MaxUploadMB * 1024 * 1024 }

// multipartOverhead leaves room for boundaries, headers and the pageNumber
// field so an oversized page part reaches the upload guard.
const multipartOverhead = 1 << 20

// BodyLimit is the fiber request body limit.
func (c *Config) BodyLimit() int { return c.MaxUploadBytes() + multipartOverhead }

// Pipeline derives the read-only options of the OCR pipeline.
func (c *Config) Pipeline() pipeline.Options {
	return pipeline.Options{
		TargetDPI:    c.TargetDPI,
		Binarization: c.Binarization,
	}
}

// parseBinarization maps BINARIZATION/THRESH onto the tagged choice. Without an
// explicit mode THRESH=0 keeps meaning adaptive.
func parseBinarization(mode, thresh string) (img.Binarization, error) {
	t, err := strconv.Atoi(strings.TrimSpace(thresh))
	if err != nil || t < 0 || t > 255 {
		return img.Binarization{}, fmt.Errorf("%w: THRESH must be an integer in [0,255], got %q", ErrInvalidConfig, thresh)
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "":
		if t == 0 {
			return img.Adaptive(), nil
		}
		return img.Fixed(uint8(t)), nil
	case "adaptive":
		return img.Adaptive(), nil
	case "fixed":
		return img.Fixed(uint8(t)), nil
	default:
		return img.Binarization{}, fmt.Errorf("%w: BINARIZATION must be adaptive or fixed, got %q", ErrInvalidConfig, mode)
	}
}

func GetEnvList(k string, d []string) []string {
	if v := os.Getenv(k); v != "" {
		return split(v)
	}
	return d
}

func get(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func GetEnv(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
