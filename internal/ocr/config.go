package ocr

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// Engine mode and page segmentation defaults of the tesseract CLI.
const (
	DefaultOEM = 3
	DefaultPSM = 3
)

var ErrEngineConfig = errors.New("invalid tesseract config")

// Variable is a "-c key=value" engine parameter.
type Variable struct {
	Key, Value string
}

// EngineConfig is the parsed form of a tesseract CLI flag string such as
// "--oem 3 --psm 6".
type EngineConfig struct {
	Lang      string // from -l; overrides the configured language when set
	OEM       int
	PSM       int
	DPI       int
	Variables []Variable
	// Ignored holds positional words (config file names) that have no
	// equivalent through the library API.
	Ignored []string
}

// ParseConfig reads the subset of tesseract CLI flags that map onto the
// library API. Unknown flags are skipped.
func ParseConfig(s string) (EngineConfig, error) {
	fs := pflag.NewFlagSet("tesseract", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.ParseErrorsWhitelist.UnknownFlags = true

	oem := fs.Int("oem", DefaultOEM, "OCR engine mode")
	psm := fs.Int("psm", DefaultPSM, "page segmentation mode")
	dpi := fs.Int("dpi", 0, "input resolution")
	lang := fs.StringP("lang", "l", "", "language")
	vars := fs.StringArrayP("variable", "c", nil, "engine variable key=value")

	if err := fs.Parse(strings.Fields(s)); err != nil {
		return EngineConfig{}, fmt.Errorf("%w: %q: %v", ErrEngineConfig, s, err)
	}

	cfg := EngineConfig{Lang: *lang, OEM: *oem, PSM: *psm, DPI: *dpi, Ignored: fs.Args()}
	if cfg.OEM < 0 || cfg.OEM > 3 {
		return EngineConfig{}, fmt.Errorf("%w: oem %d out of range", ErrEngineConfig, cfg.OEM)
	}
	if cfg.PSM < 0 || cfg.PSM > 13 {
		return EngineConfig{}, fmt.Errorf("%w: psm %d out of range", ErrEngineConfig, cfg.PSM)
	}
	if cfg.DPI < 0 {
		return EngineConfig{}, fmt.Errorf("%w: dpi %d is negative", ErrEngineConfig, cfg.DPI)
	}
	for _, kv := range *vars {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return EngineConfig{}, fmt.Errorf("%w: -c expects key=value, got %q", ErrEngineConfig, kv)
		}
		cfg.Variables = append(cfg.Variables, Variable{Key: k, Value: v})
	}
	return cfg, nil
}

// Languages splits a "eng+deu" style language string, honouring a -l override.
func (c EngineConfig) Languages(fallback string) []string {
	lang := fallback
	if c.Lang != "" {
		lang = c.Lang
	}
	var out []string
	for _, l := range strings.Split(lang, "+") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		out = []string{"eng"}
	}
	return out
}
