//go:build cgo && ocr

package ocr

import (
	"context"
	"fmt"
	"image"
	"strconv"

	"github.com/otiai10/gosseract/v2"

	"github.com/aibraindb/LexiUIServer/internal/img"
	"github.com/aibraindb/LexiUIServer/internal/telemetry"
)

// Tesseract recognizes words with libtesseract through gosseract.
// gosseract clients are not safe for concurrent use, so each call gets its own.
type Tesseract struct {
	languages []string
	cfg       EngineConfig
	newClient func() *gosseract.Client
}

func New(lang string, cfg EngineConfig) (*Tesseract, error) {
	log := telemetry.L().With().Str("module", "ocr").Logger()
	if cfg.OEM != DefaultOEM {
		log.Warn().Int("oem", cfg.OEM).Msg("oem_ignored_default_engine_used")
	}
	if len(cfg.Ignored) > 0 {
		log.Warn().Strs("args", cfg.Ignored).Msg("tesseract_args_ignored")
	}
	return &Tesseract{
		languages: cfg.Languages(lang),
		cfg:       cfg,
		newClient: gosseract.NewClient,
	}, nil
}

func (t *Tesseract) Name() string { return "tesseract " + gosseract.Version() }

func (t *Tesseract) Available() bool { return true }

// Recognize runs word-level OCR on page. The call blocks until the engine is
// done; ctx is only consulted before starting.
func (t *Tesseract) Recognize(ctx context.Context, page image.Image) ([]Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := img.EncodePNG(page)
	if err != nil {
		return nil, err
	}

	c := t.newClient()
	defer c.Close()

	if err := c.SetLanguage(t.languages...); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}
	if err := c.SetPageSegMode(gosseract.PageSegMode(t.cfg.PSM)); err != nil {
		return nil, fmt.Errorf("set psm: %w", err)
	}
	if t.cfg.DPI > 0 {
		if err := c.SetVariable("user_defined_dpi", strconv.Itoa(t.cfg.DPI)); err != nil {
			return nil, fmt.Errorf("set dpi: %w", err)
		}
	}
	for _, v := range t.cfg.Variables {
		if err := c.SetVariable(gosseract.SettableVariable(v.Key), v.Value); err != nil {
			return nil, fmt.Errorf("set variable %s: %w", v.Key, err)
		}
	}
	if err := c.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("recognize words: %w", err)
	}
	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, Word{Text: b.Word, Confidence: b.Confidence, Box: b.Box})
	}
	return words, nil
}
