//go:build !cgo || !ocr

package ocr

import (
	"context"
	"image"
)

// Tesseract is a stand-in for builds without libtesseract. It reports itself
// unavailable and fails every recognition.
type Tesseract struct {
	languages []string
	cfg       EngineConfig
}

func New(lang string, cfg EngineConfig) (*Tesseract, error) {
	return &Tesseract{languages: cfg.Languages(lang), cfg: cfg}, nil
}

func (t *Tesseract) Name() string { return "tesseract (unavailable)" }

func (t *Tesseract) Available() bool { return false }

func (t *Tesseract) Recognize(ctx context.Context, page image.Image) ([]Word, error) {
	return nil, ErrNotEnabled
}
