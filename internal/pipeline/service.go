package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/aibraindb/LexiUIServer/internal/img"
	"github.com/aibraindb/LexiUIServer/internal/metrics"
	"github.com/aibraindb/LexiUIServer/internal/ocr"
	"github.com/aibraindb/LexiUIServer/internal/telemetry"
)

// Recognizer runs OCR on a prepared page.
type Recognizer interface {
	Recognize(ctx context.Context, page image.Image) ([]ocr.Word, error)
}

// Service runs the decode, rescale, binarize, OCR and filter stages for one
// page at a time. It holds no per-request state and is safe to share.
type Service struct {
	opts    Options
	engine  Recognizer
	metrics *metrics.Metrics
}

func NewService(opts Options, engine Recognizer, m *metrics.Metrics) *Service {
	return &Service{opts: opts, engine: engine, metrics: m}
}

// Process turns one uploaded page into a full response or an error; partial
// results are never returned.
func (s *Service) Process(ctx context.Context, page UploadedPage) (resp *Response, err error) {
	if page.Number < 1 {
		page.Number = DefaultPageNumber
	}
	log := telemetry.L().With().Int("page", page.Number).Logger()
	defer func() {
		n := 0
		if resp != nil {
			n = len(resp.Tokens)
		}
		s.metrics.RecordPage(n, err)
	}()

	var decoded *image.NRGBA
	s.stage("decode", func() { decoded, err = img.Decode(page.Data) })
	if err != nil {
		return nil, err
	}
	w0, h0 := decoded.Bounds().Dx(), decoded.Bounds().Dy()

	var scaled image.Image
	s.stage("rescale", func() { scaled = img.Rescale(decoded, s.opts.TargetDPI) })

	var binary *image.Gray
	s.stage("binarize", func() { binary = img.Binarize(scaled, s.opts.Binarization) })

	var words []ocr.Word
	s.stage("ocr", func() { words, err = s.engine.Recognize(ctx, binary) })
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}

	var tokens []Token
	s.stage("filter", func() { tokens = FilterTokens(words, page.Number) })

	b := binary.Bounds()
	log.Debug().
		Int("src_w", w0).Int("src_h", h0).
		Int("width", b.Dx()).Int("height", b.Dy()).
		Str("binarization", s.opts.Binarization.String()).
		Int("words", len(words)).Int("tokens", len(tokens)).
		Msg("page_processed")

	return &Response{
		Page:   page.Number,
		Width:  b.Dx(),
		Height: b.Dy(),
		Tokens: tokens,
	}, nil
}

func (s *Service) stage(name string, fn func()) {
	start := time.Now()
	fn()
	s.metrics.ObserveStage(name, time.Since(start))
}
