// Package ocr wraps the Tesseract engine behind a small word-level API.
//
// The real engine needs cgo and libtesseract and is only compiled with the
// "ocr" build tag:
//
//	go build -tags ocr ./...  (or: make build)
//
// Without it every Recognize call fails with ErrNotEnabled.
package ocr

import (
	"errors"
	"image"
)

// ErrNotEnabled is returned when the binary was built without Tesseract support.
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Word is one recognized text unit as reported by the engine.
type Word struct {
	Text string
	// Confidence is 0-100; negative when the engine did not compute one.
	Confidence float64
	Box        image.Rectangle
}
