//go:build !cgo || !ocr

package ocr

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubIsUnavailable(t *testing.T) {
	engine, err := New("eng", EngineConfig{PSM: 6})
	require.NoError(t, err)
	assert.False(t, engine.Available())

	words, err := engine.Recognize(context.Background(), image.NewGray(image.Rect(0, 0, 4, 4)))
	assert.ErrorIs(t, err, ErrNotEnabled)
	assert.Nil(t, words)
}
