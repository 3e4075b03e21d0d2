package pipeline

import (
	"strings"

	"github.com/aibraindb/LexiUIServer/internal/ocr"
)

// MinConfidence is the lowest engine confidence a word may have to be kept.
const MinConfidence = 50

// FilterTokens drops empty and low-confidence words and converts the rest to
// tokens for page. Engine order is kept as is.
func FilterTokens(words []ocr.Word, page int) []Token {
	tokens := make([]Token, 0, len(words))
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" || w.Confidence < MinConfidence {
			continue
		}
		box := w.Box.Canon()
		tokens = append(tokens, Token{
			Page: page,
			Text: text,
			X0:   box.Min.X,
			Y0:   box.Min.Y,
			X1:   box.Min.X + box.Dx(),
			Y1:   box.Min.Y + box.Dy(),
		})
	}
	return tokens
}
