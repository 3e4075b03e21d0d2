package pipeline

import "github.com/aibraindb/LexiUIServer/internal/img"

// DefaultPageNumber is used when the caller does not supply a page number.
const DefaultPageNumber = 1

// Options are the read-only image settings of a Service. Engine settings
// live with the Recognizer.
type Options struct {
	TargetDPI    int
	Binarization img.Binarization
}

// UploadedPage lives for the duration of one request.
type UploadedPage struct {
	Data   []byte
	Number int
}

// Token is one recognized word in final-image pixel coordinates.
type Token struct {
	Page int    `json:"page"`
	Text string `json:"text"`
	X0   int    `json:"x0"`
	Y0   int    `json:"y0"`
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
}

// Response is the result of one page. Width and Height describe the image
// after rescaling, the same space as the token boxes.
type Response struct {
	Page   int     `json:"page"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Tokens []Token `json:"tokens"`
}
