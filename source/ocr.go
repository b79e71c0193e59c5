//go:build ocr

package source

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/tableau/model"
)

// OCRSource extracts tokens from page images via the Tesseract OCR engine.
// It requires Tesseract to be installed on the system and the "ocr" build
// tag. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Pages are added one image at a time with AddPageImage; word-level bounding
// boxes become tokens directly, already in top-left origin coordinates.
type OCRSource struct {
	client *gosseract.Client
	pages  []model.PageTokens
}

// NewOCRSource creates an OCR-backed token source.
// The source should be closed when no longer needed to release resources.
func NewOCRSource() (*OCRSource, error) {
	return &OCRSource{client: gosseract.NewClient()}, nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
func (s *OCRSource) SetLanguage(lang string) error {
	return s.client.SetLanguage(lang)
}

// AddPageImage runs OCR on one page image (PNG, TIFF, JPEG, etc.) and
// appends its word tokens as the next page.
func (s *OCRSource) AddPageImage(imageData []byte) error {
	if err := s.client.SetImageFromBytes(imageData); err != nil {
		return fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := s.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return fmt.Errorf("OCR failed: %w", err)
	}

	page := len(s.pages)
	tokens := make([]model.Token, 0, len(boxes))
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		tokens = append(tokens, model.Token{
			Text: word,
			Page: page,
			BBox: model.NewBBox(
				float64(box.Box.Min.X), float64(box.Box.Min.Y),
				float64(box.Box.Max.X), float64(box.Box.Max.Y),
			),
		})
	}

	s.pages = append(s.pages, model.PageTokens{PageIndex: page, Tokens: tokens})
	return nil
}

// PageCount returns the number of pages added so far.
func (s *OCRSource) PageCount() int {
	return len(s.pages)
}

// PageTokens returns the tokens of one page.
func (s *OCRSource) PageTokens(page int) (model.PageTokens, error) {
	if page < 0 || page >= len(s.pages) {
		return model.PageTokens{}, fmt.Errorf("page %d out of range (0-%d)", page, len(s.pages)-1)
	}
	return s.pages[page], nil
}

// Close releases OCR resources.
func (s *OCRSource) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
