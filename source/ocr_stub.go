//go:build !ocr

package source

import (
	"errors"

	"github.com/tsawler/tableau/model"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// OCRSource is a stub token source that returns errors for all operations.
//
// This is the implementation used when the "ocr" build tag is not set. To
// enable OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
type OCRSource struct{}

// NewOCRSource returns an error indicating OCR support is not enabled.
// To enable OCR, rebuild with: go build -tags ocr
func NewOCRSource() (*OCRSource, error) {
	return nil, ErrOCRNotEnabled
}

// SetLanguage returns an error indicating OCR support is not enabled.
func (s *OCRSource) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}

// AddPageImage returns an error indicating OCR support is not enabled.
func (s *OCRSource) AddPageImage(imageData []byte) error {
	return ErrOCRNotEnabled
}

// PageCount is zero for the stub source.
func (s *OCRSource) PageCount() int {
	return 0
}

// PageTokens returns an error indicating OCR support is not enabled.
func (s *OCRSource) PageTokens(page int) (model.PageTokens, error) {
	return model.PageTokens{}, ErrOCRNotEnabled
}

// Close is a no-op for the stub source.
// It is safe to call on a nil source.
func (s *OCRSource) Close() error {
	return nil
}
