package source

import (
	"fmt"
	"os"
	"sort"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/tsawler/tableau/model"
)

// wordJoinGap is the widest horizontal gap between two text items that still
// belong to the same word. Native text layers emit characters or small runs;
// anything closer than this is glyph spacing, not a word break.
const wordJoinGap = 1.5

// baselineTolerance is how far apart two baselines may sit and still count as
// the same one.
const baselineTolerance = 0.5

// PDFSource extracts tokens from a PDF's native text layer. Pages are read
// eagerly on open, so page reads afterwards are concurrency-safe and cheap.
//
// Text layers report positions in bottom-left origin coordinates; tokens are
// flipped to the top-left origin the pipeline expects, using per-page
// dimensions.
type PDFSource struct {
	pages []model.PageTokens
}

// OpenPDF reads every page's text layer from the file at path.
func OpenPDF(path string) (*PDFSource, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}

	src := &PDFSource{}
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			src.pages = append(src.pages, model.PageTokens{PageIndex: pageNum - 1})
			continue
		}

		height := 0.0
		if pageNum-1 < len(dims) {
			height = dims[pageNum-1].Height
		}

		tokens := assembleWords(pageNum-1, page.Content().Text, height)
		src.pages = append(src.pages, model.PageTokens{
			PageIndex: pageNum - 1,
			Tokens:    tokens,
		})
	}

	return src, nil
}

// PageCount returns the number of pages.
func (s *PDFSource) PageCount() int {
	return len(s.pages)
}

// PageTokens returns the tokens of one page.
func (s *PDFSource) PageTokens(page int) (model.PageTokens, error) {
	if page < 0 || page >= len(s.pages) {
		return model.PageTokens{}, fmt.Errorf("page %d out of range (0-%d)", page, len(s.pages)-1)
	}
	return s.pages[page], nil
}

// Stat reports whether the file exists and is a regular file, for friendlier
// CLI errors before parsing starts.
func Stat(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// assembleWords joins per-glyph text items into word tokens and flips their
// coordinates to top-left origin.
func assembleWords(page int, items []pdf.Text, pageHeight float64) []model.Token {
	if len(items) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y // higher baseline first (top of page)
		}
		return sorted[i].X < sorted[j].X
	})

	var tokens []model.Token
	var word []pdf.Text

	flush := func() {
		if len(word) == 0 {
			return
		}
		if tok, ok := buildWord(page, word, pageHeight); ok {
			tokens = append(tokens, tok)
		}
		word = nil
	}

	for _, item := range sorted {
		if item.S == "" {
			continue
		}
		if len(word) > 0 {
			prev := word[len(word)-1]
			sameLine := absDiff(item.Y, prev.Y) <= baselineTolerance
			gap := item.X - (prev.X + prev.W)
			if !sameLine || gap > wordJoinGap || item.S == " " {
				flush()
			}
		}
		if item.S == " " {
			continue
		}
		word = append(word, item)
	}
	flush()

	return tokens
}

// buildWord merges one run of glyphs into a token. Runs that are entirely
// whitespace produce no token.
func buildWord(page int, glyphs []pdf.Text, pageHeight float64) (model.Token, bool) {
	text := ""
	for _, g := range glyphs {
		text += g.S
	}
	if text == "" {
		return model.Token{}, false
	}

	first, last := glyphs[0], glyphs[len(glyphs)-1]
	size := first.FontSize
	if size == 0 {
		size = 10
	}

	// baseline Y in bottom-left origin; the glyph box extends one font size
	// above the baseline
	return model.Token{
		Text: text,
		Page: page,
		BBox: model.NewBBox(
			first.X,
			pageHeight-(first.Y+size),
			last.X+last.W,
			pageHeight-first.Y,
		),
	}, true
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
