// Package source supplies positioned text tokens to the reconstruction
// engine. A token source abstracts where tokens come from: a PDF's native
// text layer, an OCR engine, or in-memory fixtures.
package source

import (
	"fmt"

	"github.com/tsawler/tableau/model"
)

// TokenSource supplies positioned tokens per page. Implementations must be
// safe for concurrent page reads: the engine fans pages out to workers.
type TokenSource interface {
	// PageCount returns the number of pages available.
	PageCount() int

	// PageTokens returns the tokens of one page (0-based).
	PageTokens(page int) (model.PageTokens, error)
}

// RegionSource optionally supplies candidate table regions per page, used to
// pre-filter tokens before grouping.
type RegionSource interface {
	// PageRegions returns the candidate regions of one page (0-based).
	PageRegions(page int) (model.PageRegions, error)
}

// SliceSource serves pre-materialized pages. It is the adapter for callers
// that already hold tokens, and the fixture type used throughout the tests.
type SliceSource struct {
	pages []model.PageTokens
}

// FromPages wraps materialized pages as a token source.
func FromPages(pages ...model.PageTokens) *SliceSource {
	return &SliceSource{pages: pages}
}

// FromTokens builds a source by bucketing loose tokens into pages by their
// Page field. Pages run from 0 to the highest page index seen.
func FromTokens(tokens []model.Token) *SliceSource {
	maxPage := -1
	for _, tok := range tokens {
		if tok.Page > maxPage {
			maxPage = tok.Page
		}
	}

	pages := make([]model.PageTokens, maxPage+1)
	for i := range pages {
		pages[i].PageIndex = i
	}
	for _, tok := range tokens {
		pages[tok.Page].Tokens = append(pages[tok.Page].Tokens, tok)
	}

	return &SliceSource{pages: pages}
}

// PageCount returns the number of pages.
func (s *SliceSource) PageCount() int {
	return len(s.pages)
}

// PageTokens returns the tokens of one page.
func (s *SliceSource) PageTokens(page int) (model.PageTokens, error) {
	if page < 0 || page >= len(s.pages) {
		return model.PageTokens{}, fmt.Errorf("page %d out of range (0-%d)", page, len(s.pages)-1)
	}
	return s.pages[page], nil
}

// SliceRegions serves pre-materialized regions, page-indexed. Pages without
// an entry get no regions, which means no filtering.
type SliceRegions struct {
	regions map[int]model.PageRegions
}

// FromRegions wraps materialized regions as a region source.
func FromRegions(regions ...model.PageRegions) *SliceRegions {
	m := make(map[int]model.PageRegions, len(regions))
	for _, r := range regions {
		m[r.PageIndex] = r
	}
	return &SliceRegions{regions: m}
}

// PageRegions returns the regions of one page.
func (s *SliceRegions) PageRegions(page int) (model.PageRegions, error) {
	return s.regions[page], nil
}
