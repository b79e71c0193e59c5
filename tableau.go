// Package tableau reconstructs structured tables from positioned text
// tokens and reconciles table fragments that span multiple pages.
//
// Basic usage:
//
//	set, err := tableau.Open("document.pdf").Tables()
//	if err != nil {
//	    // handle error
//	}
//	for _, t := range set.Tables {
//	    fmt.Println(t.RawData())
//	}
//
// With options:
//
//	set, err := tableau.Open("document.pdf").
//	    Pages(0, 1, 2).
//	    Workers(4).
//	    Tables()
//
// Tokens can come from any source implementing source.TokenSource: the PDF
// text-layer source, the OCR source (build tag "ocr"), or in-memory pages:
//
//	set, err := tableau.FromSource(source.FromTokens(tokens)).Tables()
//
// Non-fatal conditions (a page that could not be calibrated, a rejected
// continuation) are reported in set.Diagnostics rather than as errors.
package tableau

import (
	"context"

	"github.com/tsawler/tableau/model"
	"github.com/tsawler/tableau/source"
	"github.com/tsawler/tableau/tables"
)

// Extractor provides a fluent API for configuring and running table
// extraction. Configuration methods return a new Extractor, so a configured
// extractor can be reused as a template.
type Extractor struct {
	filename string
	src      source.TokenSource
	options  ExtractOptions
}

// Open prepares extraction from a PDF file's native text layer. The file is
// read when a terminal operation like Tables() runs.
//
// Example:
//
//	set, err := tableau.Open("document.pdf").Tables()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource prepares extraction from an existing token source.
//
// Example:
//
//	set, err := tableau.FromSource(source.FromTokens(tokens)).Tables()
func FromSource(src source.TokenSource) *Extractor {
	return &Extractor{
		src:     src,
		options: defaultOptions(),
	}
}

// Pages restricts extraction to the given pages (0-indexed). Order does not
// matter; pages are always processed ascending.
func (e *Extractor) Pages(pages ...int) *Extractor {
	next := e.with()
	next.options.pages = append([]int{}, pages...)
	return next
}

// PageRange restricts extraction to pages start through end inclusive
// (0-indexed).
func (e *Extractor) PageRange(start, end int) *Extractor {
	var pages []int
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	next := e.with()
	next.options.pages = pages
	return next
}

// Regions supplies candidate table regions used to pre-filter tokens before
// grouping.
func (e *Extractor) Regions(rs source.RegionSource) *Extractor {
	next := e.with()
	next.options.regions = rs
	return next
}

// Matchers replaces the document-family knowledge (header vocabularies,
// anchor patterns, footer and recap markers).
func (e *Extractor) Matchers(m tables.MatcherSet) *Extractor {
	next := e.with()
	next.options.matchers = m
	return next
}

// Workers sets the parallelism of the per-page stage. Zero or negative means
// one worker per CPU.
func (e *Extractor) Workers(n int) *Extractor {
	next := e.with()
	next.options.workers = n
	return next
}

// NoClean disables the cleaning pipeline, keeping every assembled row. Useful
// for inspecting what the assembler produced before filtering.
func (e *Extractor) NoClean() *Extractor {
	next := e.with()
	next.options.clean = false
	return next
}

// Tables runs the pipeline and returns the reconstructed table set.
func (e *Extractor) Tables() (*model.TableSet, error) {
	return e.TablesContext(context.Background())
}

// TablesContext runs the pipeline under a context. Cancelling the context
// stops per-page work and discards any table the merger had in progress.
func (e *Extractor) TablesContext(ctx context.Context) (*model.TableSet, error) {
	src := e.src
	if src == nil {
		opened, err := source.OpenPDF(e.filename)
		if err != nil {
			return nil, err
		}
		src = opened
	}
	return newEngine(e.options).extract(ctx, src)
}

// with returns a copy of the extractor with cloned options.
func (e *Extractor) with() *Extractor {
	return &Extractor{
		filename: e.filename,
		src:      e.src,
		options:  e.options.clone(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	set := tableau.Must(tableau.Open("document.pdf").Tables())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
