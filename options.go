package tableau

import (
	"github.com/tsawler/tableau/layout"
	"github.com/tsawler/tableau/source"
	"github.com/tsawler/tableau/tables"
)

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	// Page selection (0-indexed, stored as-is; nil means all pages)
	pages []int

	// Parallelism of the per-page stage (0 means one worker per CPU)
	workers int

	// Whether the cleaning pipeline runs on the merged tables
	clean bool

	// Optional region source for pre-filtering tokens
	regions source.RegionSource

	// Document-family knowledge
	matchers tables.MatcherSet

	// Stage configuration
	lineConfig      layout.LineConfig
	spanConfig      layout.SpanConfig
	bannerConfig    layout.BannerConfig
	assemblerConfig tables.AssemblerConfig
	cleanerConfig   tables.CleanerConfig
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:           nil, // nil means all pages
		workers:         0,   // one worker per CPU
		clean:           true,
		matchers:        tables.DefaultMatcherSet(),
		lineConfig:      layout.DefaultLineConfig(),
		spanConfig:      layout.DefaultSpanConfig(),
		bannerConfig:    layout.DefaultBannerConfig(),
		assemblerConfig: tables.DefaultAssemblerConfig(),
		cleanerConfig:   tables.DefaultCleanerConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o

	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
