package tableau

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/tsawler/tableau/layout"
	"github.com/tsawler/tableau/model"
	"github.com/tsawler/tableau/source"
	"github.com/tsawler/tableau/tables"
)

// engine wires the pipeline stages together: line grouping, banner
// detection, span grouping, per-page assembly, the sequential multi-page
// merge, and cleaning.
//
// Per-page work is stateless across pages and runs on a worker pool, each
// page writing into its own pre-indexed slot. Banner detection and the merge
// are the only cross-page stages and run single-threaded.
type engine struct {
	options ExtractOptions

	lines     *layout.LineGrouper
	spans     *layout.SpanGrouper
	banners   *layout.BannerDetector
	assembler *tables.Assembler
	merger    *tables.Merger
	cleaner   *tables.Cleaner
}

func newEngine(options ExtractOptions) *engine {
	return &engine{
		options:   options,
		lines:     layout.NewLineGrouperWithConfig(options.lineConfig),
		spans:     layout.NewSpanGrouperWithConfig(options.spanConfig),
		banners:   layout.NewBannerDetectorWithConfig(options.bannerConfig),
		assembler: tables.NewAssemblerWithConfig(options.matchers, options.assemblerConfig),
		merger:    tables.NewMerger(),
		cleaner:   tables.NewCleanerWithConfig(options.matchers, options.cleanerConfig),
	}
}

// extract runs the full pipeline over the selected pages of the source.
func (e *engine) extract(ctx context.Context, src source.TokenSource) (*model.TableSet, error) {
	pages, err := e.selectPages(src)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return &model.TableSet{}, nil
	}

	// Stage 1 (parallel): tokens -> lines, one slot per page.
	pageLines := make([][]layout.Line, len(pages))
	err = e.forEachPage(ctx, len(pages), func(i int) error {
		pt, err := src.PageTokens(pages[i])
		if err != nil {
			return fmt.Errorf("page %d: %w", pages[i], err)
		}

		tokens := pt.Tokens
		if e.options.regions != nil {
			regions, err := e.options.regions.PageRegions(pages[i])
			if err != nil {
				return fmt.Errorf("page %d regions: %w", pages[i], err)
			}
			tokens = regions.FilterTokens(tokens)
		}

		pageLines[i] = e.lines.Group(tokens)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 2 (sequential): repeating banners need a cross-page view.
	banner := e.banners.Detect(pageLines)

	// Stage 3 (parallel): spans + assembly, one result slot per page.
	results := make([]tables.PageResult, len(pages))
	err = e.forEachPage(ctx, len(pages), func(i int) error {
		grouped := make([]tables.GroupedLine, len(pageLines[i]))
		for li, line := range pageLines[i] {
			grouped[li] = tables.GroupedLine{Line: line, Spans: e.spans.Group(line)}
		}
		results[i] = e.assembler.AssemblePage(pages[i], grouped, banner)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 4 (sequential): page-ascending merge fold.
	set, err := e.merger.Merge(ctx, results)
	if err != nil {
		return nil, err
	}

	if e.options.clean {
		set = e.cleaner.CleanSet(set)
	}

	return set, nil
}

// selectPages resolves the page selection against the source, rejecting
// out-of-range pages.
func (e *engine) selectPages(src source.TokenSource) ([]int, error) {
	count := src.PageCount()
	if e.options.pages == nil {
		pages := make([]int, count)
		for i := range pages {
			pages[i] = i
		}
		return pages, nil
	}

	pages := make([]int, 0, len(e.options.pages))
	seen := make(map[int]bool)
	for _, p := range e.options.pages {
		if p < 0 || p >= count {
			return nil, fmt.Errorf("page %d out of range (0-%d)", p, count-1)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		pages = append(pages, p)
	}

	// the merge fold requires ascending page order
	sort.Ints(pages)
	return pages, nil
}

// forEachPage runs fn(i) for i in [0, n) on a bounded worker pool. The first
// error wins; a cancelled context stops new work from starting.
func (e *engine) forEachPage(ctx context.Context, n int, fn func(i int) error) error {
	workers := e.options.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	sem := make(chan struct{}, workers)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			errOnce.Do(func() { firstErr = err })
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := fn(i); err != nil {
				errOnce.Do(func() { firstErr = err })
			}
		}(i)
	}

	wg.Wait()
	return firstErr
}
