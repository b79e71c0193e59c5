package tables

import (
	"fmt"
	"sort"

	"github.com/tsawler/tableau/layout"
	"github.com/tsawler/tableau/model"
)

// PageFragment is one table fragment assembled from a single page, plus the
// continuation signal the multi-page merger consumes.
type PageFragment struct {
	// Table is the assembled fragment
	Table *model.Table

	// Continuation is true when the fragment's first data line was preceded
	// only by page banners, with no header of its own. Only such fragments
	// are candidates for appending to the previous page's table.
	Continuation bool
}

// PageResult carries everything one page produced: its fragments in top-down
// order and the diagnostics accumulated while assembling them.
type PageResult struct {
	Page        int
	Fragments   []PageFragment
	Diagnostics []model.Diagnostic
}

// AssemblerConfig holds configuration for table assembly.
type AssemblerConfig struct {
	// IndentShallow and IndentDeep are the x-offsets of a row's leading
	// cell (relative to its column's left edge) above which the row is
	// recorded at indent level 1 and 2 respectively.
	IndentShallow float64
	IndentDeep    float64
}

// DefaultAssemblerConfig returns sensible default configuration.
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		IndentShallow: 30.0,
		IndentDeep:    50.0,
	}
}

// Assembler turns one page's grouped lines into table fragments: it
// calibrates columns, classifies lines, projects spans onto columns, and
// collects recap rows into structured blocks. Pages are independent of each
// other, so assembly is safe to run concurrently across pages.
type Assembler struct {
	config     AssemblerConfig
	calibrator *Calibrator
	classifier *Classifier
}

// NewAssembler creates an assembler with default configuration.
func NewAssembler(matchers MatcherSet) *Assembler {
	return NewAssemblerWithConfig(matchers, DefaultAssemblerConfig())
}

// NewAssemblerWithConfig creates an assembler with custom configuration.
func NewAssemblerWithConfig(matchers MatcherSet, config AssemblerConfig) *Assembler {
	return &Assembler{
		config:     config,
		calibrator: NewCalibrator(matchers),
		classifier: NewClassifier(matchers),
	}
}

// AssemblePage assembles every table fragment of one page. It always
// produces at least one fragment: when calibration fails the page degrades
// to a single-column raw table, and an empty page yields an empty table, so
// downstream consumers see a table per page regardless of quality.
func (a *Assembler) AssemblePage(page int, lines []GroupedLine, banner *layout.BannerResult) PageResult {
	result := PageResult{Page: page}

	if len(lines) == 0 {
		result.Diagnostics = append(result.Diagnostics, model.Diagnostic{
			Page: page, Kind: model.DiagEmptyPage,
			Message: "no lines found on page",
		})
		result.Fragments = []PageFragment{{
			Table: &model.Table{PageStart: page, PageEnd: page},
		}}
		return result
	}

	classes := make([]model.RowClass, len(lines))
	for i, line := range lines {
		classes[i] = a.classifier.Classify(line, banner)
	}

	cals := a.calibrator.Calibrate(lines)
	if len(cals) == 0 {
		result.Diagnostics = append(result.Diagnostics, model.Diagnostic{
			Page: page, Kind: model.DiagCalibrationFailure,
			Message: "no header, anchor or derivable layout found",
		})
		result.Fragments = []PageFragment{{
			Table:        a.rawTable(page, lines, classes),
			Continuation: false,
		}}
		return result
	}

	// Calibrations arrive in matcher order, not page order: when a footer
	// band sits above the main table, slicing in matcher order would run
	// both fragments to the end of the page.
	sort.Slice(cals, func(i, j int) bool { return cals[i].LineIndex < cals[j].LineIndex })

	for fi, cal := range cals {
		// A fragment's lines run from its calibrating line to the next
		// fragment's calibrating line (or the end of the page).
		start := cal.LineIndex
		end := len(lines)
		if fi+1 < len(cals) && cals[fi+1].LineIndex > start {
			end = cals[fi+1].LineIndex
		}
		// Derived calibrations have no header: the whole page belongs to
		// the fragment, including lines above the calibrating one.
		if cal.Strategy == StrategyDerived {
			start, end = 0, len(lines)
		}

		frag, diags := a.assembleFragment(page, cal, lines[start:end], classes[start:end])
		result.Fragments = append(result.Fragments, frag)
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	return result
}

// assembleFragment projects one calibration's share of the page onto its
// columns.
func (a *Assembler) assembleFragment(page int, cal Calibration, lines []GroupedLine, classes []model.RowClass) (PageFragment, []model.Diagnostic) {
	table := &model.Table{
		PageStart: page,
		PageEnd:   page,
		Kind:      cal.Kind,
		Columns:   cal.Columns,
	}

	var diags []model.Diagnostic
	recap := NewRecapParser()
	sawHeader := false
	continuation := false
	decided := false

	for i, line := range lines {
		class := classes[i]
		if line.Index == cal.LineIndex && cal.Strategy != StrategyDerived {
			// the calibrating line seeded the columns already
			class = model.ClassHeader
		}

		switch class {
		case model.ClassHeader:
			sawHeader = true
			decided = true
		case model.ClassPageBanner, model.ClassFooter:
			// excluded from data
		case model.ClassRecap:
			recap.Add(line)
			decided = true
		default:
			if !decided {
				// first data line arrived with no header before it
				continuation = !sawHeader
				decided = true
			}
			row, dropped := a.buildRow(page, cal, line)
			table.Rows = append(table.Rows, row)
			for _, d := range dropped {
				diags = append(diags, model.Diagnostic{
					Page: page, Kind: model.DiagColumnMismatch,
					Message: d,
				})
			}
		}
	}

	table.Recap = recap.Block()

	return PageFragment{Table: table, Continuation: continuation}, diags
}

// buildRow assigns each span of the line to the column with the largest
// horizontal overlap, ties broken by nearest center. Spans overlapping no
// column are dropped and reported.
func (a *Assembler) buildRow(page int, cal Calibration, line GroupedLine) (model.Row, []string) {
	cols := cal.Columns
	row := model.Row{
		Cells: make([]model.Cell, len(cols)),
		Class: model.ClassData,
		Page:  page,
		Y:     line.YCenter,
	}
	for i := range row.Cells {
		row.Cells[i].ColumnIndex = i
	}

	var dropped []string
	for _, span := range line.Spans {
		ci := assignColumn(cols, span)
		if ci < 0 {
			dropped = append(dropped, fmt.Sprintf("span %q at x=%.1f overlaps no column", span.Text, span.BBox.X0))
			continue
		}
		cell := &row.Cells[ci]
		if cell.Text == "" {
			cell.Text = span.Text
			cell.BBox = span.BBox
		} else {
			cell.Text += " " + span.Text
			cell.BBox = cell.BBox.Union(span.BBox)
		}
	}

	row.Indent = a.indentLevel(cal.Origin, row)

	return row, dropped
}

// assignColumn returns the index of the column with maximum horizontal
// overlap with the span, or -1 when no column overlaps it at all. Ties are
// broken by the nearest column center.
func assignColumn(cols []model.Column, span layout.Span) int {
	best, bestOverlap := -1, 0.0
	for i, col := range cols {
		overlap := col.Overlap(span.BBox)
		switch {
		case overlap > bestOverlap:
			best, bestOverlap = i, overlap
		case overlap > 0 && overlap == bestOverlap && best >= 0:
			if centerDist(col, span) < centerDist(cols[best], span) {
				best = i
			}
		}
	}
	return best
}

func centerDist(col model.Column, span layout.Span) float64 {
	d := col.Center() - span.CenterX()
	if d < 0 {
		return -d
	}
	return d
}

// indentLevel derives the hierarchy level of a row from how far its leading
// populated cell starts past the table's calibrated left origin.
func (a *Assembler) indentLevel(origin float64, row model.Row) int {
	for _, cell := range row.Cells {
		if cell.Text == "" {
			continue
		}
		offset := cell.BBox.X0 - origin
		switch {
		case offset > a.config.IndentDeep:
			return 2
		case offset > a.config.IndentShallow:
			return 1
		default:
			return 0
		}
	}
	return 0
}

// rawTable is the least-structured fallback: a single unlabeled column whose
// rows are the full line texts, banners and footers excluded.
func (a *Assembler) rawTable(page int, lines []GroupedLine, classes []model.RowClass) *model.Table {
	width := model.BBox{}
	for _, line := range lines {
		width = width.Union(line.BBox)
	}

	table := &model.Table{
		PageStart: page,
		PageEnd:   page,
		Kind:      model.KindGeneric,
		Columns: []model.Column{
			{Index: 0, XMin: width.X0, XMax: width.X1},
		},
	}

	for _, line := range lines {
		class := classes[line.Index]
		if class == model.ClassPageBanner || class == model.ClassFooter {
			continue
		}
		table.Rows = append(table.Rows, model.Row{
			Cells: []model.Cell{{Text: line.Text(), BBox: line.BBox}},
			Class: model.ClassData,
			Page:  page,
			Y:     line.YCenter,
		})
	}

	return table
}
