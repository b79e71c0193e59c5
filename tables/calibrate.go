package tables

import (
	"github.com/tsawler/tableau/layout"
	"github.com/tsawler/tableau/model"
)

// GroupedLine pairs a line with its proximity-merged spans. It is the unit
// the calibrator, classifier and assembler all operate on.
type GroupedLine struct {
	layout.Line

	// Spans are the line's cell-candidate spans, left to right
	Spans []layout.Span
}

// SpanTexts returns the span texts in order.
func (l GroupedLine) SpanTexts() []string {
	texts := make([]string, len(l.Spans))
	for i, s := range l.Spans {
		texts[i] = s.Text
	}
	return texts
}

// Strategy names recorded on a calibration.
const (
	StrategyHeader  = "header"
	StrategyAnchor  = "anchor"
	StrategyDerived = "derived"
)

// Calibration is the column layout derived for one table on one page, plus
// enough provenance to classify the calibrating line and report diagnostics.
type Calibration struct {
	// Columns are the calibrated bands, ordered by index
	Columns []model.Column

	// Kind is the table kind the matched strategy produces
	Kind model.TableKind

	// LineIndex is the page-local index of the calibrating line
	LineIndex int

	// Strategy is which strategy produced the calibration
	Strategy string

	// Matcher is the name of the matcher that fired, empty for derived
	// calibrations
	Matcher string

	// Origin is the left edge of the calibrating line, the reference point
	// indentation levels are measured from
	Origin float64
}

// CalibratorConfig holds configuration for column calibration.
type CalibratorConfig struct {
	// EdgePadding widens the outermost column bands beyond the calibrating
	// spans so that slightly overhanging cell content still lands in a
	// column.
	EdgePadding float64
}

// DefaultCalibratorConfig returns sensible default configuration.
func DefaultCalibratorConfig() CalibratorConfig {
	return CalibratorConfig{
		EdgePadding: 20.0,
	}
}

// Calibrator derives column boundaries for a page. Calibration runs per page
// rather than once per document: the calibrating line may sit at a slightly
// different position on each page, so adjacent pages are allowed columns with
// slightly different ranges as long as the counts agree.
type Calibrator struct {
	config   CalibratorConfig
	matchers MatcherSet
}

// NewCalibrator creates a calibrator with default configuration.
func NewCalibrator(matchers MatcherSet) *Calibrator {
	return &Calibrator{config: DefaultCalibratorConfig(), matchers: matchers}
}

// NewCalibratorWithConfig creates a calibrator with custom configuration.
func NewCalibratorWithConfig(matchers MatcherSet, config CalibratorConfig) *Calibrator {
	return &Calibrator{config: config, matchers: matchers}
}

// Calibrate derives zero or more calibrations for the page's lines. Header
// matchers are tried first; each matcher may calibrate at most one table.
// When no header matches, anchor matchers are tried; when neither strategy
// fires, a layout is derived from the data lines themselves so that
// header-less continuation pages still yield a comparable column count.
// A nil result means the page could not be calibrated at all.
func (c *Calibrator) Calibrate(lines []GroupedLine) []Calibration {
	var cals []Calibration

	for _, m := range c.matchers.Headers {
		if cal, ok := c.calibrateHeader(m, lines); ok {
			cals = append(cals, cal)
		}
	}
	if len(cals) > 0 {
		return cals
	}

	for _, m := range c.matchers.Anchors {
		if cal, ok := c.calibrateAnchor(m, lines); ok {
			return []Calibration{cal}
		}
	}

	if cal, ok := c.calibrateDerived(lines); ok {
		return []Calibration{cal}
	}

	return nil
}

// calibrateHeader scans for the first line matching the header vocabulary and
// turns the matched spans into labeled columns, cutting bands at the
// midpoints between adjacent spans.
func (c *Calibrator) calibrateHeader(m HeaderMatcher, lines []GroupedLine) (Calibration, bool) {
	for _, line := range lines {
		indices, ok := m.MatchHeader(line.SpanTexts())
		if !ok {
			continue
		}

		spans := make([]layout.Span, len(indices))
		for i, si := range indices {
			spans[i] = line.Spans[si]
		}

		cols := make([]model.Column, len(spans))
		for i, s := range spans {
			cols[i] = model.Column{Index: i, Label: s.Text}
		}
		c.cutBands(cols, spanEdges(spans))

		return Calibration{
			Columns:   cols,
			Kind:      m.Kind,
			LineIndex: line.Index,
			Strategy:  StrategyHeader,
			Matcher:   m.Name,
			Origin:    spans[0].BBox.X0,
		}, true
	}
	return Calibration{}, false
}

// calibrateAnchor scans for a formula-shaped line and takes each raw token's
// x-center as a column boundary. Tokens are used rather than spans so the
// column count equals the token count exactly, untouched by span fusion.
func (c *Calibrator) calibrateAnchor(m AnchorMatcher, lines []GroupedLine) (Calibration, bool) {
	for _, line := range lines {
		texts := make([]string, len(line.Tokens))
		for i, tok := range line.Tokens {
			texts[i] = tok.Text
		}
		if !m.MatchAnchor(texts) {
			continue
		}

		cols := make([]model.Column, len(line.Tokens))
		edges := make([][2]float64, len(line.Tokens))
		for i, tok := range line.Tokens {
			cols[i] = model.Column{Index: i}
			edges[i] = [2]float64{tok.BBox.X0, tok.BBox.X1}
		}
		c.cutBands(cols, edges)

		return Calibration{
			Columns:   cols,
			Kind:      m.Kind,
			LineIndex: line.Index,
			Strategy:  StrategyAnchor,
			Matcher:   m.Name,
			Origin:    line.Tokens[0].BBox.X0,
		}, true
	}
	return Calibration{}, false
}

// calibrateDerived builds an unlabeled layout from the page's own data lines:
// the most common span count across the page is taken as the column count,
// and the first line with that count supplies the band positions. This is
// what lets a banner-led continuation page carry a column count the merger
// can compare against the previous page's table.
func (c *Calibrator) calibrateDerived(lines []GroupedLine) (Calibration, bool) {
	counts := make(map[int]int)
	for _, line := range lines {
		if n := len(line.Spans); n > 1 {
			counts[n]++
		}
	}

	best, bestOccur := 0, 0
	for n, occur := range counts {
		if occur > bestOccur || (occur == bestOccur && n > best) {
			best, bestOccur = n, occur
		}
	}
	if best == 0 {
		return Calibration{}, false
	}

	for _, line := range lines {
		if len(line.Spans) != best {
			continue
		}
		cols := make([]model.Column, best)
		for i := range cols {
			cols[i] = model.Column{Index: i}
		}
		c.cutBands(cols, spanEdges(line.Spans))

		return Calibration{
			Columns:   cols,
			Kind:      model.KindGeneric,
			LineIndex: line.Index,
			Strategy:  StrategyDerived,
			Origin:    line.Spans[0].BBox.X0,
		}, true
	}
	return Calibration{}, false
}

// cutBands assigns each column a band running from the midpoint with its left
// neighbor to the midpoint with its right neighbor, padding the outer edges.
func (c *Calibrator) cutBands(cols []model.Column, edges [][2]float64) {
	for i := range cols {
		if i == 0 {
			cols[i].XMin = edges[0][0] - c.config.EdgePadding
		} else {
			cols[i].XMin = (edges[i-1][1] + edges[i][0]) / 2
		}
		if i == len(cols)-1 {
			cols[i].XMax = edges[i][1] + c.config.EdgePadding
		} else {
			cols[i].XMax = (edges[i][1] + edges[i+1][0]) / 2
		}
	}
}

// spanEdges returns the left and right edge of each span.
func spanEdges(spans []layout.Span) [][2]float64 {
	edges := make([][2]float64, len(spans))
	for i, s := range spans {
		edges[i] = [2]float64{s.BBox.X0, s.BBox.X1}
	}
	return edges
}
