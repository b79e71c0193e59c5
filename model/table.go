package model

// RowClass is the classification assigned to a grouped line by the row
// classifier.
type RowClass int

const (
	ClassData RowClass = iota
	ClassHeader
	ClassFooter
	ClassRecap
	ClassPageBanner
)

func (c RowClass) String() string {
	switch c {
	case ClassHeader:
		return "HEADER"
	case ClassFooter:
		return "FOOTER"
	case ClassRecap:
		return "RECAP"
	case ClassPageBanner:
		return "PAGE_BANNER"
	default:
		return "DATA"
	}
}

// TableKind identifies which calibration produced a table.
type TableKind int

const (
	KindGeneric TableKind = iota
	KindMain
	KindFooterBand
)

func (k TableKind) String() string {
	switch k {
	case KindMain:
		return "MAIN"
	case KindFooterBand:
		return "FOOTER_BAND"
	default:
		return "GENERIC"
	}
}

// Column is a calibrated vertical band of a table. Columns own no tokens;
// they only describe where cell content is expected to land.
type Column struct {
	Index int
	Label string // empty when calibration had no textual header
	XMin  float64
	XMax  float64
}

// Center returns the horizontal center of the column band.
func (c Column) Center() float64 {
	return (c.XMin + c.XMax) / 2
}

// Overlap returns the horizontal overlap between the column band and a
// bounding box.
func (c Column) Overlap(b BBox) float64 {
	return BBox{X0: c.XMin, X1: c.XMax, Y1: 1}.HOverlap(b)
}

// Cell is one positioned cell of an assembled row.
type Cell struct {
	Text        string
	BBox        BBox
	ColumnIndex int
}

// Row is one assembled table row. Cells is always exactly as long as the
// owning table's column list; cells without content carry empty text and an
// empty bounding box.
type Row struct {
	Cells  []Cell
	Class  RowClass
	Page   int
	Y      float64 // vertical center of the source line
	Indent int     // indentation level of the leading cell (0, 1 or 2)
}

// Texts returns the cell texts of the row in column order.
func (r Row) Texts() []string {
	texts := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		texts[i] = c.Text
	}
	return texts
}

// EmptinessRatio returns the fraction of cells with blank text.
func (r Row) EmptinessRatio() float64 {
	if len(r.Cells) == 0 {
		return 1
	}
	empty := 0
	for _, c := range r.Cells {
		if isBlank(c.Text) {
			empty++
		}
	}
	return float64(empty) / float64(len(r.Cells))
}

// RecapFactor is one percentage/amount adjustment line of a recap block
// (site costs, proportional costs, contingency and margin).
type RecapFactor struct {
	Name    string
	Percent string
	Amount  string
}

// RecapTotal is a subtotal with an optional percentage prefix.
type RecapTotal struct {
	Percent string
	Amount  string
}

// RecapBlock is a structured summary parsed from classified recap rows:
// running subtotals, their percentage/amount adjustment factors, and the
// final price. It is attached to a table as optional metadata.
type RecapBlock struct {
	Total5  string
	Total7  string
	Factors []RecapFactor
	TotalA  RecapTotal
	TotalB  RecapTotal

	SalePrice string
	Rounded   string
}

// IsEmpty returns true when nothing was parsed into the block.
func (r *RecapBlock) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Total5 == "" && r.Total7 == "" && len(r.Factors) == 0 &&
		r.TotalA == (RecapTotal{}) && r.TotalB == (RecapTotal{}) &&
		r.SalePrice == "" && r.Rounded == ""
}

// Map flattens the block into key/value pairs for serialization.
func (r *RecapBlock) Map() map[string]string {
	if r.IsEmpty() {
		return nil
	}
	m := make(map[string]string)
	put := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	put("total_5", r.Total5)
	put("total_7", r.Total7)
	for _, f := range r.Factors {
		put(f.Name+"_pct", f.Percent)
		put(f.Name+"_amount", f.Amount)
	}
	put("total_a_pct", r.TotalA.Percent)
	put("total_a", r.TotalA.Amount)
	put("total_b_pct", r.TotalB.Percent)
	put("total_b", r.TotalB.Amount)
	put("sale_price", r.SalePrice)
	put("rounded", r.Rounded)
	return m
}

// Table is an assembled table covering one or more consecutive pages.
// The multi-page merger appends rows in place while a continuation is being
// built; once finalized, the cleaner returns new Table values and never
// mutates prior state.
type Table struct {
	PageStart int
	PageEnd   int
	Kind      TableKind
	Columns   []Column
	Rows      []Row
	Recap     *RecapBlock
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of calibrated columns.
func (t *Table) ColCount() int {
	return len(t.Columns)
}

// RawData returns the condensed view of the table: one string slice per row,
// in column order.
func (t *Table) RawData() [][]string {
	data := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		data[i] = row.Texts()
	}
	return data
}

// AppendRows appends rows from a continuation fragment. It does not touch
// the column definitions; callers must have verified column-count equality.
func (t *Table) AppendRows(rows []Row, lastPage int) {
	t.Rows = append(t.Rows, rows...)
	if lastPage > t.PageEnd {
		t.PageEnd = lastPage
	}
}

// WithRows returns a copy of the table carrying the given rows. Columns,
// kind, page range and recap metadata are shared with the original; the
// original's row slice is left untouched.
func (t *Table) WithRows(rows []Row) *Table {
	return &Table{
		PageStart: t.PageStart,
		PageEnd:   t.PageEnd,
		Kind:      t.Kind,
		Columns:   t.Columns,
		Rows:      rows,
		Recap:     t.Recap,
	}
}

// Diagnostic kinds reported by the pipeline. All are recoverable at the page
// level; none aborts a document run.
const (
	DiagCalibrationFailure   = "calibration_failure"
	DiagColumnMismatch       = "column_mismatch"
	DiagContinuationRejected = "continuation_rejected"
	DiagEmptyPage            = "empty_page"
)

// Diagnostic records a non-fatal condition encountered while processing a
// page.
type Diagnostic struct {
	Page    int
	Kind    string
	Message string
}

// TableSet is the document-level result: every reconstructed table plus the
// diagnostics accumulated along the way.
type TableSet struct {
	Tables      []*Table
	Diagnostics []Diagnostic
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
