// Package export serializes reconstructed table sets: JSON and CSV for
// downstream processing, XLSX and HTML for human consumption, and annotated
// PNG overlays for debugging calibration and assembly.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tsawler/tableau/model"
)

// jsonTableSet is the wire form of a table set.
type jsonTableSet struct {
	Tables      []jsonTable      `json:"tables"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

type jsonTable struct {
	PageRange [2]int            `json:"page_range"`
	Kind      string            `json:"kind"`
	Columns   []jsonColumn      `json:"columns"`
	RawData   [][]string        `json:"raw_data"`
	Cells     [][]jsonCell      `json:"cells"`
	Recap     map[string]string `json:"recap"`
}

type jsonColumn struct {
	Index  int        `json:"index"`
	Label  *string    `json:"label"`
	XRange [2]float64 `json:"x_range"`
}

type jsonCell struct {
	Text        string     `json:"text"`
	BBox        [4]float64 `json:"bbox"`
	ColumnIndex int        `json:"column_index"`
}

type jsonDiagnostic struct {
	Page    int    `json:"page"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// WriteJSON serializes the table set to w, indented.
func WriteJSON(w io.Writer, set *model.TableSet) error {
	out := jsonTableSet{
		Tables:      make([]jsonTable, 0, len(set.Tables)),
		Diagnostics: make([]jsonDiagnostic, 0, len(set.Diagnostics)),
	}

	for _, t := range set.Tables {
		out.Tables = append(out.Tables, buildJSONTable(t))
	}
	for _, d := range set.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic(d))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode table set: %w", err)
	}
	return nil
}

func buildJSONTable(t *model.Table) jsonTable {
	jt := jsonTable{
		PageRange: [2]int{t.PageStart, t.PageEnd},
		Kind:      t.Kind.String(),
		Columns:   make([]jsonColumn, 0, len(t.Columns)),
		RawData:   t.RawData(),
		Cells:     make([][]jsonCell, 0, len(t.Rows)),
		Recap:     t.Recap.Map(),
	}

	for _, col := range t.Columns {
		jc := jsonColumn{
			Index:  col.Index,
			XRange: [2]float64{col.XMin, col.XMax},
		}
		if col.Label != "" {
			label := col.Label
			jc.Label = &label
		}
		jt.Columns = append(jt.Columns, jc)
	}

	for _, row := range t.Rows {
		cells := make([]jsonCell, 0, len(row.Cells))
		for _, c := range row.Cells {
			cells = append(cells, jsonCell{
				Text:        c.Text,
				BBox:        [4]float64{c.BBox.X0, c.BBox.Y0, c.BBox.X1, c.BBox.Y1},
				ColumnIndex: c.ColumnIndex,
			})
		}
		jt.Cells = append(jt.Cells, cells)
	}

	return jt
}
