package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tsawler/tableau/model"
)

// WriteCSV writes one table as CSV. Columns with labels contribute a header
// record; unlabeled calibrations (anchor or derived) produce no header.
func WriteCSV(w io.Writer, t *model.Table) error {
	cw := csv.NewWriter(w)

	if labels, ok := columnLabels(t); ok {
		if err := cw.Write(labels); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for _, record := range t.RawData() {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// columnLabels returns the column labels when at least one column carries
// one.
func columnLabels(t *model.Table) ([]string, bool) {
	labels := make([]string, len(t.Columns))
	any := false
	for i, col := range t.Columns {
		labels[i] = col.Label
		if col.Label != "" {
			any = true
		}
	}
	return labels, any
}
