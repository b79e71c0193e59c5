package tables

import (
	"context"
	"fmt"

	"github.com/tsawler/tableau/model"
)

// Merger folds per-page results, in ascending page order, into the final
// table set. A fragment flagged as a continuation is appended to the table
// being built when the column counts agree; any other fragment finalizes the
// current table and starts a new one. Footer-band fragments are per-page by
// nature and never participate in continuation.
//
// The fold is strictly sequential: continuation state depends on the
// immediately preceding page's table, so the merger must not run
// concurrently with itself.
type Merger struct{}

// NewMerger creates a merger.
func NewMerger() *Merger {
	return &Merger{}
}

// Merge folds page results into a table set. Results must be ordered by
// ascending page. When the context is cancelled mid-fold, the table being
// built is discarded rather than emitted partially, and the set produced so
// far is returned with the context's error.
func (m *Merger) Merge(ctx context.Context, results []PageResult) (*model.TableSet, error) {
	set := &model.TableSet{}
	var current *model.Table

	finalize := func() {
		if current != nil {
			set.Tables = append(set.Tables, current)
			current = nil
		}
	}

	for _, res := range results {
		if err := ctx.Err(); err != nil {
			return set, err
		}

		set.Diagnostics = append(set.Diagnostics, res.Diagnostics...)

		for _, frag := range res.Fragments {
			if frag.Table == nil {
				continue
			}

			if frag.Table.Kind == model.KindFooterBand {
				set.Tables = append(set.Tables, frag.Table)
				continue
			}

			if frag.Continuation && current != nil {
				if current.ColCount() == frag.Table.ColCount() {
					current.AppendRows(frag.Table.Rows, frag.Table.PageEnd)
					if current.Recap == nil {
						current.Recap = frag.Table.Recap
					}
					continue
				}
				set.Diagnostics = append(set.Diagnostics, model.Diagnostic{
					Page: res.Page,
					Kind: model.DiagContinuationRejected,
					Message: fmt.Sprintf("column count %d does not match previous table's %d",
						frag.Table.ColCount(), current.ColCount()),
				})
			}

			finalize()
			current = frag.Table
		}
	}

	finalize()

	return set, nil
}
