// Package tables reconstructs table structure from grouped lines and spans.
//
// The pipeline inside this package runs per page: the [Calibrator] derives
// column boundaries (from a known header line or from an anchor line), the
// [Classifier] tags each line, and the [Assembler] projects spans onto
// columns to produce table fragments. Across pages, the [Merger] folds
// fragments in ascending page order, appending continuation rows, and the
// [Cleaner] applies idempotent row filters to each finalized table.
//
// Document-family knowledge (header vocabularies, anchor patterns, footer
// and recap markers) is injected through a [MatcherSet] rather than baked
// into the logic, so new families can be supported through configuration.
package tables
