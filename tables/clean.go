package tables

import (
	"strings"

	"github.com/tsawler/tableau/model"
)

// CleanerConfig holds configuration for the cleaning pipeline.
type CleanerConfig struct {
	// MaxEmptiness is the fraction of blank cells above which a row is
	// dropped.
	MaxEmptiness float64
}

// DefaultCleanerConfig returns sensible default configuration.
func DefaultCleanerConfig() CleanerConfig {
	return CleanerConfig{
		MaxEmptiness: 0.95,
	}
}

// Cleaner applies a fixed, ordered pipeline of row filters to a finalized
// table: near-empty rows, footer rows the classifier missed, and repeated
// header-looking rows. Each filter is pure; a table is never mutated, so
// prior state stays inspectable. Running the pipeline twice is a no-op.
type Cleaner struct {
	config   CleanerConfig
	matchers MatcherSet
}

// NewCleaner creates a cleaner with default configuration.
func NewCleaner(matchers MatcherSet) *Cleaner {
	return &Cleaner{config: DefaultCleanerConfig(), matchers: matchers}
}

// NewCleanerWithConfig creates a cleaner with custom configuration.
func NewCleanerWithConfig(matchers MatcherSet, config CleanerConfig) *Cleaner {
	return &Cleaner{config: config, matchers: matchers}
}

// Clean returns a cleaned copy of the table. The input is left untouched.
func (c *Cleaner) Clean(t *model.Table) *model.Table {
	cleaned := c.dropEmptyRows(t)
	cleaned = c.dropFooterRows(cleaned)
	cleaned = c.dropRepeatedHeaders(cleaned)
	return cleaned
}

// CleanSet cleans every table of a set in place, preserving order and
// diagnostics.
func (c *Cleaner) CleanSet(set *model.TableSet) *model.TableSet {
	out := &model.TableSet{Diagnostics: set.Diagnostics}
	for _, t := range set.Tables {
		out.Tables = append(out.Tables, c.Clean(t))
	}
	return out
}

// dropEmptyRows removes rows whose blank-cell ratio exceeds the threshold.
func (c *Cleaner) dropEmptyRows(t *model.Table) *model.Table {
	kept := make([]model.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row.EmptinessRatio() > c.config.MaxEmptiness {
			continue
		}
		kept = append(kept, row)
	}
	return t.WithRows(kept)
}

// dropFooterRows removes rows matching footer markers that slipped past the
// classifier, typically because a signature block landed inside calibrated
// columns.
func (c *Cleaner) dropFooterRows(t *model.Table) *model.Table {
	kept := make([]model.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if matchesAny(strings.Join(row.Texts(), " "), c.matchers.FooterMarkers) {
			continue
		}
		kept = append(kept, row)
	}
	return t.WithRows(kept)
}

// dropRepeatedHeaders removes header-looking rows that reappear mid-table,
// an artifact of documents that repeat the header under each page banner.
// The first occurrence of each is preserved, so the pass is idempotent.
func (c *Cleaner) dropRepeatedHeaders(t *model.Table) *model.Table {
	seen := make(map[string]bool)
	kept := make([]model.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		texts := row.Texts()
		if c.looksLikeHeader(texts) {
			key := Normalize(strings.Join(texts, " "))
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		kept = append(kept, row)
	}
	return t.WithRows(kept)
}

// looksLikeHeader reports whether a row's cell texts match any known header
// vocabulary.
func (c *Cleaner) looksLikeHeader(texts []string) bool {
	nonEmpty := make([]string, 0, len(texts))
	for _, s := range texts {
		if strings.TrimSpace(s) != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	for _, m := range c.matchers.Headers {
		if _, ok := m.MatchHeader(nonEmpty); ok {
			return true
		}
	}
	return false
}
