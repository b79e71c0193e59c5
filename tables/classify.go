package tables

import (
	"regexp"

	"github.com/tsawler/tableau/layout"
	"github.com/tsawler/tableau/model"
)

// amountPattern recognizes French-formatted amounts: three-digit groups
// separated by spaces (plain or no-break), a comma decimal, an optional
// currency mark. The strict grouping keeps a totals identifier next to an
// amount ("TOTAL 5 12 345,67") from being swallowed into it.
var amountPattern = regexp.MustCompile(`\d{1,3}(?:[\s\x{00A0}\x{202F}]\d{3})*,\d+\s*€?`)

// Classifier tags grouped lines with a row class. Rules run in priority
// order: page banner, header, recap, footer, data. Classification never
// fails; a line no rule claims is data by policy.
type Classifier struct {
	matchers MatcherSet
}

// NewClassifier creates a classifier using the given matcher set.
func NewClassifier(matchers MatcherSet) *Classifier {
	return &Classifier{matchers: matchers}
}

// Classify returns the class of one line. The banner result may be nil when
// no cross-page banner detection ran.
func (c *Classifier) Classify(line GroupedLine, banner *layout.BannerResult) model.RowClass {
	text := line.Text()

	if banner.IsBanner(text) {
		return model.ClassPageBanner
	}

	texts := line.SpanTexts()
	for _, m := range c.matchers.Headers {
		if _, ok := m.MatchHeader(texts); ok {
			return model.ClassHeader
		}
	}

	// Recap rows carry a totals identifier and at least one amount-like
	// token; a marker alone (say, inside prose) is not enough.
	if matchesAny(text, c.matchers.RecapMarkers) && amountPattern.MatchString(text) {
		return model.ClassRecap
	}

	if matchesAny(text, c.matchers.FooterMarkers) {
		return model.ClassFooter
	}

	return model.ClassData
}
