package layout

import (
	"strings"

	"github.com/tsawler/tableau/model"
)

// Span is a contiguous group of tokens within a line, merged by horizontal
// proximity. A span is a candidate for exactly one table cell.
type Span struct {
	// Tokens are the constituent tokens (sorted left to right)
	Tokens []model.Token

	// Text is the token texts joined with single spaces
	Text string

	// BBox is the union of the token bounding boxes
	BBox model.BBox
}

// CenterX returns the horizontal center of the span.
func (s Span) CenterX() float64 {
	return s.BBox.CenterX()
}

// SpanConfig holds configuration for proximity grouping.
type SpanConfig struct {
	// GapThreshold is the maximum horizontal gap between a token and the
	// previous token's right edge for both to share a span.
	GapThreshold float64

	// CurrencyGlueGap is the wider gap allowed for a lone currency symbol,
	// which belongs to the preceding amount even across a larger space.
	CurrencyGlueGap float64

	// CurrencySymbol is the symbol the gluing rule applies to.
	CurrencySymbol string

	// Units lists measurement-unit tokens that get split into their own
	// span when they trail a longer description span.
	Units map[string]bool
}

// DefaultSpanConfig returns sensible default configuration.
func DefaultSpanConfig() SpanConfig {
	return SpanConfig{
		GapThreshold:    12.0,
		CurrencyGlueGap: 25.0,
		CurrencySymbol:  "€",
		Units: map[string]bool{
			"m": true, "m2": true, "m3": true, "ml": true,
			"h": true, "t": true, "j": true, "u": true,
			"kg": true, "l": true, "ens": true, "forf": true, "km": true,
		},
	}
}

// SpanGrouper merges adjacent tokens within a line into cell-candidate
// spans. It must run before column assignment because raw tokenization may
// split what is semantically one field into several tokens.
type SpanGrouper struct {
	config SpanConfig
}

// NewSpanGrouper creates a span grouper with default configuration.
func NewSpanGrouper() *SpanGrouper {
	return &SpanGrouper{config: DefaultSpanConfig()}
}

// NewSpanGrouperWithConfig creates a span grouper with custom configuration.
func NewSpanGrouperWithConfig(config SpanConfig) *SpanGrouper {
	return &SpanGrouper{config: config}
}

// Group merges the line's tokens into spans, left to right. A new span
// starts whenever the gap to the previous token's right edge exceeds the
// threshold; the currency symbol is glued to the preceding span across a
// wider gap.
func (g *SpanGrouper) Group(line Line) []Span {
	if len(line.Tokens) == 0 {
		return nil
	}

	var spans []Span
	current := []model.Token{line.Tokens[0]}
	lastRight := line.Tokens[0].BBox.X1

	for _, tok := range line.Tokens[1:] {
		gap := tok.BBox.X0 - lastRight

		switch {
		case tok.Text == g.config.CurrencySymbol && gap < g.config.CurrencyGlueGap:
			current = append(current, tok)
		case gap < g.config.GapThreshold:
			current = append(current, tok)
		default:
			spans = append(spans, buildSpan(current))
			current = []model.Token{tok}
		}
		lastRight = tok.BBox.X1
	}
	spans = append(spans, buildSpan(current))

	spans = g.fuseDashCurrency(spans)
	spans = g.splitTrailingUnits(spans)

	return spans
}

// fuseDashCurrency joins a lone "-" span with a following lone currency
// span (an empty amount rendered as "- €") and drops currency symbols left
// isolated after gluing.
func (g *SpanGrouper) fuseDashCurrency(spans []Span) []Span {
	cleaned := make([]Span, 0, len(spans))
	for i := 0; i < len(spans); i++ {
		s := spans[i]
		if s.Text == "-" && i+1 < len(spans) && spans[i+1].Text == g.config.CurrencySymbol {
			merged := append(append([]model.Token{}, s.Tokens...), spans[i+1].Tokens...)
			cleaned = append(cleaned, buildSpan(merged))
			i++
			continue
		}
		if s.Text == g.config.CurrencySymbol {
			continue
		}
		cleaned = append(cleaned, s)
	}
	return cleaned
}

// splitTrailingUnits separates a measurement unit that proximity grouping
// fused onto the end of a longer span (typically a description followed
// closely by its unit) into its own span.
func (g *SpanGrouper) splitTrailingUnits(spans []Span) []Span {
	result := make([]Span, 0, len(spans))
	for _, s := range spans {
		if len(s.Tokens) > 1 {
			last := s.Tokens[len(s.Tokens)-1]
			if g.config.Units[strings.ToLower(last.Text)] {
				result = append(result,
					buildSpan(s.Tokens[:len(s.Tokens)-1]),
					buildSpan(s.Tokens[len(s.Tokens)-1:]))
				continue
			}
		}
		result = append(result, s)
	}
	return result
}

// buildSpan assembles a span from its constituent tokens.
func buildSpan(tokens []model.Token) Span {
	span := Span{
		Tokens: tokens,
		BBox:   tokens[0].BBox,
	}
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(tok.Text)
		span.BBox = span.BBox.Union(tok.BBox)
	}
	span.Text = sb.String()
	return span
}
