package tables

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/tableau/model"
)

// HeaderMatcher describes one known table header vocabulary. When a line's
// spans match the expected labels in order, the line calibrates columns for
// a table of the given kind.
type HeaderMatcher struct {
	// Name identifies the matcher in diagnostics
	Name string

	// Kind is the table kind a match produces
	Kind model.TableKind

	// Labels are the expected header texts, left to right. Matching is
	// case-, diacritic- and punctuation-insensitive.
	Labels []string

	// MinMatches is the minimum number of labels that must match for the
	// line to be accepted as a header. Zero means all labels must match.
	MinMatches int
}

// AnchorMatcher describes the structural shape of an anchor line: a row of
// short formula-like tokens whose x-centers define column boundaries.
type AnchorMatcher struct {
	// Name identifies the matcher in diagnostics
	Name string

	// Kind is the table kind a match produces
	Kind model.TableKind

	// MaxTokenLen is the longest a span may be to count as a formula
	// fragment (anchor lines are made of short markers like "a", "m3",
	// "1=axb").
	MaxTokenLen int

	// MinTokens is the minimum span count for the line to qualify.
	MinTokens int

	// RequiredSubstring must appear in at least one span (typically "=").
	RequiredSubstring string
}

// MatcherSet is the injected document-family knowledge the pipeline consults:
// header vocabularies for calibration, anchor-line shapes, and the footer and
// recap markers the classifier and cleaner look for.
type MatcherSet struct {
	// Headers are tried in order; the first matching line wins.
	Headers []HeaderMatcher

	// Anchors are tried when no header line is found.
	Anchors []AnchorMatcher

	// FooterMarkers are normalized substrings that flag a line as a footer
	// (signature blocks, visa rows, event logs).
	FooterMarkers []string

	// RecapMarkers are normalized prefixes that flag a line as part of a
	// recap summary block.
	RecapMarkers []string
}

// DefaultMatcherSet returns the matcher set for technical drawing cartouches:
// a revision table, a footer identification band, an anchor-calibrated price
// breakdown, and the French summary-row vocabulary.
func DefaultMatcherSet() MatcherSet {
	return MatcherSet{
		Headers: []HeaderMatcher{
			{
				Name: "revision",
				Kind: model.KindMain,
				Labels: []string{
					"Indice", "Date", "Modifications",
					"Rédacteur", "Vérificateur", "Approbateur",
				},
				MinMatches: 4,
			},
			{
				Name: "identification",
				Kind: model.KindFooterBand,
				Labels: []string{
					"SOCIETE", "AXE", "POINT DE REPERE", "PHASE",
					"DOMAINE", "NOM D'OUVRAGE", "SENS", "DOCUMENT",
					"NUMERO D'ORDRE", "INDICE",
				},
				MinMatches: 6,
			},
		},
		Anchors: []AnchorMatcher{
			{
				Name:              "formula",
				Kind:              model.KindMain,
				MaxTokenLen:       6,
				MinTokens:         5,
				RequiredSubstring: "=",
			},
		},
		FooterMarkers: []string{
			"evenements marquants",
			"visa",
			"date :",
		},
		RecapMarkers: []string{
			"total 5",
			"total 7",
			"frais de chantier",
			"frais proportionnels",
			"alea technique",
			"alea commercial",
			"marge beneficiaire",
			"total a",
			"total b",
			"prix de vente",
			"arrondi",
		},
	}
}

// normalizer strips diacritical marks so "Rédacteur" and "REDACTEUR" compare
// equal after lowercasing.
var normalizer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// fold lowercases and strips diacritics while leaving digits, punctuation
// and spacing intact, so substring searches and value extraction work on the
// same text.
func fold(s string) string {
	out, _, err := transform.String(normalizer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Normalize lowercases, strips diacritics and punctuation, and collapses
// whitespace, producing the canonical form all matching works on.
func Normalize(s string) string {
	var sb strings.Builder
	lastSpace := true
	for _, r := range fold(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastSpace = false
		case r == ':' || r == '=' || r == '%':
			// kept: structurally significant for anchors and recap rows
			sb.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				sb.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// MatchHeader scans the span texts positionally against the matcher's labels
// and returns the indices of the spans that matched, in left-to-right order,
// along with whether enough labels matched to accept the line as a header.
func (m HeaderMatcher) MatchHeader(spanTexts []string) (indices []int, ok bool) {
	if len(spanTexts) == 0 {
		return nil, false
	}
	want := make([]string, len(m.Labels))
	for i, l := range m.Labels {
		want[i] = Normalize(l)
	}

	// Positional scan: spans and labels advance together, but a span may
	// consume a later label, so a missing or mangled label costs only itself
	// and not everything after it.
	wi := 0
	for si, text := range spanTexts {
		if wi >= len(want) {
			break
		}
		n := Normalize(text)
		for wj := wi; wj < len(want); wj++ {
			if n == want[wj] {
				indices = append(indices, si)
				wi = wj + 1
				break
			}
		}
	}

	need := m.MinMatches
	if need <= 0 {
		need = len(m.Labels)
	}
	return indices, len(indices) >= need
}

// MatchAnchor reports whether the given span texts form an anchor line under
// this matcher.
func (m AnchorMatcher) MatchAnchor(spanTexts []string) bool {
	if len(spanTexts) < m.MinTokens {
		return false
	}
	hasRequired := m.RequiredSubstring == ""
	for _, text := range spanTexts {
		t := strings.TrimSpace(text)
		if t == "" || len([]rune(t)) > m.MaxTokenLen {
			return false
		}
		if !hasRequired && strings.Contains(t, m.RequiredSubstring) {
			hasRequired = true
		}
	}
	return hasRequired
}

// matchesAny reports whether the normalized text contains any of the given
// normalized markers.
func matchesAny(text string, markers []string) bool {
	n := Normalize(text)
	for _, marker := range markers {
		if strings.Contains(n, Normalize(marker)) {
			return true
		}
	}
	return false
}
