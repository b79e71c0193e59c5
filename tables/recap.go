package tables

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/tsawler/tableau/model"
)

// recapFactorKeys maps the folded marker of a percentage/amount adjustment
// to the key its values are recorded under.
var recapFactorKeys = []struct {
	marker string
	key    string
}{
	{"frais de chantier", "frais_chantier"},
	{"frais proportionnels", "frais_proportionnels"},
	{"alea technique", "alea_technique"},
	{"alea commercial", "alea_commercial"},
	{"marge beneficiaire", "marge_beneficiaire"},
}

var (
	// trailingCoefficient matches the coefficient or percentage that closes
	// the text before a "soit :" connector ("0,10", "25 %").
	trailingCoefficient = regexp.MustCompile(`(\d+(?:,\d+)?)\s*%?$`)

	// leadingPercent matches a percentage sitting immediately before a
	// subtotal marker ("25% Total A ...").
	leadingPercent = regexp.MustCompile(`(\d+)\s*%$`)

	// coefficientSplit separates the coefficient part of a factor segment
	// from the amount part ("... 0,10 soit : 1 234,56 €")
	coefficientSplit = regexp.MustCompile(`(?i)soit\s*:?`)
)

// RecapParser accumulates classified recap lines into a structured block:
// running subtotals, their percentage/amount adjustment factors, and the
// final price. One parser instance serves one table.
type RecapParser struct {
	block model.RecapBlock
}

// NewRecapParser creates an empty recap parser.
func NewRecapParser() *RecapParser {
	return &RecapParser{}
}

// Add parses one recap-classified line into the block. The documents combine
// several fields on one physical line ("TOTAL 5 ... TOTAL 7 ...", paired
// factor segments each with their own "soit :" connector), so every marker
// present is parsed from the text following its own occurrence. Lines that
// carry a known identifier but no parseable value are ignored.
func (p *RecapParser) Add(line GroupedLine) {
	text := fold(line.Text())

	// Factor lines mention subtotals in prose ("en % du total 5"), so they
	// are recognized before the subtotal markers.
	if p.addFactors(text) {
		return
	}

	switch {
	case strings.Contains(text, "total 5") || strings.Contains(text, "total 7"):
		setIfFound(&p.block.Total5, amountAfter(text, "total 5"))
		setIfFound(&p.block.Total7, amountAfter(text, "total 7"))
	case strings.Contains(text, "total a") || strings.Contains(text, "total b"):
		if t, ok := parseSubTotal(text, "total a"); ok {
			p.block.TotalA = t
		}
		if t, ok := parseSubTotal(text, "total b"); ok {
			p.block.TotalB = t
		}
	case strings.Contains(text, "prix de vente") || strings.Contains(text, "arrondi"):
		setIfFound(&p.block.SalePrice, amountAfter(text, "prix de vente"))
		setIfFound(&p.block.Rounded, amountAfter(text, "arrondi"))
	}
}

// Block returns the accumulated block, or nil when nothing was parsed.
func (p *RecapParser) Block() *model.RecapBlock {
	if p.block.IsEmpty() {
		return nil
	}
	return &p.block
}

// addFactors parses every adjustment-factor segment of the line. A marker can
// occur more than once (the same factor applied to each running subtotal);
// each occurrence owns the text up to the next marker, and repeats are
// recorded under a numbered name. Returns true when the line carried at least
// one factor marker.
func (p *RecapParser) addFactors(text string) bool {
	type occurrence struct {
		key string
		pos int
	}
	var found []occurrence
	for _, fk := range recapFactorKeys {
		at := 0
		for {
			i := strings.Index(text[at:], fk.marker)
			if i < 0 {
				break
			}
			found = append(found, occurrence{key: fk.key, pos: at + i})
			at += i + len(fk.marker)
		}
	}
	if len(found) == 0 {
		return false
	}
	sort.Slice(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	seen := make(map[string]int)
	for i, occ := range found {
		end := len(text)
		if i+1 < len(found) {
			end = found[i+1].pos
		}
		percent, amount := parseFactor(text[occ.pos:end])
		if percent == "" && amount == "" {
			continue
		}

		name := occ.key
		seen[occ.key]++
		if n := seen[occ.key]; n > 1 {
			name += "_" + strconv.Itoa(n)
		}
		p.block.Factors = append(p.block.Factors, model.RecapFactor{
			Name:    name,
			Percent: percent,
			Amount:  amount,
		})
	}
	return true
}

// parseFactor splits one factor segment around its "soit :" connector: the
// coefficient closes the text before it, the resulting amount follows it.
func parseFactor(text string) (percent, amount string) {
	parts := coefficientSplit.Split(text, 2)
	if m := trailingCoefficient.FindStringSubmatch(strings.TrimSpace(parts[0])); m != nil {
		percent = coefficientToPercent(m[1])
	}
	if len(parts) == 2 {
		amount = firstAmount(parts[1])
	}
	return percent, amount
}

// parseSubTotal extracts the "25% Total A 10 029,28 €" form: an optional
// percentage immediately before the marker, the first amount after it.
func parseSubTotal(text, marker string) (model.RecapTotal, bool) {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return model.RecapTotal{}, false
	}
	total := model.RecapTotal{Amount: firstAmount(text[idx+len(marker):])}
	if m := leadingPercent.FindStringSubmatch(strings.TrimSpace(text[:idx])); m != nil {
		total.Percent = m[1] + "%"
	}
	if total == (model.RecapTotal{}) {
		return total, false
	}
	return total, true
}

// coefficientToPercent renders a decimal coefficient as a percentage string:
// "0,10" becomes "10%", "0,05" becomes "5%". Coefficients at or above one
// are kept as-is with a percent mark.
func coefficientToPercent(coeff string) string {
	if coeff == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(coeff, "0,"); ok {
		rest = strings.TrimLeft(rest, "0")
		if rest == "" {
			rest = "0"
		}
		return rest + "%"
	}
	return coeff + "%"
}

// amountAfter returns the first amount following the marker's occurrence in
// the text, or "" when the marker is absent.
func amountAfter(text, marker string) string {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return ""
	}
	return firstAmount(text[idx+len(marker):])
}

// firstAmount returns the first amount-like token of the text, cleaned:
// internal thousands spaces stripped, currency mark removed.
func firstAmount(text string) string {
	m := amountPattern.FindString(text)
	if m == "" {
		return ""
	}
	return cleanAmount(m)
}

// setIfFound assigns only when a value was actually extracted, so a later
// line can never blank a field an earlier line filled.
func setIfFound(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// cleanAmount strips whitespace (including the no-break thousands separators
// French layouts use) and the currency mark from an amount while keeping the
// comma decimal separator.
func cleanAmount(s string) string {
	s = strings.ReplaceAll(s, "€", "")
	var sb strings.Builder
	for _, r := range s {
		if !unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
