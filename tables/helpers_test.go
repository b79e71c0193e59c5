package tables

import (
	"strings"

	"github.com/tsawler/tableau/layout"
	"github.com/tsawler/tableau/model"
)

// charWidth is the synthetic glyph width used by the token builders.
const charWidth = 6.0

// rowTokens lays out one visual row of cells: each cell starts at the given
// x, words within a cell sit 4 units apart (close enough to merge into one
// span), and every token is 12 units tall around the given y.
func rowTokens(page int, y float64, xs []float64, cells []string) []model.Token {
	var tokens []model.Token
	for i, cell := range cells {
		x := xs[i]
		for _, word := range strings.Fields(cell) {
			w := charWidth * float64(len([]rune(word)))
			tokens = append(tokens, model.Token{
				Text: word,
				BBox: model.BBox{X0: x, Y0: y - 6, X1: x + w, Y1: y + 6},
				Page: page,
			})
			x += w + 4
		}
	}
	return tokens
}

// groupPage runs the layout stage over raw tokens and pairs every line with
// its spans, the way the engine feeds the tables stage.
func groupPage(tokens []model.Token) []GroupedLine {
	lg := layout.NewLineGrouper()
	sg := layout.NewSpanGrouper()

	var grouped []GroupedLine
	for _, line := range lg.Group(tokens) {
		grouped = append(grouped, GroupedLine{Line: line, Spans: sg.Group(line)})
	}
	return grouped
}

// rawLines returns just the layout lines, for banner detection.
func rawLines(tokens []model.Token) []layout.Line {
	return layout.NewLineGrouper().Group(tokens)
}

// textLine wraps a plain string as a single-token grouped line, for tests
// that only care about line text.
func textLine(s string) GroupedLine {
	tok := model.Token{Text: s, BBox: model.BBox{X1: charWidth * float64(len(s)), Y1: 12}}
	line := layout.Line{Tokens: []model.Token{tok}, BBox: tok.BBox, YCenter: 6}
	return GroupedLine{Line: line, Spans: layout.NewSpanGrouper().Group(line)}
}

var revisionXs = []float64{10, 100, 180, 330, 430, 530}

// revisionHeaderTokens is the six-column revision-table header.
func revisionHeaderTokens(page int, y float64) []model.Token {
	return rowTokens(page, y, revisionXs, []string{
		"Indice", "Date", "Modifications", "Rédacteur", "Vérificateur", "Approbateur",
	})
}

var identificationXs = []float64{10, 70, 110, 220, 270, 330, 430, 470, 540, 640}

// identificationHeaderTokens is the ten-column identification band header.
func identificationHeaderTokens(page int, y float64) []model.Token {
	return rowTokens(page, y, identificationXs, []string{
		"SOCIETE", "AXE", "POINT DE REPERE", "PHASE", "DOMAINE",
		"NOM D'OUVRAGE", "SENS", "DOCUMENT", "NUMERO D'ORDRE", "INDICE",
	})
}
