package model

// Token is an atomic positioned text fragment from a page. Tokens are
// produced by a token source and never mutated by the pipeline; grouping
// stages only reference them.
type Token struct {
	Text string
	BBox BBox
	Page int
}

// PageTokens holds the tokens of a single page as supplied by a token source.
type PageTokens struct {
	PageIndex int
	Tokens    []Token
}

// PageRegions holds optional candidate table regions for a page, as supplied
// by an external region detector. Regions are only ever used to pre-filter
// tokens before grouping.
type PageRegions struct {
	PageIndex int
	Boxes     []BBox
}

// FilterTokens returns the tokens whose centers fall inside any of the
// regions. With no regions configured, all tokens pass through.
func (r PageRegions) FilterTokens(tokens []Token) []Token {
	if len(r.Boxes) == 0 {
		return tokens
	}
	filtered := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		for _, box := range r.Boxes {
			if box.Contains(tok.BBox.CenterX(), tok.BBox.CenterY()) {
				filtered = append(filtered, tok)
				break
			}
		}
	}
	return filtered
}
