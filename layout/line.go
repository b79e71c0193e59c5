package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/tableau/model"
)

// Line represents tokens sharing a vertical band on a page, ordered left to
// right.
type Line struct {
	// Tokens are the tokens that make up this line (sorted left to right)
	Tokens []model.Token

	// BBox is the bounding box of the line
	BBox model.BBox

	// Page is the page index the line belongs to
	Page int

	// YCenter is the average vertical center of the line's tokens
	YCenter float64

	// Index is the line's position on the page (0-based, top to bottom)
	Index int
}

// Text returns the line's token texts joined with single spaces.
func (l Line) Text() string {
	var sb strings.Builder
	for i, tok := range l.Tokens {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// IsEmpty returns true if the line has no non-blank token text.
func (l Line) IsEmpty() bool {
	for _, tok := range l.Tokens {
		if strings.TrimSpace(tok.Text) != "" {
			return false
		}
	}
	return true
}

// LineConfig holds configuration for line grouping.
type LineConfig struct {
	// YTolerance is the maximum distance between a token's vertical center
	// and the line's running center for the token to join the line.
	// Larger values merge superscripts and subscripts into the same row;
	// smaller values split rows that mix font sizes.
	YTolerance float64
}

// DefaultLineConfig returns sensible default configuration.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		YTolerance: 4.0,
	}
}

// LineGrouper clusters the tokens of one page into ordered lines by vertical
// position.
type LineGrouper struct {
	config LineConfig
}

// NewLineGrouper creates a line grouper with default configuration.
func NewLineGrouper() *LineGrouper {
	return &LineGrouper{config: DefaultLineConfig()}
}

// NewLineGrouperWithConfig creates a line grouper with custom configuration.
func NewLineGrouperWithConfig(config LineConfig) *LineGrouper {
	return &LineGrouper{config: config}
}

// Group clusters tokens into lines sorted top to bottom. Ordering is purely
// positional: tokens with identical vertical position land in the same line
// regardless of the order the source produced them in.
func (g *LineGrouper) Group(tokens []model.Token) []Line {
	if len(tokens) == 0 {
		return nil
	}

	sorted := make([]model.Token, len(tokens))
	copy(sorted, tokens)
	sort.Slice(sorted, func(i, j int) bool {
		yi, yj := sorted[i].BBox.CenterY(), sorted[j].BBox.CenterY()
		if yi != yj {
			return yi < yj
		}
		return sorted[i].BBox.X0 < sorted[j].BBox.X0
	})

	var lines []Line
	var current []model.Token
	var runningSum float64

	flush := func() {
		if len(current) == 0 {
			return
		}
		lines = append(lines, g.buildLine(current))
		current = nil
		runningSum = 0
	}

	for _, tok := range sorted {
		y := tok.BBox.CenterY()
		if len(current) > 0 {
			center := runningSum / float64(len(current))
			if absFloat64(y-center) > g.config.YTolerance {
				flush()
			}
		}
		current = append(current, tok)
		runningSum += y
	}
	flush()

	for i := range lines {
		lines[i].Index = i
	}

	return lines
}

// buildLine orders a token group left to right and computes its metadata.
func (g *LineGrouper) buildLine(tokens []model.Token) Line {
	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].BBox.X0 < tokens[j].BBox.X0
	})

	line := Line{
		Tokens: tokens,
		Page:   tokens[0].Page,
		BBox:   tokens[0].BBox,
	}

	sum := 0.0
	for _, tok := range tokens {
		line.BBox = line.BBox.Union(tok.BBox)
		sum += tok.BBox.CenterY()
	}
	line.YCenter = sum / float64(len(tokens))

	return line
}

func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
