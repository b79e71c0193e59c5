package layout

import (
	"testing"

	"github.com/tsawler/tableau/model"
)

func tok(text string, x0, y0, x1, y1 float64) model.Token {
	return model.Token{Text: text, BBox: model.BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}}
}

func TestLineGroupingByVerticalBand(t *testing.T) {
	tokens := []model.Token{
		tok("world", 60, 10, 90, 22),
		tok("hello", 10, 11, 40, 23),
		tok("below", 10, 40, 40, 52),
	}

	lines := NewLineGrouper().Group(tokens)

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := lines[0].Text(); got != "hello world" {
		t.Errorf("expected 'hello world', got %q", got)
	}
	if got := lines[1].Text(); got != "below" {
		t.Errorf("expected 'below', got %q", got)
	}
	if lines[0].Index != 0 || lines[1].Index != 1 {
		t.Error("line indices not assigned top to bottom")
	}
}

func TestLineGroupingIgnoresDiscoveryOrder(t *testing.T) {
	// same y, supplied in scrambled order: must land in one line, sorted by x
	tokens := []model.Token{
		tok("c", 200, 10, 210, 20),
		tok("a", 10, 10, 20, 20),
		tok("b", 100, 10, 110, 20),
	}

	lines := NewLineGrouper().Group(tokens)

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if got := lines[0].Text(); got != "a b c" {
		t.Errorf("expected 'a b c', got %q", got)
	}
}

func TestLineToleranceSplitsRows(t *testing.T) {
	tokens := []model.Token{
		tok("top", 10, 10, 30, 20),
		tok("near", 50, 13, 80, 23), // within default tolerance of 4
		tok("far", 100, 22, 130, 32),
	}

	lines := NewLineGrouper().Group(tokens)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := lines[0].Text(); got != "top near" {
		t.Errorf("expected 'top near', got %q", got)
	}

	// a tighter tolerance splits the first pair too
	tight := NewLineGrouperWithConfig(LineConfig{YTolerance: 1.0})
	if got := len(tight.Group(tokens)); got != 3 {
		t.Errorf("expected 3 lines with tight tolerance, got %d", got)
	}
}

func TestLineGroupingEmptyInput(t *testing.T) {
	if lines := NewLineGrouper().Group(nil); lines != nil {
		t.Errorf("expected nil for empty input, got %v", lines)
	}
}

func TestLineIsEmpty(t *testing.T) {
	blank := Line{Tokens: []model.Token{tok("  ", 0, 0, 5, 5)}}
	if !blank.IsEmpty() {
		t.Error("expected whitespace-only line to be empty")
	}
	full := Line{Tokens: []model.Token{tok("x", 0, 0, 5, 5)}}
	if full.IsEmpty() {
		t.Error("expected non-blank line to be non-empty")
	}
}
