package layout

import (
	"testing"

	"github.com/tsawler/tableau/model"
)

func pageWithLeading(texts ...string) []Line {
	var lines []Line
	for i, text := range texts {
		y := float64(i * 20)
		lines = append(lines, NewLineGrouper().Group([]model.Token{
			tok(text, 10, y, 200, y+12),
		})...)
	}
	return lines
}

func TestBannerDetectedAcrossPages(t *testing.T) {
	pages := [][]Line{
		pageWithLeading("SNCF RESEAU", "Dossier 42", "Indice A"),
		pageWithLeading("SNCF  RESEAU", "Dossier 42", "autre contenu"),
		pageWithLeading("SNCF RESEAU", "page finale"),
	}

	result := NewBannerDetector().Detect(pages)

	if !result.IsBanner("SNCF RESEAU") {
		t.Error("expected 'SNCF RESEAU' to be a banner")
	}
	// whitespace jitter must not matter
	if !result.IsBanner("sncf   reseau") {
		t.Error("expected banner match to ignore case and spacing")
	}
	if !result.IsBanner("Dossier 42") {
		t.Error("expected 'Dossier 42' (2 of 3 pages) to be a banner")
	}
	if result.IsBanner("Indice A") {
		t.Error("'Indice A' appears once and must not be a banner")
	}
}

func TestBannerNeedsEnoughPages(t *testing.T) {
	pages := [][]Line{
		pageWithLeading("SNCF RESEAU"),
	}
	result := NewBannerDetector().Detect(pages)
	if result.IsBanner("SNCF RESEAU") {
		t.Error("single page must not produce banners")
	}
}

func TestBannerOnlyLeadingLinesCount(t *testing.T) {
	pages := [][]Line{
		pageWithLeading("a", "b", "c", "tableau récapitulatif"),
		pageWithLeading("x", "y", "z", "tableau récapitulatif"),
	}
	result := NewBannerDetector().Detect(pages)
	if result.IsBanner("tableau récapitulatif") {
		t.Error("text beyond the leading lines must not become a banner")
	}
}

func TestBannerNilResultIsSafe(t *testing.T) {
	var result *BannerResult
	if result.IsBanner("anything") {
		t.Error("nil result must report no banners")
	}
}
