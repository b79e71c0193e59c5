package tables

import (
	"testing"

	"github.com/tsawler/tableau/model"
)

func TestCalibrateFromRevisionHeader(t *testing.T) {
	lines := groupPage(revisionHeaderTokens(0, 50))
	cals := NewCalibrator(DefaultMatcherSet()).Calibrate(lines)

	if len(cals) != 1 {
		t.Fatalf("expected 1 calibration, got %d", len(cals))
	}

	cal := cals[0]
	if cal.Strategy != StrategyHeader {
		t.Errorf("expected header strategy, got %s", cal.Strategy)
	}
	if cal.Kind != model.KindMain {
		t.Errorf("expected MAIN kind, got %s", cal.Kind)
	}
	if len(cal.Columns) != 6 {
		t.Fatalf("expected 6 columns, got %d", len(cal.Columns))
	}
	if cal.Columns[0].Label != "Indice" {
		t.Errorf("expected first column labeled 'Indice', got %q", cal.Columns[0].Label)
	}
	if cal.Columns[5].Label != "Approbateur" {
		t.Errorf("expected last column labeled 'Approbateur', got %q", cal.Columns[5].Label)
	}

	for i := 1; i < len(cal.Columns); i++ {
		prev, cur := cal.Columns[i-1], cal.Columns[i]
		if cur.XMin < prev.XMax {
			t.Errorf("columns %d and %d overlap: %f < %f", i-1, i, cur.XMin, prev.XMax)
		}
		if cur.Index != i {
			t.Errorf("expected column index %d, got %d", i, cur.Index)
		}
	}
}

func TestCalibrateHeaderIsAccentInsensitive(t *testing.T) {
	// Uppercase, diacritic-free rendering of the same header
	tokens := rowTokens(0, 50, revisionXs, []string{
		"INDICE", "DATE", "MODIFICATIONS", "REDACTEUR", "VERIFICATEUR", "APPROBATEUR",
	})
	cals := NewCalibrator(DefaultMatcherSet()).Calibrate(groupPage(tokens))

	if len(cals) != 1 || cals[0].Strategy != StrategyHeader {
		t.Fatalf("expected one header calibration, got %+v", cals)
	}
}

// A header line can lose its leading label to OCR damage or cropping; the
// minimum-match threshold must still be reachable from the labels that
// survived.
func TestCalibrateHeaderMissingLeadingLabel(t *testing.T) {
	tokens := rowTokens(0, 50, []float64{100, 180, 330, 430, 530}, []string{
		"Date", "Modifications", "Rédacteur", "Vérificateur", "Approbateur",
	})
	cals := NewCalibrator(DefaultMatcherSet()).Calibrate(groupPage(tokens))

	if len(cals) != 1 {
		t.Fatalf("expected 1 calibration, got %d", len(cals))
	}
	cal := cals[0]
	if cal.Strategy != StrategyHeader || cal.Matcher != "revision" {
		t.Fatalf("expected the revision header to calibrate, got %+v", cal)
	}
	if len(cal.Columns) != 5 {
		t.Fatalf("expected 5 columns from the surviving labels, got %d", len(cal.Columns))
	}
	if cal.Columns[0].Label != "Date" {
		t.Errorf("expected first column labeled 'Date', got %q", cal.Columns[0].Label)
	}
}

func TestCalibrateFromAnchorLine(t *testing.T) {
	texts := []string{"a", "b", "1=axb", "2", "3", "4", "5", "h", "m3", "t", "€"}
	xs := make([]float64, len(texts))
	for i := range xs {
		xs[i] = 20 + float64(i)*60
	}
	lines := groupPage(rowTokens(0, 100, xs, texts))

	cals := NewCalibrator(DefaultMatcherSet()).Calibrate(lines)
	if len(cals) != 1 {
		t.Fatalf("expected 1 calibration, got %d", len(cals))
	}

	cal := cals[0]
	if cal.Strategy != StrategyAnchor {
		t.Errorf("expected anchor strategy, got %s", cal.Strategy)
	}
	if len(cal.Columns) != len(texts) {
		t.Errorf("expected %d columns (one per token), got %d", len(texts), len(cal.Columns))
	}
	for i := 1; i < len(cal.Columns); i++ {
		if cal.Columns[i].Center() <= cal.Columns[i-1].Center() {
			t.Errorf("column centers not increasing at %d", i)
		}
	}
	for _, col := range cal.Columns {
		if col.Label != "" {
			t.Errorf("anchor columns carry no label, got %q", col.Label)
		}
	}
}

func TestCalibrateDerivedFromDataLines(t *testing.T) {
	xs := []float64{10, 100, 180, 330, 430, 530}
	var tokens []model.Token
	tokens = append(tokens, rowTokens(0, 70, xs, []string{"B", "12/02/2023", "Mise a jour", "L. DROUVIN", "L. DROUVIN", "T. DEVINS"})...)
	tokens = append(tokens, rowTokens(0, 90, xs, []string{"C", "15/03/2023", "Corrections", "L. DROUVIN", "L. DROUVIN", "T. DEVINS"})...)

	cals := NewCalibrator(DefaultMatcherSet()).Calibrate(groupPage(tokens))
	if len(cals) != 1 {
		t.Fatalf("expected 1 calibration, got %d", len(cals))
	}
	if cals[0].Strategy != StrategyDerived {
		t.Errorf("expected derived strategy, got %s", cals[0].Strategy)
	}
	if len(cals[0].Columns) != 6 {
		t.Errorf("expected 6 derived columns, got %d", len(cals[0].Columns))
	}
	if cals[0].Kind != model.KindGeneric {
		t.Errorf("expected GENERIC kind for derived calibration, got %s", cals[0].Kind)
	}
}

func TestCalibrateNothingUsable(t *testing.T) {
	// Single-span lines offer no layout signal at all.
	var tokens []model.Token
	tokens = append(tokens, rowTokens(0, 50, []float64{10}, []string{"paragraph"})...)
	tokens = append(tokens, rowTokens(0, 70, []float64{10}, []string{"prose"})...)

	cals := NewCalibrator(DefaultMatcherSet()).Calibrate(groupPage(tokens))
	if cals != nil {
		t.Errorf("expected no calibration, got %d", len(cals))
	}
}
