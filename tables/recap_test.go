package tables

import (
	"testing"

	"github.com/tsawler/tableau/model"
)

func TestRecapTotals(t *testing.T) {
	p := NewRecapParser()
	p.Add(textLine("TOTAL 5 12 345,67 €"))
	p.Add(textLine("TOTAL 7 15 000,00 €"))

	block := p.Block()
	if block == nil {
		t.Fatal("expected a recap block")
	}
	if block.Total5 != "12345,67" {
		t.Errorf("expected Total5 '12345,67', got %q", block.Total5)
	}
	if block.Total7 != "15000,00" {
		t.Errorf("expected Total7 '15000,00', got %q", block.Total7)
	}
}

func TestRecapFactors(t *testing.T) {
	p := NewRecapParser()
	p.Add(textLine("Frais de chantier 0,10 soit : 1 234,56 €"))
	p.Add(textLine("Marge bénéficiaire 0,05 soit : 617,28 €"))

	block := p.Block()
	if block == nil {
		t.Fatal("expected a recap block")
	}
	if len(block.Factors) != 2 {
		t.Fatalf("expected 2 factors, got %d", len(block.Factors))
	}

	f := block.Factors[0]
	if f.Name != "frais_chantier" {
		t.Errorf("expected factor name 'frais_chantier', got %q", f.Name)
	}
	if f.Percent != "10%" {
		t.Errorf("expected percent '10%%', got %q", f.Percent)
	}
	if f.Amount != "1234,56" {
		t.Errorf("expected amount '1234,56', got %q", f.Amount)
	}

	if block.Factors[1].Percent != "5%" {
		t.Errorf("expected percent '5%%', got %q", block.Factors[1].Percent)
	}
}

func TestRecapFinalPrice(t *testing.T) {
	p := NewRecapParser()
	p.Add(textLine("PRIX DE VENTE 18 519,51 €"))
	p.Add(textLine("Arrondi 18 520,00 €"))
	p.Add(textLine("25% Total A 14 814,80 €"))

	block := p.Block()
	if block == nil {
		t.Fatal("expected a recap block")
	}
	if block.SalePrice != "18519,51" {
		t.Errorf("expected sale price '18519,51', got %q", block.SalePrice)
	}
	if block.Rounded != "18520,00" {
		t.Errorf("expected rounded '18520,00', got %q", block.Rounded)
	}
	if block.TotalA.Amount != "14814,80" {
		t.Errorf("expected TotalA amount '14814,80', got %q", block.TotalA.Amount)
	}
	if block.TotalA.Percent != "25%" {
		t.Errorf("expected TotalA percent '25%%', got %q", block.TotalA.Percent)
	}
	if block.TotalB != (model.RecapTotal{}) {
		t.Errorf("expected TotalB untouched, got %+v", block.TotalB)
	}
}

// The source documents combine several recap fields on one physical line;
// every marker must bind the value following its own occurrence.
func TestRecapCombinedLines(t *testing.T) {
	p := NewRecapParser()
	p.Add(textLine("TOTAL PRIX SECS TOTAL 5 : 12 345,67 € TOTAL 7 : 15 000,00 €"))
	p.Add(textLine("K1 Frais de chantier, en % du total 5 : 0,10 soit : 1 337,24 € K4 Frais de chantier, en % du total 7 : 0,15 soit : 2 005,86 €"))
	p.Add(textLine("25% Total A 10 029,28 € 15% Total B 14 398,19"))
	p.Add(textLine("PRIX DE VENTE HORS TAXES ( (A) + (B) ) : 18 519,51 Arrondi à : 18 520,00 €"))

	block := p.Block()
	if block == nil {
		t.Fatal("expected a recap block")
	}

	if block.Total5 != "12345,67" {
		t.Errorf("expected Total5 '12345,67', got %q", block.Total5)
	}
	if block.Total7 != "15000,00" {
		t.Errorf("expected Total7 '15000,00', got %q", block.Total7)
	}

	if len(block.Factors) != 2 {
		t.Fatalf("expected both factor segments, got %d: %+v", len(block.Factors), block.Factors)
	}
	first, second := block.Factors[0], block.Factors[1]
	if first.Name != "frais_chantier" || first.Percent != "10%" || first.Amount != "1337,24" {
		t.Errorf("unexpected first factor %+v", first)
	}
	if second.Name != "frais_chantier_2" || second.Percent != "15%" || second.Amount != "2005,86" {
		t.Errorf("unexpected second factor %+v", second)
	}

	if block.TotalA.Percent != "25%" || block.TotalA.Amount != "10029,28" {
		t.Errorf("unexpected TotalA %+v", block.TotalA)
	}
	if block.TotalB.Percent != "15%" || block.TotalB.Amount != "14398,19" {
		t.Errorf("unexpected TotalB %+v", block.TotalB)
	}

	if block.SalePrice != "18519,51" {
		t.Errorf("expected sale price '18519,51', got %q", block.SalePrice)
	}
	if block.Rounded != "18520,00" {
		t.Errorf("expected rounded '18520,00', got %q", block.Rounded)
	}
}

func TestRecapEmptyBlock(t *testing.T) {
	p := NewRecapParser()
	if p.Block() != nil {
		t.Error("expected nil block before any line")
	}

	p.Add(textLine("ligne sans identifiant connu"))
	if p.Block() != nil {
		t.Error("expected nil block after unrecognized line")
	}
}

func TestRecapMapFlattening(t *testing.T) {
	p := NewRecapParser()
	p.Add(textLine("TOTAL 5 12 345,67 €"))
	p.Add(textLine("Frais de chantier 0,10 soit : 1 234,56 €"))

	m := p.Block().Map()
	if m["total_5"] != "12345,67" {
		t.Errorf("expected map total_5 '12345,67', got %q", m["total_5"])
	}
	if m["frais_chantier_pct"] != "10%" {
		t.Errorf("expected map frais_chantier_pct '10%%', got %q", m["frais_chantier_pct"])
	}
	if m["frais_chantier_amount"] != "1234,56" {
		t.Errorf("expected map frais_chantier_amount '1234,56', got %q", m["frais_chantier_amount"])
	}
}
