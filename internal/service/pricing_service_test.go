package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"convoyage-service/internal/model"
)

func newTestSession(t *testing.T, categoryID string, prices map[string]string) *EditSession {
	t.Helper()
	cells := make(map[string]sessionCell, len(model.DistanceTranches))
	for _, tranche := range model.DistanceTranches {
		raw, ok := prices[tranche.ID]
		if !ok {
			raw = "60.00"
		}
		priceHT, err := decimal.NewFromString(raw)
		if err != nil {
			t.Fatalf("bad price %q: %v", raw, err)
		}
		cells[tranche.ID] = sessionCell{
			priceHT:  priceHT,
			priceTTC: model.TTCFromHT(priceHT),
		}
	}
	return &EditSession{categoryID: categoryID, cells: cells}
}

func TestEditSession_SetPriceHTDerivesTTC(t *testing.T) {
	session := newTestSession(t, model.CategoryCitadine, map[string]string{"1-10": "79.00"})

	if err := session.SetPriceHT("1-10", decimal.RequireFromString("85.00")); err != nil {
		t.Fatalf("SetPriceHT: %v", err)
	}

	ht, ttc, ok := session.Cell("1-10")
	if !ok {
		t.Fatal("cell 1-10 missing")
	}
	if !ht.Equal(decimal.RequireFromString("85.00")) {
		t.Errorf("HT = %s, want 85.00", ht)
	}
	if !ttc.Equal(decimal.RequireFromString("102.00")) {
		t.Errorf("TTC = %s, want 102.00", ttc)
	}
}

func TestEditSession_SetPriceTTCDerivesHT(t *testing.T) {
	session := newTestSession(t, model.CategoryBerline, nil)

	if err := session.SetPriceTTC("11-20", decimal.RequireFromString("102.00")); err != nil {
		t.Fatalf("SetPriceTTC: %v", err)
	}

	ht, ttc, ok := session.Cell("11-20")
	if !ok {
		t.Fatal("cell 11-20 missing")
	}
	if !ht.Equal(decimal.RequireFromString("85.00")) {
		t.Errorf("HT = %s, want 85.00", ht)
	}
	if !ttc.Equal(decimal.RequireFromString("102.00")) {
		t.Errorf("TTC = %s, want 102.00", ttc)
	}
}

func TestEditSession_RejectsUnknownTrancheAndNegativePrice(t *testing.T) {
	session := newTestSession(t, model.CategoryCitadine, nil)

	if err := session.SetPriceHT("1-9999", decimal.RequireFromString("50.00")); err != ErrInvalidInput {
		t.Errorf("unknown tranche: err = %v, want ErrInvalidInput", err)
	}
	if err := session.SetPriceHT("1-10", decimal.RequireFromString("-5.00")); err != ErrInvalidInput {
		t.Errorf("negative price: err = %v, want ErrInvalidInput", err)
	}
	if err := session.SetPriceTTC("1-10", decimal.RequireFromString("-5.00")); err != ErrInvalidInput {
		t.Errorf("negative TTC: err = %v, want ErrInvalidInput", err)
	}
}

func TestEditSession_ChangedEntriesTracksOnlyEdits(t *testing.T) {
	session := newTestSession(t, model.CategoryCitadine, nil)

	if entries := session.changedEntries(); len(entries) != 0 {
		t.Fatalf("fresh session has %d changed entries, want 0", len(entries))
	}

	if err := session.SetPriceHT("1-10", decimal.RequireFromString("85.00")); err != nil {
		t.Fatalf("SetPriceHT: %v", err)
	}
	if err := session.SetPriceHT("41-50", decimal.RequireFromString("75.00")); err != nil {
		t.Fatalf("SetPriceHT: %v", err)
	}

	entries := session.changedEntries()
	if len(entries) != 2 {
		t.Fatalf("changed entries = %d, want 2", len(entries))
	}
	for _, entry := range entries {
		if entry.VehicleCategory != model.CategoryCitadine {
			t.Errorf("entry category = %q, want citadine", entry.VehicleCategory)
		}
	}
}

// Editing citadine must mirror every changed cell to berline, and the other
// way round.
func TestExpandWithEquivalents_MirrorsTwinCategories(t *testing.T) {
	entries := []model.PriceGridEntry{
		{VehicleCategory: model.CategoryCitadine, TrancheID: "1-10", PriceHT: decimal.RequireFromString("85.00")},
	}

	expanded := expandWithEquivalents(model.CategoryCitadine, entries)
	if len(expanded) != 2 {
		t.Fatalf("expanded = %d entries, want 2", len(expanded))
	}

	categories := map[string]decimal.Decimal{}
	for _, entry := range expanded {
		if entry.TrancheID != "1-10" {
			t.Errorf("unexpected tranche %q", entry.TrancheID)
		}
		categories[entry.VehicleCategory] = entry.PriceHT
	}
	for _, category := range []string{model.CategoryCitadine, model.CategoryBerline} {
		price, ok := categories[category]
		if !ok {
			t.Fatalf("category %q missing from expanded batch", category)
		}
		if !price.Equal(decimal.RequireFromString("85.00")) {
			t.Errorf("%s price = %s, want 85.00", category, price)
		}
	}
}

func TestExpandWithEquivalents_StandaloneCategoryUnchanged(t *testing.T) {
	entries := []model.PriceGridEntry{
		{VehicleCategory: model.CategorySUV, TrancheID: "1-10", PriceHT: decimal.RequireFromString("90.00")},
	}
	expanded := expandWithEquivalents(model.CategorySUV, entries)
	if len(expanded) != 1 {
		t.Errorf("expanded = %d entries, want 1", len(expanded))
	}
}
