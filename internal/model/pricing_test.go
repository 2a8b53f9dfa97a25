package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func assertMoneyEqual(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Round(2).Equal(mustDecimal(t, want)) {
		t.Errorf("got %s, want %s", got.Round(2), want)
	}
}

func TestResolvePrice_FlatTranche(t *testing.T) {
	grid := Grid{
		{Category: CategoryCitadine, TrancheID: "41-50"}: mustDecimal(t, "75.00"),
	}

	quote, err := ResolvePrice(grid, CategoryCitadine, 50)
	if err != nil {
		t.Fatalf("ResolvePrice: %v", err)
	}
	if quote.TrancheID != "41-50" {
		t.Errorf("tranche = %q, want 41-50", quote.TrancheID)
	}
	if quote.PerKm {
		t.Error("flat tranche should not be per-km")
	}
	assertMoneyEqual(t, quote.PriceHT, "75.00")
	assertMoneyEqual(t, quote.PriceTTC, "90.00")
}

func TestResolvePrice_PerKmTranche(t *testing.T) {
	grid := Grid{
		{Category: CategoryBerline, TrancheID: "101-200"}: mustDecimal(t, "1.00"),
	}

	quote, err := ResolvePrice(grid, CategoryBerline, 150)
	if err != nil {
		t.Fatalf("ResolvePrice: %v", err)
	}
	if !quote.PerKm {
		t.Error("101-200 should be per-km")
	}
	// 150 km at 1.00/km, no surcharge above the 100 km threshold.
	assertMoneyEqual(t, quote.PriceHT, "150.00")
	assertMoneyEqual(t, quote.PriceTTC, "180.00")
}

func TestResolvePrice_MinimumFareSurcharge(t *testing.T) {
	// No cell for suv at 71-80: the resolver falls back to the base per-km
	// rate, and below 100 km the minimum-fare surcharge applies.
	quote, err := ResolvePrice(Grid{}, CategorySUV, 80)
	if err != nil {
		t.Fatalf("ResolvePrice: %v", err)
	}
	if !quote.PerKm {
		t.Error("fallback pricing should be per-km")
	}
	// 80 * 1.30 + 20.00 surcharge
	assertMoneyEqual(t, quote.PriceHT, "124.00")
	assertMoneyEqual(t, quote.PriceTTC, "148.80")
}

func TestResolvePrice_FallbackAboveThresholdHasNoSurcharge(t *testing.T) {
	quote, err := ResolvePrice(Grid{}, CategoryCitadine, 200)
	if err != nil {
		t.Fatalf("ResolvePrice: %v", err)
	}
	// 200 * 1.10, no surcharge.
	assertMoneyEqual(t, quote.PriceHT, "220.00")
	assertMoneyEqual(t, quote.PriceTTC, "264.00")
}

func TestResolvePrice_NegativeDistance(t *testing.T) {
	_, err := ResolvePrice(Grid{}, CategoryCitadine, -1)
	if !errors.Is(err, ErrNegativeDistance) {
		t.Errorf("err = %v, want ErrNegativeDistance", err)
	}
}

func TestResolvePrice_UnknownCategory(t *testing.T) {
	_, err := ResolvePrice(Grid{}, "limousine", 10)
	if !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("err = %v, want ErrUnknownCategory", err)
	}
}

// HT and TTC must stay consistent within a cent for every resolved price.
func TestResolvePrice_VATConsistency(t *testing.T) {
	grid := Grid{
		{Category: CategoryCitadine, TrancheID: "1-10"}:    mustDecimal(t, "79.00"),
		{Category: CategoryCitadine, TrancheID: "101-200"}: mustDecimal(t, "1.37"),
		{Category: CategorySUV, TrancheID: "701+"}:         mustDecimal(t, "0.93"),
	}
	tolerance := mustDecimal(t, "0.01")

	for _, tc := range []struct {
		category string
		distance float64
	}{
		{CategoryCitadine, 5},
		{CategoryCitadine, 137},
		{CategorySUV, 842},
		{CategoryBerline, 63}, // fallback path
	} {
		quote, err := ResolvePrice(grid, tc.category, tc.distance)
		if err != nil {
			t.Fatalf("ResolvePrice(%s, %.0f): %v", tc.category, tc.distance, err)
		}
		diff := quote.PriceTTC.Sub(quote.PriceHT.Mul(mustDecimal(t, "1.20"))).Abs()
		if diff.GreaterThan(tolerance) {
			t.Errorf("%s %.0fkm: |TTC - HT*1.20| = %s, want < 0.01", tc.category, tc.distance, diff)
		}
	}
}

func TestHTTTCConversionRoundTrips(t *testing.T) {
	tolerance := mustDecimal(t, "0.01")
	for _, raw := range []string{"50.00", "79.00", "85.00", "99.99", "1.37", "123.45"} {
		ht := mustDecimal(t, raw)
		back := HTFromTTC(TTCFromHT(ht))
		if back.Sub(ht).Abs().GreaterThan(tolerance) {
			t.Errorf("HT %s round-tripped to %s", ht, back)
		}

		ttc := mustDecimal(t, raw)
		backTTC := TTCFromHT(HTFromTTC(ttc))
		if backTTC.Sub(ttc).Abs().GreaterThan(tolerance) {
			t.Errorf("TTC %s round-tripped to %s", ttc, backTTC)
		}
	}
}

func TestTTCFromHT(t *testing.T) {
	assertMoneyEqual(t, TTCFromHT(mustDecimal(t, "75.00")), "90.00")
	assertMoneyEqual(t, TTCFromHT(mustDecimal(t, "85.00")), "102.00")
	assertMoneyEqual(t, HTFromTTC(mustDecimal(t, "102.00")), "85.00")
	assertMoneyEqual(t, HTFromTTC(mustDecimal(t, "90.00")), "75.00")
}
