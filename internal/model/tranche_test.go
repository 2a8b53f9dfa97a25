package model

import "testing"

// Tranches must partition [0, +inf): every distance matches exactly one tier.
func TestTranchesPartitionDistances(t *testing.T) {
	for d := 0.0; d <= 1500.0; d += 0.25 {
		matches := 0
		var matched DistanceTranche
		previousUpper := -1.0
		for _, tranche := range DistanceTranches {
			lower := previousUpper
			if tranche.Unbounded {
				if d > lower {
					matches++
					matched = tranche
				}
				continue
			}
			if d > lower && d <= tranche.UpperKm {
				matches++
				matched = tranche
			}
			previousUpper = tranche.UpperKm
		}
		if matches != 1 {
			t.Fatalf("distance %.2f matched %d tranches, want exactly 1", d, matches)
		}

		got, ok := TrancheFor(d)
		if !ok {
			t.Fatalf("TrancheFor(%.2f) returned no tranche", d)
		}
		if got.ID != matched.ID {
			t.Errorf("TrancheFor(%.2f) = %q, want %q", d, got.ID, matched.ID)
		}
	}
}

func TestTrancheFor(t *testing.T) {
	tests := []struct {
		distance  float64
		wantID    string
		wantPerKm bool
	}{
		{0, "1-10", false},
		{10, "1-10", false},
		{10.5, "11-20", false},
		{50, "41-50", false},
		{100, "91-100", false},
		{101, "101-200", true},
		{150, "101-200", true},
		{700, "501-700", true},
		{701, "701+", true},
		{5000, "701+", true},
	}

	for _, tt := range tests {
		got, ok := TrancheFor(tt.distance)
		if !ok {
			t.Fatalf("TrancheFor(%.1f) returned no tranche", tt.distance)
		}
		if got.ID != tt.wantID {
			t.Errorf("TrancheFor(%.1f) = %q, want %q", tt.distance, got.ID, tt.wantID)
		}
		if got.PerKm != tt.wantPerKm {
			t.Errorf("TrancheFor(%.1f).PerKm = %v, want %v", tt.distance, got.PerKm, tt.wantPerKm)
		}
	}
}

func TestTrancheFor_NegativeDistance(t *testing.T) {
	if _, ok := TrancheFor(-1); ok {
		t.Error("TrancheFor(-1) should not match any tranche")
	}
}

func TestEquivalentCategories(t *testing.T) {
	citadineTwins := EquivalentCategories(CategoryCitadine)
	if len(citadineTwins) != 1 || citadineTwins[0] != CategoryBerline {
		t.Errorf("EquivalentCategories(citadine) = %v, want [berline]", citadineTwins)
	}

	berlineTwins := EquivalentCategories(CategoryBerline)
	if len(berlineTwins) != 1 || berlineTwins[0] != CategoryCitadine {
		t.Errorf("EquivalentCategories(berline) = %v, want [citadine]", berlineTwins)
	}

	if twins := EquivalentCategories(CategorySUV); len(twins) != 0 {
		t.Errorf("EquivalentCategories(suv) = %v, want none", twins)
	}
}

func TestCategoryByID(t *testing.T) {
	if _, ok := CategoryByID("citadine"); !ok {
		t.Error("citadine should be a known category")
	}
	if _, ok := CategoryByID("limousine"); ok {
		t.Error("limousine should not be a known category")
	}
}
