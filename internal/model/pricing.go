package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fixed business constants. Flagged as possibly admin-configurable one day,
// but the current tariff policy treats them as invariants.
var (
	// VATRate is the French standard VAT, 20%.
	VATRate = decimal.RequireFromString("0.20")

	vatFactor = decimal.RequireFromString("1.20")

	// MinFareSurcharge is added on per-km pricing below the surcharge
	// threshold, so a boundary trip cannot undercut the flat tiers.
	MinFareSurcharge     = decimal.RequireFromString("20.00")
	SurchargeThresholdKm = 100.0
)

var (
	ErrNegativeDistance = errors.New("distance must be non-negative")
	ErrUnknownCategory  = errors.New("unknown vehicle category")
)

// TTCFromHT derives the tax-inclusive price, rounded to 2 decimals.
func TTCFromHT(ht decimal.Decimal) decimal.Decimal {
	return ht.Mul(vatFactor).Round(2)
}

// HTFromTTC inverts the VAT relation for admin edits entered tax-inclusive.
func HTFromTTC(ttc decimal.Decimal) decimal.Decimal {
	return ttc.Div(vatFactor).Round(2)
}

// PriceGridEntry is one cell of the tariff grid: (category, tranche) -> HT
// price. The TTC view is always derived, never stored.
type PriceGridEntry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VehicleCategory string          `gorm:"type:varchar(32);not null;uniqueIndex:uniq_grid_cell" json:"vehicle_category"`
	TrancheID       string          `gorm:"type:varchar(16);not null;uniqueIndex:uniq_grid_cell" json:"tranche_id"`
	PriceHT         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_ht"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PriceGridEntry) TableName() string {
	return "price_grid_entries"
}

func (e *PriceGridEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// GridCell identifies one grid cell in in-memory lookups.
type GridCell struct {
	Category  string
	TrancheID string
}

// Grid is the in-memory view of the tariff table.
type Grid map[GridCell]decimal.Decimal

// fallbackPerKmRates covers cells missing from the grid: a base
// per-kilometre rate per category, applied as per-km pricing.
var fallbackPerKmRates = map[string]decimal.Decimal{
	CategoryCitadine:       decimal.RequireFromString("1.10"),
	CategoryBerline:        decimal.RequireFromString("1.10"),
	CategorySUV:            decimal.RequireFromString("1.30"),
	CategoryUtilitaire3m3:  decimal.RequireFromString("1.40"),
	CategoryUtilitaire6m3:  decimal.RequireFromString("1.50"),
	CategoryUtilitaire10m3: decimal.RequireFromString("1.65"),
	CategoryUtilitaire14m3: decimal.RequireFromString("1.80"),
	CategoryUtilitaire20m3: decimal.RequireFromString("2.00"),
}

// Quote is a resolved price for one (category, distance) pair. PriceHT is
// kept exact; PriceTTC carries the display rounding.
type Quote struct {
	TrancheID string          `json:"tranche_id"`
	PerKm     bool            `json:"is_per_km"`
	PriceHT   decimal.Decimal `json:"price_ht"`
	PriceTTC  decimal.Decimal `json:"price_ttc"`
}

// ResolvePrice maps a vehicle category and a distance onto a price using the
// tranche table and the grid. Pure function over in-memory data.
func ResolvePrice(grid Grid, categoryID string, distanceKm float64) (Quote, error) {
	if distanceKm < 0 {
		return Quote{}, ErrNegativeDistance
	}
	if _, ok := CategoryByID(categoryID); !ok {
		return Quote{}, ErrUnknownCategory
	}

	tranche, ok := TrancheFor(distanceKm)
	if !ok {
		return Quote{}, ErrNegativeDistance
	}

	perKm := tranche.PerKm
	rate, found := grid[GridCell{Category: categoryID, TrancheID: tranche.ID}]
	if !found {
		// Missing cells fall back to the base per-km rate instead of
		// failing the quote.
		rate = fallbackPerKmRates[categoryID]
		perKm = true
	}

	distance := decimal.NewFromFloat(distanceKm)

	priceHT := rate
	if perKm {
		priceHT = rate.Mul(distance)
		if distanceKm < SurchargeThresholdKm {
			priceHT = priceHT.Add(MinFareSurcharge)
		}
	}

	return Quote{
		TrancheID: tranche.ID,
		PerKm:     perKm,
		PriceHT:   priceHT,
		PriceTTC:  TTCFromHT(priceHT),
	}, nil
}
