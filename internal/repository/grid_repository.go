package repository

import (
	"context"
	"math/rand"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"convoyage-service/internal/model"
)

type GridRepository struct {
	db *gorm.DB
}

func NewGridRepository(db *gorm.DB) *GridRepository {
	return &GridRepository{db: db}
}

// LoadAll returns the full tariff grid, seeding default prices first when
// the table is empty.
func (r *GridRepository) LoadAll(ctx context.Context) ([]model.PriceGridEntry, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.PriceGridEntry{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		if err := r.seedDefaults(ctx); err != nil {
			return nil, err
		}
	}

	var entries []model.PriceGridEntry
	if err := r.db.WithContext(ctx).
		Order("vehicle_category ASC, tranche_id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// seedDefaults fills every (category, tranche) cell with a pseudo-random HT
// price in [50, 100]. Categories of an equivalence group get identical rows
// so the mirroring invariant holds from first run.
func (r *GridRepository) seedDefaults(ctx context.Context) error {
	seeded := make(map[string][]decimal.Decimal)

	entries := make([]model.PriceGridEntry, 0, len(model.VehicleCategories)*len(model.DistanceTranches))
	for _, category := range model.VehicleCategories {
		prices := seededTwinPrices(seeded, category.ID)
		if prices == nil {
			prices = make([]decimal.Decimal, len(model.DistanceTranches))
			for i := range model.DistanceTranches {
				prices[i] = decimal.NewFromFloat(50 + rand.Float64()*50).Round(2)
			}
		}
		seeded[category.ID] = prices

		for i, tranche := range model.DistanceTranches {
			entries = append(entries, model.PriceGridEntry{
				VehicleCategory: category.ID,
				TrancheID:       tranche.ID,
				PriceHT:         prices[i],
			})
		}
	}

	return r.db.WithContext(ctx).Create(&entries).Error
}

// seededTwinPrices reuses the prices already generated for an equivalence
// twin, if any.
func seededTwinPrices(seeded map[string][]decimal.Decimal, categoryID string) []decimal.Decimal {
	for _, twin := range model.EquivalentCategories(categoryID) {
		if prices, ok := seeded[twin]; ok {
			return prices
		}
	}
	return nil
}

// UpsertCells writes a batch of grid cells inside one transaction: either
// every cell lands or none does.
func (r *GridRepository) UpsertCells(ctx context.Context, cells []model.PriceGridEntry) error {
	if len(cells) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, cell := range cells {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "vehicle_category"}, {Name: "tranche_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"price_ht"}),
			}).Create(&model.PriceGridEntry{
				VehicleCategory: cell.VehicleCategory,
				TrancheID:       cell.TrancheID,
				PriceHT:         cell.PriceHT,
			}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
