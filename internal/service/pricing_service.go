package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"convoyage-service/internal/model"
	"convoyage-service/internal/repository"
)

type PricingService struct {
	gridRepo *repository.GridRepository

	// commitMu serializes grid commits so two admin saves can never
	// interleave their cell writes.
	commitMu sync.Mutex
}

func NewPricingService(gridRepo *repository.GridRepository) *PricingService {
	return &PricingService{gridRepo: gridRepo}
}

// Quote resolves a price for one (category, distance) pair against the
// current grid.
func (s *PricingService) Quote(ctx context.Context, categoryID string, distanceKm float64) (model.Quote, error) {
	grid, err := s.loadGrid(ctx)
	if err != nil {
		return model.Quote{}, err
	}
	return model.ResolvePrice(grid, categoryID, distanceKm)
}

// GridView returns the full grid grouped by category, with derived TTC per
// cell. Seeds defaults on first run.
func (s *PricingService) GridView(ctx context.Context) ([]model.GridCategoryView, error) {
	grid, err := s.loadGrid(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]model.GridCategoryView, 0, len(model.VehicleCategories))
	for _, category := range model.VehicleCategories {
		view := model.GridCategoryView{
			CategoryID: category.ID,
			Label:      category.Label,
			Cells:      make([]model.GridCellView, 0, len(model.DistanceTranches)),
		}
		for _, tranche := range model.DistanceTranches {
			priceHT := grid[model.GridCell{Category: category.ID, TrancheID: tranche.ID}]
			view.Cells = append(view.Cells, model.GridCellView{
				TrancheID: tranche.ID,
				Label:     tranche.Label,
				PerKm:     tranche.PerKm,
				PriceHT:   priceHT,
				PriceTTC:  model.TTCFromHT(priceHT),
			})
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *PricingService) loadGrid(ctx context.Context) (model.Grid, error) {
	entries, err := s.gridRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	grid := make(model.Grid, len(entries))
	for _, entry := range entries {
		grid[model.GridCell{Category: entry.VehicleCategory, TrancheID: entry.TrancheID}] = entry.PriceHT
	}
	return grid, nil
}

type sessionCell struct {
	priceHT  decimal.Decimal
	priceTTC decimal.Decimal
	changed  bool
}

// EditSession is a working copy of one category's tariffs. SetPriceHT and
// SetPriceTTC keep the paired field consistent; nothing is persisted until
// Commit.
type EditSession struct {
	categoryID string
	cells      map[string]sessionCell
}

// BeginEdit snapshots the current prices of one category into an editable
// working set.
func (s *PricingService) BeginEdit(ctx context.Context, categoryID string) (*EditSession, error) {
	if _, ok := model.CategoryByID(categoryID); !ok {
		return nil, ErrInvalidInput
	}

	grid, err := s.loadGrid(ctx)
	if err != nil {
		return nil, err
	}

	cells := make(map[string]sessionCell, len(model.DistanceTranches))
	for _, tranche := range model.DistanceTranches {
		priceHT := grid[model.GridCell{Category: categoryID, TrancheID: tranche.ID}]
		cells[tranche.ID] = sessionCell{
			priceHT:  priceHT,
			priceTTC: model.TTCFromHT(priceHT),
		}
	}

	return &EditSession{categoryID: categoryID, cells: cells}, nil
}

func (e *EditSession) CategoryID() string {
	return e.categoryID
}

// SetPriceHT updates one cell's HT price and recomputes its TTC view.
func (e *EditSession) SetPriceHT(trancheID string, value decimal.Decimal) error {
	if _, ok := model.TrancheByID(trancheID); !ok {
		return ErrInvalidInput
	}
	if value.IsNegative() {
		return ErrInvalidInput
	}
	priceHT := value.Round(2)
	e.cells[trancheID] = sessionCell{
		priceHT:  priceHT,
		priceTTC: model.TTCFromHT(priceHT),
		changed:  true,
	}
	return nil
}

// SetPriceTTC updates one cell tax-inclusive and recomputes the HT price.
func (e *EditSession) SetPriceTTC(trancheID string, value decimal.Decimal) error {
	if _, ok := model.TrancheByID(trancheID); !ok {
		return ErrInvalidInput
	}
	if value.IsNegative() {
		return ErrInvalidInput
	}
	priceHT := model.HTFromTTC(value)
	e.cells[trancheID] = sessionCell{
		priceHT:  priceHT,
		priceTTC: value.Round(2),
		changed:  true,
	}
	return nil
}

// Cell returns the working values for one tranche.
func (e *EditSession) Cell(trancheID string) (priceHT, priceTTC decimal.Decimal, ok bool) {
	cell, ok := e.cells[trancheID]
	if !ok {
		return decimal.Decimal{}, decimal.Decimal{}, false
	}
	return cell.priceHT, cell.priceTTC, true
}

// changedEntries collects the cells touched in this session.
func (e *EditSession) changedEntries() []model.PriceGridEntry {
	entries := make([]model.PriceGridEntry, 0, len(e.cells))
	for _, tranche := range model.DistanceTranches {
		cell, ok := e.cells[tranche.ID]
		if !ok || !cell.changed {
			continue
		}
		entries = append(entries, model.PriceGridEntry{
			VehicleCategory: e.categoryID,
			TrancheID:       tranche.ID,
			PriceHT:         cell.priceHT,
		})
	}
	return entries
}

// expandWithEquivalents duplicates each changed cell for every member of the
// category's equivalence group, keeping tariff-equivalent grids identical.
func expandWithEquivalents(categoryID string, entries []model.PriceGridEntry) []model.PriceGridEntry {
	twins := model.EquivalentCategories(categoryID)
	if len(twins) == 0 {
		return entries
	}
	expanded := make([]model.PriceGridEntry, 0, len(entries)*(len(twins)+1))
	expanded = append(expanded, entries...)
	for _, twin := range twins {
		for _, entry := range entries {
			mirrored := entry
			mirrored.VehicleCategory = twin
			expanded = append(expanded, mirrored)
		}
	}
	return expanded
}

// Commit persists every changed cell of the session, mirrored to equivalent
// categories, as one all-or-nothing batch. Commits are serialized.
func (s *PricingService) Commit(ctx context.Context, session *EditSession) error {
	changed := session.changedEntries()
	if len(changed) == 0 {
		return nil
	}

	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	return s.gridRepo.UpsertCells(ctx, expandWithEquivalents(session.categoryID, changed))
}
