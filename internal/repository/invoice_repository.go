package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"convoyage-service/internal/model"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

type InvoiceFilter struct {
	Scope    model.Scope
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

func (r *InvoiceRepository) List(ctx context.Context, filter InvoiceFilter) ([]model.Invoice, error) {
	query := r.db.WithContext(ctx).Model(&model.Invoice{})

	query = applyInvoiceScope(query, filter.Scope)

	if filter.DateFrom != nil {
		query = query.Where("invoices.created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("invoices.created_at <= ?", *filter.DateTo)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(200)
	}

	var invoices []model.Invoice
	if err := query.
		Order("invoices.created_at DESC").
		Preload("Mission").
		Preload("Client").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, scope model.Scope, id uuid.UUID) (*model.Invoice, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Invoice{}).
		Where("invoices.id = ?", id)

	query = applyInvoiceScope(query, scope)

	var invoice model.Invoice
	if err := query.
		Preload("Mission").
		Preload("Client").
		First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) GetByMissionID(ctx context.Context, missionID uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.db.WithContext(ctx).
		Where("mission_id = ?", missionID).
		First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ByMissionIDs returns existing invoices keyed by mission id, for list
// projections.
func (r *InvoiceRepository) ByMissionIDs(ctx context.Context, missionIDs []uuid.UUID) (map[uuid.UUID]model.Invoice, error) {
	result := make(map[uuid.UUID]model.Invoice, len(missionIDs))
	if len(missionIDs) == 0 {
		return result, nil
	}
	var invoices []model.Invoice
	if err := r.db.WithContext(ctx).
		Where("mission_id IN ?", missionIDs).
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	for _, invoice := range invoices {
		result[invoice.MissionID] = invoice
	}
	return result, nil
}

// CreateNumbered assigns the next sequential yearly number and inserts the
// invoice in one transaction, so concurrent generations cannot collide.
func (r *InvoiceRepository) CreateNumbered(ctx context.Context, invoice *model.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		year := time.Now().Year()
		prefix := fmt.Sprintf("FAC-%d-", year)

		var count int64
		if err := tx.Model(&model.Invoice{}).
			Where("number LIKE ?", prefix+"%").
			Count(&count).Error; err != nil {
			return err
		}

		invoice.Number = fmt.Sprintf("%s%04d", prefix, count+1)
		return tx.Create(invoice).Error
	})
}

func applyInvoiceScope(query *gorm.DB, scope model.Scope) *gorm.DB {
	switch scope.Type {
	case model.ScopeAll:
		return query
	case model.ScopeClient:
		if scope.ClientID == nil {
			return query.Where("1=0")
		}
		return query.Where("invoices.client_id = ?", *scope.ClientID)
	default:
		// Drivers have no invoice visibility.
		return query.Where("1=0")
	}
}
