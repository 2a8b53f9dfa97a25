package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"convoyage-service/internal/model"
	"convoyage-service/internal/repository"
)

type InvoiceService struct {
	missionRepo *repository.MissionRepository
	invoiceRepo *repository.InvoiceRepository
}

func NewInvoiceService(missionRepo *repository.MissionRepository, invoiceRepo *repository.InvoiceRepository) *InvoiceService {
	return &InvoiceService{missionRepo: missionRepo, invoiceRepo: invoiceRepo}
}

type InvoiceListOptions struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

func (s *InvoiceService) List(ctx context.Context, principal model.Principal, opts InvoiceListOptions) ([]model.Invoice, error) {
	scope, ok := model.ScopeFor(principal)
	if !ok || principal.IsDriver() {
		return nil, ErrPermissionDenied
	}

	return s.invoiceRepo.List(ctx, repository.InvoiceFilter{
		Scope:    scope,
		DateFrom: opts.DateFrom,
		DateTo:   opts.DateTo,
		Limit:    opts.Limit,
		Offset:   opts.Offset,
	})
}

func (s *InvoiceService) Get(ctx context.Context, principal model.Principal, invoiceID uuid.UUID) (*model.Invoice, error) {
	scope, ok := model.ScopeFor(principal)
	if !ok {
		return nil, ErrPermissionDenied
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, scope, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return invoice, nil
}

// Generate creates the invoice for a delivered mission. One invoice per
// mission; the document is immutable once written.
func (s *InvoiceService) Generate(ctx context.Context, principal model.Principal, missionID uuid.UUID) (*model.Invoice, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	scope, _ := model.ScopeFor(principal)
	mission, err := s.missionRepo.GetByID(ctx, scope, missionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	status := model.NormalizeMissionStatus(string(mission.Status))
	if status != model.MissionStatusLivre && status != model.MissionStatusTermine {
		return nil, ErrInvalidStatus
	}

	if _, err := s.invoiceRepo.GetByMissionID(ctx, mission.ID); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	invoice := &model.Invoice{
		MissionID: mission.ID,
		ClientID:  mission.ClientID,
		PriceHT:   mission.PriceHT,
		PriceTTC:  mission.PriceTTC,
	}

	if err := s.invoiceRepo.CreateNumbered(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}
