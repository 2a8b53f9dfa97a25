package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"convoyage-service/internal/maps"
	"convoyage-service/internal/model"
	"convoyage-service/internal/repository"
)

// DistanceResolver computes a driving distance between two addresses.
// Implemented by the maps package; nil when no API key is configured.
type DistanceResolver interface {
	DrivingDistanceKm(ctx context.Context, origin, destination string) (float64, error)
}

type MissionService struct {
	missionRepo *repository.MissionRepository
	invoiceRepo *repository.InvoiceRepository
	pricing     *PricingService
	distance    DistanceResolver
}

func NewMissionService(
	missionRepo *repository.MissionRepository,
	invoiceRepo *repository.InvoiceRepository,
	pricing *PricingService,
	distance DistanceResolver,
) *MissionService {
	return &MissionService{
		missionRepo: missionRepo,
		invoiceRepo: invoiceRepo,
		pricing:     pricing,
		distance:    distance,
	}
}

type ListMissionsOptions struct {
	Statuses   []model.MissionStatus
	Categories []string
	ClientID   *uuid.UUID
	DriverID   *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     string
	Limit      int
	Offset     int
}

type MissionDetails struct {
	Record  model.MissionRecord      `json:"record"`
	History []model.MissionStatusLog `json:"history"`
}

func (s *MissionService) List(ctx context.Context, principal model.Principal, opts ListMissionsOptions) ([]model.MissionRecord, error) {
	scope, ok := model.ScopeFor(principal)
	if !ok {
		return nil, ErrPermissionDenied
	}

	filter := repository.MissionFilter{
		Scope:      scope,
		Statuses:   opts.Statuses,
		Categories: opts.Categories,
		ClientID:   opts.ClientID,
		DriverID:   opts.DriverID,
		DateFrom:   opts.DateFrom,
		DateTo:     opts.DateTo,
		Search:     opts.Search,
		Limit:      opts.Limit,
		Offset:     opts.Offset,
	}

	missions, err := s.missionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(missions))
	for _, m := range missions {
		ids = append(ids, m.ID)
	}

	invoices, err := s.invoiceRepo.ByMissionIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	records := make([]model.MissionRecord, 0, len(missions))
	for _, m := range missions {
		invoice, hasInvoice := invoices[m.ID]
		var brief *model.Invoice
		if hasInvoice {
			brief = &invoice
		}
		records = append(records, buildMissionRecord(m, brief))
	}
	return records, nil
}

func (s *MissionService) GetDetails(ctx context.Context, principal model.Principal, missionID uuid.UUID) (*MissionDetails, error) {
	scope, ok := model.ScopeFor(principal)
	if !ok {
		return nil, ErrPermissionDenied
	}

	mission, err := s.missionRepo.GetByID(ctx, scope, missionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	invoices, err := s.invoiceRepo.ByMissionIDs(ctx, []uuid.UUID{mission.ID})
	if err != nil {
		return nil, err
	}
	var invoice *model.Invoice
	if found, ok := invoices[mission.ID]; ok {
		invoice = &found
	}

	history, err := s.missionRepo.StatusHistory(ctx, mission.ID)
	if err != nil {
		return nil, err
	}

	return &MissionDetails{
		Record:  buildMissionRecord(*mission, invoice),
		History: history,
	}, nil
}

type CreateMissionInput struct {
	PickupAddress   string
	PickupContact   string
	DeliveryAddress string
	DeliveryContact string

	VehicleBrand    string
	VehicleModel    string
	VehiclePlate    string
	VehicleCategory string

	// DistanceKm overrides distance computation when the caller already
	// knows the route length.
	DistanceKm *float64

	// Coordinates enable a great-circle estimate when no maps provider is
	// configured.
	PickupLat   *float64
	PickupLng   *float64
	DeliveryLat *float64
	DeliveryLng *float64
}

// Create registers a quote request as a pending mission with its resolved
// price. Clients create missions for themselves; admins may create on a
// client's behalf through the same path.
func (s *MissionService) Create(ctx context.Context, principal model.Principal, clientID uuid.UUID, input CreateMissionInput) (*model.MissionRecord, error) {
	if principal.IsClient() {
		clientID = principal.UserID
	} else if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	if strings.TrimSpace(input.PickupAddress) == "" || strings.TrimSpace(input.DeliveryAddress) == "" {
		return nil, ErrInvalidInput
	}
	if _, ok := model.CategoryByID(input.VehicleCategory); !ok {
		return nil, model.ErrUnknownCategory
	}

	distanceKm, err := s.resolveDistance(ctx, input)
	if err != nil {
		return nil, err
	}

	quote, err := s.pricing.Quote(ctx, input.VehicleCategory, distanceKm)
	if err != nil {
		return nil, err
	}

	mission := &model.Mission{
		ClientID:        clientID,
		Status:          model.MissionStatusEnAttente,
		PickupAddress:   input.PickupAddress,
		PickupContact:   input.PickupContact,
		DeliveryAddress: input.DeliveryAddress,
		DeliveryContact: input.DeliveryContact,
		VehicleBrand:    input.VehicleBrand,
		VehicleModel:    input.VehicleModel,
		VehiclePlate:    input.VehiclePlate,
		VehicleCategory: input.VehicleCategory,
		DistanceKm:      distanceKm,
		PriceHT:         quote.PriceHT.Round(2),
		PriceTTC:        quote.PriceTTC,
	}

	if err := s.missionRepo.Create(ctx, mission); err != nil {
		return nil, err
	}

	if err := s.missionRepo.LogStatusChange(ctx, &model.MissionStatusLog{
		MissionID: mission.ID,
		NewStatus: model.MissionStatusEnAttente,
		Note:      "quote request",
		ChangedBy: &principal.UserID,
	}); err != nil {
		return nil, err
	}

	scope, _ := model.ScopeFor(principal)
	created, err := s.missionRepo.GetByID(ctx, scope, mission.ID)
	if err != nil {
		return nil, err
	}

	record := buildMissionRecord(*created, nil)
	return &record, nil
}

func (s *MissionService) resolveDistance(ctx context.Context, input CreateMissionInput) (float64, error) {
	if input.DistanceKm != nil {
		if *input.DistanceKm < 0 {
			return 0, model.ErrNegativeDistance
		}
		return *input.DistanceKm, nil
	}
	if s.distance != nil {
		return s.distance.DrivingDistanceKm(ctx, input.PickupAddress, input.DeliveryAddress)
	}
	if input.PickupLat != nil && input.PickupLng != nil && input.DeliveryLat != nil && input.DeliveryLng != nil {
		return maps.HaversineKm(*input.PickupLat, *input.PickupLng, *input.DeliveryLat, *input.DeliveryLng), nil
	}
	return 0, ErrInvalidInput
}

// UpdateStatus applies an admin transition. Any listed target is allowed
// except the current status itself; every change is logged with the acting
// admin.
func (s *MissionService) UpdateStatus(ctx context.Context, principal model.Principal, missionID uuid.UUID, rawStatus, note string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	target, ok := model.ParseMissionStatus(rawStatus)
	if !ok {
		return ErrInvalidStatus
	}

	scope, _ := model.ScopeFor(principal)
	mission, err := s.missionRepo.GetByID(ctx, scope, missionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	current := model.NormalizeMissionStatus(string(mission.Status))
	if current == target {
		return ErrInvalidStatus
	}

	return s.transition(ctx, mission.ID, current, target, note, principal.UserID)
}

// CancelByClient is the single client-facing transition: confirme -> annule.
func (s *MissionService) CancelByClient(ctx context.Context, principal model.Principal, missionID uuid.UUID) error {
	if !principal.IsClient() {
		return ErrPermissionDenied
	}

	scope, _ := model.ScopeFor(principal)
	mission, err := s.missionRepo.GetByID(ctx, scope, missionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	current := model.NormalizeMissionStatus(string(mission.Status))
	if !model.CanClientCancel(current) {
		return ErrInvalidStatus
	}

	return s.transition(ctx, mission.ID, current, model.MissionStatusAnnule, "cancelled by client", principal.UserID)
}

// transition writes the new status then the log row. On a failed write the
// stored status is untouched and the error is surfaced; nothing retries.
func (s *MissionService) transition(ctx context.Context, missionID uuid.UUID, from, to model.MissionStatus, note string, actor uuid.UUID) error {
	if err := s.missionRepo.UpdateStatus(ctx, missionID, to); err != nil {
		return err
	}
	return s.missionRepo.LogStatusChange(ctx, &model.MissionStatusLog{
		MissionID: missionID,
		OldStatus: &from,
		NewStatus: to,
		Note:      note,
		ChangedBy: &actor,
	})
}

// AssignDriver attaches a driver to a mission.
func (s *MissionService) AssignDriver(ctx context.Context, principal model.Principal, missionID, driverID uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	scope, _ := model.ScopeFor(principal)
	if _, err := s.missionRepo.GetByID(ctx, scope, missionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.missionRepo.AssignDriver(ctx, missionID, driverID)
}

func buildMissionRecord(m model.Mission, invoice *model.Invoice) model.MissionRecord {
	// Read-side normalization: rows written by older clients may carry
	// accented or unknown statuses.
	m.Status = model.NormalizeMissionStatus(string(m.Status))

	record := model.MissionRecord{
		Mission: m,
		Client:  model.BriefFromProfile(m.Client),
		Driver:  model.BriefFromProfile(m.Driver),
	}

	if invoice != nil {
		record.HasInvoice = true
		record.Invoice = &model.InvoiceBrief{
			ID:        invoice.ID,
			Number:    invoice.Number,
			PriceTTC:  invoice.PriceTTC,
			CreatedAt: invoice.CreatedAt,
		}
	}

	return record
}
