package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"convoyage-service/internal/model"
)

type MissionRepository struct {
	db *gorm.DB
}

func NewMissionRepository(db *gorm.DB) *MissionRepository {
	return &MissionRepository{db: db}
}

type MissionFilter struct {
	Scope      model.Scope
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

func (r *MissionRepository) List(ctx context.Context, filter MissionFilter) ([]model.Mission, error) {
	query := r.db.WithContext(ctx).Model(&model.Mission{})

	query = applyScopeFilter(query, filter.Scope)

	if len(filter.Statuses) > 0 {
		query = query.Where("missions.status IN ?", filter.Statuses)
	}
	if len(filter.Categories) > 0 {
		query = query.Where("missions.vehicle_category IN ?", filter.Categories)
	}
	if filter.ClientID != nil {
		query = query.Where("missions.client_id = ?", *filter.ClientID)
	}
	if filter.DriverID != nil {
		query = query.Where("missions.driver_id = ?", *filter.DriverID)
	}
	if filter.DateFrom != nil {
		query = query.Where("missions.created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("missions.created_at <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Joins("LEFT JOIN profiles p ON p.id = missions.client_id").
			Where("(p.full_name ILIKE ? OR missions.vehicle_plate ILIKE ? OR missions.pickup_address ILIKE ? OR missions.delivery_address ILIKE ?)",
				search, search, search, search)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(200)
	}

	var missions []model.Mission
	if err := query.
		Order("missions.created_at DESC").
		Preload("Client").
		Preload("Driver").
		Find(&missions).Error; err != nil {
		return nil, err
	}

	return missions, nil
}

func (r *MissionRepository) GetByID(ctx context.Context, scope model.Scope, id uuid.UUID) (*model.Mission, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Mission{}).
		Where("missions.id = ?", id)

	query = applyScopeFilter(query, scope)

	var mission model.Mission
	err := query.
		Preload("Client").
		Preload("Driver").
		First(&mission).Error
	if err != nil {
		return nil, err
	}
	return &mission, nil
}

func (r *MissionRepository) Create(ctx context.Context, mission *model.Mission) error {
	return r.db.WithContext(ctx).Create(mission).Error
}

func (r *MissionRepository) UpdateStatus(ctx context.Context, missionID uuid.UUID, status model.MissionStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Mission{}).
		Where("id = ?", missionID).
		Update("status", status).Error
}

func (r *MissionRepository) AssignDriver(ctx context.Context, missionID, driverID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Mission{}).
		Where("id = ?", missionID).
		Update("driver_id", driverID).Error
}

func (r *MissionRepository) LogStatusChange(ctx context.Context, logEntry *model.MissionStatusLog) error {
	return r.db.WithContext(ctx).Create(logEntry).Error
}

func (r *MissionRepository) StatusHistory(ctx context.Context, missionID uuid.UUID) ([]model.MissionStatusLog, error) {
	var entries []model.MissionStatusLog
	if err := r.db.WithContext(ctx).
		Where("mission_id = ?", missionID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func applyScopeFilter(query *gorm.DB, scope model.Scope) *gorm.DB {
	switch scope.Type {
	case model.ScopeAll:
		return query
	case model.ScopeClient:
		if scope.ClientID == nil {
			return query.Where("1=0")
		}
		return query.Where("missions.client_id = ?", *scope.ClientID)
	case model.ScopeDriver:
		if scope.DriverID == nil {
			return query.Where("1=0")
		}
		return query.Where("missions.driver_id = ?", *scope.DriverID)
	default:
		return query.Where("1=0")
	}
}
