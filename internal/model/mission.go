package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MissionStatus string

const (
	MissionStatusEnAttente     MissionStatus = "en_attente"
	MissionStatusConfirme      MissionStatus = "confirme"
	MissionStatusPriseEnCharge MissionStatus = "prise_en_charge"
	MissionStatusLivre         MissionStatus = "livre"
	MissionStatusTermine       MissionStatus = "termine"
	MissionStatusIncident      MissionStatus = "incident"
	MissionStatusAnnule        MissionStatus = "annule"
)

// MissionStatuses lists every lifecycle state in display order.
var MissionStatuses = []MissionStatus{
	MissionStatusEnAttente,
	MissionStatusConfirme,
	MissionStatusPriseEnCharge,
	MissionStatusLivre,
	MissionStatusTermine,
	MissionStatusIncident,
	MissionStatusAnnule,
}

// statusAliases maps historical accented spellings onto the canonical enum.
var statusAliases = map[string]MissionStatus{
	"confirmé":  MissionStatusConfirme,
	"livré":     MissionStatusLivre,
	"terminé":   MissionStatusTermine,
	"annulé":    MissionStatusAnnule,
	"confirmée": MissionStatusConfirme,
	"annulée":   MissionStatusAnnule,
}

// ParseMissionStatus maps a raw value onto the canonical enum. Accented
// legacy spellings are accepted; anything else reports false.
func ParseMissionStatus(raw string) (MissionStatus, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := statusAliases[value]; ok {
		return alias, true
	}
	status := MissionStatus(value)
	for _, known := range MissionStatuses {
		if status == known {
			return status, true
		}
	}
	return "", false
}

// NormalizeMissionStatus coerces a raw stored value to a canonical status.
// Unknown values fall back to en_attente as a data-hygiene measure; this is
// a read-side fallback only, writes validate strictly.
func NormalizeMissionStatus(raw string) MissionStatus {
	if status, ok := ParseMissionStatus(raw); ok {
		return status
	}
	return MissionStatusEnAttente
}

// IsTerminal reports whether no further transitions are expected. The admin
// surface does not hard-block re-opening, so this is informational only.
func (s MissionStatus) IsTerminal() bool {
	return s == MissionStatusTermine || s == MissionStatusAnnule
}

// CanClientCancel is the one client-facing transition: a client may cancel a
// mission only while it is confirmed, and only towards annule.
func CanClientCancel(current MissionStatus) bool {
	return current == MissionStatusConfirme
}

type Mission struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ClientID uuid.UUID  `gorm:"type:uuid;not null" json:"client_id"`
	DriverID *uuid.UUID `gorm:"type:uuid" json:"driver_id"`

	Status MissionStatus `gorm:"type:varchar(32);not null;default:'en_attente'" json:"status"`

	PickupAddress   string `gorm:"type:text;not null" json:"pickup_address"`
	PickupContact   string `gorm:"type:varchar(255)" json:"pickup_contact"`
	DeliveryAddress string `gorm:"type:text;not null" json:"delivery_address"`
	DeliveryContact string `gorm:"type:varchar(255)" json:"delivery_contact"`

	VehicleBrand    string `gorm:"type:varchar(64)" json:"vehicle_brand"`
	VehicleModel    string `gorm:"type:varchar(64)" json:"vehicle_model"`
	VehiclePlate    string `gorm:"type:varchar(32)" json:"vehicle_plate"`
	VehicleCategory string `gorm:"type:varchar(32);not null" json:"vehicle_category"`

	DistanceKm float64         `gorm:"type:numeric(8,2);not null" json:"distance_km"`
	PriceHT    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_ht"`
	PriceTTC   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_ttc"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client *Profile `gorm:"foreignKey:ClientID" json:"-"`
	Driver *Profile `gorm:"foreignKey:DriverID" json:"-"`
}

func (Mission) TableName() string {
	return "missions"
}

func (m *Mission) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
