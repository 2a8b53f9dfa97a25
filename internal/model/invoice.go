package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is generated once for a delivered mission and is immutable
// afterwards: no update path exists in the service layer.
type Invoice struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	MissionID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"mission_id"`
	ClientID  uuid.UUID       `gorm:"type:uuid;not null" json:"client_id"`
	Number    string          `gorm:"type:varchar(32);not null;uniqueIndex" json:"number"`
	PriceHT   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_ht"`
	PriceTTC  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_ttc"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`

	Mission *Mission `gorm:"foreignKey:MissionID" json:"mission,omitempty"`
	Client  *Profile `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
