package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProfileBrief struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
}

type InvoiceBrief struct {
	ID        uuid.UUID       `json:"id"`
	Number    string          `json:"number"`
	PriceTTC  decimal.Decimal `json:"price_ttc"`
	CreatedAt time.Time       `json:"created_at"`
}

type MissionRecord struct {
	Mission    Mission       `json:"mission"`
	Client     *ProfileBrief `json:"client"`
	Driver     *ProfileBrief `json:"driver"`
	Invoice    *InvoiceBrief `json:"invoice"`
	HasInvoice bool          `json:"has_invoice"`
}

func BriefFromProfile(p *Profile) *ProfileBrief {
	if p == nil {
		return nil
	}
	return &ProfileBrief{
		ID:       p.ID,
		FullName: p.FullName,
		Email:    p.Email,
		Phone:    p.Phone,
	}
}

// GridCellView is one editable grid cell with its derived TTC price.
type GridCellView struct {
	TrancheID string          `json:"tranche_id"`
	Label     string          `json:"label"`
	PerKm     bool            `json:"is_per_km"`
	PriceHT   decimal.Decimal `json:"price_ht"`
	PriceTTC  decimal.Decimal `json:"price_ttc"`
}

type GridCategoryView struct {
	CategoryID string         `json:"category_id"`
	Label      string         `json:"label"`
	Cells      []GridCellView `json:"cells"`
}
