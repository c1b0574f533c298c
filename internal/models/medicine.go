package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Medicine struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	Description          string          `json:"description"`
	Dosage               string          `json:"dosage,omitempty"`
	SideEffects          string          `json:"side_effects,omitempty"`
	Manufacturer         string          `json:"manufacturer,omitempty"`
	Price                decimal.Decimal `json:"price"`
	Stock                int             `json:"stock"`
	RequiresPrescription bool            `json:"requires_prescription"`
	ImageURL             string          `json:"image_url,omitempty"`
	CreatedAt            time.Time       `json:"created_at,omitempty"`
	UpdatedAt            time.Time       `json:"updated_at,omitempty"`
}

type Pharmacy struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	Phone string `json:"phone,omitempty"`
}
