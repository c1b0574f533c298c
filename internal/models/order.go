package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the backend's record of a placed order. The client reads it and
// renders it; status transitions are owned by the backend.
type Order struct {
	ID                string          `json:"id"`
	Status            string          `json:"status"`
	MedicineID        string          `json:"medicine_id,omitempty"`
	MedicineName      string          `json:"medicine_name"`
	Quantity          int             `json:"quantity"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	DeliveryAddress   string          `json:"delivery_address"`
	City              string          `json:"city,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Pharmacy          string          `json:"pharmacy"`
	PaymentMethod     string          `json:"payment_method,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	PrescriptionRef   string          `json:"prescription_ref,omitempty"`
	OrderDate         time.Time       `json:"order_date"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
	DeliveryDate      *time.Time      `json:"delivery_date,omitempty"`
}

// ResolvedOrder pairs an order record with the address snapshot bound at
// placement time. Bound reports whether the snapshot came from the binding
// table; when false the free-text DeliveryAddress is all the caller has.
type ResolvedOrder struct {
	Order   Order
	Address Address
	Bound   bool
}

// City is where the courier simulation heads: the bound snapshot's city when
// present, else the order record's.
func (ro ResolvedOrder) City() string {
	if ro.Bound {
		return ro.Address.City
	}
	return ro.Order.City
}
