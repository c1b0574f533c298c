package models

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusInTransit  = "in_transit"
	OrderStatusDelivered  = "delivered"

	PaymentMethodCash        = "cash"
	PaymentMethodMobileMoney = "mobile_money"
)

// StatusOrder is the display progression for the tracking timeline. The
// backend never moves an order backwards through it.
var StatusOrder = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusConfirmed,
	OrderStatusInTransit,
	OrderStatusDelivered,
}
