// Package checkout validates draft orders and turns accepted drafts into
// order identifiers with a bound delivery-address snapshot. The backend owns
// the real order record; everything here is the client-side placement pass.
package checkout

import (
	"encoding/json"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/medireach/storefront/internal/addressbook"
	apperrors "github.com/medireach/storefront/internal/errors"
	"github.com/medireach/storefront/internal/models"
	"github.com/medireach/storefront/internal/output"
)

// Draft is the unsubmitted order form state. Transient: it is discarded after
// a successful Place or when the caller walks away.
type Draft struct {
	Medicine        models.Medicine
	Quantity        int
	PharmacyID      string
	PharmacyName    string
	PaymentMethod   string
	PrescriptionRef string
	DeliveryAddress string
	City            string
	Phone           string
	Notes           string

	// SelectedAddress is the address book entry the delivery fields were
	// filled from, if any. It is what gets snapshotted into the binding.
	SelectedAddress models.Address
}

// Result is handed to the tracking view after a successful placement.
type Result struct {
	OrderID string
	Total   decimal.Decimal
	Success bool
}

type Flow struct {
	binding *addressbook.Binding
	sink    output.Destination
	rng     *rand.Rand
	log     *zap.Logger
}

func NewFlow(binding *addressbook.Binding, sink output.Destination, rng *rand.Rand, log *zap.Logger) *Flow {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Flow{binding: binding, sink: sink, rng: rng, log: log}
}

// Validate runs the full rule set over the draft and collects every failing
// field, so the form can show all messages at once.
func (f *Flow) Validate(draft Draft) error {
	var details []apperrors.ValidationDetail
	add := func(field, message string) {
		details = append(details, apperrors.ValidationDetail{Field: field, Message: message})
	}

	if strings.TrimSpace(draft.DeliveryAddress) == "" {
		add("deliveryAddress", "Delivery address is required")
	}
	if strings.TrimSpace(draft.City) == "" {
		add("city", "City is required")
	}
	if strings.TrimSpace(draft.Phone) == "" {
		add("phone", "Phone number is required")
	}
	if draft.PharmacyID == "" {
		add("pharmacy", "Please select a pharmacy")
	}
	if draft.Quantity < 1 {
		add("quantity", "Quantity must be at least 1")
	} else if draft.Quantity > draft.Medicine.Stock {
		add("quantity", "Quantity exceeds available stock")
	}
	if draft.Medicine.RequiresPrescription && draft.PrescriptionRef == "" {
		add("prescription", "Prescription is required for this medicine")
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("order validation failed", details...)
	}
	return nil
}

// Place validates the draft, generates the order id, binds the selected
// address snapshot, and emits the order-placed event. On validation failure
// nothing is persisted or emitted.
func (f *Flow) Place(draft Draft) (Result, error) {
	if err := f.Validate(draft); err != nil {
		return Result{}, err
	}

	orderID := f.NewOrderID()
	total := Total(draft.Medicine.Price, draft.Quantity)

	if !draft.SelectedAddress.IsZero() {
		if err := f.binding.Bind(orderID, draft.SelectedAddress); err != nil {
			return Result{}, err
		}
	}

	f.emitPlaced(orderID, draft, total)
	f.log.Info("order placed",
		zap.String("order_id", orderID),
		zap.String("medicine", draft.Medicine.Name),
		zap.Int("quantity", draft.Quantity),
		zap.String("total", total.String()),
	)

	return Result{OrderID: orderID, Total: total, Success: true}, nil
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderID returns "ORD-" followed by 9 uppercase base36 characters.
func (f *Flow) NewOrderID() string {
	var b strings.Builder
	b.WriteString("ORD-")
	for i := 0; i < 9; i++ {
		b.WriteByte(base36[f.rng.Intn(len(base36))])
	}
	return b.String()
}

// Total is the displayed order total: unit price times quantity.
func Total(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

func (f *Flow) emitPlaced(orderID string, draft Draft, total decimal.Decimal) {
	if f.sink == nil {
		return
	}
	event := models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			Timestamp: time.Now().Unix(),
			EventType: "OrderPlaced",
			OrderID:   orderID,
		},
		MedicineName: draft.Medicine.Name,
		Quantity:     int32(draft.Quantity),
		TotalPrice:   total.String(),
		Pharmacy:     draft.PharmacyName,
		City:         draft.City,
		Payment:      draft.PaymentMethod,
	}
	msg, err := json.Marshal(event)
	if err != nil {
		f.log.Warn("failed to serialize order placed event", zap.Error(err))
		return
	}
	if err := f.sink.WriteMessage(models.TopicOrderPlaced, msg); err != nil {
		f.log.Warn("failed to write order placed event", zap.Error(err))
	}
}
