package factories

import (
	"context"
	"time"

	apperrors "github.com/medireach/storefront/internal/errors"
	"github.com/medireach/storefront/internal/models"
)

// DemoStore is a seeded in-memory catalog and order history, used when the
// storefront runs without a backend.
type DemoStore struct {
	Medicines  []models.Medicine
	Pharmacies []models.Pharmacy
	Orders     []models.Order
}

func NewDemoStore(seed int64) *DemoStore {
	medicines := NewMedicineFactory(seed).CreateCatalog(12)
	pharmacies := NewPharmacyFactory(seed).CreatePharmacies(4)
	orders := NewOrderFactory(seed, time.Now()).CreateOrders(medicines, pharmacies, 6)
	return &DemoStore{
		Medicines:  medicines,
		Pharmacies: pharmacies,
		Orders:     orders,
	}
}

func (d *DemoStore) Medicine(id string) (*models.Medicine, error) {
	for i := range d.Medicines {
		if d.Medicines[i].ID == id {
			return &d.Medicines[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("medicine", id)
}

// Order satisfies the tracking order source. The context is unused; the
// signature matches the backend client's.
func (d *DemoStore) Order(_ context.Context, id string) (*models.Order, error) {
	for i := range d.Orders {
		if d.Orders[i].ID == id {
			return &d.Orders[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("order", id)
}

// AddOrder records a locally placed order so it can be tracked in demo mode.
func (d *DemoStore) AddOrder(order models.Order) {
	d.Orders = append(d.Orders, order)
}

// MarkDelivered stamps an order delivered after the courier simulation
// reaches the drop-off. Unknown ids are ignored.
func (d *DemoStore) MarkDelivered(id string) {
	for i := range d.Orders {
		if d.Orders[i].ID == id {
			now := time.Now()
			d.Orders[i].Status = models.OrderStatusDelivered
			d.Orders[i].DeliveryDate = &now
		}
	}
}
