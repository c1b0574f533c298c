package factories

import (
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/shopspring/decimal"

	"github.com/medireach/storefront/internal/models"
)

type OrderFactory struct {
	fake faker.Faker
	rng  *rand.Rand
	now  time.Time
}

func NewOrderFactory(seed int64, now time.Time) *OrderFactory {
	return &OrderFactory{
		fake: faker.NewWithSeed(rand.NewSource(seed)),
		rng:  rand.New(rand.NewSource(seed)),
		now:  now,
	}
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func (of *OrderFactory) orderID() string {
	id := make([]byte, 9)
	for i := range id {
		id[i] = base36[of.rng.Intn(len(base36))]
	}
	return "ORD-" + string(id)
}

// CreateOrder builds a plausible historical order for a catalog medicine.
func (of *OrderFactory) CreateOrder(medicine models.Medicine, pharmacy models.Pharmacy) models.Order {
	quantity := of.rng.Intn(3) + 1
	status := models.StatusOrder[of.rng.Intn(len(models.StatusOrder))]
	placed := of.now.Add(-time.Duration(of.rng.Intn(7*24)) * time.Hour)

	order := models.Order{
		ID:              of.orderID(),
		Status:          status,
		MedicineID:      medicine.ID,
		MedicineName:    medicine.Name,
		Quantity:        quantity,
		TotalPrice:      medicine.Price.Mul(decimal.NewFromInt(int64(quantity))),
		DeliveryAddress: of.fake.Address().StreetAddress(),
		City:            pharmacy.City,
		Phone:           "+237 6" + of.fake.Numerify("## ### ###"),
		Pharmacy:        pharmacy.Name,
		PaymentMethod:   models.PaymentMethodCash,
		OrderDate:       placed,
	}

	if status == models.OrderStatusDelivered {
		delivered := placed.Add(time.Duration(of.rng.Intn(48)+1) * time.Hour)
		order.DeliveryDate = &delivered
	} else {
		estimated := placed.Add(time.Duration(of.rng.Intn(48)+24) * time.Hour)
		order.EstimatedDelivery = &estimated
	}
	return order
}

func (of *OrderFactory) CreateOrders(medicines []models.Medicine, pharmacies []models.Pharmacy, count int) []models.Order {
	orders := make([]models.Order, 0, count)
	if len(medicines) == 0 || len(pharmacies) == 0 {
		return orders
	}
	for i := 0; i < count; i++ {
		m := medicines[of.rng.Intn(len(medicines))]
		p := pharmacies[of.rng.Intn(len(pharmacies))]
		orders = append(orders, of.CreateOrder(m, p))
	}
	return orders
}
