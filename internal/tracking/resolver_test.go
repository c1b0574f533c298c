package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medireach/storefront/internal/addressbook"
	apperrors "github.com/medireach/storefront/internal/errors"
	"github.com/medireach/storefront/internal/factories"
	"github.com/medireach/storefront/internal/models"
	"github.com/medireach/storefront/internal/storage"
)

func TestResolver_UnknownOrderIsNotFound(t *testing.T) {
	demo := factories.NewDemoStore(1)
	resolver := NewResolver(demo, addressbook.NewBinding(storage.NewMemStore()))

	_, err := resolver.Resolve(context.Background(), "ORD-ZZZZZZZZZ")
	nf, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "order", nf.Resource)
}

func TestResolver_BoundAddressWinsOverFreeText(t *testing.T) {
	kv := storage.NewMemStore()
	binding := addressbook.NewBinding(kv)
	demo := factories.NewDemoStore(2)

	order := models.Order{
		ID:              "ORD-1A2B3C4D5",
		Status:          models.OrderStatusInTransit,
		MedicineName:    "Paracetamol 500mg",
		DeliveryAddress: "free text street",
		City:            "Douala",
		OrderDate:       time.Now(),
	}
	demo.AddOrder(order)

	bound := models.Address{ID: "a1", Label: "Home", Street: "Rue 1.839", City: "Yaounde", Contact: "+237 699"}
	require.NoError(t, binding.Bind(order.ID, bound))

	resolved, err := NewResolver(demo, binding).Resolve(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, resolved.Bound)
	assert.Equal(t, bound, resolved.Address)
	assert.Equal(t, "Yaounde", resolved.City())
}

func TestResolver_FallsBackToOrderCity(t *testing.T) {
	demo := factories.NewDemoStore(3)
	demo.AddOrder(models.Order{ID: "ORD-NOBIND001", City: "Bafoussam", Status: models.OrderStatusPending})

	resolved, err := NewResolver(demo, addressbook.NewBinding(storage.NewMemStore())).
		Resolve(context.Background(), "ORD-NOBIND001")
	require.NoError(t, err)
	assert.False(t, resolved.Bound)
	assert.Equal(t, "Bafoussam", resolved.City())
}
