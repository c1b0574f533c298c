package tracking

import (
	"context"

	"github.com/medireach/storefront/internal/addressbook"
	"github.com/medireach/storefront/internal/models"
)

// OrderSource is where order records come from: the backend client, or the
// demo store when running offline.
type OrderSource interface {
	Order(ctx context.Context, id string) (*models.Order, error)
}

// Resolver combines an order record with its bound address snapshot into the
// resolved order the tracking view renders.
type Resolver struct {
	source  OrderSource
	binding *addressbook.Binding
}

func NewResolver(source OrderSource, binding *addressbook.Binding) *Resolver {
	return &Resolver{source: source, binding: binding}
}

// Resolve looks the order up and attaches the address snapshot bound at
// placement, if one exists. Unknown orders surface the source's not-found
// error untouched.
func (r *Resolver) Resolve(ctx context.Context, orderID string) (models.ResolvedOrder, error) {
	order, err := r.source.Order(ctx, orderID)
	if err != nil {
		return models.ResolvedOrder{}, err
	}

	resolved := models.ResolvedOrder{Order: *order}
	addr, ok, err := r.binding.Resolve(orderID)
	if err != nil {
		return models.ResolvedOrder{}, err
	}
	if ok {
		resolved.Address = addr
		resolved.Bound = true
	}
	return resolved, nil
}
