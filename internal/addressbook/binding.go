package addressbook

import (
	"encoding/json"
	"fmt"

	"github.com/medireach/storefront/internal/models"
	"github.com/medireach/storefront/internal/storage"
)

const bindingKey = "mr_order_address_map"

// Binding maps an order id to the address snapshot chosen when the order was
// placed. Snapshots are copies: editing or deleting the address book entry
// they came from never changes an existing binding.
type Binding struct {
	kv storage.KV
}

func NewBinding(kv storage.KV) *Binding {
	return &Binding{kv: kv}
}

// Bind stores a snapshot of addr under orderID. Calling it twice for the same
// order overwrites; placement is the only caller and calls it once.
func (b *Binding) Bind(orderID string, addr models.Address) error {
	entries, err := b.load()
	if err != nil {
		return err
	}
	entries[orderID] = addr
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if err := b.kv.Set(bindingKey, string(raw)); err != nil {
		return fmt.Errorf("failed to persist order address binding: %w", err)
	}
	return nil
}

// Resolve returns the snapshot bound to orderID, or false if the order was
// never bound. Callers fall back to the order record's free-text address.
func (b *Binding) Resolve(orderID string) (models.Address, bool, error) {
	entries, err := b.load()
	if err != nil {
		return models.Address{}, false, err
	}
	addr, ok := entries[orderID]
	return addr, ok, nil
}

func (b *Binding) load() (map[string]models.Address, error) {
	raw, ok, err := b.kv.Get(bindingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read order address binding: %w", err)
	}
	entries := map[string]models.Address{}
	if !ok {
		return entries, nil
	}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("order address binding is corrupt: %w", err)
	}
	return entries, nil
}
