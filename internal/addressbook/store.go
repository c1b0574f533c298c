// Package addressbook holds the user's saved delivery addresses and the
// order→address binding table. Both are JSON blobs in the key-value
// persistence capability, written through on every mutation.
package addressbook

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lucsky/cuid"

	apperrors "github.com/medireach/storefront/internal/errors"
	"github.com/medireach/storefront/internal/models"
	"github.com/medireach/storefront/internal/storage"
)

const addressesKey = "mr_addresses"

type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// List returns all saved addresses in insertion order.
func (s *Store) List() ([]models.Address, error) {
	raw, ok, err := s.kv.Get(addressesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read address book: %w", err)
	}
	if !ok {
		return []models.Address{}, nil
	}
	var addresses []models.Address
	if err := json.Unmarshal([]byte(raw), &addresses); err != nil {
		return nil, fmt.Errorf("address book is corrupt: %w", err)
	}
	return addresses, nil
}

// Upsert commits an editor draft. A draft whose ID matches an existing entry
// replaces that entry's fields in place; any other draft gets a fresh ID and
// is appended. Partial drafts are rejected without touching stored state.
func (s *Store) Upsert(draft models.Address) (models.Address, error) {
	if err := validateDraft(draft); err != nil {
		return models.Address{}, err
	}

	addresses, err := s.List()
	if err != nil {
		return models.Address{}, err
	}

	replaced := false
	if draft.ID != "" {
		for i := range addresses {
			if addresses[i].ID == draft.ID {
				addresses[i] = draft
				replaced = true
				break
			}
		}
	}
	if !replaced {
		draft.ID = cuid.New()
		addresses = append(addresses, draft)
	}

	if err := s.save(addresses); err != nil {
		return models.Address{}, err
	}
	return draft, nil
}

// Remove deletes the entry with the given id. Absent ids are a no-op.
func (s *Store) Remove(id string) error {
	addresses, err := s.List()
	if err != nil {
		return err
	}
	next := addresses[:0]
	for _, a := range addresses {
		if a.ID != id {
			next = append(next, a)
		}
	}
	if len(next) == len(addresses) {
		return nil
	}
	return s.save(next)
}

func (s *Store) save(addresses []models.Address) error {
	raw, err := json.Marshal(addresses)
	if err != nil {
		return err
	}
	if err := s.kv.Set(addressesKey, string(raw)); err != nil {
		return fmt.Errorf("failed to persist address book: %w", err)
	}
	return nil
}

func validateDraft(draft models.Address) error {
	var details []apperrors.ValidationDetail
	for _, f := range []struct {
		field, value, message string
	}{
		{"label", draft.Label, "Label is required"},
		{"street", draft.Street, "Street is required"},
		{"city", draft.City, "City is required"},
		{"contact", draft.Contact, "Contact is required"},
	} {
		if strings.TrimSpace(f.value) == "" {
			details = append(details, apperrors.ValidationDetail{Field: f.field, Message: f.message})
		}
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("incomplete address", details...)
	}
	return nil
}
