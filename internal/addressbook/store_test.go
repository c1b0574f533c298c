package addressbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medireach/storefront/internal/errors"
	"github.com/medireach/storefront/internal/models"
	"github.com/medireach/storefront/internal/storage"
)

func validDraft() models.Address {
	return models.Address{
		Label:   "Home",
		Street:  "Rue 1.839, Bastos",
		City:    "Yaounde",
		Contact: "+237 699 000 111",
	}
}

func TestStore_UpsertThenList(t *testing.T) {
	store := NewStore(storage.NewMemStore())

	saved, err := store.Upsert(validDraft())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, saved, list[0])
}

func TestStore_UpsertExistingReplacesInPlace(t *testing.T) {
	store := NewStore(storage.NewMemStore())

	first, err := store.Upsert(validDraft())
	require.NoError(t, err)
	second, err := store.Upsert(models.Address{
		Label: "Office", Street: "Ave Kennedy", City: "Douala", Contact: "+237 677 222 333",
	})
	require.NoError(t, err)

	first.Label = "Home (updated)"
	updated, err := store.Upsert(first)
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Home (updated)", list[0].Label)
	assert.Equal(t, second, list[1])
}

func TestStore_UpsertRejectsPartialDraft(t *testing.T) {
	store := NewStore(storage.NewMemStore())
	_, err := store.Upsert(validDraft())
	require.NoError(t, err)

	for _, tc := range []struct {
		name  string
		draft models.Address
		field string
	}{
		{"missing label", models.Address{Street: "s", City: "c", Contact: "p"}, "label"},
		{"missing street", models.Address{Label: "l", City: "c", Contact: "p"}, "street"},
		{"missing city", models.Address{Label: "l", Street: "s", Contact: "p"}, "city"},
		{"missing contact", models.Address{Label: "l", Street: "s", City: "c"}, "contact"},
		{"whitespace only", models.Address{Label: "  ", Street: "s", City: "c", Contact: "p"}, "label"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Upsert(tc.draft)
			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, ve.Details[0].Field)

			list, err := store.List()
			require.NoError(t, err)
			assert.Len(t, list, 1, "rejected upsert must not change stored state")
		})
	}
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	store := NewStore(storage.NewMemStore())
	saved, err := store.Upsert(validDraft())
	require.NoError(t, err)

	require.NoError(t, store.Remove(saved.ID))
	list, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	// Removing again, or removing an unknown id, is not an error.
	require.NoError(t, store.Remove(saved.ID))
	require.NoError(t, store.Remove("no-such-id"))
}

func TestStore_ListPreservesInsertionOrder(t *testing.T) {
	store := NewStore(storage.NewMemStore())
	labels := []string{"Home", "Office", "Parents"}
	for _, l := range labels {
		d := validDraft()
		d.Label = l
		_, err := store.Upsert(d)
		require.NoError(t, err)
	}

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, l := range labels {
		assert.Equal(t, l, list[i].Label)
	}
}
