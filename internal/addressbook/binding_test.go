package addressbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medireach/storefront/internal/storage"
)

func TestBinding_ResolveAbsent(t *testing.T) {
	binding := NewBinding(storage.NewMemStore())
	_, ok, err := binding.Resolve("ORD-AAAAAAAAA")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBinding_SnapshotSurvivesBookMutation(t *testing.T) {
	kv := storage.NewMemStore()
	store := NewStore(kv)
	binding := NewBinding(kv)

	saved, err := store.Upsert(validDraft())
	require.NoError(t, err)
	require.NoError(t, binding.Bind("ORD-1A2B3C4D5", saved))

	// Mutate and then delete the address book entry the snapshot came from.
	saved.Street = "Somewhere else entirely"
	_, err = store.Upsert(saved)
	require.NoError(t, err)
	require.NoError(t, store.Remove(saved.ID))

	got, ok, err := binding.Resolve("ORD-1A2B3C4D5")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Rue 1.839, Bastos", got.Street, "bound snapshot must be immutable")
}

func TestBinding_LastWriteWins(t *testing.T) {
	binding := NewBinding(storage.NewMemStore())

	first := validDraft()
	first.ID = "a1"
	second := validDraft()
	second.ID = "a2"
	second.Label = "Office"

	require.NoError(t, binding.Bind("ORD-XYZXYZXYZ", first))
	require.NoError(t, binding.Bind("ORD-XYZXYZXYZ", second))

	got, ok, err := binding.Resolve("ORD-XYZXYZXYZ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Office", got.Label)
}

func TestBinding_IndependentPerOrder(t *testing.T) {
	binding := NewBinding(storage.NewMemStore())

	home := validDraft()
	home.ID = "a1"
	office := validDraft()
	office.ID = "a2"
	office.Label = "Office"

	require.NoError(t, binding.Bind("ORD-000000001", home))
	require.NoError(t, binding.Bind("ORD-000000002", office))

	got, ok, err := binding.Resolve("ORD-000000001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Home", got.Label)
}
