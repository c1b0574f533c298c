package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/medireach/storefront/internal/errors"
	"github.com/medireach/storefront/internal/models"
	"github.com/medireach/storefront/internal/session"
	"github.com/medireach/storefront/internal/storage"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess := session.NewStore(storage.NewMemStore())
	cfg := &models.Config{BackendURL: server.URL, RequestTimeout: 2 * time.Second}
	return NewClient(cfg, sess, zap.NewNop()), sess
}

func TestClient_LoginStoresToken(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "jane@example.com", creds.Email)

		json.NewEncoder(w).Encode(AuthResponse{Token: "tok-123"})
	}))

	resp, err := client.Login(context.Background(), Credentials{Email: "jane@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.Token)

	token, err := sess.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Medicine{})
	}))
	require.NoError(t, sess.SetToken("tok-456"))

	_, err := client.Medicines(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-456", gotAuth)
}

func TestClient_401ClearsSession(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	require.NoError(t, sess.SetToken("stale"))

	_, err := client.Orders(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	token, err := sess.Token()
	require.NoError(t, err)
	assert.Empty(t, token, "401 must clear the stored session token")
}

func TestClient_TrackUnknownOrderIsNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.TrackOrder(context.Background(), "ORD-ZZZZZZZZZ")
	nf, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "order", nf.Resource)
	assert.Equal(t, "ORD-ZZZZZZZZZ", nf.ID)
}

func TestClient_ServerErrorIsRetryable(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	require.NoError(t, sess.SetToken("tok"))

	_, err := client.Medicines(context.Background(), nil)
	require.Error(t, err)
	_, isValidation := apperrors.IsValidationError(err)
	assert.False(t, isValidation)
	assert.NotErrorIs(t, err, ErrUnauthorized)

	// Transport failure must not disturb local state.
	token, err := sess.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestClient_CreateOrder(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		var req OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 2, req.Quantity)

		json.NewEncoder(w).Encode(models.Order{
			ID:           "ORD-1A2B3C4D5",
			Status:       models.OrderStatusPending,
			MedicineName: "Paracetamol 500mg",
			Quantity:     req.Quantity,
		})
	}))

	order, err := client.CreateOrder(context.Background(), OrderRequest{
		MedicineID:      "med-1",
		Quantity:        2,
		DeliveryAddress: "Rue 1.839",
		City:            "Yaounde",
		Phone:           "+237 699 000 111",
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-1A2B3C4D5", order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}
