// Package api is the REST client for the Medi-Reach backend. The backend
// owns medicines, orders, and accounts; this client only moves JSON and the
// bearer token.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/medireach/storefront/internal/errors"
	"github.com/medireach/storefront/internal/models"
	"github.com/medireach/storefront/internal/session"
)

// ErrUnauthorized is returned on any 401. The session has already been
// cleared by the time the caller sees it; the caller redirects to login.
var ErrUnauthorized = errors.New("session expired or invalid")

type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
	log     *zap.Logger
}

func NewClient(cfg *models.Config, sess *session.Store, log *zap.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BackendURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: sess,
		log:     log,
	}
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Country  string `json:"country,omitempty"`
}

type AuthResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user,omitempty"`
}

// OrderRequest is the payload for creating an order on the backend.
type OrderRequest struct {
	MedicineID      string `json:"medicine_id"`
	Quantity        int    `json:"quantity"`
	DeliveryAddress string `json:"delivery_address"`
	City            string `json:"city"`
	Phone           string `json:"phone"`
	Pharmacy        string `json:"pharmacy,omitempty"`
	PaymentMethod   string `json:"payment_method,omitempty"`
	Notes           string `json:"notes,omitempty"`
	PrescriptionRef string `json:"prescription_ref,omitempty"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", creds, &resp); err != nil {
		return nil, err
	}
	if err := c.session.SetToken(resp.Token); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/signup", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := c.session.SetToken(resp.Token); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/logout", nil, nil)
	// The local session goes away regardless of what the backend said.
	if clearErr := c.session.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

func (c *Client) Me(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/me", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) Refresh(ctx context.Context) error {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/refresh", nil, &resp); err != nil {
		return err
	}
	return c.session.SetToken(resp.Token)
}

func (c *Client) Medicines(ctx context.Context, query url.Values) ([]models.Medicine, error) {
	path := "/medicines"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var medicines []models.Medicine
	if err := c.do(ctx, http.MethodGet, path, nil, &medicines); err != nil {
		return nil, err
	}
	return medicines, nil
}

func (c *Client) Medicine(ctx context.Context, id string) (*models.Medicine, error) {
	var m models.Medicine
	if err := c.do(ctx, http.MethodGet, "/medicines/"+url.PathEscape(id), nil, &m); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError("medicine", id)
		}
		return nil, err
	}
	return &m, nil
}

func (c *Client) MedicineCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/medicines/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateMedicine(ctx context.Context, m models.Medicine) (*models.Medicine, error) {
	var created models.Medicine
	if err := c.do(ctx, http.MethodPost, "/medicines", m, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateMedicine(ctx context.Context, m models.Medicine) (*models.Medicine, error) {
	var updated models.Medicine
	if err := c.do(ctx, http.MethodPut, "/medicines/"+url.PathEscape(m.ID), m, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteMedicine(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/medicines/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Order(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &order); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError("order", id)
		}
		return nil, err
	}
	return &order, nil
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// TrackOrder looks an order up by its public order number.
func (c *Client) TrackOrder(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/track/"+url.PathEscape(number), nil, &order); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError("order", number)
		}
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) error {
	payload := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status", payload, nil)
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	token, err := c.session.Token()
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.NewInternalError("backend request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if err := c.session.Clear(); err != nil {
			c.log.Warn("failed to clear session after 401", zap.Error(err))
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NewNotFoundError("resource", path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperrors.NewInternalError(
			fmt.Sprintf("backend returned %d for %s %s", resp.StatusCode, method, path),
			errors.New(string(snippet)),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewInternalError("failed to decode backend response", err)
	}
	return nil
}
