package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"artmarket-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) PaypalClient {
	return NewPaypalClient(&config.Paypal{
		BaseApiURL:   baseURL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}, "https://shop.example.com")
}

func tokenHandler(t *testing.T) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Helper()
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "token-123"})
	}
}

func TestGetAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/oauth2/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		tokenHandler(t)(w, r)
	}))
	defer srv.Close()

	token, err := newTestClient(srv.URL).GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-123", token)
}

func TestGetAccessToken_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetAccessToken(context.Background())

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Contains(t, authErr.Body, "invalid_client")
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			tokenHandler(t)(w, r)
		case "/v2/checkout/orders":
			assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

			var payload struct {
				Intent        string `json:"intent"`
				PurchaseUnits []struct {
					Amount struct {
						CurrencyCode string `json:"currency_code"`
						Value        string `json:"value"`
					} `json:"amount"`
				} `json:"purchase_units"`
				ApplicationContext struct {
					ReturnURL string `json:"return_url"`
				} `json:"application_context"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "CAPTURE", payload.Intent)
			require.Len(t, payload.PurchaseUnits, 1)
			assert.Equal(t, "USD", payload.PurchaseUnits[0].Amount.CurrencyCode)
			assert.Equal(t, "20.00", payload.PurchaseUnits[0].Amount.Value)
			assert.Equal(t, "https://shop.example.com/api/payments/success", payload.ApplicationContext.ReturnURL)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{
				"id": "ORDER-1",
				"status": "CREATED",
				"links": [
					{"href": "https://api.paypal.test/v2/checkout/orders/ORDER-1", "rel": "self", "method": "GET"},
					{"href": "https://paypal.test/checkoutnow?token=ORDER-1", "rel": "approve", "method": "GET"}
				]
			}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).CreateOrder(context.Background(), 20.00, "USD")
	require.NoError(t, err)
	assert.Equal(t, "ORDER-1", result.OrderID)
	assert.Equal(t, "CREATED", result.Status)
	assert.Equal(t, "https://paypal.test/checkoutnow?token=ORDER-1", result.ApproveURL)
}

func TestCreateOrder_RequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			tokenHandler(t)(w, r)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateOrder(context.Background(), 20.00, "USD")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnprocessableEntity, reqErr.StatusCode)
	assert.Contains(t, reqErr.Body, "UNPROCESSABLE_ENTITY")
}

func TestCaptureOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			tokenHandler(t)(w, r)
		case "/v2/checkout/orders/ORDER-1/capture":
			assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{
				"id": "ORDER-1",
				"status": "COMPLETED",
				"purchase_units": [{
					"payments": {
						"captures": [{
							"id": "CAPTURE-1",
							"status": "COMPLETED",
							"create_time": "2026-03-01T12:00:00Z"
						}]
					}
				}]
			}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).CaptureOrder(context.Background(), "ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "CAPTURE-1", result.CaptureID)
	assert.Equal(t, "COMPLETED", result.Status)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), result.PaidAt)
}

func TestCaptureOrder_CaptureError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			tokenHandler(t)(w, r)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"ORDER_NOT_APPROVED"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CaptureOrder(context.Background(), "ORDER-1")

	var captureErr *CaptureError
	require.ErrorAs(t, err, &captureErr)
	assert.Equal(t, http.StatusUnprocessableEntity, captureErr.StatusCode)
}

func TestCaptureOrder_NoCaptures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			tokenHandler(t)(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"id": "ORDER-1", "status": "COMPLETED", "purchase_units": []}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CaptureOrder(context.Background(), "ORDER-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no captures")
}

func TestPaypalClient_ConnectError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	_, err := newTestClient(srv.URL).GetAccessToken(context.Background())

	var connErr *ConnectError
	require.ErrorAs(t, err, &connErr)
	require.NotNil(t, connErr.Unwrap())
}
