package paypal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soleofit/soleo_go_server/config"
)

func newStubServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/", handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(&config.PayPalConfig{
		APIBase:      server.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Currency:     "MXN",
		BrandName:    "SÓLEO",
		ReturnURL:    "https://app.example.com/payment/success",
		CancelURL:    "https://app.example.com/payment/cancel",
	})
	return server, client
}

func TestCreateOrder(t *testing.T) {
	var captured map[string]interface{}

	_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/checkout/orders", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{
			"id": "ORDER-123",
			"status": "CREATED",
			"links": [
				{"href": "https://api.sandbox.paypal.com/v2/checkout/orders/ORDER-123", "rel": "self"},
				{"href": "https://www.sandbox.paypal.com/checkoutnow?token=ORDER-123", "rel": "approve"}
			]
		}`)
	})

	order, err := client.CreateOrder(context.Background(), "41", 349.50, "Plan PRO")
	require.NoError(t, err)

	assert.Equal(t, "ORDER-123", order.ID)
	assert.Equal(t, "CREATED", order.Status)
	assert.Equal(t, "https://www.sandbox.paypal.com/checkoutnow?token=ORDER-123", order.ApprovalURL)

	assert.Equal(t, "CAPTURE", captured["intent"])
	units := captured["purchase_units"].([]interface{})
	unit := units[0].(map[string]interface{})
	assert.Equal(t, "41", unit["custom_id"])
	amount := unit["amount"].(map[string]interface{})
	assert.Equal(t, "MXN", amount["currency_code"])
	assert.Equal(t, "349.50", amount["value"])
}

func TestCreateOrder_MissingApprovalLink(t *testing.T) {
	_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "ORDER-1", "status": "CREATED", "links": []}`)
	})

	_, err := client.CreateOrder(context.Background(), "1", 10, "Plan")
	assert.ErrorIs(t, err, ErrNoApprovalLink)
}

func TestCaptureOrder(t *testing.T) {
	_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/checkout/orders/ORDER-123/capture", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{
			"id": "ORDER-123",
			"status": "COMPLETED",
			"purchase_units": [
				{"payments": {"captures": [{"id": "CAP-456", "status": "COMPLETED"}]}}
			]
		}`)
	})

	order, err := client.CaptureOrder(context.Background(), "ORDER-123")
	require.NoError(t, err)

	assert.Equal(t, "COMPLETED", order.Status)
	assert.Equal(t, "CAP-456", order.CaptureID)
}

func TestCaptureOrder_NotApproved(t *testing.T) {
	_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{
			"name": "UNPROCESSABLE_ENTITY",
			"message": "The requested action could not be performed.",
			"details": [{"issue": "ORDER_NOT_APPROVED", "description": "Payer has not yet approved the Order."}]
		}`)
	})

	_, err := client.CaptureOrder(context.Background(), "ORDER-123")
	assert.ErrorIs(t, err, ErrOrderNotApproved)
}

func TestAPIErrorSurfaced(t *testing.T) {
	_, client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"name": "RESOURCE_NOT_FOUND", "message": "The specified resource does not exist."}`)
	})

	_, err := client.GetOrder(context.Background(), "MISSING")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "RESOURCE_NOT_FOUND", apiErr.Name)
}
