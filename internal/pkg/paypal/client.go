package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/soleofit/soleo_go_server/config"
)

var (
	ErrOrderNotApproved = errors.New("paypal: order not approved by payer")
	ErrNoApprovalLink   = errors.New("paypal: approval link missing in order response")
)

// Client talks to the PayPal Orders v2 REST API. Access tokens are fetched
// with the client-credentials grant and refreshed transparently.
type Client struct {
	apiBase    string
	currency   string
	brandName  string
	returnURL  string
	cancelURL  string
	httpClient *http.Client
}

func NewClient(cfg *config.PayPalConfig) *Client {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.APIBase + "/v1/oauth2/token",
	}

	return &Client{
		apiBase:    cfg.APIBase,
		currency:   cfg.Currency,
		brandName:  cfg.BrandName,
		returnURL:  cfg.ReturnURL,
		cancelURL:  cfg.CancelURL,
		httpClient: cc.Client(context.Background()),
	}
}

type Order struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	ApprovalURL string `json:"-"`
	CaptureID   string `json:"-"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

type apiError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Details []struct {
		Issue       string `json:"issue"`
		Description string `json:"description"`
	} `json:"details"`
}

// CreateOrder opens a CAPTURE-intent order for the given amount. referenceID
// is stored as custom_id on the purchase unit so the capture webhook and the
// local payment record can be correlated.
func (c *Client) CreateOrder(ctx context.Context, referenceID string, amount float64, description string) (*Order, error) {
	body := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"custom_id":   referenceID,
				"description": description,
				"amount": map[string]string{
					"currency_code": c.currency,
					"value":         fmt.Sprintf("%.2f", amount),
				},
			},
		},
		"application_context": map[string]string{
			"brand_name":  c.brandName,
			"user_action": "PAY_NOW",
			"return_url":  c.returnURL,
			"cancel_url":  c.cancelURL,
		},
	}

	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/v2/checkout/orders", body, &resp); err != nil {
		return nil, err
	}

	order := &Order{ID: resp.ID, Status: resp.Status}
	for _, link := range resp.Links {
		if link.Rel == "approve" {
			order.ApprovalURL = link.Href
			break
		}
	}
	if order.ApprovalURL == "" {
		return nil, ErrNoApprovalLink
	}
	return order, nil
}

// CaptureOrder settles an order the payer has approved. PayPal answers 422
// ORDER_NOT_APPROVED when the payer never finished the approval flow.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*Order, error) {
	var resp orderResponse
	err := c.do(ctx, http.MethodPost, "/v2/checkout/orders/"+orderID+"/capture", struct{}{}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Issue == "ORDER_NOT_APPROVED" {
			return nil, ErrOrderNotApproved
		}
		return nil, err
	}

	order := &Order{ID: resp.ID, Status: resp.Status}
	for _, unit := range resp.PurchaseUnits {
		for _, capture := range unit.Payments.Captures {
			order.CaptureID = capture.ID
		}
	}
	return order, nil
}

// GetOrder fetches the current state of an order.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodGet, "/v2/checkout/orders/"+orderID, nil, &resp); err != nil {
		return nil, err
	}
	return &Order{ID: resp.ID, Status: resp.Status}, nil
}

// APIError is a non-2xx answer from PayPal.
type APIError struct {
	StatusCode int
	Name       string
	Issue      string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paypal: %s (%d): %s", e.Name, e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("paypal: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("paypal: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body apiError
		_ = json.Unmarshal(data, &body)
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Name:       body.Name,
			Message:    body.Message,
		}
		if len(body.Details) > 0 {
			apiErr.Issue = body.Details[0].Issue
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("paypal: decode response: %w", err)
		}
	}
	return nil
}
