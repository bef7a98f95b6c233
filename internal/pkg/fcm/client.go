package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client sends push notifications through the FCM HTTP API. Delivery is
// best effort, a failed send only surfaces as an error for the caller to log.
type Client struct {
	serverKey  string
	endpoint   string
	httpClient *http.Client
}

func NewClient(serverKey, endpoint string) *Client {
	return &Client{
		serverKey: serverKey,
		endpoint:  endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type multicastRequest struct {
	RegistrationIDs []string     `json:"registration_ids"`
	Notification    notification `json:"notification"`
	Priority        string       `json:"priority"`
}

type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type multicastResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
}

// Send multicasts a notification to the given device tokens. Returns the
// number of devices that accepted the message.
func (c *Client) Send(ctx context.Context, tokens []string, title, body string) (int, error) {
	if len(tokens) == 0 {
		return 0, nil
	}

	payload := multicastRequest{
		RegistrationIDs: tokens,
		Notification:    notification{Title: title, Body: body},
		Priority:        "high",
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fcm: request failed: %w", err)
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("fcm: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fcm: unexpected status %d: %s", resp.StatusCode, respData)
	}

	var result multicastResponse
	if err := json.Unmarshal(respData, &result); err != nil {
		return 0, fmt.Errorf("fcm: decode response: %w", err)
	}
	return result.Success, nil
}
