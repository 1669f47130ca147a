package smsgw

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
)

// Client pushes a human-readable order summary to the operator's phone
// through an SMS gateway. Delivery is best-effort; callers run it off the
// request path.
type Client struct {
	apiKey  string
	to      string
	client  *http.Client
	baseURL string
}

func NewClient() (*Client, error) {
	key := os.Getenv("SMS_API_KEY")
	if key == "" {
		return nil, errors.New("SMS_API_KEY not set")
	}
	to := os.Getenv("SMS_OPERATOR_NUMBER")
	if to == "" {
		return nil, errors.New("SMS_OPERATOR_NUMBER not set")
	}

	baseURL := os.Getenv("SMS_GATEWAY_URL")
	if baseURL == "" {
		baseURL = "https://api.smsgateway.example.com"
	}

	return &Client{
		apiKey: key,
		to:     to,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: baseURL,
	}, nil
}

type sendRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (c *Client) Name() string { return "sms" }

// NotifyNewOrder sends the order summary SMS.
func (c *Client) NotifyNewOrder(ctx context.Context, o *model.Order) error {
	msg := fmt.Sprintf(
		"New order %s: %s, %d items, total %d, %s, %s %s, pay: %s",
		o.Reference, o.CustomerName, len(o.Items), o.Total,
		o.Address, o.City, o.PostalCode, o.PaymentMethod,
	)

	body := sendRequest{To: c.to, Message: msg}
	b, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewBuffer(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New("failed to send order sms: " + buf.String())
	}

	return nil
}
