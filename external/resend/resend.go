package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
)

// Mailer sends the order confirmation email to the customer through the
// Resend API. It implements the order service's Notifier contract.
type Mailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewMailer(from string) (*Mailer, error) {
	key := os.Getenv("RESEND_API_KEY")
	if key == "" {
		return nil, errors.New("RESEND_API_KEY not set")
	}

	return &Mailer{
		apiKey: key,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *Mailer) Name() string { return "email" }

// NotifyNewOrder mails the confirmation to the address captured at checkout.
func (m *Mailer) NotifyNewOrder(ctx context.Context, o *model.Order) error {
	var items strings.Builder
	for _, it := range o.Items {
		fmt.Fprintf(&items, "<li>%dx %s (%s/%s)</li>", it.Quantity, it.Name, it.Size, it.Color)
	}

	body := sendRequest{
		From:    m.from,
		To:      []string{o.Email},
		Subject: "Order confirmation " + o.Reference,
		HTML: `
			<p>Hi ` + o.CustomerName + `,</p>
			<p>Thanks for your order <strong>` + o.Reference + `</strong>. We will let you know when it ships.</p>
			<ul>` + items.String() + `</ul>
			<p>Total: ` + fmt.Sprintf("%d", o.Total) + `</p>
		`,
	}

	b, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New(
			"failed to send confirmation email: " + buf.String(),
		)
	}

	return nil
}
