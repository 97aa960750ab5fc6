// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
)

// Service handles transactional email delivery
type Service struct {
	config *config.Config
	tmpl   *template.Template
	client *http.Client
}

// NewService creates a new email service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		tmpl:   template.Must(template.New("order_confirmation").Parse(orderConfirmationTemplate)),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendOrderConfirmation sends the order confirmation email. Callers treat
// this as best-effort: a failure must never roll back the order.
func (s *Service) SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error {
	data.SiteName = s.config.Email.FromName
	if data.OrderURL == "" {
		data.OrderURL = fmt.Sprintf("%s/orders/%s", s.config.Email.BaseURL, data.OrderReference)
	}

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	msg := &Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("Order Confirmation - %s", data.OrderReference),
		HTMLContent: body.String(),
	}

	switch s.config.Email.Provider {
	case "smtp":
		return s.sendSMTP(msg)
	case "resend":
		return s.sendResend(ctx, msg)
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.Email.Provider)
	}
}

// sendResend delivers the message through the Resend HTTP API
func (s *Service) sendResend(ctx context.Context, msg *Email) error {
	payload := map[string]interface{}{
		"from":    fmt.Sprintf("%s <%s>", s.config.Email.FromName, s.config.Email.FromEmail),
		"to":      msg.To,
		"subject": msg.Subject,
		"html":    msg.HTMLContent,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Email.APIURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.Email.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}

	return nil
}

const orderConfirmationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Thank you for your order!</h2>
  <p>Your order <strong>{{.OrderReference}}</strong> has been received.</p>
  <table border="0" cellpadding="6" cellspacing="0">
    <tr><th align="left">Product</th><th align="left">Qty</th><th align="left">Unit</th><th align="left">Total</th></tr>
    {{range .Items}}
    <tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.UnitPrice}}</td><td>{{.Total}}</td></tr>
    {{end}}
  </table>
  <p>Payment: {{.PaymentMethod}}<br>
     Delivery: {{.DeliveryMethod}}<br>
     {{if .DeliveryTarget}}To: {{.DeliveryTarget}}<br>{{end}}
     Total: <strong>{{.GrandTotal}}</strong></p>
  <p><a href="{{.OrderURL}}">View your order</a></p>
  <p>{{.SiteName}}</p>
</body>
</html>`
