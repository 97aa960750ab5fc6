// internal/pkg/email/types.go
package email

// Email represents an email message
type Email struct {
	To          []string `json:"to"`
	Subject     string   `json:"subject"`
	HTMLContent string   `json:"html_content"`
	TextContent string   `json:"text_content,omitempty"`
}

// OrderConfirmationLine represents one purchased line in the confirmation
type OrderConfirmationLine struct {
	Name      string `json:"name"`
	Reference string `json:"reference"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

// OrderConfirmationData contains data for the order confirmation email
type OrderConfirmationData struct {
	SiteName       string                  `json:"site_name"`
	UserEmail      string                  `json:"user_email"`
	OrderReference string                  `json:"order_reference"`
	OrderURL       string                  `json:"order_url"`
	PaymentMethod  string                  `json:"payment_method"`
	DeliveryMethod string                  `json:"delivery_method"`
	DeliveryTarget string                  `json:"delivery_target"`
	GrandTotal     string                  `json:"grand_total"`
	Items          []OrderConfirmationLine `json:"items"`
}
