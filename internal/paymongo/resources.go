package paymongo

import (
	"context"
	"fmt"
	"net/url"
)

// Amounts are sent in centavos, matching the gateway's integer convention.

type CreateIntentParams struct {
	Amount               int64             `json:"amount"`
	Currency             string            `json:"currency"`
	Description          string            `json:"description,omitempty"`
	PaymentMethodAllowed []string          `json:"payment_method_allowed"`
	StatementDescriptor  string            `json:"statement_descriptor,omitempty"`
	Metadata             map[string]string `json:"metadata,omitempty"`
}

func (c *Client) CreatePaymentIntent(ctx context.Context, p CreateIntentParams) (Document, error) {
	if p.Currency == "" {
		p.Currency = "PHP"
	}
	return c.post(ctx, "/payment_intents", p)
}

func (c *Client) RetrievePaymentIntent(ctx context.Context, id string) (Document, error) {
	return c.get(ctx, "/payment_intents/"+url.PathEscape(id))
}

func (c *Client) ListPaymentIntents(ctx context.Context, limit int) (Document, error) {
	return c.get(ctx, fmt.Sprintf("/payment_intents?limit=%d", clampLimit(limit)))
}

func (c *Client) CancelPaymentIntent(ctx context.Context, id string) (Document, error) {
	return c.post(ctx, "/payment_intents/"+url.PathEscape(id)+"/cancel", nil)
}

type AttachIntentParams struct {
	PaymentMethod string `json:"payment_method"`
	ClientKey     string `json:"client_key,omitempty"`
	ReturnURL     string `json:"return_url,omitempty"`
}

func (c *Client) AttachPaymentIntent(ctx context.Context, id string, p AttachIntentParams) (Document, error) {
	return c.post(ctx, "/payment_intents/"+url.PathEscape(id)+"/attach", p)
}

type CreateMethodParams struct {
	Type     string            `json:"type"`
	Details  map[string]any    `json:"details,omitempty"`
	Billing  map[string]any    `json:"billing,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (c *Client) CreatePaymentMethod(ctx context.Context, p CreateMethodParams) (Document, error) {
	return c.post(ctx, "/payment_methods", p)
}

func (c *Client) RetrievePaymentMethod(ctx context.Context, id string) (Document, error) {
	return c.get(ctx, "/payment_methods/"+url.PathEscape(id))
}

func (c *Client) ListPaymentMethods(ctx context.Context, customerID string) (Document, error) {
	return c.get(ctx, "/payment_methods?customer_id="+url.QueryEscape(customerID))
}

func (c *Client) UpdatePaymentMethod(ctx context.Context, id string, p CreateMethodParams) (Document, error) {
	return c.put(ctx, "/payment_methods/"+url.PathEscape(id), p)
}

type CreateCustomerParams struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	DefaultDevice string `json:"default_device,omitempty"`
}

func (c *Client) CreateCustomer(ctx context.Context, p CreateCustomerParams) (Document, error) {
	return c.post(ctx, "/customers", p)
}

func (c *Client) RetrieveCustomer(ctx context.Context, id string) (Document, error) {
	return c.get(ctx, "/customers/"+url.PathEscape(id))
}

func (c *Client) ListCustomers(ctx context.Context, limit int) (Document, error) {
	return c.get(ctx, fmt.Sprintf("/customers?limit=%d", clampLimit(limit)))
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, p CreateCustomerParams) (Document, error) {
	return c.put(ctx, "/customers/"+url.PathEscape(id), p)
}

// CreateGCashSource builds a redirect-based GCash source; the checkout_url in
// the response is the deep link the app hands to the user.
type CreateSourceParams struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Type     string `json:"type"`
	Redirect struct {
		Success string `json:"success"`
		Failed  string `json:"failed"`
	} `json:"redirect"`
}

func (c *Client) CreateGCashSource(ctx context.Context, amount int64, successURL, failedURL string) (Document, error) {
	p := CreateSourceParams{Amount: amount, Currency: "PHP", Type: "gcash"}
	p.Redirect.Success = successURL
	p.Redirect.Failed = failedURL
	return c.post(ctx, "/sources", p)
}

type CreateRefundParams struct {
	Amount    int64  `json:"amount"`
	PaymentID string `json:"payment_id"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes,omitempty"`
}

func (c *Client) CreateRefund(ctx context.Context, p CreateRefundParams) (Document, error) {
	return c.post(ctx, "/refunds", p)
}

func (c *Client) RetrieveRefund(ctx context.Context, id string) (Document, error) {
	return c.get(ctx, "/refunds/"+url.PathEscape(id))
}

func (c *Client) ListRefunds(ctx context.Context, limit int) (Document, error) {
	return c.get(ctx, fmt.Sprintf("/refunds?limit=%d", clampLimit(limit)))
}

func (c *Client) RetrievePayment(ctx context.Context, id string) (Document, error) {
	return c.get(ctx, "/payments/"+url.PathEscape(id))
}

func (c *Client) ListPayments(ctx context.Context, limit int) (Document, error) {
	return c.get(ctx, fmt.Sprintf("/payments?limit=%d", clampLimit(limit)))
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 10
	}
	return limit
}
