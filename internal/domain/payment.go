package domain

import "time"

// IntentStatus mirrors the gateway-side payment intent status.
type IntentStatus string

const (
	IntentAwaitingPaymentMethod IntentStatus = "awaiting_payment_method"
	IntentProcessing            IntentStatus = "processing"
	IntentSucceeded             IntentStatus = "succeeded"
	IntentFailed                IntentStatus = "failed"
	IntentCancelled             IntentStatus = "cancelled"
)

// TerminalIntent reports whether the gateway will not move the intent further.
func TerminalIntent(s IntentStatus) bool {
	return s == IntentSucceeded || s == IntentFailed || s == IntentCancelled
}

type Payment struct {
	ID        int64        `json:"id"`
	BookingID int64        `json:"booking_id"`
	IntentID  string       `json:"intent_id"`
	Reference string       `json:"reference"`
	Amount    float64      `json:"amount"`
	Method    string       `json:"method,omitempty"`
	Status    IntentStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
