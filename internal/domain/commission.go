package domain

import "time"

type CommissionStatus string

const (
	CommissionPending CommissionStatus = "pending"
	CommissionPaid    CommissionStatus = "paid"
)

// PaymentMethod is the closed set commissions are recorded against.
type PaymentMethod string

const (
	MethodGCash    PaymentMethod = "gcash"
	MethodPayMaya  PaymentMethod = "paymaya"
	MethodQRPh     PaymentMethod = "qrph"
	MethodGrabPay  PaymentMethod = "grabpay"
	MethodBillease PaymentMethod = "billease"
	MethodCash     PaymentMethod = "cash"
)

type Commission struct {
	ID               int64            `json:"id"`
	BookingID        int64            `json:"booking_id"`
	OwnerID          int64            `json:"owner_id"`
	RentalAmount     float64          `json:"rental_amount"`
	CommissionAmount float64          `json:"commission_amount"`
	PaymentMethod    PaymentMethod    `json:"payment_method"`
	Status           CommissionStatus `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
