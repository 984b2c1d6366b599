package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"

	"juanride/internal/domain"
	"juanride/internal/paymongo"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("payment not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrAlreadyPaid     = errors.New("booking already has a payment")
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, intentID string, status domain.IntentStatus, method string) error
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
	SetPaymentID(ctx context.Context, bookingID, paymentID int64) error
}

type NotificationSender interface {
	NotifyPaymentReceived(ctx context.Context, ownerID, bookingID int64, amount float64) error
}

type Service struct {
	gateway  *paymongo.Client
	payments PaymentRepository
	bookings BookingReader
	notifs   NotificationSender
}

func NewService(gateway *paymongo.Client, payments PaymentRepository, bookings BookingReader, notifs NotificationSender) *Service {
	return &Service{
		gateway:  gateway,
		payments: payments,
		bookings: bookings,
		notifs:   notifs,
	}
}

// CreateIntentForBooking creates a gateway payment intent for the booking's
// total and mirrors it as a local payment row. Amount goes out in centavos.
func (s *Service) CreateIntentForBooking(ctx context.Context, bookingID, renterID int64) (*domain.Payment, paymongo.Document, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBookingNotFound
		}
		return nil, nil, err
	}
	if b.RenterID != renterID {
		return nil, nil, ErrBookingNotFound
	}
	if existing, err := s.payments.GetByBookingID(ctx, bookingID); err == nil && existing.Status == domain.IntentSucceeded {
		return nil, nil, ErrAlreadyPaid
	}

	doc, err := s.gateway.CreatePaymentIntent(ctx, paymongo.CreateIntentParams{
		Amount:               centavos(b.TotalPrice),
		Currency:             "PHP",
		Description:          fmt.Sprintf("JuanRide booking #%d", b.ID),
		PaymentMethodAllowed: []string{"gcash", "paymaya", "qrph", "grab_pay", "billease"},
		Metadata:             map[string]string{"booking_id": fmt.Sprintf("%d", b.ID)},
	})
	if err != nil {
		return nil, nil, err
	}

	intentID, status, _ := parseIntent(doc)
	if intentID == "" {
		return nil, nil, fmt.Errorf("payment: gateway returned intent without id")
	}
	if status == "" {
		status = domain.IntentAwaitingPaymentMethod
	}

	p := &domain.Payment{
		BookingID: b.ID,
		IntentID:  intentID,
		Reference: uuid.NewString(),
		Amount:    b.TotalPrice,
		Status:    status,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, nil, err
	}
	if err := s.bookings.SetPaymentID(ctx, b.ID, p.ID); err != nil {
		return nil, nil, err
	}
	return p, doc, nil
}

func (s *Service) GetForBooking(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	p, err := s.payments.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// FetchIntentStatus retrieves the live intent status from the gateway. The
// poller and the manual check endpoint both go through here.
func (s *Service) FetchIntentStatus(ctx context.Context, intentID string) (domain.IntentStatus, string, error) {
	doc, err := s.gateway.RetrievePaymentIntent(ctx, intentID)
	if err != nil {
		return "", "", err
	}
	_, status, method := parseIntent(doc)
	if status == "" {
		return "", "", fmt.Errorf("payment: intent %s has no status", intentID)
	}
	return status, method, nil
}

// HandlePaid settles a succeeded intent: the local row is marked, the linked
// booking moves pending to confirmed, and the owner is notified. Safe to call
// more than once for the same intent.
func (s *Service) HandlePaid(ctx context.Context, intentID, method string) {
	p, err := s.payments.GetByIntentID(ctx, intentID)
	if err != nil {
		log.Printf("level=error msg=paid intent has no local payment intent_id=%s err=%v", intentID, err)
		return
	}
	if p.Status == domain.IntentSucceeded {
		return
	}

	if err := s.payments.UpdateStatus(ctx, intentID, domain.IntentSucceeded, method); err != nil {
		log.Printf("level=error msg=payment status update failed intent_id=%s err=%v", intentID, err)
		return
	}

	b, err := s.bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		log.Printf("level=error msg=paid intent booking lookup failed booking_id=%d err=%v", p.BookingID, err)
		return
	}
	if b.Status == domain.BookingPending {
		if err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingConfirmed); err != nil {
			log.Printf("level=error msg=booking confirm on payment failed booking_id=%d err=%v", b.ID, err)
		}
	}
	if s.notifs != nil {
		_ = s.notifs.NotifyPaymentReceived(ctx, b.OwnerID, b.ID, p.Amount)
	}
}

// HandleFailed marks the local payment row failed or cancelled.
func (s *Service) HandleFailed(ctx context.Context, intentID string) {
	if err := s.payments.UpdateStatus(ctx, intentID, domain.IntentFailed, ""); err != nil {
		log.Printf("level=error msg=payment status update failed intent_id=%s err=%v", intentID, err)
	}
}

// parseIntent pulls id, status, and chosen payment method out of a raw
// gateway intent document.
func parseIntent(doc paymongo.Document) (id string, status domain.IntentStatus, method string) {
	var v struct {
		ID         string `json:"id"`
		Attributes struct {
			Status        string `json:"status"`
			PaymentMethod struct {
				Type string `json:"type"`
			} `json:"payment_method"`
			Payments []struct {
				Attributes struct {
					Source struct {
						Type string `json:"type"`
					} `json:"source"`
				} `json:"attributes"`
			} `json:"payments"`
		} `json:"attributes"`
	}
	if err := json.Unmarshal(doc, &v); err != nil {
		return "", "", ""
	}

	switch v.Attributes.Status {
	case "succeeded":
		status = domain.IntentSucceeded
	case "processing":
		status = domain.IntentProcessing
	case "awaiting_payment_method":
		status = domain.IntentAwaitingPaymentMethod
	case "cancelled":
		status = domain.IntentCancelled
	case "":
		status = ""
	default:
		status = domain.IntentFailed
	}

	method = v.Attributes.PaymentMethod.Type
	if method == "" && len(v.Attributes.Payments) > 0 {
		method = v.Attributes.Payments[0].Attributes.Source.Type
	}
	return v.ID, status, method
}

// centavos converts a peso amount to the gateway's integer unit. Rounded,
// not truncated, so float representation error cannot shave a centavo off
// the charge.
func centavos(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
