package notification

import (
	"context"
	"fmt"
	"log"

	"juanride/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Service struct {
	notifications NotificationRepository
	users         UserReader
	hub           *Hub
	mailer        Mailer
}

func NewService(notifications NotificationRepository, users UserReader, hub *Hub, mailer Mailer) *Service {
	return &Service{
		notifications: notifications,
		users:         users,
		hub:           hub,
		mailer:        mailer,
	}
}

// notify persists the notification, pushes it to the websocket hub if the
// user is connected, and emails it. Storage failure is the only hard error.
func (s *Service) notify(ctx context.Context, n *domain.Notification) error {
	if err := s.notifications.Create(ctx, n); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.SendToUser(n.UserID, n)
	}

	if s.mailer != nil && s.users != nil {
		u, err := s.users.GetByID(ctx, n.UserID)
		if err == nil && u.Email != "" {
			if err := s.mailer.Send(u.Email, u.FullName(), n.Title, n.Message); err != nil {
				log.Printf("level=error msg=notification email failed user_id=%d err=%v", n.UserID, err)
			}
		}
	}
	return nil
}

func (s *Service) NotifyBookingCreated(ctx context.Context, ownerID, bookingID, vehicleID int64) error {
	return s.notify(ctx, &domain.Notification{
		UserID:  ownerID,
		Type:    domain.NotifBookingCreated,
		Title:   "New booking request",
		Message: fmt.Sprintf("A renter requested your vehicle for booking #%d.", bookingID),
		Data:    map[string]int64{"booking_id": bookingID, "vehicle_id": vehicleID},
	})
}

func (s *Service) NotifyBookingConfirmed(ctx context.Context, renterID, bookingID int64) error {
	return s.notify(ctx, &domain.Notification{
		UserID:  renterID,
		Type:    domain.NotifBookingConfirmed,
		Title:   "Booking confirmed",
		Message: fmt.Sprintf("Your booking #%d was confirmed by the owner.", bookingID),
		Data:    map[string]int64{"booking_id": bookingID},
	})
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, reason string) error {
	return s.notify(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifBookingCancelled,
		Title:   "Booking cancelled",
		Message: fmt.Sprintf("Booking #%d was cancelled: %s", bookingID, reason),
		Data:    map[string]int64{"booking_id": bookingID},
	})
}

func (s *Service) NotifyBookingCompleted(ctx context.Context, renterID, bookingID int64) error {
	return s.notify(ctx, &domain.Notification{
		UserID:  renterID,
		Type:    domain.NotifBookingCompleted,
		Title:   "Rental completed",
		Message: fmt.Sprintf("Booking #%d is complete. Thanks for riding with us!", bookingID),
		Data:    map[string]int64{"booking_id": bookingID},
	})
}

func (s *Service) NotifyPaymentReceived(ctx context.Context, ownerID, bookingID int64, amount float64) error {
	return s.notify(ctx, &domain.Notification{
		UserID:  ownerID,
		Type:    domain.NotifPaymentReceived,
		Title:   "Payment received",
		Message: fmt.Sprintf("Payment of PHP %.2f received for booking #%d.", amount, bookingID),
		Data:    map[string]int64{"booking_id": bookingID},
	})
}

func (s *Service) NotifyVehicleReviewed(ctx context.Context, ownerID, vehicleID int64, approved bool, reason string) error {
	n := &domain.Notification{
		UserID: ownerID,
		Data:   map[string]int64{"vehicle_id": vehicleID},
	}
	if approved {
		n.Type = domain.NotifVehicleApproved
		n.Title = "Listing approved"
		n.Message = "Your vehicle listing is now live."
	} else {
		n.Type = domain.NotifVehicleRejected
		n.Title = "Listing rejected"
		n.Message = fmt.Sprintf("Your vehicle listing was rejected: %s", reason)
	}
	return s.notify(ctx, n)
}

func (s *Service) NotifyVerificationResult(ctx context.Context, subjectID int64, approved bool, reason string) error {
	n := &domain.Notification{UserID: subjectID}
	if approved {
		n.Type = domain.NotifVerificationApproved
		n.Title = "Verification approved"
		n.Message = "Your document was approved."
	} else {
		n.Type = domain.NotifVerificationRejected
		n.Title = "Verification rejected"
		n.Message = fmt.Sprintf("Your document was rejected: %s", reason)
	}
	return s.notify(ctx, n)
}

func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, unreadOnly, limit)
}

func (s *Service) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.notifications.MarkRead(ctx, notificationID, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notifications.MarkAllRead(ctx, userID)
}
