package support

import (
	"context"
	"errors"

	"juanride/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("ticket not found")
	ErrInvalidTransition = errors.New("ticket status transition not allowed")
)

type TicketRepository interface {
	Create(ctx context.Context, t *domain.SupportTicket) error
	GetByID(ctx context.Context, id int64) (*domain.SupportTicket, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.SupportTicket, error)
	ListOpen(ctx context.Context) ([]domain.SupportTicket, error)
	UpdateStatus(ctx context.Context, ticketID int64, status domain.TicketStatus) error
}

type Service struct {
	tickets TicketRepository
}

func NewService(tickets TicketRepository) *Service {
	return &Service{tickets: tickets}
}

// ticket statuses only move forward; closed is terminal
var ticketOrder = map[domain.TicketStatus]int{
	domain.TicketOpen:       0,
	domain.TicketInProgress: 1,
	domain.TicketResolved:   2,
	domain.TicketClosed:     3,
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateTicketRequest) (*domain.SupportTicket, error) {
	priority := domain.TicketPriority(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	t := &domain.SupportTicket{
		UserID:   userID,
		Type:     req.Type,
		Subject:  req.Subject,
		Body:     req.Body,
		Priority: priority,
		Status:   domain.TicketOpen,
	}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.SupportTicket, error) {
	return s.tickets.ListByUser(ctx, userID)
}

func (s *Service) ListOpen(ctx context.Context) ([]domain.SupportTicket, error) {
	return s.tickets.ListOpen(ctx)
}

// Advance moves the ticket forward through open, in_progress, resolved,
// closed. Going backwards is not allowed.
func (s *Service) Advance(ctx context.Context, ticketID int64, to domain.TicketStatus) (*domain.SupportTicket, error) {
	t, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fromOrder, ok := ticketOrder[t.Status]
	toOrder, ok2 := ticketOrder[to]
	if !ok || !ok2 || toOrder <= fromOrder {
		return nil, ErrInvalidTransition
	}

	if err := s.tickets.UpdateStatus(ctx, ticketID, to); err != nil {
		return nil, err
	}
	t.Status = to
	return t, nil
}
