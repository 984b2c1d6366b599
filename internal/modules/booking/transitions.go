package booking

import "juanride/internal/domain"

// transition is a single allowed edge in the booking lifecycle.
type transition struct {
	From domain.BookingStatus
	To   domain.BookingStatus
}

var transitionsTable = []transition{
	{From: domain.BookingPending, To: domain.BookingConfirmed},
	{From: domain.BookingConfirmed, To: domain.BookingActive},
	{From: domain.BookingActive, To: domain.BookingCompleted},

	{From: domain.BookingPending, To: domain.BookingCancelled},
	{From: domain.BookingConfirmed, To: domain.BookingCancelled},
}

// CanTransition reports whether moving a booking from one status to another is
// an allowed lifecycle edge. Completed and cancelled have no outgoing edges.
func CanTransition(from, to domain.BookingStatus) bool {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.To == to {
			return true
		}
	}
	return false
}
