package support

type CreateTicketRequest struct {
	Type     string `json:"type" binding:"required"`
	Subject  string `json:"subject" binding:"required"`
	Body     string `json:"body"`
	Priority string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

type AdvanceTicketRequest struct {
	Status string `json:"status" binding:"required,oneof=in_progress resolved closed"`
}
