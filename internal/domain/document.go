package domain

import "time"

type DocumentStatus string

const (
	DocumentPendingReview DocumentStatus = "pending_review"
	DocumentApproved      DocumentStatus = "approved"
	DocumentRejected      DocumentStatus = "rejected"
	DocumentExpired       DocumentStatus = "expired"
)

// IdentityDocument is uploaded by a renter and reviewed by the vehicle owner
// before a booking can be handed over.
type IdentityDocument struct {
	ID              int64          `json:"id"`
	SubjectID       int64          `json:"subject_id"`
	DocumentType    string         `json:"document_type"`
	StorageKey      string         `json:"-"`
	Status          DocumentStatus `json:"status"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	ReviewerID      *int64         `json:"reviewer_id,omitempty"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// BusinessDocument is uploaded by an owner and reviewed by an admin as part
// of the owner verification workflow.
type BusinessDocument struct {
	ID              int64          `json:"id"`
	SubjectID       int64          `json:"subject_id"`
	DocumentType    string         `json:"document_type"`
	StorageKey      string         `json:"-"`
	Status          DocumentStatus `json:"status"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	ReviewerID      *int64         `json:"reviewer_id,omitempty"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
