package verification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"juanride/internal/domain"
	"juanride/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("document not found")
	ErrReasonRequired = errors.New("rejection reason is required")
	ErrAlreadyDecided = errors.New("document has already been reviewed")
)

type DocumentRepository interface {
	CreateIdentity(ctx context.Context, d *domain.IdentityDocument) error
	GetIdentityByID(ctx context.Context, id int64) (*domain.IdentityDocument, error)
	ListIdentityBySubject(ctx context.Context, subjectID int64) ([]domain.IdentityDocument, error)
	ReviewIdentity(ctx context.Context, docID, reviewerID int64, status domain.DocumentStatus, reason string) error
	CreateBusiness(ctx context.Context, d *domain.BusinessDocument) error
	GetBusinessByID(ctx context.Context, id int64) (*domain.BusinessDocument, error)
	ListBusinessBySubject(ctx context.Context, subjectID int64) ([]domain.BusinessDocument, error)
	ListBusinessPending(ctx context.Context) ([]domain.BusinessDocument, error)
	ReviewBusiness(ctx context.Context, docID, reviewerID int64, status domain.DocumentStatus, reason string) error
}

type UserStatusUpdater interface {
	UpdateVerificationStatus(ctx context.Context, userID int64, status domain.VerificationStatus) error
}

type NotificationSender interface {
	NotifyVerificationResult(ctx context.Context, subjectID int64, approved bool, reason string) error
}

type Service struct {
	documents DocumentRepository
	users     UserStatusUpdater
	store     storage.Storage
	notifs    NotificationSender

	// linkTTL caps how long a document download link stays usable.
	linkTTL time.Duration
}

func NewService(documents DocumentRepository, users UserStatusUpdater, store storage.Storage, notifs NotificationSender, linkTTL time.Duration) *Service {
	return &Service{
		documents: documents,
		users:     users,
		store:     store,
		notifs:    notifs,
		linkTTL:   linkTTL,
	}
}

// UploadIdentity stores a renter's identity document in the private bucket
// and opens a review. The raw object is never publicly addressable.
func (s *Service) UploadIdentity(ctx context.Context, subjectID int64, docType string, body io.Reader, contentType string) (*domain.IdentityDocument, error) {
	key := fmt.Sprintf("identity/%d/%s", subjectID, uuid.NewString())
	if _, err := s.store.Upload(ctx, storage.BucketIDDocuments, key, body, contentType); err != nil {
		return nil, err
	}

	d := &domain.IdentityDocument{
		SubjectID:    subjectID,
		DocumentType: docType,
		StorageKey:   key,
		Status:       domain.DocumentPendingReview,
	}
	if err := s.documents.CreateIdentity(ctx, d); err != nil {
		return nil, err
	}

	if err := s.users.UpdateVerificationStatus(ctx, subjectID, domain.VerificationPending); err != nil {
		return nil, err
	}
	return d, nil
}

// IdentityDownloadURL builds a short-lived link for a reviewer to see the
// document.
func (s *Service) IdentityDownloadURL(ctx context.Context, docID int64) (string, error) {
	d, err := s.documents.GetIdentityByID(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return s.store.PresignedURL(ctx, storage.BucketIDDocuments, d.StorageKey, s.linkTTL)
}

func (s *Service) ListIdentityForSubject(ctx context.Context, subjectID int64) ([]domain.IdentityDocument, error) {
	return s.documents.ListIdentityBySubject(ctx, subjectID)
}

// ReviewIdentity approves or rejects a renter's identity document and moves
// the renter's verification status accordingly.
func (s *Service) ReviewIdentity(ctx context.Context, docID, reviewerID int64, approve bool, reason string) (*domain.IdentityDocument, error) {
	if !approve && reason == "" {
		return nil, ErrReasonRequired
	}

	d, err := s.documents.GetIdentityByID(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if d.Status != domain.DocumentPendingReview {
		return nil, ErrAlreadyDecided
	}

	status := domain.DocumentApproved
	userStatus := domain.VerificationVerified
	if !approve {
		status = domain.DocumentRejected
		userStatus = domain.VerificationRejected
	}

	if err := s.documents.ReviewIdentity(ctx, docID, reviewerID, status, reason); err != nil {
		return nil, err
	}
	if err := s.users.UpdateVerificationStatus(ctx, d.SubjectID, userStatus); err != nil {
		return nil, err
	}
	if s.notifs != nil {
		_ = s.notifs.NotifyVerificationResult(ctx, d.SubjectID, approve, reason)
	}

	d.Status = status
	d.RejectionReason = reason
	return d, nil
}

// UploadBusiness stores an owner candidate's business document for admin
// review.
func (s *Service) UploadBusiness(ctx context.Context, subjectID int64, docType string, body io.Reader, contentType string) (*domain.BusinessDocument, error) {
	key := fmt.Sprintf("business/%d/%s", subjectID, uuid.NewString())
	if _, err := s.store.Upload(ctx, storage.BucketIDDocuments, key, body, contentType); err != nil {
		return nil, err
	}

	d := &domain.BusinessDocument{
		SubjectID:    subjectID,
		DocumentType: docType,
		StorageKey:   key,
		Status:       domain.DocumentPendingReview,
	}
	if err := s.documents.CreateBusiness(ctx, d); err != nil {
		return nil, err
	}

	if err := s.users.UpdateVerificationStatus(ctx, subjectID, domain.VerificationPending); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) BusinessDownloadURL(ctx context.Context, docID int64) (string, error) {
	d, err := s.documents.GetBusinessByID(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return s.store.PresignedURL(ctx, storage.BucketIDDocuments, d.StorageKey, s.linkTTL)
}

func (s *Service) ListBusinessForSubject(ctx context.Context, subjectID int64) ([]domain.BusinessDocument, error) {
	return s.documents.ListBusinessBySubject(ctx, subjectID)
}

func (s *Service) ListBusinessPending(ctx context.Context) ([]domain.BusinessDocument, error) {
	return s.documents.ListBusinessPending(ctx)
}

// ReviewBusiness approves or rejects an owner candidate's business document.
// Role promotion to owner stays an explicit admin action.
func (s *Service) ReviewBusiness(ctx context.Context, docID, reviewerID int64, approve bool, reason string) (*domain.BusinessDocument, error) {
	if !approve && reason == "" {
		return nil, ErrReasonRequired
	}

	d, err := s.documents.GetBusinessByID(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if d.Status != domain.DocumentPendingReview {
		return nil, ErrAlreadyDecided
	}

	status := domain.DocumentApproved
	userStatus := domain.VerificationVerified
	if !approve {
		status = domain.DocumentRejected
		userStatus = domain.VerificationRejected
	}

	if err := s.documents.ReviewBusiness(ctx, docID, reviewerID, status, reason); err != nil {
		return nil, err
	}
	if err := s.users.UpdateVerificationStatus(ctx, d.SubjectID, userStatus); err != nil {
		return nil, err
	}
	if s.notifs != nil {
		_ = s.notifs.NotifyVerificationResult(ctx, d.SubjectID, approve, reason)
	}

	d.Status = status
	d.RejectionReason = reason
	return d, nil
}
