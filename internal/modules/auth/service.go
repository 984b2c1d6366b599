package auth

import (
	"context"
	"errors"
	"strings"

	"juanride/internal/domain"
	"juanride/internal/pkg/retry"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users       UserRepository
	jwt         jwtService
	profiles    ProfileCache
	loginPolicy retry.Policy
}

type LoginResult struct {
	User  *domain.User
	Token string
}

func NewService(users UserRepository, jwt jwtService, profiles ProfileCache, loginPolicy retry.Policy) *Service {
	return &Service{
		users:       users,
		jwt:         jwt,
		profiles:    profiles,
		loginPolicy: loginPolicy,
	}
}

// RegisterRenter creates a renter account, immediately able to book.
func (s *Service) RegisterRenter(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	return s.register(ctx, req, domain.RoleRenter)
}

// RegisterOwner creates an owner account in the pending role; an admin
// upgrades it to owner once business verification passes.
func (s *Service) RegisterOwner(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	return s.register(ctx, req, domain.RolePending)
}

func (s *Service) register(ctx context.Context, req RegisterRequest, role domain.UserRole) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:              email,
		PasswordHash:       string(hash),
		Role:               role,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Phone:              req.Phone,
		VerificationStatus: domain.VerificationUnverified,
		IsActive:           true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	u.PasswordHash = ""
	return u, nil
}

// Login authenticates by email and password and issues a JWT. The user
// lookup is retried with the configured policy so a brief database blip
// doesn't surface as bad credentials.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var u *domain.User
	err := retry.Do(ctx, s.loginPolicy, func(ctx context.Context) error {
		var err error
		u, err = s.users.GetByEmail(ctx, email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // definitive answer, do not retry
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	u.PasswordHash = ""
	return &LoginResult{User: u, Token: token}, nil
}

// Profile returns the user's profile, served from the cache when fresh.
func (s *Service) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	if s.profiles != nil {
		var cached domain.User
		if err := s.profiles.Get(ctx, userID, &cached); err == nil {
			return &cached, nil
		}
		// misses and cache trouble both fall through to the database
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.PasswordHash = ""

	if s.profiles != nil {
		_ = s.profiles.Set(ctx, userID, u)
	}
	return u, nil
}

// UpdateProfile mutates the editable profile fields and invalidates the
// cache entry. Role and verification status are not touchable here.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.Phone != "" {
		u.Phone = req.Phone
	}
	if req.AvatarURL != "" {
		u.AvatarURL = req.AvatarURL
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	if s.profiles != nil {
		_ = s.profiles.Invalidate(ctx, userID)
	}

	u.PasswordHash = ""
	return u, nil
}
