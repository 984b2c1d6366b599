package auth

import (
	"context"

	"juanride/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
}

type jwtService interface {
	GenerateToken(userID int64, role domain.UserRole) (string, error)
}

type ProfileCache interface {
	Get(ctx context.Context, userID int64, dst any) error
	Set(ctx context.Context, userID int64, value any) error
	Invalidate(ctx context.Context, userID int64) error
}
