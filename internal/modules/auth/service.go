package auth

import (
	"context"
	"errors"

	"hotelstay/internal/domain"
	jwtsvc "hotelstay/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Service struct {
	users UserRepository
	jwt   *jwtsvc.Service
}

func NewService(users UserRepository, jwt *jwtsvc.Service) *Service {
	return &Service{users: users, jwt: jwt}
}

// Register creates a guest account. Staff accounts are provisioned out of
// band (seed/ops), never through the public endpoint.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         domain.RoleGuest,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.issue(u)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(u)
}

func (s *Service) issue(u *domain.User) (*AuthResponse, error) {
	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: u}, nil
}
