package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/provely/server/internal/shared/events"
)

// Service provides user directory business logic.
type Service struct {
	repo     Repository
	tokens   *TokenService
	eventBus *events.Bus
	logger   *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, tokens *TokenService, eventBus *events.Bus, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Register creates a new account. On success a UserRegistered event is
// published so pending invitations addressed to the email get reconciled.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, string, error) {
	if len(req.Password) < 8 {
		return nil, "", ErrPasswordTooShort
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &User{
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("email", u.Email),
	)

	// Reconciliation and other listeners run best-effort.
	s.eventBus.Publish(events.NewUserRegisteredEvent(u.ID, u.Email))

	return u, token, nil
}

// Login authenticates a user and returns an access token.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*User, string, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// GetUser returns a user by id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
