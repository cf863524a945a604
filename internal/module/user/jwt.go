package user

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/provely/server/internal/utils/middleware"
)

// JWTConfig holds token signing configuration.
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// TokenService issues and validates access tokens.
type TokenService struct {
	config *JWTConfig
}

// NewTokenService creates a new token service.
func NewTokenService(config *JWTConfig) *TokenService {
	return &TokenService{config: config}
}

type tokenClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed access token for the user.
func (s *TokenService) GenerateToken(u *User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: u.ID.String(),
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

// ValidateToken parses and validates an access token. It implements
// middleware.JWTValidator.
func (s *TokenService) ValidateToken(tokenString string) (*middleware.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &middleware.AuthClaims{
		UserID: userID,
		Email:  claims.Email,
	}, nil
}

// Compile-time check
var _ middleware.JWTValidator = (*TokenService)(nil)
