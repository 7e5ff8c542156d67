package auth

import (
	"errors"
	"fmt"
	"time"

	"artmarket-backend/internal/config"
	"artmarket-backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Principal is the authenticated identity the rest of the backend trusts.
type Principal struct {
	UserID uint
	Email  string
	RoleID uint
}

var ErrInvalidToken = errors.New("invalid or expired token")

// Service issues and verifies bearer tokens. It is the only place that
// touches password hashes or the signing secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(cfg *config.JWT) *Service {
	return &Service{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.TTLMinutes) * time.Minute,
	}
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}

func (s *Service) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a short-lived bearer token for the user.
func (s *Service) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", user.ID),
		"email": user.Email,
		"role":  float64(user.RoleID),
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses a bearer token and returns its principal. Any parse,
// signature, or expiry failure maps to ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	var userID uint
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil {
		return nil, ErrInvalidToken
	}

	principal := &Principal{UserID: userID}
	if email, ok := claims["email"].(string); ok {
		principal.Email = email
	}
	if role, ok := claims["role"].(float64); ok {
		principal.RoleID = uint(role)
	}

	return principal, nil
}
