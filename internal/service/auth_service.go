package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"triviarena/internal/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const tokenLifetime = 24 * time.Hour

// AuthService issues and validates play tokens. Anonymous players get guest
// tokens; registered users carry their timer-multiplier entitlement in the
// claims so the engine never needs a user lookup.
type AuthService struct {
	jwtSecret []byte
}

func NewAuthService(secret string) *AuthService {
	if secret == "" {
		secret = "dev-secret-change-in-production"
	}
	return &AuthService{jwtSecret: []byte(secret)}
}

// IssueGuestToken mints a token for anonymous play.
func (s *AuthService) IssueGuestToken() (*model.TokenResponse, error) {
	guestID := "guest_" + uuid.New().String()[:8]
	claims := &model.PlayClaims{
		UserID: guestID,
		Guest:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{Token: token, UserID: guestID, Guest: true}, nil
}

// IssueUserToken mints a token for a registered user.
func (s *AuthService) IssueUserToken(userID string, timerMultiplier float64) (*model.TokenResponse, error) {
	claims := &model.PlayClaims{
		UserID:          userID,
		TimerMultiplier: timerMultiplier,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{Token: token, UserID: userID}, nil
}

// ValidateToken parses a play token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*model.PlayClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.PlayClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*model.PlayClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
