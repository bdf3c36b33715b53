package model

import "github.com/golang-jwt/jwt/v5"

// PlayClaims is the JWT payload for both registered users and guests.
// TimerMultiplier carries the accessibility timing entitlement (1.0/1.5/2.0).
type PlayClaims struct {
	UserID          string  `json:"userId,omitempty"`
	Guest           bool    `json:"guest,omitempty"`
	TimerMultiplier float64 `json:"timerMultiplier,omitempty"`
	jwt.RegisteredClaims
}

// TokenResponse is returned by the auth endpoints.
type TokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Guest  bool   `json:"guest"`
}
