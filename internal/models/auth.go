package models

import "github.com/golang-jwt/jwt/v5"

// AuthPhase is the top-level state of the console session.
type AuthPhase string

const (
	AuthChecking        AuthPhase = "checking_auth"
	AuthUnauthenticated AuthPhase = "unauthenticated"
	AuthAuthenticated   AuthPhase = "authenticated"
)

// LoginRequest holds operator credentials forwarded to the content API.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthCheckResponse mirrors the content API session probe.
type AuthCheckResponse struct {
	Status        string     `json:"status"`
	Authenticated bool       `json:"authenticated"`
	User          *AdminUser `json:"user"`
	Message       string     `json:"message,omitempty"`
}

// LoginResponse mirrors the content API login answer.
type LoginResponse struct {
	Status  string     `json:"status"`
	User    *AdminUser `json:"user"`
	Message string     `json:"message,omitempty"`
}

// ConsoleClaims is the payload of the token issued to the console front end after login.
type ConsoleClaims struct {
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
	jwt.RegisteredClaims
}
