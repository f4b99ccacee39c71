package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StaffRole is the only role issued by the passcode login.
const StaffRole = "STAFF"

// StaffLoginRequest exchanges the printing room passcode for an access token.
type StaffLoginRequest struct {
	Name     string `json:"name" validate:"required,max=64"`
	Passcode string `json:"passcode" validate:"required"`
}

// StaffLoginResponse returns the issued access token.
type StaffLoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
}

// JWTClaims represents the JWT payload for staff access tokens.
type JWTClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}
