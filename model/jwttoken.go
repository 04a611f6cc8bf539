package model

import "github.com/golang-jwt/jwt/v5"

// AccessClaims carries only the user id; role is always read from the live
// user record.
type AccessClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}
