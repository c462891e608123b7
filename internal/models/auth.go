package models

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin is the only role issued by this service; the admin surface is a
// single operator account.
const RoleAdmin = "admin"

// JWTClaims carries the authenticated operator identity.
type JWTClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
