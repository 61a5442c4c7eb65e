package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	PrincipalID uuid.UUID
	Role        enums.Role
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	PrincipalID uuid.UUID  `json:"principal_id"`
	Role        enums.Role `json:"role"`
	jwt.RegisteredClaims
}
