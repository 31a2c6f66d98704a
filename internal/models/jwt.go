package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the claims of the operator token issued by the identity provider
type JWTClaims struct {
	jwt.RegisteredClaims
	AZP          string `json:"azp,omitempty"`
	SessionState string `json:"session_state,omitempty"`
	RealmAccess  struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
	Name              string `json:"name,omitempty"`
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email,omitempty"`
	PromotoraID       string `json:"promotora_id,omitempty"`
}

// HasRole reports whether the realm roles contain role
func (c *JWTClaims) HasRole(role string) bool {
	for _, r := range c.RealmAccess.Roles {
		if r == role {
			return true
		}
	}
	return false
}
