// Package auth verifies the bearer tokens issued by the identity provider
// and exposes the caller's identity to handlers through the request
// context. Token issuance (the Google OAuth dance) is not done here.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/placemate/placemate/models"
)

// User is the identity carried by a verified token.
type User struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	Role    string `json:"role"`
}

type claims struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

type Middleware struct {
	secret []byte
}

func NewMiddleware(secret string) (*Middleware, error) {
	if secret == "" {
		return nil, errors.New("empty JWT secret")
	}
	return &Middleware{secret: []byte(secret)}, nil
}

// ParseToken verifies an HS256 token string and returns the caller it
// identifies.
func (m *Middleware) ParseToken(raw string) (*User, error) {
	token, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.ID == 0 {
		return nil, ErrInvalidToken
	}

	role := c.Role
	if role == "" {
		role = models.RoleUnassigned
	}

	return &User{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Picture: c.Picture,
		Role:    role,
	}, nil
}
