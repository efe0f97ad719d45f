package session

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

var ErrBadToken = errors.New("session: cannot decode token claims")

// Identity is the read-mostly copy of the authenticated user carried
// in the session token's claims. The platform is the authority; claims
// are decoded without verification, never trusted for enforcement.
type Identity struct {
	ID       int64
	Name     string
	Usertype string
}

// IsAdmin reports whether the active identity is an administrator.
func (id Identity) IsAdmin() bool {
	return id.Usertype == "admin"
}

// Identity decodes the active token's claims.
func (s *Store) Identity() (*Identity, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}

	id := &Identity{}
	if sub, err := claims.GetSubject(); err == nil {
		if parsed, err := strconv.ParseInt(sub, 10, 64); err == nil {
			id.ID = parsed
		}
	}
	if name, ok := claims["name"].(string); ok {
		id.Name = name
	}
	if usertype, ok := claims["usertype"].(string); ok {
		id.Usertype = usertype
	}
	if id.Usertype == "" {
		return nil, ErrBadToken
	}
	return id, nil
}
