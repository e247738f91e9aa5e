package auth

import (
	"errors"
	"time"
)

// RolePartner marks restaurant-side callers allowed to use partner endpoints.
const RolePartner = "partner"

var ErrInvalidToken = errors.New("invalid auth token")

// Principal is the caller identity carried by a verified token.
type Principal struct {
	Subject string
	Email   string
	Role    string
}

// Identity returns the key orders are owned by: the email when present,
// otherwise the subject.
func (p Principal) Identity() string {
	if p.Email != "" {
		return p.Email
	}
	return p.Subject
}

// IsPartner reports whether the principal carries the partner role.
func (p Principal) IsPartner() bool {
	return p.Role == RolePartner
}

type Strategy interface {
	IssueToken(p Principal) (string, error)
	ParseToken(token string) (Principal, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
