package test

import (
	pkgAuth "github.com/polkiloo/foodorders/internal/pkg/auth"
)

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(pkgAuth.Principal) (string, error)
	ParseFn func(string) (pkgAuth.Principal, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(p pkgAuth.Principal) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(p)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings. By default "partner"
// maps to a partner principal and any other non-empty token to a customer
// whose email is the token itself.
func (s StrategyStub) ParseToken(token string) (pkgAuth.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	switch token {
	case "":
		return pkgAuth.Principal{}, pkgAuth.ErrInvalidToken
	case "partner":
		return pkgAuth.Principal{Subject: "partner-1", Email: "kitchen@example.com", Role: pkgAuth.RolePartner}, nil
	default:
		return pkgAuth.Principal{Email: token}, nil
	}
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

var _ pkgAuth.Strategy = StrategyStub{}
