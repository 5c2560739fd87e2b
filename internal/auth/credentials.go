package auth

import (
	"crypto/subtle"

	"github.com/blizon/ops-dashboard/internal/config"
	"github.com/blizon/ops-dashboard/internal/domain"
)

// Authenticator checks login attempts against the configured operator account
type Authenticator struct {
	username string
	password string
	user     domain.User
}

// NewAuthenticator creates an authenticator for the account in cfg
func NewAuthenticator(cfg *config.AuthConfig) *Authenticator {
	return &Authenticator{
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
		user: domain.User{
			Username: cfg.AdminUsername,
			Name:     cfg.AdminName,
			Role:     cfg.AdminRole,
		},
	}
}

// Verify returns the operator when username and password match
func (a *Authenticator) Verify(username, password string) (domain.User, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	if !userOK || !passOK || a.password == "" {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return a.user, nil
}
