// Package auth implements the placeholder credential sign-in: a fixed
// in-memory account list checked locally. It is not a real identity system
// and only gates access to the dashboard.
package auth

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"habitdash/internal/logger"
)

// ErrInvalidCredentials is returned for any email/password mismatch. The
// message deliberately does not reveal which part was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Session is the signed-in identity. UserID is the backend user the
// session acts as.
type Session struct {
	Token  string `json:"token"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

type account struct {
	email        string
	name         string
	passwordHash string
	// Every account currently maps to the same backend user. Placeholder
	// mapping carried over from the original credential provider; surfaced
	// via a warning at login rather than silently changed.
	backendUserID string
}

// The demo credentials are fixed, so the hashes are derived at startup.
// MinCost is fine here: the hash only exists so the login path exercises
// the same comparison a real account store would.
var accounts = []account{
	{
		email:         "test@example.com",
		name:          "Test User",
		passwordHash:  mustHash("password"),
		backendUserID: "1",
	},
	{
		email:         "admin@example.com",
		name:          "Admin User",
		passwordHash:  mustHash("admin"),
		backendUserID: "1",
	},
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

// Login checks credentials against the fixed account list and issues a
// session on match.
func Login(email, password string) (*Session, error) {
	for _, acct := range accounts {
		if acct.email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(acct.passwordHash), []byte(password)); err != nil {
			return nil, ErrInvalidCredentials
		}
		if acct.backendUserID == "1" {
			logger.Warn("placeholder identity mapping in effect",
				"email", acct.email, "backendUserID", acct.backendUserID)
		}
		return &Session{
			Token:  uuid.New().String(),
			Email:  acct.email,
			Name:   acct.name,
			UserID: acct.backendUserID,
		}, nil
	}
	return nil, ErrInvalidCredentials
}
