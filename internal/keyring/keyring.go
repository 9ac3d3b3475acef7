// Package keyring persists the signed-in session in the OS keyring.
package keyring

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"habitdash/internal/auth"
	"habitdash/internal/constants"
)

var (
	// ErrNotFound is returned when no session is stored in the keyring
	ErrNotFound = errors.New("no session found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// SaveSession stores the session in the OS keyring.
func SaveSession(session *auth.Session) error {
	if session == nil || session.Token == "" {
		return errors.New("session must have a token")
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, string(payload)); err != nil {
		return fmt.Errorf("failed to store session in keyring: %w", err)
	}
	return nil
}

// LoadSession retrieves the stored session. Returns ErrNotFound when no
// session is stored.
func LoadSession() (*auth.Session, error) {
	raw, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	var session auth.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decode stored session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes the stored session.
func DeleteSession() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete session from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring responded; anything else likely means
	// it is not usable.
	return err == nil || err == keyring.ErrNotFound
}
