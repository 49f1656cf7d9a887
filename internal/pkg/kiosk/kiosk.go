package kiosk

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidDeviceKey is returned when a kiosk presents a key that matches
// no registered device.
var ErrInvalidDeviceKey = errors.New("invalid kiosk device key")

// Verifier checks the shared-secret key presented by kiosk devices on the
// public check-in/check-out endpoints. Keys are provisioned out of band and
// only their bcrypt hashes are configured here.
type Verifier struct {
	hashes []string
}

func NewVerifier(keyHashes []string) *Verifier {
	return &Verifier{hashes: keyHashes}
}

// Verify compares the presented key against every registered hash.
func (v *Verifier) Verify(key string) error {
	if key == "" {
		return ErrInvalidDeviceKey
	}
	for _, hash := range v.hashes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil {
			return nil
		}
	}
	return ErrInvalidDeviceKey
}

// HashKey produces the bcrypt hash for a newly provisioned device key.
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
