package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString generates size random bytes and returns them hex-encoded,
// so the result is 2*size characters long.
//
// It returns an error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewAuthKeyHex returns a freshly generated authentication key in its wire
// form (64 lowercase hex characters).
func NewAuthKeyHex() (string, error) {
	return MakeRandHexString(AuthKeySize)
}
