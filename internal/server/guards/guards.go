// Package guards turns raw request header values into validated, typed
// values. Guards perform no I/O and run before any database access; a
// failing guard ends the request with the matching *common.APIError.
package guards

import (
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/keyvault/internal/common"
)

// AuthKey identifies a user. It is the key a request authenticates with.
type AuthKey [common.AuthKeySize]byte

// NewAuthKey is the key a user rotates to. It is deliberately a distinct
// type from AuthKey so the two cannot be swapped at a call site.
type NewAuthKey [common.AuthKeySize]byte

// Hex returns the storage form of the key: 64 lowercase hex characters.
func (k AuthKey) Hex() string { return hex.EncodeToString(k[:]) }

// Hex returns the storage form of the key: 64 lowercase hex characters.
func (k NewAuthKey) Hex() string { return hex.EncodeToString(k[:]) }

// Email is a structurally checked address, kept exactly as received.
type Email string

// Vault is a hex-decodable opaque blob, kept exactly as received.
type Vault string

func decodeKey(raw string) ([common.AuthKeySize]byte, bool) {
	var key [common.AuthKeySize]byte
	if len(raw) != hex.EncodedLen(common.AuthKeySize) {
		return key, false
	}
	if _, err := hex.Decode(key[:], []byte(raw)); err != nil {
		return key, false
	}
	return key, true
}

// ParseAuthKey validates a raw x-auth-key value. present reports whether the
// header was sent at all.
func ParseAuthKey(raw string, present bool) (AuthKey, error) {
	if !present {
		return AuthKey{}, common.ErrAuthKeyMissing
	}
	key, ok := decodeKey(raw)
	if !ok {
		return AuthKey{}, common.ErrAuthKeyInvalid
	}
	return AuthKey(key), nil
}

// ParseNewAuthKey validates a raw x-new-auth-key value with the same rules
// and error kinds as ParseAuthKey.
func ParseNewAuthKey(raw string, present bool) (NewAuthKey, error) {
	if !present {
		return NewAuthKey{}, common.ErrAuthKeyMissing
	}
	key, ok := decodeKey(raw)
	if !ok {
		return NewAuthKey{}, common.ErrAuthKeyInvalid
	}
	return NewAuthKey(key), nil
}

// ParseEmail accepts values of the shape local@domain.tld: exactly one '@'
// and exactly one '.' after it. Nothing else is checked.
func ParseEmail(raw string, present bool) (Email, error) {
	if !present {
		return "", common.ErrEmailMissing
	}
	halves := strings.Split(raw, "@")
	if len(halves) != 2 {
		return "", common.ErrEmailInvalid
	}
	if len(strings.Split(halves[1], ".")) != 2 {
		return "", common.ErrEmailInvalid
	}
	return Email(raw), nil
}

// ParseVault accepts any even-length hex string, including the empty one.
func ParseVault(raw string, present bool) (Vault, error) {
	if !present {
		return "", common.ErrVaultMissing
	}
	if _, err := hex.DecodeString(raw); err != nil {
		return "", common.ErrVaultInvalid
	}
	return Vault(raw), nil
}

// header returns the first value of a header and whether it was sent.
// Lookup is case-insensitive.
func header(h http.Header, name string) (string, bool) {
	values := h.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// AuthKeyFromHeader reads and validates x-auth-key.
func AuthKeyFromHeader(h http.Header) (AuthKey, error) {
	return ParseAuthKey(header(h, common.AuthKeyHeaderName))
}

// NewAuthKeyFromHeader reads and validates x-new-auth-key.
func NewAuthKeyFromHeader(h http.Header) (NewAuthKey, error) {
	return ParseNewAuthKey(header(h, common.NewAuthKeyHeaderName))
}

// EmailFromHeader reads and validates x-email.
func EmailFromHeader(h http.Header) (Email, error) {
	return ParseEmail(header(h, common.EmailHeaderName))
}

// VaultFromHeader reads and validates x-vault.
func VaultFromHeader(h http.Header) (Vault, error) {
	return ParseVault(header(h, common.VaultHeaderName))
}
