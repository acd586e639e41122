// Package common contains shared constants, sentinel errors and the API
// error taxonomy used across keyvault components.
package common

// Request headers carrying every input of the /api routes. Header lookup is
// case-insensitive, the canonical spelling below is what clients send.
const (
	AuthKeyHeaderName    = "x-auth-key"
	NewAuthKeyHeaderName = "x-new-auth-key"
	EmailHeaderName      = "x-email"
	VaultHeaderName      = "x-vault"
)

// AuthKeySize is the raw length of an authentication key in bytes.
const AuthKeySize = 32
