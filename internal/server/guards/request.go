package guards

import "net/http"

// The request types below are fully validated inputs of the /api routes.
// Each Parse* function checks its fields in turn and stops at the first
// failure; callers must not rely on which field that is.

// KeyRequest carries only the caller's key (auth, get_vault).
type KeyRequest struct {
	Key AuthKey
}

// RegisterRequest is the input of register.
type RegisterRequest struct {
	Email Email
	Key   AuthKey
	Vault Vault
}

// UpdateVaultRequest is the input of update_vault.
type UpdateVaultRequest struct {
	Key   AuthKey
	Vault Vault
}

// UpdateKeyRequest is the input of update_key.
type UpdateKeyRequest struct {
	OldKey AuthKey
	NewKey NewAuthKey
	Vault  Vault
}

func ParseKeyRequest(h http.Header) (KeyRequest, error) {
	key, err := AuthKeyFromHeader(h)
	if err != nil {
		return KeyRequest{}, err
	}
	return KeyRequest{Key: key}, nil
}

func ParseRegisterRequest(h http.Header) (RegisterRequest, error) {
	email, err := EmailFromHeader(h)
	if err != nil {
		return RegisterRequest{}, err
	}
	key, err := AuthKeyFromHeader(h)
	if err != nil {
		return RegisterRequest{}, err
	}
	vault, err := VaultFromHeader(h)
	if err != nil {
		return RegisterRequest{}, err
	}
	return RegisterRequest{Email: email, Key: key, Vault: vault}, nil
}

func ParseUpdateVaultRequest(h http.Header) (UpdateVaultRequest, error) {
	key, err := AuthKeyFromHeader(h)
	if err != nil {
		return UpdateVaultRequest{}, err
	}
	vault, err := VaultFromHeader(h)
	if err != nil {
		return UpdateVaultRequest{}, err
	}
	return UpdateVaultRequest{Key: key, Vault: vault}, nil
}

func ParseUpdateKeyRequest(h http.Header) (UpdateKeyRequest, error) {
	oldKey, err := AuthKeyFromHeader(h)
	if err != nil {
		return UpdateKeyRequest{}, err
	}
	newKey, err := NewAuthKeyFromHeader(h)
	if err != nil {
		return UpdateKeyRequest{}, err
	}
	vault, err := VaultFromHeader(h)
	if err != nil {
		return UpdateKeyRequest{}, err
	}
	return UpdateKeyRequest{OldKey: oldKey, NewKey: newKey, Vault: vault}, nil
}
