// Package httpapi exposes the vault operations over HTTP. Every request is a
// GET whose inputs travel in x-* headers; responses are plain text.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/keyvault/internal/common"
	"github.com/dmitrijs2005/keyvault/internal/logging"
	"github.com/dmitrijs2005/keyvault/internal/server/guards"
)

const (
	contentType = "text/plain; charset=utf-8"

	successBody    = "Success"
	badRequestBody = "Bad request"
)

// VaultService is the subset of services.VaultService used by the handlers.
type VaultService interface {
	Authenticate(ctx context.Context, key guards.AuthKey) (bool, error)
	Register(ctx context.Context, email guards.Email, key guards.AuthKey, vault guards.Vault) error
	GetVault(ctx context.Context, key guards.AuthKey) (string, error)
	UpdateVault(ctx context.Context, key guards.AuthKey, vault guards.Vault) error
	UpdateKey(ctx context.Context, oldKey guards.AuthKey, newKey guards.NewAuthKey, vault guards.Vault) error
}

type Handler struct {
	svc VaultService
	log logging.Logger
}

func NewHandler(svc VaultService, log logging.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// HandleAuth answers "1" when x-auth-key belongs to a user and "0" otherwise.
func (h *Handler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	req, err := guards.ParseKeyRequest(r.Header)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	ok, err := h.svc.Authenticate(r.Context(), req.Key)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if ok {
		writeText(w, http.StatusOK, "1")
	} else {
		writeText(w, http.StatusOK, "0")
	}
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := guards.ParseRegisterRequest(r.Header)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.svc.Register(r.Context(), req.Email, req.Key, req.Vault); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, successBody)
}

// HandleGetVault returns the stored vault verbatim.
func (h *Handler) HandleGetVault(w http.ResponseWriter, r *http.Request) {
	req, err := guards.ParseKeyRequest(r.Header)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	vault, err := h.svc.GetVault(r.Context(), req.Key)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, vault)
}

func (h *Handler) HandleUpdateVault(w http.ResponseWriter, r *http.Request) {
	req, err := guards.ParseUpdateVaultRequest(r.Header)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.svc.UpdateVault(r.Context(), req.Key, req.Vault); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, successBody)
}

func (h *Handler) HandleUpdateKey(w http.ResponseWriter, r *http.Request) {
	req, err := guards.ParseUpdateKeyRequest(r.Header)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.svc.UpdateKey(r.Context(), req.OldKey, req.NewKey, req.Vault); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, successBody)
}

// HandleBadRequest answers unknown routes and methods.
func (h *Handler) HandleBadRequest(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusBadRequest, badRequestBody)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := common.AsAPIError(err)
	h.log.Debug(r.Context(), "request rejected", "kind", apiErr.Kind.String(), "error", err)
	writeText(w, apiErr.Status(), apiErr.Message())
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
