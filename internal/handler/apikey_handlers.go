package handler

import (
	"net/http"

	"secure-store-hub/internal/domain/entities"
	"secure-store-hub/internal/logger"
)

type generateKeyRequest struct {
	Role string `json:"role"`
}

type revokeKeyRequest struct {
	Key string `json:"key"`
}

type keyResponse struct {
	ID  int64  `json:"id,omitempty"`
	Key string `json:"key"`
}

// generateFirstKeyHandler is the anonymous bootstrap endpoint. It succeeds
// exactly once, while no key exists at all.
func (h *Handler) generateFirstKeyHandler(w http.ResponseWriter, r *http.Request) {
	ok, rawKey, err := h.Keys.GenerateFirstKey()
	if err != nil {
		h.logInternal("failed to generate first api key", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !ok {
		writeErrorResponse(w, http.StatusBadRequest,
			"Could not create a first api key. This is probably because there is already an API key in the system.")
		return
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: keyResponse{Key: rawKey}})
}

func (h *Handler) generateKeyHandler(w http.ResponseWriter, r *http.Request) {
	var req generateKeyRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, invalidRequestBody)
		return
	}

	role := entities.ParseRole(req.Role)
	if !role.Valid() {
		writeErrorResponse(w, http.StatusBadRequest, "Unknown role")
		return
	}

	id, rawKey, err := h.Keys.GenerateKey(role)
	if err != nil {
		h.logInternal("failed to generate api key", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: keyResponse{ID: id, Key: rawKey}})
}

// revokeKeyHandler deletes the key record for the presented raw key.
// Revoking an unknown key is fine; the response does not distinguish.
func (h *Handler) revokeKeyHandler(w http.ResponseWriter, r *http.Request) {
	var req revokeKeyRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, invalidRequestBody)
		return
	}

	if err := h.Keys.RevokeKey(req.Key); err != nil {
		h.logInternal("failed to revoke api key", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true})
}

func (h *Handler) logInternal(message string, err error) {
	if l := logger.GetLogger(); l != nil {
		l.LogError(message, err, nil)
	}
}
