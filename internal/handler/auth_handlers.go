package handler

import (
	"net/http"

	"secure-store-hub/internal/logger"
)

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// loginHandler verifies a username/password pair and returns the user
// record, API key included, on success. Failure returns an empty record:
// a wrong password and an unknown user look identical, which keeps this
// endpoint useless for enumerating accounts.
func (h *Handler) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, invalidRequestBody)
		return
	}

	user, err := h.Users.Authenticate(req.UserName, req.Password)
	if err != nil {
		h.logInternal("authentication failed", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if l := logger.GetLogger(); l != nil {
		l.LogUserLogin(req.UserName, r.RemoteAddr, user.Exists())
	}

	writeJSONResponse(w, http.StatusOK, Response{Success: user.Exists(), Data: user})
}
