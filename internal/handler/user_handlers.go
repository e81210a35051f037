package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"secure-store-hub/internal/domain/entities"
	domainerrors "secure-store-hub/internal/domain/errors"
	"secure-store-hub/internal/presentation/http/validation"
)

type createUserRequest struct {
	UserName    string `json:"userName"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	Password    string `json:"password"`
}

type createInitialUserRequest struct {
	UserName    string `json:"userName"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type updateUserRequest struct {
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// createInitialUserHandler is the anonymous user-facing bootstrap: the very
// first account, always Admin.
func (h *Handler) createInitialUserHandler(w http.ResponseWriter, r *http.Request) {
	var req createInitialUserRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, invalidRequestBody)
		return
	}
	if trimmed(req.UserName) == "" || req.Password == "" {
		writeErrorResponse(w, http.StatusBadRequest, "userName and password are required")
		return
	}
	if !validation.ValidateUserName(req.UserName) {
		writeErrorResponse(w, http.StatusBadRequest, invalidUserName)
		return
	}
	if !validation.ValidateDisplayName(req.DisplayName) {
		writeErrorResponse(w, http.StatusBadRequest, invalidDisplayName)
		return
	}

	user, err := h.Users.CreateInitialUser(req.UserName, req.DisplayName, req.Password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyInitialized) {
			writeErrorResponse(w, http.StatusBadRequest, domainerrors.ErrAlreadyInitialized.Message)
			return
		}
		h.logInternal("failed to create initial user", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: user})
}

func (h *Handler) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, invalidRequestBody)
		return
	}
	if trimmed(req.UserName) == "" || req.Password == "" {
		writeErrorResponse(w, http.StatusBadRequest, "userName and password are required")
		return
	}
	if !validation.ValidateUserName(req.UserName) {
		writeErrorResponse(w, http.StatusBadRequest, invalidUserName)
		return
	}
	if !validation.ValidateDisplayName(req.DisplayName) {
		writeErrorResponse(w, http.StatusBadRequest, invalidDisplayName)
		return
	}
	role := entities.ParseRole(req.Role)
	if !role.Valid() {
		writeErrorResponse(w, http.StatusBadRequest, "Unknown role")
		return
	}

	user, err := h.Users.CreateUser(req.UserName, role, req.DisplayName, req.Password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateUser) {
			writeErrorResponse(w, http.StatusConflict, domainerrors.ErrDuplicateUser.Message)
			return
		}
		h.logInternal("failed to create user", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: user})
}

func (h *Handler) getUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.GetUsers()
	if err != nil {
		h.logInternal("failed to list users", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if users == nil {
		users = []entities.User{}
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: users})
}

func (h *Handler) getUserHandler(w http.ResponseWriter, r *http.Request) {
	userName := mux.Vars(r)["userName"]

	user, err := h.Users.GetUser(userName)
	if err != nil {
		h.logInternal("failed to get user", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !user.Exists() {
		writeErrorResponse(w, http.StatusNotFound, userNotFound)
		return
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: user})
}

func (h *Handler) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	userName := mux.Vars(r)["userName"]

	var req updateUserRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, invalidRequestBody)
		return
	}
	role := entities.ParseRole(req.Role)
	if !role.Valid() {
		writeErrorResponse(w, http.StatusBadRequest, "Unknown role")
		return
	}

	updated, err := h.Users.UpdateUser(userName, role, req.DisplayName)
	if err != nil {
		h.logInternal("failed to update user", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !updated {
		writeErrorResponse(w, http.StatusNotFound, userNotFound)
		return
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true})
}

func (h *Handler) changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	userName := mux.Vars(r)["userName"]

	var req changePasswordRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, invalidRequestBody)
		return
	}

	changed, err := h.Users.ChangePassword(userName, req.OldPassword, req.NewPassword)
	if err != nil {
		h.logInternal("failed to change password", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !changed {
		writeErrorResponse(w, http.StatusBadRequest, "Password not changed")
		return
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true})
}

func (h *Handler) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	userName := mux.Vars(r)["userName"]

	deleted, err := h.Users.DeleteUser(userName)
	if err != nil {
		h.logInternal("failed to delete user", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !deleted {
		writeErrorResponse(w, http.StatusNotFound, userNotFound)
		return
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true})
}
