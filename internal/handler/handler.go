package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"secure-store-hub/internal/application/usecases"
)

// Response is the unified JSON envelope.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Handler owns the HTTP surface over the use cases.
type Handler struct {
	Keys   *usecases.KeyUseCase
	Users  *usecases.UserUseCase
	Stores *usecases.StoreUseCase
}

func New(keys *usecases.KeyUseCase, users *usecases.UserUseCase, stores *usecases.StoreUseCase) *Handler {
	return &Handler{Keys: keys, Users: users, Stores: stores}
}

// IsPublic reports whether a request needs no credential: the two
// bootstrap endpoints, login and the health check.
func IsPublic(r *http.Request) bool {
	path := r.URL.Path
	switch {
	case path == "/api/v1/health" && r.Method == http.MethodGet:
		return true
	case path == "/api/v1/auth/login" && r.Method == http.MethodPost:
		return true
	case path == "/api/v1/apikeys/first" && r.Method == http.MethodPut:
		return true
	case path == "/api/v1/users/initial" && r.Method == http.MethodPut:
		return true
	}
	return false
}

// RegisterRoutes wires every endpoint under /api/v1.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", h.healthCheckHandler).Methods("GET")

	api.HandleFunc("/auth/login", h.loginHandler).Methods("POST")

	api.HandleFunc("/apikeys/first", h.generateFirstKeyHandler).Methods("PUT")
	api.HandleFunc("/apikeys", h.generateKeyHandler).Methods("POST")
	api.HandleFunc("/apikeys", h.revokeKeyHandler).Methods("DELETE")

	api.HandleFunc("/users/initial", h.createInitialUserHandler).Methods("PUT")
	api.HandleFunc("/users", h.createUserHandler).Methods("POST")
	api.HandleFunc("/users", h.getUsersHandler).Methods("GET")
	api.HandleFunc("/users/{userName}", h.getUserHandler).Methods("GET")
	api.HandleFunc("/users/{userName}", h.updateUserHandler).Methods("POST")
	api.HandleFunc("/users/{userName}/password", h.changePasswordHandler).Methods("POST")
	api.HandleFunc("/users/{userName}", h.deleteUserHandler).Methods("DELETE")

	api.HandleFunc("/logs", h.getAccessLogsHandler).Methods("GET")

	api.HandleFunc("/stores", h.listStoresHandler).Methods("GET")
	api.HandleFunc("/stores", h.createStoreHandler).Methods("PUT")
	api.HandleFunc("/stores/{storeID}", h.listObjectsHandler).Methods("GET")
	api.HandleFunc("/stores/{storeID}", h.storeObjectHandler).Methods("POST")
	api.HandleFunc("/stores/{storeID}/objects/{objectID}", h.getObjectHandler).Methods("GET")
	api.HandleFunc("/stores/{storeID}/objects/{objectID}", h.deleteObjectHandler).Methods("DELETE")
}

func (h *Handler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]string{"status": "healthy"},
	})
}

func writeJSONResponse(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeErrorResponse(w http.ResponseWriter, status int, message string) {
	writeJSONResponse(w, status, Response{Success: false, Error: message})
}

func decodeJSONBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

func trimmed(s string) string { return strings.TrimSpace(s) }
