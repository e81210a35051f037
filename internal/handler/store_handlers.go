package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"secure-store-hub/internal/domain/entities"
	domainerrors "secure-store-hub/internal/domain/errors"
	"secure-store-hub/internal/middleware"
)

type createStoreRequest struct {
	Name string `json:"name"`
}

func (h *Handler) createStoreHandler(w http.ResponseWriter, r *http.Request) {
	var req createStoreRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, invalidRequestBody)
		return
	}
	if trimmed(req.Name) == "" {
		writeErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	store, err := h.Stores.CreateStore(req.Name)
	if err != nil {
		h.logInternal("failed to create store", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: store})
}

func (h *Handler) listStoresHandler(w http.ResponseWriter, r *http.Request) {
	stores, err := h.Stores.ListStores()
	if err != nil {
		h.logInternal("failed to list stores", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if stores == nil {
		stores = []entities.Store{}
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: stores})
}

func (h *Handler) listObjectsHandler(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDFrom(w, r)
	if !ok {
		return
	}

	objects, err := h.Stores.ListObjects(storeID)
	if err != nil {
		h.logInternal("failed to list objects", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if objects == nil {
		objects = []entities.Object{}
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: objects})
}

// storeObjectHandler stores the request body as a JSON blob, attributed to
// the user that owns the presented API key.
func (h *Handler) storeObjectHandler(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDFrom(w, r)
	if !ok {
		return
	}

	user, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, invalidRequestBody)
		return
	}
	defer r.Body.Close()

	obj, err := h.Stores.StoreObject(storeID, user.UserName, string(body))
	if err != nil {
		if errors.Is(err, domainerrors.ErrStoreNotFound) {
			writeErrorResponse(w, http.StatusNotFound, domainerrors.ErrStoreNotFound.Message)
			return
		}
		h.logInternal("failed to store object", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: obj})
}

func (h *Handler) getObjectHandler(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDFrom(w, r)
	if !ok {
		return
	}
	objectID := mux.Vars(r)["objectID"]

	obj, err := h.Stores.GetObject(storeID, objectID)
	if err != nil {
		h.logInternal("failed to get object", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if obj == nil {
		writeErrorResponse(w, http.StatusNotFound, objectNotFound)
		return
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: obj})
}

func (h *Handler) deleteObjectHandler(w http.ResponseWriter, r *http.Request) {
	storeID, ok := storeIDFrom(w, r)
	if !ok {
		return
	}
	objectID := mux.Vars(r)["objectID"]

	if _, ok := h.actingUser(w, r); !ok {
		return
	}

	deleted, err := h.Stores.DeleteObject(storeID, objectID)
	if err != nil {
		h.logInternal("failed to delete object", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !deleted {
		writeErrorResponse(w, http.StatusNotFound, objectNotFound)
		return
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true})
}

// actingUser re-derives the account behind the presented API key. Keys
// issued ad hoc (not bound to a user) cannot write into stores.
func (h *Handler) actingUser(w http.ResponseWriter, r *http.Request) (*entities.User, bool) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "No valid user")
		return nil, false
	}
	user, err := h.Users.GetUserByAPIKey(principal.Key)
	if err != nil {
		h.logInternal("failed to resolve acting user", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	if user == nil {
		writeErrorResponse(w, http.StatusUnauthorized, "No valid user")
		return nil, false
	}
	return user, true
}

func storeIDFrom(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["storeID"], 10, 64)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid store id")
		return 0, false
	}
	return id, true
}
