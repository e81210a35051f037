package handler

import (
	"net/http"

	"secure-store-hub/internal/logger"
	"secure-store-hub/internal/presentation/http/validation"
)

// getAccessLogsHandler returns recent structured log entries, newest first.
// Reachable by admins only via the authorization policy.
func (h *Handler) getAccessLogsHandler(w http.ResponseWriter, r *http.Request) {
	l := logger.GetLogger()
	if l == nil {
		writeErrorResponse(w, http.StatusServiceUnavailable, "Logging is not enabled")
		return
	}

	p := validation.ParsePagination(r.URL.Query(), 50, 500)

	logs, err := l.GetAccessLogs(p.Limit, p.Offset)
	if err != nil {
		h.logInternal("failed to load access logs", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if logs == nil {
		logs = []logger.StructuredLog{}
	}
	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: logs})
}
