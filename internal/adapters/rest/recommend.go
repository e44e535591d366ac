package rest

import (
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type recommendRequest struct {
	Query string `json:"query"`
	K     int    `json:"k,omitempty"`
}

type recommendResponse struct {
	Response string `json:"response"`
}

// Recommend handles POST /recommend. Too-short queries and empty results
// come back as 200s with canned text; only infrastructure failures are
// errors here.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.svc.Recommend(r.Context(), req.Query, req.K)
	if err != nil {
		h.logger.Error("recommend failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, recommendResponse{Response: response})
}
