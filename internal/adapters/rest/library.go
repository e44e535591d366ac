package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/avelasco/acorde/internal/core/domain"
)

type trackPayload struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Artist     string   `json:"artist"`
	Genres     []string `json:"genres,omitempty"`
	Popularity *int     `json:"popularity,omitempty"`
}

func toTrackPayloads(tracks []domain.Track) []trackPayload {
	out := make([]trackPayload, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, trackPayload{
			ID:         t.ID,
			Title:      t.Title,
			Artist:     t.Artist,
			Genres:     t.Genres,
			Popularity: t.Popularity,
		})
	}
	return out
}

// SampleTracks handles GET /tracks/sample?limit=20
func (h *Handler) SampleTracks(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)

	tracks, err := h.library.SampleTracks(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tracks": toTrackPayloads(tracks)})
}

// GetPreferenceTracks handles GET /users/{id}/preferences?limit=20&page=0
func (h *Handler) GetPreferenceTracks(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user id is required")
		return
	}

	limit := queryInt(r, "limit", 20)
	page := queryInt(r, "page", 0)

	tracks, err := h.library.PreferenceTracks(r.Context(), userID, limit, page)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tracks": toTrackPayloads(tracks)})
}

type savePreferencesRequest struct {
	Ratings map[string]int `json:"ratings"`
}

// SavePreferences handles PUT /users/{id}/preferences
func (h *Handler) SavePreferences(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user id is required")
		return
	}

	var req savePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	for id, rating := range req.Ratings {
		if rating < 0 || rating > 5 {
			writeError(w, http.StatusBadRequest, "rating for "+id+" must be between 0 and 5")
			return
		}
	}

	if err := h.library.SavePreferences(r.Context(), userID, req.Ratings); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "saved": len(req.Ratings)})
}

// ArtistExists handles GET /artists/exists?name=...
func (h *Handler) ArtistExists(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	exists, err := h.library.ArtistExists(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
