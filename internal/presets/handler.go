package presets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ohcanadadeals/dealdeck/internal/catalog"
)

// CreateRequest is the body for POST /api/v1/presets.
// @Description Request body for saving a new filter preset.
type CreateRequest struct {
	Label       string              `json:"label" example:"Cheap electronics"`
	Description string              `json:"description,omitempty" example:"Electronics under $50"`
	Value       catalog.FilterState `json:"value"`
}

// PresetView is a SavedFilter plus its display chips.
type PresetView struct {
	SavedFilter
	Summary []string `json:"summary"`
}

// Handler provides HTTP handlers for filter preset endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a preset Handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers preset routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/presets", h.handleList)
	mux.HandleFunc("POST /api/v1/presets", h.handleCreate)
	mux.HandleFunc("DELETE /api/v1/presets/{id}", h.handleDelete)
	mux.HandleFunc("POST /api/v1/presets/{id}/favorite", h.handleToggleFavorite)
}

// handleList returns the saved presets, favorites first.
//
//	@Summary		List filter presets
//	@Tags			presets
//	@Produce		json
//	@Param			q query string false "Restrict to presets whose label or description contains this text"
//	@Success		200 {array} PresetView
//	@Failure		500 {object} map[string]any
//	@Router			/presets [get]
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filters, err := h.service.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("failed to list presets", zap.Error(err))
		writePresetError(w, http.StatusInternalServerError, "failed to list presets")
		return
	}

	views := make([]PresetView, len(filters))
	for i, f := range filters {
		views[i] = PresetView{SavedFilter: f, Summary: Summary(f.Value)}
	}
	writeJSON(w, http.StatusOK, views)
}

// handleCreate saves a new preset.
//
//	@Summary		Save a filter preset
//	@Tags			presets
//	@Accept			json
//	@Produce		json
//	@Param			request body CreateRequest true "Preset to save"
//	@Success		201 {object} PresetView
//	@Failure		400 {object} map[string]any
//	@Failure		500 {object} map[string]any
//	@Router			/presets [post]
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePresetError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	preset, err := h.service.Create(r.Context(), req.Label, req.Description, req.Value)
	if err != nil {
		if errors.Is(err, ErrEmptyLabel) {
			writePresetError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to create preset", zap.Error(err))
		writePresetError(w, http.StatusInternalServerError, "failed to save preset")
		return
	}

	writeJSON(w, http.StatusCreated, PresetView{SavedFilter: preset, Summary: Summary(preset.Value)})
}

// handleDelete removes a preset.
//
//	@Summary		Delete a filter preset
//	@Tags			presets
//	@Param			id path int true "Preset ID"
//	@Success		204
//	@Failure		400 {object} map[string]any
//	@Failure		404 {object} map[string]any
//	@Failure		500 {object} map[string]any
//	@Router			/presets/{id} [delete]
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writePresetError(w, http.StatusBadRequest, "invalid preset id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writePresetError(w, http.StatusNotFound, "preset not found")
			return
		}
		h.logger.Error("failed to delete preset", zap.Int64("id", id), zap.Error(err))
		writePresetError(w, http.StatusInternalServerError, "failed to delete preset")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleToggleFavorite flips the favorite flag on a preset.
//
//	@Summary		Toggle a preset's favorite flag
//	@Tags			presets
//	@Produce		json
//	@Param			id path int true "Preset ID"
//	@Success		200 {object} PresetView
//	@Failure		400 {object} map[string]any
//	@Failure		404 {object} map[string]any
//	@Failure		500 {object} map[string]any
//	@Router			/presets/{id}/favorite [post]
func (h *Handler) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writePresetError(w, http.StatusBadRequest, "invalid preset id")
		return
	}

	preset, err := h.service.ToggleFavorite(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writePresetError(w, http.StatusNotFound, "preset not found")
			return
		}
		h.logger.Error("failed to toggle favorite", zap.Int64("id", id), zap.Error(err))
		writePresetError(w, http.StatusInternalServerError, "failed to update preset")
		return
	}

	writeJSON(w, http.StatusOK, PresetView{SavedFilter: preset, Summary: Summary(preset.Value)})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writePresetError writes an RFC 7807 problem response.
func writePresetError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://ohcanadadeals.com/problems/presets-error",
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}
