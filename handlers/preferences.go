package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"moviemonk/models"
	"moviemonk/services/preferences"
)

type preferencesService interface {
	Get() models.Preferences
	SetTheme(theme models.Theme) (models.Preferences, error)
	SetFont(font models.Font) (models.Preferences, error)
	Reset() (models.Preferences, error)
}

var _ preferencesService = (*preferences.Service)(nil)

type PreferencesHandler struct {
	Service preferencesService
}

func NewPreferencesHandler(service preferencesService) *PreferencesHandler {
	return &PreferencesHandler{Service: service}
}

// preferencesResponse decorates the stored preferences with the theme the
// client should actually apply. The "system" theme resolves against the
// prefersDark query parameter; concrete themes resolve to themselves.
type preferencesResponse struct {
	models.Preferences
	ResolvedTheme models.Theme `json:"resolvedTheme"`
}

func (h *PreferencesHandler) respond(w http.ResponseWriter, r *http.Request, prefs models.Preferences) {
	prefersDark, _ := strconv.ParseBool(r.URL.Query().Get("prefersDark"))
	writeJSON(w, http.StatusOK, preferencesResponse{
		Preferences:   prefs,
		ResolvedTheme: prefs.Theme.Resolve(prefersDark),
	})
}

// Get returns the stored preferences.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.Service.Get())
}

// SetTheme updates the theme. Unknown themes are rejected with 400.
func (h *PreferencesHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme models.Theme `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefs, err := h.Service.SetTheme(body.Theme)
	if err != nil {
		if errors.Is(err, preferences.ErrUnknownTheme) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.respond(w, r, prefs)
}

// SetFont updates the font. Unknown fonts are rejected with 400.
func (h *PreferencesHandler) SetFont(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Font models.Font `json:"font"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefs, err := h.Service.SetFont(body.Font)
	if err != nil {
		if errors.Is(err, preferences.ErrUnknownFont) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.respond(w, r, prefs)
}

// Reset restores the default theme and font.
func (h *PreferencesHandler) Reset(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.Service.Reset()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respond(w, r, prefs)
}

func (h *PreferencesHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
