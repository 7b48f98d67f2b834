package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"moviemonk/models"
	"moviemonk/services/watchlist"
)

type watchlistService interface {
	All() []models.WatchlistEntry
	Add(item models.CatalogItem) (models.WatchlistEntry, error)
	Remove(kind models.MediaKind, id int64) (bool, error)
	Contains(kind models.MediaKind, id int64) bool
	Clear() error
}

var _ watchlistService = (*watchlist.Service)(nil)

type WatchlistHandler struct {
	Service watchlistService
}

func NewWatchlistHandler(service watchlistService) *WatchlistHandler {
	return &WatchlistHandler{Service: service}
}

// List returns every saved entry in the order it was added.
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.All())
}

// Add saves the catalog item in the request body. Re-adding an existing
// entry returns the stored entry unchanged.
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var item models.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if kind, ok := models.ParseMediaKind(string(item.Kind)); ok {
		item.Kind = kind
	}

	entry, err := h.Service.Add(item)
	if err != nil {
		switch err {
		case watchlist.ErrKindRequired, watchlist.ErrIDRequired:
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// Contains reports whether a (kind, id) pair is saved.
func (h *WatchlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.requireKey(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"inWatchlist": h.Service.Contains(kind, id)})
}

// Remove deletes an entry, 204 on success and 404 when absent.
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.requireKey(w, r)
	if !ok {
		return
	}

	removed, err := h.Service.Remove(kind, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "not in watchlist")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear empties the watchlist.
func (h *WatchlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Clear(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WatchlistHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *WatchlistHandler) requireKey(w http.ResponseWriter, r *http.Request) (models.MediaKind, int64, bool) {
	vars := mux.Vars(r)

	kind, ok := models.ParseMediaKind(vars["kind"])
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid media kind")
		return "", 0, false
	}

	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return "", 0, false
	}

	return kind, id, true
}
