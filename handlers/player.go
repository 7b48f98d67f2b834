package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"moviemonk/models"
	"moviemonk/utils/player"
)

// PlayerHandler builds embed URLs for the external player. The server never
// talks to the player service; clients load the returned URL in an iframe.
type PlayerHandler struct {
	BaseURL string
}

func NewPlayerHandler(baseURL string) *PlayerHandler {
	if baseURL == "" {
		baseURL = player.DefaultBaseURL
	}
	return &PlayerHandler{BaseURL: baseURL}
}

// Movie returns the embed URL for a movie.
func (h *PlayerHandler) Movie(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	opts := playerOptions(models.MediaKindMovie, r.URL.Query())
	writeJSON(w, http.StatusOK, map[string]string{
		"url": player.MovieURL(h.BaseURL, id, opts),
	})
}

// Episode returns the embed URL for a single TV episode.
func (h *PlayerHandler) Episode(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	season, ok := requireIntVar(w, r, "season")
	if !ok {
		return
	}
	episode, ok := requireIntVar(w, r, "episode")
	if !ok {
		return
	}

	opts := playerOptions(models.MediaKindTV, r.URL.Query())
	writeJSON(w, http.StatusOK, map[string]string{
		"url": player.TVURL(h.BaseURL, id, season, episode, opts),
	})
}

func (h *PlayerHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// playerOptions overlays query parameters on the kind's defaults.
func playerOptions(kind models.MediaKind, q url.Values) player.Options {
	opts := player.DefaultOptions(kind)

	if v := q.Get("primaryColor"); v != "" {
		opts.PrimaryColor = v
	}
	if v := q.Get("secondaryColor"); v != "" {
		opts.SecondaryColor = v
	}
	if v := q.Get("iconColor"); v != "" {
		opts.IconColor = v
	}
	if v := q.Get("icons"); v != "" {
		opts.Icons = v
	}
	if v, err := strconv.ParseBool(q.Get("title")); q.Get("title") != "" && err == nil {
		opts.Title = &v
	}
	if v, err := strconv.ParseBool(q.Get("poster")); q.Get("poster") != "" && err == nil {
		opts.Poster = &v
	}
	if v, err := strconv.ParseBool(q.Get("autoplay")); q.Get("autoplay") != "" && err == nil {
		opts.Autoplay = &v
	}
	if v, err := strconv.ParseBool(q.Get("nextbutton")); q.Get("nextbutton") != "" && err == nil {
		opts.NextButton = &v
	}
	if v := q.Get("player"); v != "" {
		opts.Player = v
	}
	if v, err := strconv.Atoi(q.Get("startAt")); err == nil && v > 0 {
		opts.StartAt = v
	}
	if v := q.Get("sub_file"); v != "" {
		opts.SubFile = v
	}
	if v := q.Get("sub_label"); v != "" {
		opts.SubLabel = v
	}

	return opts
}
