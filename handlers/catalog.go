package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"moviemonk/models"
	"moviemonk/services/catalog"
	"moviemonk/services/tmdb"
	"moviemonk/utils/filter"
)

type catalogRelay interface {
	IsConfigured() bool
	Relay(ctx context.Context, apiPath string, query url.Values) (*tmdb.Result, error)
}

var _ catalogRelay = (*tmdb.Client)(nil)

type bundleFetcher interface {
	FetchMovieBundle(ctx context.Context, id int64) *catalog.MovieBundle
	FetchTVBundle(ctx context.Context, id int64) *catalog.TVBundle
}

var _ bundleFetcher = (*catalog.Client)(nil)

const errNotConfiguredMessage = "TMDB API key not configured"

// CatalogHandler is the credential-holding relay in front of TMDB. List and
// detail endpoints forward the upstream JSON verbatim, status included; the
// bundle endpoints aggregate the detail sub-resources server-side.
type CatalogHandler struct {
	API     catalogRelay
	Catalog bundleFetcher
}

func NewCatalogHandler(api catalogRelay, c bundleFetcher) *CatalogHandler {
	return &CatalogHandler{API: api, Catalog: c}
}

// Movies serves the movie list feeds. A non-empty query switches the request
// to free-text search; otherwise category selects one of the fixed feeds.
func (h *CatalogHandler) Movies(w http.ResponseWriter, r *http.Request) {
	if query := strings.TrimSpace(r.URL.Query().Get("query")); query != "" {
		h.relay(w, r, "/search/movie")
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		category = "popular"
	}
	apiPath, ok := tmdb.MovieListPath(category)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown movie category %q", category))
		return
	}
	h.relay(w, r, apiPath)
}

// TVShows serves the TV list feeds.
func (h *CatalogHandler) TVShows(w http.ResponseWriter, r *http.Request) {
	if query := strings.TrimSpace(r.URL.Query().Get("query")); query != "" {
		h.relay(w, r, "/search/tv")
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		category = "popular"
	}
	apiPath, ok := tmdb.TVListPath(category)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown tv category %q", category))
		return
	}
	h.relay(w, r, apiPath)
}

// MovieDetail relays the detail record and its sub-resources. The resource
// path segment is constrained by the route pattern.
func (h *CatalogHandler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	h.relay(w, r, fmt.Sprintf("/movie/%d%s", id, subResource(r)))
}

// TVDetail relays the series detail record and its sub-resources.
func (h *CatalogHandler) TVDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	h.relay(w, r, fmt.Sprintf("/tv/%d%s", id, subResource(r)))
}

// Season relays one season of a series, episodes included.
func (h *CatalogHandler) Season(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	season, ok := requireIntVar(w, r, "season")
	if !ok {
		return
	}
	h.relay(w, r, fmt.Sprintf("/tv/%d/season/%d", id, season))
}

// Episode relays a single episode record.
func (h *CatalogHandler) Episode(w http.ResponseWriter, r *http.Request) {
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
	h.relay(w, r, fmt.Sprintf("/tv/%d/season/%d/episode/%d", id, season, episode))
}

// MovieBundle serves the aggregated movie detail payload.
func (h *CatalogHandler) MovieBundle(w http.ResponseWriter, r *http.Request) {
	if !h.API.IsConfigured() {
		writeError(w, http.StatusInternalServerError, errNotConfiguredMessage)
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Catalog.FetchMovieBundle(r.Context(), id))
}

// TVBundle serves the aggregated series detail payload.
func (h *CatalogHandler) TVBundle(w http.ResponseWriter, r *http.Request) {
	if !h.API.IsConfigured() {
		writeError(w, http.StatusInternalServerError, errNotConfiguredMessage)
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Catalog.FetchTVBundle(r.Context(), id))
}

// Refine applies the filter and sort pipeline to a set of already-fetched
// items. The pipeline never fails; an empty result is a valid answer.
func (h *CatalogHandler) Refine(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Items []models.CatalogItem `json:"items"`
		Spec  *filter.Spec         `json:"spec"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	spec := filter.DefaultSpec()
	if body.Spec != nil {
		spec = *body.Spec
		if _, ok := filter.ParseSortKey(string(spec.SortBy)); !ok {
			spec.SortBy = filter.SortPopularityDesc
		}
		if spec.YearRange == [2]int{} {
			spec.YearRange = filter.DefaultSpec().YearRange
		}
		if spec.RatingRange == [2]float64{} {
			spec.RatingRange = filter.DefaultSpec().RatingRange
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results": filter.Apply(body.Items, spec),
	})
}

func (h *CatalogHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *CatalogHandler) relay(w http.ResponseWriter, r *http.Request, apiPath string) {
	if !h.API.IsConfigured() {
		writeError(w, http.StatusInternalServerError, errNotConfiguredMessage)
		return
	}

	res, err := h.API.Relay(r.Context(), apiPath, r.URL.Query())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	w.Write(res.Body)
}

// subResource returns the optional detail sub-resource suffix from the route.
func subResource(r *http.Request) string {
	switch mux.Vars(r)["resource"] {
	case "credits":
		return "/credits"
	case "videos":
		return "/videos"
	case "watch-providers":
		return "/watch/providers"
	case "recommendations":
		return "/recommendations"
	}
	return ""
}

func requireID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func requireIntVar(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}
