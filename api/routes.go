package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"moviemonk/handlers"
)

// corsMiddleware handles CORS for API routes
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestIDMiddleware tags each request with an X-Request-ID, keeping a
// caller-supplied one when present.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// Register mounts API endpoints onto the provided router.
func Register(
	r *mux.Router,
	catalogHandler *handlers.CatalogHandler,
	watchlistHandler *handlers.WatchlistHandler,
	preferencesHandler *handlers.PreferencesHandler,
	playerHandler *handlers.PlayerHandler,
	imageHandler *handlers.ImageHandler,
) {
	api := r.PathPrefix("/api").Subrouter()

	api.Use(corsMiddleware)
	api.Use(requestIDMiddleware)

	// Catalog relay
	api.HandleFunc("/catalog/movies", catalogHandler.Movies).Methods(http.MethodGet)
	api.HandleFunc("/catalog/movies", catalogHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/catalog/tv", catalogHandler.TVShows).Methods(http.MethodGet)
	api.HandleFunc("/catalog/tv", catalogHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/catalog/refine", catalogHandler.Refine).Methods(http.MethodPost)
	api.HandleFunc("/catalog/refine", catalogHandler.Options).Methods(http.MethodOptions)

	api.HandleFunc("/catalog/movies/{id}", catalogHandler.MovieDetail).Methods(http.MethodGet)
	api.HandleFunc("/catalog/movies/{id}/bundle", catalogHandler.MovieBundle).Methods(http.MethodGet)
	api.HandleFunc("/catalog/movies/{id}/{resource:credits|videos|watch-providers|recommendations}", catalogHandler.MovieDetail).Methods(http.MethodGet)

	api.HandleFunc("/catalog/tv/{id}", catalogHandler.TVDetail).Methods(http.MethodGet)
	api.HandleFunc("/catalog/tv/{id}/bundle", catalogHandler.TVBundle).Methods(http.MethodGet)
	api.HandleFunc("/catalog/tv/{id}/{resource:credits|videos|watch-providers|recommendations}", catalogHandler.TVDetail).Methods(http.MethodGet)
	api.HandleFunc("/catalog/tv/{id}/season/{season}", catalogHandler.Season).Methods(http.MethodGet)
	api.HandleFunc("/catalog/tv/{id}/season/{season}/episode/{episode}", catalogHandler.Episode).Methods(http.MethodGet)

	// Watchlist
	api.HandleFunc("/watchlist", watchlistHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/watchlist", watchlistHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/watchlist", watchlistHandler.Clear).Methods(http.MethodDelete)
	api.HandleFunc("/watchlist", watchlistHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/watchlist/{kind}/{id}", watchlistHandler.Contains).Methods(http.MethodGet)
	api.HandleFunc("/watchlist/{kind}/{id}", watchlistHandler.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/watchlist/{kind}/{id}", watchlistHandler.Options).Methods(http.MethodOptions)

	// Preferences
	api.HandleFunc("/preferences", preferencesHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/preferences", preferencesHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/preferences/theme", preferencesHandler.SetTheme).Methods(http.MethodPut)
	api.HandleFunc("/preferences/theme", preferencesHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/preferences/font", preferencesHandler.SetFont).Methods(http.MethodPut)
	api.HandleFunc("/preferences/font", preferencesHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/preferences/reset", preferencesHandler.Reset).Methods(http.MethodPost)

	// Player embed URLs
	api.HandleFunc("/player/movie/{id}", playerHandler.Movie).Methods(http.MethodGet)
	api.HandleFunc("/player/movie/{id}", playerHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/player/tv/{id}/{season}/{episode}", playerHandler.Episode).Methods(http.MethodGet)
	api.HandleFunc("/player/tv/{id}/{season}/{episode}", playerHandler.Options).Methods(http.MethodOptions)

	// Artwork proxy
	api.HandleFunc("/image", imageHandler.Artwork).Methods(http.MethodGet)
	api.HandleFunc("/image", imageHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/image/cache", imageHandler.Clear).Methods(http.MethodDelete)
}
