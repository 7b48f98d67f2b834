package models

import (
	"strconv"
	"time"
)

// MediaKind discriminates the two catalog namespaces. TMDB does not guarantee
// that movie and TV ids never collide, so every lookup keyed on an id carries
// the kind alongside it.
type MediaKind string

const (
	MediaKindMovie MediaKind = "movie"
	MediaKindTV    MediaKind = "tv"
)

// ParseMediaKind normalizes a kind string, accepting the "series" alias some
// clients send for TV content.
func ParseMediaKind(value string) (MediaKind, bool) {
	switch MediaKind(value) {
	case MediaKindMovie:
		return MediaKindMovie, true
	case MediaKindTV, "series":
		return MediaKindTV, true
	}
	return "", false
}

// Valid reports whether the kind is one of the known discriminators.
func (k MediaKind) Valid() bool {
	return k == MediaKindMovie || k == MediaKindTV
}

// CatalogItem is a normalized movie or TV series record from the remote
// provider. The Kind field is the single source of truth for the variant;
// handlers and stores never sniff field shapes to tell movies from series.
type CatalogItem struct {
	Kind             MediaKind `json:"kind"`
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Overview         string    `json:"overview,omitempty"`
	PosterPath       string    `json:"posterPath,omitempty"`
	BackdropPath     string    `json:"backdropPath,omitempty"`
	ReleaseDate      string    `json:"releaseDate,omitempty"` // ISO date, empty means unannounced
	VoteAverage      float64   `json:"voteAverage"`
	VoteCount        int       `json:"voteCount"`
	GenreIDs         []int     `json:"genreIds,omitempty"`
	OriginalLanguage string    `json:"originalLanguage,omitempty"`
	OriginCountries  []string  `json:"originCountries,omitempty"` // TV only
	Popularity       float64   `json:"popularity"`
	Adult            bool      `json:"adult,omitempty"`
}

// Key returns a stable identifier combining kind and id.
func (c CatalogItem) Key() string {
	return string(c.Kind) + ":" + strconv.FormatInt(c.ID, 10)
}

// Year returns the release year, or 0 when the date is empty or unparseable.
func (c CatalogItem) Year() int {
	t, ok := c.ParsedDate()
	if !ok {
		return 0
	}
	return t.Year()
}

// ParsedDate parses the release date. The provider uses plain 2006-01-02
// strings in list payloads.
func (c CatalogItem) ParsedDate() (time.Time, bool) {
	if c.ReleaseDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", c.ReleaseDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Page is one page of catalog results in the provider's pagination shape.
type Page struct {
	Page         int           `json:"page"`
	Results      []CatalogItem `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// EmptyPage is the zero-value page the catalog client returns on every
// failure mode. A failed fetch and an empty result set are indistinguishable
// to callers.
func EmptyPage() Page {
	return Page{Page: 1, Results: []CatalogItem{}, TotalPages: 1, TotalResults: 0}
}
