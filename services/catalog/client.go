// Package catalog turns raw TMDB payloads into the app's normalized shapes.
// List fetches never fail from the caller's point of view: every error path
// collapses to an empty page so browse rows render without error states.
package catalog

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/sourcegraph/conc"

	"moviemonk/models"
	"moviemonk/services/tmdb"
)

type Client struct {
	api *tmdb.Client
}

func NewClient(api *tmdb.Client) *Client {
	return &Client{api: api}
}

// wireItem is the provider's list-entry shape. Movies and TV series disagree
// on the title and date field names; normalization picks whichever is set.
type wireItem struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Name             string   `json:"name"`
	Overview         string   `json:"overview"`
	PosterPath       string   `json:"poster_path"`
	BackdropPath     string   `json:"backdrop_path"`
	ReleaseDate      string   `json:"release_date"`
	FirstAirDate     string   `json:"first_air_date"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
	GenreIDs         []int    `json:"genre_ids"`
	OriginalLanguage string   `json:"original_language"`
	OriginCountry    []string `json:"origin_country"`
	Popularity       float64  `json:"popularity"`
	Adult            bool     `json:"adult"`
}

func (w wireItem) toItem(kind models.MediaKind) models.CatalogItem {
	title := w.Title
	if title == "" {
		title = w.Name
	}
	date := w.ReleaseDate
	if date == "" {
		date = w.FirstAirDate
	}
	return models.CatalogItem{
		Kind:             kind,
		ID:               w.ID,
		Title:            title,
		Overview:         w.Overview,
		PosterPath:       w.PosterPath,
		BackdropPath:     w.BackdropPath,
		ReleaseDate:      date,
		VoteAverage:      w.VoteAverage,
		VoteCount:        w.VoteCount,
		GenreIDs:         w.GenreIDs,
		OriginalLanguage: w.OriginalLanguage,
		OriginCountries:  w.OriginCountry,
		Popularity:       w.Popularity,
		Adult:            w.Adult,
	}
}

type wirePage struct {
	Page         int        `json:"page"`
	Results      []wireItem `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

func (w wirePage) toPage(kind models.MediaKind) models.Page {
	items := make([]models.CatalogItem, 0, len(w.Results))
	for _, r := range w.Results {
		items = append(items, r.toItem(kind))
	}
	page := models.Page{
		Page:         w.Page,
		Results:      items,
		TotalPages:   w.TotalPages,
		TotalResults: w.TotalResults,
	}
	if page.Page == 0 {
		page.Page = 1
	}
	if page.TotalPages == 0 {
		page.TotalPages = 1
	}
	return page
}

// Movies fetches one page of a movie list category. Unknown categories and
// every fetch failure return an empty page.
func (c *Client) Movies(ctx context.Context, category string, page int) models.Page {
	apiPath, ok := tmdb.MovieListPath(category)
	if !ok {
		log.Printf("[catalog] unknown movie category %q", category)
		return models.EmptyPage()
	}
	return c.fetchPage(ctx, models.MediaKindMovie, apiPath, pageQuery(page))
}

// TVShows fetches one page of a TV list category.
func (c *Client) TVShows(ctx context.Context, category string, page int) models.Page {
	apiPath, ok := tmdb.TVListPath(category)
	if !ok {
		log.Printf("[catalog] unknown tv category %q", category)
		return models.EmptyPage()
	}
	return c.fetchPage(ctx, models.MediaKindTV, apiPath, pageQuery(page))
}

// SearchMovies queries the provider's movie search.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) models.Page {
	if query == "" {
		return models.EmptyPage()
	}
	q := pageQuery(page)
	q.Set("query", query)
	return c.fetchPage(ctx, models.MediaKindMovie, "/search/movie", q)
}

// SearchTV queries the provider's TV search.
func (c *Client) SearchTV(ctx context.Context, query string, page int) models.Page {
	if query == "" {
		return models.EmptyPage()
	}
	q := pageQuery(page)
	q.Set("query", query)
	return c.fetchPage(ctx, models.MediaKindTV, "/search/tv", q)
}

// MovieRecommendations fetches titles related to a movie.
func (c *Client) MovieRecommendations(ctx context.Context, id int64, page int) models.Page {
	return c.fetchPage(ctx, models.MediaKindMovie, fmt.Sprintf("/movie/%d/recommendations", id), pageQuery(page))
}

// TVRecommendations fetches series related to a show.
func (c *Client) TVRecommendations(ctx context.Context, id int64, page int) models.Page {
	return c.fetchPage(ctx, models.MediaKindTV, fmt.Sprintf("/tv/%d/recommendations", id), pageQuery(page))
}

func (c *Client) fetchPage(ctx context.Context, kind models.MediaKind, apiPath string, query url.Values) models.Page {
	var raw wirePage
	if err := c.api.Get(ctx, apiPath, query, &raw); err != nil {
		log.Printf("[catalog] fetch %s failed: %v", apiPath, err)
		return models.EmptyPage()
	}
	return raw.toPage(kind)
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return q
}

type wireMovieDetails struct {
	wireItem
	Genres              []models.Genre             `json:"genres"`
	Runtime             int                        `json:"runtime"`
	Budget              int64                      `json:"budget"`
	Revenue             int64                      `json:"revenue"`
	ProductionCompanies []models.ProductionCompany `json:"production_companies"`
	Tagline             string                     `json:"tagline"`
	Status              string                     `json:"status"`
}

type wireTVDetails struct {
	wireItem
	Genres              []models.Genre             `json:"genres"`
	EpisodeRunTime      []int                      `json:"episode_run_time"`
	NumberOfSeasons     int                        `json:"number_of_seasons"`
	NumberOfEpisodes    int                        `json:"number_of_episodes"`
	ProductionCompanies []models.ProductionCompany `json:"production_companies"`
	Tagline             string                     `json:"tagline"`
	Status              string                     `json:"status"`
	Seasons             []models.Season            `json:"seasons"`
}

func genreIDs(genres []models.Genre) []int {
	ids := make([]int, 0, len(genres))
	for _, g := range genres {
		ids = append(ids, g.ID)
	}
	return ids
}

// MovieDetails fetches the full detail record for a movie.
func (c *Client) MovieDetails(ctx context.Context, id int64) (*models.MovieDetails, error) {
	var raw wireMovieDetails
	if err := c.api.Get(ctx, fmt.Sprintf("/movie/%d", id), nil, &raw); err != nil {
		return nil, err
	}
	item := raw.toItem(models.MediaKindMovie)
	item.GenreIDs = genreIDs(raw.Genres)
	return &models.MovieDetails{
		CatalogItem:         item,
		Genres:              raw.Genres,
		Runtime:             raw.Runtime,
		Budget:              raw.Budget,
		Revenue:             raw.Revenue,
		ProductionCompanies: raw.ProductionCompanies,
		Tagline:             raw.Tagline,
		Status:              raw.Status,
	}, nil
}

// TVDetails fetches the full detail record for a series.
func (c *Client) TVDetails(ctx context.Context, id int64) (*models.TVDetails, error) {
	var raw wireTVDetails
	if err := c.api.Get(ctx, fmt.Sprintf("/tv/%d", id), nil, &raw); err != nil {
		return nil, err
	}
	item := raw.toItem(models.MediaKindTV)
	item.GenreIDs = genreIDs(raw.Genres)
	return &models.TVDetails{
		CatalogItem:         item,
		Genres:              raw.Genres,
		EpisodeRunTime:      raw.EpisodeRunTime,
		NumberOfSeasons:     raw.NumberOfSeasons,
		NumberOfEpisodes:    raw.NumberOfEpisodes,
		ProductionCompanies: raw.ProductionCompanies,
		Tagline:             raw.Tagline,
		Status:              raw.Status,
		Seasons:             raw.Seasons,
	}, nil
}

// Credits fetches the cast and crew list for a title.
func (c *Client) Credits(ctx context.Context, kind models.MediaKind, id int64) (*models.Credits, error) {
	var out models.Credits
	if err := c.api.Get(ctx, fmt.Sprintf("/%s/%d/credits", kind, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Videos fetches the trailer and clip list for a title.
func (c *Client) Videos(ctx context.Context, kind models.MediaKind, id int64) ([]models.Video, error) {
	var out struct {
		Results []models.Video `json:"results"`
	}
	if err := c.api.Get(ctx, fmt.Sprintf("/%s/%d/videos", kind, id), nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// WatchProviders fetches per-country streaming availability for a title.
func (c *Client) WatchProviders(ctx context.Context, kind models.MediaKind, id int64) (*models.WatchProviders, error) {
	var out models.WatchProviders
	if err := c.api.Get(ctx, fmt.Sprintf("/%s/%d/watch/providers", kind, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SeasonDetails is a season record with its episode list attached.
type SeasonDetails struct {
	models.Season
	Episodes []models.Episode `json:"episodes"`
}

// Season fetches one season of a series including its episodes.
func (c *Client) Season(ctx context.Context, id int64, season int) (*SeasonDetails, error) {
	var out SeasonDetails
	if err := c.api.Get(ctx, fmt.Sprintf("/tv/%d/season/%d", id, season), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieBundle aggregates every detail sub-resource for one movie. Fields for
// sub-fetches that failed are left zero; the bundle itself always comes back.
type MovieBundle struct {
	Details         *models.MovieDetails   `json:"details"`
	Credits         *models.Credits        `json:"credits"`
	Videos          []models.Video         `json:"videos"`
	WatchProviders  *models.WatchProviders `json:"watchProviders"`
	Recommendations models.Page            `json:"recommendations"`
}

// TVBundle aggregates every detail sub-resource for one series.
type TVBundle struct {
	Details         *models.TVDetails      `json:"details"`
	Credits         *models.Credits        `json:"credits"`
	Videos          []models.Video         `json:"videos"`
	WatchProviders  *models.WatchProviders `json:"watchProviders"`
	Recommendations models.Page            `json:"recommendations"`
}

// FetchMovieBundle runs the five detail fetches concurrently and waits for
// all of them, including the failed ones, before returning.
func (c *Client) FetchMovieBundle(ctx context.Context, id int64) *MovieBundle {
	bundle := &MovieBundle{Recommendations: models.EmptyPage()}

	var wg conc.WaitGroup
	wg.Go(func() {
		d, err := c.MovieDetails(ctx, id)
		if err != nil {
			log.Printf("[catalog] movie %d details failed: %v", id, err)
			return
		}
		bundle.Details = d
	})
	wg.Go(func() {
		cr, err := c.Credits(ctx, models.MediaKindMovie, id)
		if err != nil {
			log.Printf("[catalog] movie %d credits failed: %v", id, err)
			return
		}
		bundle.Credits = cr
	})
	wg.Go(func() {
		v, err := c.Videos(ctx, models.MediaKindMovie, id)
		if err != nil {
			log.Printf("[catalog] movie %d videos failed: %v", id, err)
			return
		}
		bundle.Videos = v
	})
	wg.Go(func() {
		wp, err := c.WatchProviders(ctx, models.MediaKindMovie, id)
		if err != nil {
			log.Printf("[catalog] movie %d providers failed: %v", id, err)
			return
		}
		bundle.WatchProviders = wp
	})
	wg.Go(func() {
		bundle.Recommendations = c.MovieRecommendations(ctx, id, 1)
	})
	wg.Wait()

	return bundle
}

// FetchTVBundle is the series counterpart of FetchMovieBundle.
func (c *Client) FetchTVBundle(ctx context.Context, id int64) *TVBundle {
	bundle := &TVBundle{Recommendations: models.EmptyPage()}

	var wg conc.WaitGroup
	wg.Go(func() {
		d, err := c.TVDetails(ctx, id)
		if err != nil {
			log.Printf("[catalog] tv %d details failed: %v", id, err)
			return
		}
		bundle.Details = d
	})
	wg.Go(func() {
		cr, err := c.Credits(ctx, models.MediaKindTV, id)
		if err != nil {
			log.Printf("[catalog] tv %d credits failed: %v", id, err)
			return
		}
		bundle.Credits = cr
	})
	wg.Go(func() {
		v, err := c.Videos(ctx, models.MediaKindTV, id)
		if err != nil {
			log.Printf("[catalog] tv %d videos failed: %v", id, err)
			return
		}
		bundle.Videos = v
	})
	wg.Go(func() {
		wp, err := c.WatchProviders(ctx, models.MediaKindTV, id)
		if err != nil {
			log.Printf("[catalog] tv %d providers failed: %v", id, err)
			return
		}
		bundle.WatchProviders = wp
	})
	wg.Go(func() {
		bundle.Recommendations = c.TVRecommendations(ctx, id, 1)
	})
	wg.Wait()

	return bundle
}
