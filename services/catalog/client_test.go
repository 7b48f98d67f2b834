package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviemonk/models"
	"moviemonk/services/tmdb"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api := tmdb.NewClient("test-key", "en-US", srv.Client())
	api.SetBaseURL(srv.URL)
	return NewClient(api)
}

func TestMoviesNormalizesWirePayload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie/popular", r.URL.Path)
		w.Write([]byte(`{
			"page": 2,
			"results": [{
				"id": 603,
				"title": "The Matrix",
				"release_date": "1999-03-31",
				"vote_average": 8.2,
				"genre_ids": [28, 878],
				"original_language": "en",
				"popularity": 91.5
			}],
			"total_pages": 40,
			"total_results": 800
		}`))
	}))

	page := c.Movies(context.Background(), "popular", 2)

	require.Len(t, page.Results, 1)
	item := page.Results[0]
	assert.Equal(t, models.MediaKindMovie, item.Kind)
	assert.Equal(t, int64(603), item.ID)
	assert.Equal(t, "The Matrix", item.Title)
	assert.Equal(t, "1999-03-31", item.ReleaseDate)
	assert.Equal(t, []int{28, 878}, item.GenreIDs)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 40, page.TotalPages)
}

func TestTVShowsNormalizesNameAndFirstAirDate(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tv/on_the_air", r.URL.Path)
		w.Write([]byte(`{
			"page": 1,
			"results": [{
				"id": 1399,
				"name": "Game of Thrones",
				"first_air_date": "2011-04-17",
				"origin_country": ["US"]
			}],
			"total_pages": 1,
			"total_results": 1
		}`))
	}))

	page := c.TVShows(context.Background(), "on_the_air", 1)

	require.Len(t, page.Results, 1)
	item := page.Results[0]
	assert.Equal(t, models.MediaKindTV, item.Kind)
	assert.Equal(t, "Game of Thrones", item.Title)
	assert.Equal(t, "2011-04-17", item.ReleaseDate)
	assert.Equal(t, []string{"US"}, item.OriginCountries)
}

func TestListFailuresCollapseToEmptyPage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	assert.Equal(t, models.EmptyPage(), c.Movies(context.Background(), "popular", 1))
	assert.Equal(t, models.EmptyPage(), c.TVShows(context.Background(), "popular", 1))
}

func TestUnknownCategoryIsEmptyPage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for an unknown category")
	}))

	assert.Equal(t, models.EmptyPage(), c.Movies(context.Background(), "on_the_air", 1))
	assert.Equal(t, models.EmptyPage(), c.TVShows(context.Background(), "upcoming", 1))
}

func TestUnconfiguredClientIsEmptyPage(t *testing.T) {
	c := NewClient(tmdb.NewClient("", "", nil))
	assert.Equal(t, models.EmptyPage(), c.Movies(context.Background(), "popular", 1))
}

func TestSearchEmptyQueryShortCircuits(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty query should not hit the network")
	}))

	assert.Equal(t, models.EmptyPage(), c.SearchMovies(context.Background(), "", 1))
	assert.Equal(t, models.EmptyPage(), c.SearchTV(context.Background(), "", 1))
}

func TestMovieDetailsMapsGenres(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie/603", r.URL.Path)
		w.Write([]byte(`{
			"id": 603,
			"title": "The Matrix",
			"release_date": "1999-03-31",
			"runtime": 136,
			"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
			"tagline": "Welcome to the Real World."
		}`))
	}))

	d, err := c.MovieDetails(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, 136, d.Runtime)
	assert.Equal(t, "Welcome to the Real World.", d.Tagline)
	assert.Equal(t, []int{28, 878}, d.GenreIDs)
	assert.Equal(t, models.MediaKindMovie, d.Kind)
}

func TestFetchMovieBundleSurvivesPartialFailure(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/movie/603":
			w.Write([]byte(`{"id": 603, "title": "The Matrix", "runtime": 136}`))
		case strings.HasSuffix(r.URL.Path, "/credits"):
			w.WriteHeader(http.StatusInternalServerError)
		case strings.HasSuffix(r.URL.Path, "/videos"):
			w.Write([]byte(`{"results": [{"key": "abc", "site": "YouTube", "type": "Trailer"}]}`))
		case strings.HasSuffix(r.URL.Path, "/providers"):
			w.Write([]byte(`{"results": {"US": {"link": "https://example.com"}}}`))
		case strings.HasSuffix(r.URL.Path, "/recommendations"):
			w.Write([]byte(`{"page": 1, "results": [{"id": 604, "title": "Reloaded"}], "total_pages": 1, "total_results": 1}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	bundle := c.FetchMovieBundle(context.Background(), 603)

	require.NotNil(t, bundle.Details)
	assert.Equal(t, "The Matrix", bundle.Details.Title)
	assert.Nil(t, bundle.Credits, "failed sub-fetch stays nil")
	require.Len(t, bundle.Videos, 1)
	assert.Equal(t, "abc", bundle.Videos[0].Key)
	require.NotNil(t, bundle.WatchProviders)
	require.Len(t, bundle.Recommendations.Results, 1)
	assert.Equal(t, int64(604), bundle.Recommendations.Results[0].ID)
}

func TestFetchTVBundleAllFailuresStillReturns(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	bundle := c.FetchTVBundle(context.Background(), 1399)
	require.NotNil(t, bundle)
	assert.Nil(t, bundle.Details)
	assert.Nil(t, bundle.Credits)
	assert.Equal(t, models.EmptyPage(), bundle.Recommendations)
}

func TestSeasonIncludesEpisodes(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tv/1399/season/1", r.URL.Path)
		w.Write([]byte(`{
			"id": 3624,
			"name": "Season 1",
			"season_number": 1,
			"episodes": [{"id": 63056, "name": "Winter Is Coming", "episode_number": 1, "season_number": 1}]
		}`))
	}))

	s, err := c.Season(context.Background(), 1399, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, s.SeasonNumber)
	require.Len(t, s.Episodes, 1)
	assert.Equal(t, "Winter Is Coming", s.Episodes[0].Name)
}

func TestDebouncerRunsOnlyLastCall(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var ran atomic.Int32
	d.Do(func() { ran.Add(10) })
	d.Do(func() { ran.Add(100) })
	d.Do(func() { ran.Add(1) })

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, int32(1), ran.Load())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var ran atomic.Int32
	d.Do(func() { ran.Add(1) })
	d.Stop()

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, int32(0), ran.Load())
}
