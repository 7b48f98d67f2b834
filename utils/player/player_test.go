package player

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviemonk/models"
)

func parseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Query()
}

func TestMovieURLDefaults(t *testing.T) {
	got := MovieURL("", 603, DefaultOptions(models.MediaKindMovie))

	assert.True(t, strings.HasPrefix(got, "https://vidlink.pro/movie/603?"))

	q := parseQuery(t, got)
	assert.Equal(t, "B20710", q.Get("primaryColor"))
	assert.Equal(t, "170000", q.Get("secondaryColor"))
	assert.Equal(t, "B20710", q.Get("iconColor"))
	assert.Empty(t, q.Get("nextbutton"), "movies should not set nextbutton")
}

func TestTVURLDefaultsEnableNextButton(t *testing.T) {
	got := TVURL("", 1399, 1, 5, DefaultOptions(models.MediaKindTV))

	assert.True(t, strings.HasPrefix(got, "https://vidlink.pro/tv/1399/1/5?"))
	assert.Equal(t, "true", parseQuery(t, got).Get("nextbutton"))
}

func TestBuildStripsHashFromColors(t *testing.T) {
	opts := Options{PrimaryColor: "#FF0000", IconColor: "00FF00"}
	q := parseQuery(t, MovieURL("", 1, opts))

	assert.Equal(t, "FF0000", q.Get("primaryColor"))
	assert.Equal(t, "00FF00", q.Get("iconColor"))
}

func TestBuildOmitsUnsetOptions(t *testing.T) {
	got := MovieURL("", 42, Options{})
	assert.Equal(t, "https://vidlink.pro/movie/42", got)
}

func TestBuildExplicitFalseIsEmitted(t *testing.T) {
	f := false
	q := parseQuery(t, MovieURL("", 1, Options{Autoplay: &f}))
	assert.Equal(t, "false", q.Get("autoplay"))
}

func TestBuildFullOptionSet(t *testing.T) {
	tr := true
	opts := Options{
		PrimaryColor:   "#B20710",
		SecondaryColor: "#170000",
		IconColor:      "#B20710",
		Icons:          "vid",
		Title:          &tr,
		Poster:         &tr,
		Autoplay:       &tr,
		Player:         "jw",
		StartAt:        120,
		SubFile:        "https://example.com/subs.vtt",
		SubLabel:       "English",
	}

	q := parseQuery(t, TVURL("https://alt.example", 7, 2, 3, opts))
	assert.Equal(t, "vid", q.Get("icons"))
	assert.Equal(t, "true", q.Get("title"))
	assert.Equal(t, "true", q.Get("poster"))
	assert.Equal(t, "true", q.Get("autoplay"))
	assert.Equal(t, "jw", q.Get("player"))
	assert.Equal(t, "120", q.Get("startAt"))
	assert.Equal(t, "https://example.com/subs.vtt", q.Get("sub_file"))
	assert.Equal(t, "English", q.Get("sub_label"))
}

func TestBuildCustomBaseURL(t *testing.T) {
	got := MovieURL("https://mirror.example", 9, Options{})
	assert.Equal(t, "https://mirror.example/movie/9", got)
}
