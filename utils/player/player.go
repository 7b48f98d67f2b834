// Package player builds embed URLs for the external playback provider.
package player

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"moviemonk/models"
)

const DefaultBaseURL = "https://vidlink.pro"

// Options customizes the embedded player. Pointer fields distinguish "not
// set" from an explicit false so omitted options stay off the query string.
type Options struct {
	PrimaryColor   string
	SecondaryColor string
	IconColor      string
	Icons          string
	Title          *bool
	Poster         *bool
	Autoplay       *bool
	NextButton     *bool
	Player         string
	StartAt        int
	SubFile        string
	SubLabel       string
}

// DefaultOptions returns the app's player branding. TV playback additionally
// enables the next-episode button.
func DefaultOptions(kind models.MediaKind) Options {
	opts := Options{
		PrimaryColor:   "#B20710",
		SecondaryColor: "#170000",
		IconColor:      "#B20710",
	}
	if kind == models.MediaKindTV {
		opts.NextButton = boolPtr(true)
	}
	return opts
}

// MovieURL builds the embed URL for a movie.
func MovieURL(baseURL string, id int64, opts Options) string {
	return build(baseURL, fmt.Sprintf("/movie/%d", id), opts)
}

// TVURL builds the embed URL for a single episode.
func TVURL(baseURL string, id int64, season, episode int, opts Options) string {
	return build(baseURL, fmt.Sprintf("/tv/%d/%d/%d", id, season, episode), opts)
}

func build(baseURL, path string, opts Options) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	q := url.Values{}
	setColor(q, "primaryColor", opts.PrimaryColor)
	setColor(q, "secondaryColor", opts.SecondaryColor)
	setColor(q, "iconColor", opts.IconColor)
	if opts.Icons != "" {
		q.Set("icons", opts.Icons)
	}
	setBool(q, "title", opts.Title)
	setBool(q, "poster", opts.Poster)
	setBool(q, "autoplay", opts.Autoplay)
	setBool(q, "nextbutton", opts.NextButton)
	if opts.Player != "" {
		q.Set("player", opts.Player)
	}
	if opts.StartAt > 0 {
		q.Set("startAt", strconv.Itoa(opts.StartAt))
	}
	if opts.SubFile != "" {
		q.Set("sub_file", opts.SubFile)
	}
	if opts.SubLabel != "" {
		q.Set("sub_label", opts.SubLabel)
	}

	if len(q) == 0 {
		return baseURL + path
	}
	return baseURL + path + "?" + q.Encode()
}

// setColor strips a leading '#' since the provider expects bare hex values.
func setColor(q url.Values, key, value string) {
	if value == "" {
		return
	}
	q.Set(key, strings.TrimPrefix(value, "#"))
}

func setBool(q url.Values, key string, value *bool) {
	if value == nil {
		return
	}
	q.Set(key, strconv.FormatBool(*value))
}

func boolPtr(v bool) *bool { return &v }
