package utils

import (
	"path"
	"strings"
)

const (
	// ImageBaseURL is the provider CDN root every image path resolves against.
	ImageBaseURL = "https://image.tmdb.org/t/p"

	DefaultPosterSize   = "w500"
	DefaultBackdropSize = "w1280"

	// Placeholders served when the provider has no artwork for an item.
	PosterPlaceholder   = "https://via.placeholder.com/500x750/1a1a1a/666666?text=No+Image"
	BackdropPlaceholder = "https://via.placeholder.com/1280x720/1a1a1a/666666?text=No+Backdrop"
)

// ImageURL resolves a provider image path against the CDN at the given size
// token ("w500", "w780", "original", ...). An empty path maps to the poster
// placeholder. An empty size falls back to the poster default.
func ImageURL(imagePath, size string) string {
	return resolveImage(imagePath, size, DefaultPosterSize, PosterPlaceholder)
}

// BackdropURL is ImageURL with backdrop defaults.
func BackdropURL(imagePath, size string) string {
	return resolveImage(imagePath, size, DefaultBackdropSize, BackdropPlaceholder)
}

func resolveImage(imagePath, size, defaultSize, placeholder string) string {
	trimmed := strings.TrimSpace(imagePath)
	if trimmed == "" {
		return placeholder
	}
	if strings.TrimSpace(size) == "" {
		size = defaultSize
	}
	return ImageBaseURL + "/" + path.Join(size, strings.TrimPrefix(trimmed, "/"))
}
