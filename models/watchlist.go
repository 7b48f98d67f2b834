package models

import "time"

// WatchlistEntry is a catalog item the user bookmarked. The embedded item
// already carries the kind discriminator, so the entry set is keyed by
// (kind, id) rather than the bare provider id.
type WatchlistEntry struct {
	CatalogItem
	AddedAt time.Time `json:"addedAt"`
}
