package domain

// CatalogEntry is a single game in the store catalog.
// Entries are immutable after load; a refreshed catalog replaces
// the whole slice, it is never patched in place.
type CatalogEntry struct {
	Title string
	Url   string
}
