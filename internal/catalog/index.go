package catalog

import (
	"math/rand"
	"strings"
	"sync/atomic"

	"gamebot/internal/domain"
)

// Index holds the loaded game catalog. The snapshot is immutable; Replace
// swaps it wholesale with an atomic pointer store, so concurrent readers
// never observe a half-updated catalog.
type Index struct {
	entries atomic.Pointer[[]domain.CatalogEntry]
}

// NewIndex creates an index over the given entries.
func NewIndex(entries []domain.CatalogEntry) *Index {
	idx := &Index{}
	idx.Replace(entries)
	return idx
}

// Replace swaps the catalog snapshot atomically.
func (i *Index) Replace(entries []domain.CatalogEntry) {
	snapshot := make([]domain.CatalogEntry, len(entries))
	copy(snapshot, entries)
	i.entries.Store(&snapshot)
}

func (i *Index) snapshot() []domain.CatalogEntry {
	p := i.entries.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Len returns the number of catalog entries.
func (i *Index) Len() int {
	return len(i.snapshot())
}

// Search returns entries whose title contains the substring,
// case-insensitively, in catalog order. The empty substring matches every
// entry. No cap is applied here; callers limit the result themselves.
func (i *Index) Search(substring string) []domain.CatalogEntry {
	needle := strings.ToLower(substring)

	var result []domain.CatalogEntry
	for _, e := range i.snapshot() {
		if strings.Contains(strings.ToLower(e.Title), needle) {
			result = append(result, e)
		}
	}
	return result
}

// SearchPrefix returns entries whose title starts with the prefix,
// case-insensitively, in catalog order.
func (i *Index) SearchPrefix(prefix string) []domain.CatalogEntry {
	needle := strings.ToLower(prefix)

	var result []domain.CatalogEntry
	for _, e := range i.snapshot() {
		if strings.HasPrefix(strings.ToLower(e.Title), needle) {
			result = append(result, e)
		}
	}
	return result
}

// SampleExcluding picks a uniformly random entry whose title is not in the
// exclusion set. The second return is false when the exclusion set covers
// the whole catalog and nothing is left to recommend.
func (i *Index) SampleExcluding(excluded map[string]struct{}) (domain.CatalogEntry, bool) {
	var candidates []domain.CatalogEntry
	for _, e := range i.snapshot() {
		if _, ok := excluded[e.Title]; !ok {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return domain.CatalogEntry{}, false
	}
	return candidates[rand.Intn(len(candidates))], true
}

// Tail returns the last n entries in catalog order, used for the
// new-releases listing.
func (i *Index) Tail(n int) []domain.CatalogEntry {
	snap := i.snapshot()
	if n > len(snap) {
		n = len(snap)
	}
	if n <= 0 {
		return nil
	}
	result := make([]domain.CatalogEntry, n)
	copy(result, snap[len(snap)-n:])
	return result
}
