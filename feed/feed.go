// Package feed holds the browsing state for one session: the listing
// collection, the user's position, the active sort mode, and the search
// query. The visible collection is recomputed whenever any of those
// change, so it is never derived from a stale mix of old and new inputs.
package feed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"flushfinder-api/geo"
	"flushfinder-api/location"
	"flushfinder-api/model"
	"flushfinder-api/search"
)

// SortMode selects the active ranking.
type SortMode string

const (
	SortByDistance SortMode = "distance"
	SortByRating   SortMode = "rating"
)

// DefaultHighlightWindow is how long a just-added listing keeps its
// "new" highlight.
const DefaultHighlightWindow = 10 * time.Second

// Compose runs the ranking and filtering pipeline over a listing
// collection: pick the ranking for mode, then filter by query. Distance
// mode without an origin cannot rank; the listings stay in creation
// order and the returned fallback flag is true so callers can surface
// it. The input is never mutated.
func Compose(listings []model.Listing, origin *model.Coordinates, mode SortMode, query string) ([]model.RankedListing, bool) {
	var ranked []model.RankedListing
	fallback := false
	switch {
	case mode == SortByRating:
		ranked = wrap(geo.RankByRating(listings))
	case origin != nil:
		ranked = geo.RankByDistance(listings, *origin)
	default:
		fallback = true
		ranked = wrap(listings)
	}
	return search.FilterRanked(ranked, query), fallback
}

func wrap(listings []model.Listing) []model.RankedListing {
	out := make([]model.RankedListing, len(listings))
	for i, l := range listings {
		out[i] = model.RankedListing{Listing: l}
	}
	return out
}

// Source reloads the listing collection from the directory.
type Source interface {
	Listings(ctx context.Context) ([]model.Listing, error)
}

// Config wires a Feed's collaborators.
type Config struct {
	Source  Source
	Locator location.Provider
	Log     *zap.Logger
	// HighlightWindow overrides DefaultHighlightWindow when positive.
	HighlightWindow time.Duration
}

// Feed is safe for concurrent use.
type Feed struct {
	source    Source
	locator   location.Provider
	log       *zap.Logger
	highlight time.Duration

	mu       sync.Mutex
	listings []model.Listing
	origin   *model.Coordinates
	mode     SortMode
	query    string
	visible  []model.RankedListing
	fallback bool
	timers   map[string]*time.Timer
	subs     map[int]chan struct{}
	nextSub  int
}

// New returns a feed in distance mode with an empty collection.
func New(cfg Config) *Feed {
	f := &Feed{
		source:    cfg.Source,
		locator:   cfg.Locator,
		log:       cfg.Log,
		highlight: cfg.HighlightWindow,
		mode:      SortByDistance,
		timers:    map[string]*time.Timer{},
		subs:      map[int]chan struct{}{},
	}
	if f.log == nil {
		f.log = zap.NewNop()
	}
	if f.highlight <= 0 {
		f.highlight = DefaultHighlightWindow
	}
	return f
}

// Visible returns the last computed collection and whether distance
// ordering fell back to creation order for lack of a position.
func (f *Feed) Visible() ([]model.RankedListing, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.RankedListing, len(f.visible))
	copy(out, f.visible)
	return out, f.fallback
}

// SetMode switches between distance and rating ordering.
func (f *Feed) SetMode(mode SortMode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = mode
	f.recomputeLocked()
}

// SetQuery updates the search text.
func (f *Feed) SetQuery(query string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.query = query
	f.recomputeLocked()
}

// SetOrigin updates the user's position; nil clears it.
func (f *Feed) SetOrigin(origin *model.Coordinates) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.origin = origin
	f.recomputeLocked()
}

// SetListings replaces the collection, e.g. after a reload.
func (f *Feed) SetListings(listings []model.Listing) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listings = listings
	f.recomputeLocked()
}

// Insert puts a just-created listing at the top with the "new" highlight
// set. The highlight clears itself after the window; if the listing is
// removed first, the deferred clear is a no-op.
func (f *Feed) Insert(l model.Listing) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l.IsNew = true
	f.listings = append([]model.Listing{l}, f.listings...)
	id := l.ID
	f.timers[id] = time.AfterFunc(f.highlight, func() { f.clearHighlight(id) })
	f.recomputeLocked()
}

// Remove drops a listing and cancels its pending highlight clear.
func (f *Feed) Remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.timers[id]; ok {
		t.Stop()
		delete(f.timers, id)
	}
	for i, l := range f.listings {
		if l.ID == id {
			f.listings = append(f.listings[:i], f.listings[i+1:]...)
			break
		}
	}
	f.recomputeLocked()
}

func (f *Feed) clearHighlight(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.timers, id)
	for i := range f.listings {
		if f.listings[i].ID == id {
			f.listings[i].IsNew = false
			f.recomputeLocked()
			return
		}
	}
	// Listing was removed before the window elapsed; nothing to clear.
}

// Refresh fetches the current position and reloads the collection
// together, the way the home screen's refresh does. Each call fails
// independently: a dead locator still lets the reload land and vice
// versa. Failures are logged and the previous value kept.
func (f *Feed) Refresh(ctx context.Context) {
	var wg sync.WaitGroup

	if f.locator != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pos, err := location.Current(ctx, f.locator)
			if err != nil {
				f.log.Warn("location acquisition failed", zap.Error(err))
				return
			}
			f.SetOrigin(&pos)
		}()
	}

	if f.source != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			listings, err := f.source.Listings(ctx)
			if err != nil {
				f.log.Warn("listing reload failed", zap.Error(err))
				return
			}
			f.SetListings(listings)
		}()
	}

	wg.Wait()
}

// Subscribe registers for change notifications. Each recompute delivers
// at most one pending signal on the returned channel. The second return
// unsubscribes; it is safe to call more than once.
func (f *Feed) Subscribe() (<-chan struct{}, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextSub
	f.nextSub++
	ch := make(chan struct{}, 1)
	f.subs[id] = ch
	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

func (f *Feed) recomputeLocked() {
	f.visible, f.fallback = Compose(f.listings, f.origin, f.mode, f.query)
	for _, ch := range f.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
