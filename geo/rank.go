package geo

import (
	"sort"

	"flushfinder-api/model"
)

// RankByDistance annotates every listing with its distance from origin
// and returns them sorted nearest-first. Listings without coordinates
// cannot be ranked; they keep a nil distance and sort after all rankable
// ones, preserving their relative input order. Ties also keep input
// order. The input slice is never touched.
func RankByDistance(listings []model.Listing, origin model.Coordinates) []model.RankedListing {
	ranked := make([]model.RankedListing, len(listings))
	for i, l := range listings {
		ranked[i] = model.RankedListing{Listing: l}
		if l.Location != nil {
			d := Distance(origin, *l.Location)
			ranked[i].Distance = &d
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SortKey() < ranked[j].SortKey()
	})
	return ranked
}

// RankByRating returns the listings sorted by rating, highest first,
// with input order preserved among equal ratings. Non-mutating.
func RankByRating(listings []model.Listing) []model.Listing {
	out := make([]model.Listing, len(listings))
	copy(out, listings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}
