// Package search narrows a listing collection to entries matching
// free-text query terms against name and address.
package search

import (
	"strings"

	"flushfinder-api/model"
)

// Filter keeps the listings where every whitespace-separated query term
// appears, case-insensitively, in the name or the address. Different
// terms may match different fields. A blank query is the identity; the
// input order is always preserved, so filtering after ranking keeps the
// ranking.
func Filter(listings []model.Listing, query string) []model.Listing {
	terms := Terms(query)
	if len(terms) == 0 {
		return listings
	}

	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if Matches(l.Name, l.Address, terms) {
			out = append(out, l)
		}
	}
	return out
}

// FilterRanked is Filter over distance-annotated listings.
func FilterRanked(listings []model.RankedListing, query string) []model.RankedListing {
	terms := Terms(query)
	if len(terms) == 0 {
		return listings
	}

	out := make([]model.RankedListing, 0, len(listings))
	for _, l := range listings {
		if Matches(l.Name, l.Address, terms) {
			out = append(out, l)
		}
	}
	return out
}

// Terms lower-cases the query and splits it into non-empty words.
func Terms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Matches reports whether every term is a substring of name or address.
func Matches(name, address string, terms []string) bool {
	name = strings.ToLower(name)
	address = strings.ToLower(address)
	for _, term := range terms {
		if !strings.Contains(name, term) && !strings.Contains(address, term) {
			return false
		}
	}
	return true
}
