package model

import (
	"fmt"
	"math"
	"time"
)

// Coordinates is a GPS point in decimal degrees (WGS 84).
type Coordinates struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

// Place is what a places-autocomplete selection resolves to. A free-typed
// address never carries a PlaceID, which is how the validator tells a real
// selection apart from loose text.
type Place struct {
	FormattedAddress string  `json:"formattedAddress" firestore:"formattedAddress"`
	PlaceID          string  `json:"placeId" firestore:"placeId"`
	Lat              float64 `json:"lat" firestore:"lat"`
	Lng              float64 `json:"lng" firestore:"lng"`
}

// Coordinates returns the geographic point of the selection.
func (p Place) Coordinates() Coordinates {
	return Coordinates{Lat: p.Lat, Lng: p.Lng}
}

// Listing is one washroom record from the "washrooms" collection.
type Listing struct {
	// ID comes from the Firestore document ID, never from the record body.
	ID              string       `json:"id" firestore:"-"`
	Name            string       `json:"name" firestore:"name"`
	Address         string       `json:"address" firestore:"address"`
	Location        *Coordinates `json:"location,omitempty" firestore:"location"` // nil on records that predate coordinate capture
	Rating          int          `json:"rating" firestore:"rating"`
	Amenities       []string     `json:"amenities" firestore:"amenities"`
	Description     string       `json:"description" firestore:"description"`
	Images          []string     `json:"images" firestore:"images"`
	PlaceID         string       `json:"placeId,omitempty" firestore:"placeId"`
	PlusCode        string       `json:"plusCode,omitempty" firestore:"plusCode"`
	CreatedAt       time.Time    `json:"createdAt" firestore:"createdAt"`
	UserID          string       `json:"userId" firestore:"userId"`
	UserDisplayName string       `json:"userDisplayName" firestore:"userDisplayName"`
	UserPhotoURL    string       `json:"userPhotoURL" firestore:"userPhotoURL"`
	// IsNew highlights a just-added listing for a short while. Client-side
	// state only, never persisted.
	IsNew bool `json:"isNew,omitempty" firestore:"-"`
}

// RankedListing is a Listing with the distance from the current origin
// attached. Distance is nil when either side lacks coordinates; such
// listings sort after every rankable one.
type RankedListing struct {
	Listing
	Distance *float64 `json:"distance,omitempty" firestore:"-"`
}

// SortKey is the value distance ordering compares on. Unrankable listings
// get +Inf so they trail the rankable ones in their original order.
func (r RankedListing) SortKey() float64 {
	if r.Distance == nil {
		return math.Inf(1)
	}
	return *r.Distance
}

// FormatDistance renders the distance the way the listing cards show it:
// meters below one kilometer, otherwise kilometers with one decimal.
// Empty when no distance is attached.
func (r RankedListing) FormatDistance() string {
	if r.Distance == nil {
		return ""
	}
	d := *r.Distance
	if d < 1 {
		return fmt.Sprintf("%dm", int(math.Round(d*1000)))
	}
	return fmt.Sprintf("%.1fkm", d)
}

// ImagePayload is one photo attached to a submission, carried inline as
// base64 in the JSON body.
type ImagePayload struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// CreateWashroomPayload is the request body for adding a washroom. Field
// rules are enforced by the submission validator, not binding tags, so
// failures come back field-scoped.
type CreateWashroomPayload struct {
	Name        string         `json:"name"`
	Address     string         `json:"address"`
	Place       *Place         `json:"place"`
	Rating      int            `json:"rating"`
	Amenities   []string       `json:"amenities"`
	Description string         `json:"description"`
	Images      []ImagePayload `json:"images"`
}
