// Package places verifies address selections against the places
// provider backing the autocomplete widget.
package places

import (
	"context"

	"googlemaps.github.io/maps"

	"flushfinder-api/apperr"
	"flushfinder-api/model"
)

// Resolver confirms that a place ID from an autocomplete selection
// resolves to a real geocoded place.
type Resolver interface {
	Resolve(ctx context.Context, placeID string) (model.Place, error)
}

// GoogleResolver resolves place IDs through the Google Maps Places API.
type GoogleResolver struct {
	client *maps.Client
}

// NewGoogleResolver builds a resolver from an API key.
func NewGoogleResolver(apiKey string) (*GoogleResolver, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, apperr.External("places", err)
	}
	return &GoogleResolver{client: c}, nil
}

// Resolve fetches place details for the given place ID.
func (g *GoogleResolver) Resolve(ctx context.Context, placeID string) (model.Place, error) {
	resp, err := g.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskPlaceID,
			maps.PlaceDetailsFieldMaskFormattedAddress,
			maps.PlaceDetailsFieldMaskGeometry,
		},
	})
	if err != nil {
		return model.Place{}, apperr.External("places", err)
	}
	return model.Place{
		FormattedAddress: resp.FormattedAddress,
		PlaceID:          resp.PlaceID,
		Lat:              resp.Geometry.Location.Lat,
		Lng:              resp.Geometry.Location.Lng,
	}, nil
}
