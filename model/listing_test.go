package model_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flushfinder-api/model"
)

func TestFormatDistance(t *testing.T) {
	km := func(d float64) model.RankedListing {
		return model.RankedListing{Distance: &d}
	}

	assert.Equal(t, "", model.RankedListing{}.FormatDistance())
	assert.Equal(t, "250m", km(0.25).FormatDistance())
	assert.Equal(t, "999m", km(0.9994).FormatDistance())
	assert.Equal(t, "1.0km", km(1.0).FormatDistance())
	assert.Equal(t, "3.4km", km(3.42).FormatDistance())
}

func TestSortKeyUnrankableIsInfinite(t *testing.T) {
	assert.True(t, math.IsInf(model.RankedListing{}.SortKey(), 1))
	d := 2.5
	assert.Equal(t, 2.5, model.RankedListing{Distance: &d}.SortKey())
}

func TestRankedListingJSONOmitsMissingDistance(t *testing.T) {
	b, err := json.Marshal(model.RankedListing{Listing: model.Listing{ID: "a"}})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "distance")

	d := 1.2
	b, err = json.Marshal(model.RankedListing{Listing: model.Listing{ID: "a"}, Distance: &d})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"distance":1.2`)
}

func TestListingJSONNeverPersistsEphemeralFlagToStore(t *testing.T) {
	// isNew is a client-side highlight; the firestore tag excludes it
	// from the record body and JSON drops it when false.
	b, err := json.Marshal(model.Listing{ID: "a"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "isNew")
}
