package repository

import (
	"time"

	"flushfinder-api/model"
)

// listingFromData maps a raw washroom document into a Listing. The
// store's records are shaped by whatever client wrote them, so every
// field is defaulted rather than trusted: missing or mistyped values
// become zero values, ratings are clamped to 0..5, a missing location
// map stays nil instead of becoming (0,0), and images drop any
// non-string members.
func listingFromData(id string, data map[string]interface{}) model.Listing {
	l := model.Listing{
		ID:              id,
		Name:            asString(data["name"]),
		Address:         asString(data["address"]),
		Rating:          clampRating(asInt(data["rating"])),
		Amenities:       asStrings(data["amenities"]),
		Description:     asString(data["description"]),
		Images:          asStrings(data["images"]),
		PlaceID:         asString(data["placeId"]),
		PlusCode:        asString(data["plusCode"]),
		CreatedAt:       asTime(data["createdAt"]),
		UserID:          asString(data["userId"]),
		UserDisplayName: asString(data["userDisplayName"]),
		UserPhotoURL:    asString(data["userPhotoURL"]),
	}

	if loc, ok := data["location"].(map[string]interface{}); ok {
		lat, latOK := asFloat(loc["lat"])
		lng, lngOK := asFloat(loc["lng"])
		if latOK && lngOK {
			l.Location = &model.Coordinates{Lat: lat, Lng: lng}
		}
	}

	return l
}

func reportFromData(id string, data map[string]interface{}) model.Report {
	return model.Report{
		ID:         id,
		WashroomID: asString(data["washroomId"]),
		ReporterID: asString(data["reporterId"]),
		Status:     asString(data["status"]),
		CreatedAt:  asTime(data["createdAt"]),
	}
}

func userFromData(uid string, data map[string]interface{}) model.User {
	return model.User{
		UID:         uid,
		DisplayName: asString(data["displayName"]),
		Email:       asString(data["email"]),
		PhotoURL:    asString(data["photoURL"]),
		CreatedAt:   asTime(data["createdAt"]),
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asStrings(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Firestore numbers decode as int64 or float64 depending on how they
// were written.
func asInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// asTime accepts native timestamps and the ISO-8601 strings the web
// client used to write.
func asTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func clampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}
