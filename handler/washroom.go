package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flushfinder-api/feed"
	"flushfinder-api/form"
	"flushfinder-api/middleware"
	"flushfinder-api/model"
	"flushfinder-api/places"
)

// WashroomStore is the slice of the repository the washroom handlers
// need. Kept narrow so tests can inject fakes.
type WashroomStore interface {
	List(ctx context.Context) ([]model.Listing, error)
	ListByUser(ctx context.Context, uid string) ([]model.Listing, error)
	Create(ctx context.Context, l model.Listing) (model.Listing, error)
	Delete(ctx context.Context, id, uid string) error
}

// ImageUploader stores submitted photos and returns their public URLs.
type ImageUploader interface {
	UploadImages(ctx context.Context, images []model.ImagePayload) ([]string, error)
}

// WashroomHandler serves the listing directory.
type WashroomHandler struct {
	Store    WashroomStore
	Uploader ImageUploader
	Places   places.Resolver // nil disables server-side selection checks
	Log      *zap.Logger
}

// ListWashrooms returns the directory ranked and filtered by the query
// parameters: lat/lng for the caller's position, sort (distance or
// rating, distance by default), and q for free-text search. Distance
// sort without a position falls back to creation order, flagged in the
// response.
func (h *WashroomHandler) ListWashrooms(c *gin.Context) {
	listings, err := h.Store.List(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	mode := feed.SortMode(c.DefaultQuery("sort", string(feed.SortByDistance)))
	if mode != feed.SortByRating {
		mode = feed.SortByDistance
	}

	var origin *model.Coordinates
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must be decimal degrees"})
			return
		}
		origin = &model.Coordinates{Lat: lat, Lng: lng}
	}

	visible, fallback := feed.Compose(listings, origin, mode, c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"washrooms":    visible,
		"count":        len(visible),
		"sort":         mode,
		"sortFallback": fallback,
	})
}

// MyWashrooms returns the caller's own listings.
func (h *WashroomHandler) MyWashrooms(c *gin.Context) {
	uid := c.GetString(middleware.ContextUID)
	listings, err := h.Store.ListByUser(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"washrooms": listings, "count": len(listings)})
}

// CreateWashroom validates a submission, uploads its photos, and writes
// the listing stamped with the caller's identity. Validation failures
// come back field-scoped without touching the object store.
func (h *WashroomHandler) CreateWashroom(c *gin.Context) {
	var payload model.CreateWashroomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if ve := form.Validate(payload); ve != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
		return
	}

	ctx := c.Request.Context()

	// The widget already geocoded the selection; when a resolver is
	// configured, confirm the place ID is real before trusting it.
	if h.Places != nil {
		if _, err := h.Places.Resolve(ctx, payload.Place.PlaceID); err != nil {
			respondError(c, h.Log, err)
			return
		}
	}

	urls, err := h.Uploader.UploadImages(ctx, payload.Images)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	amenities := payload.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	loc := payload.Place.Coordinates()
	listing := model.Listing{
		Name:            payload.Name,
		Address:         payload.Address,
		Location:        &loc,
		Rating:          payload.Rating,
		Amenities:       amenities,
		Description:     payload.Description,
		Images:          urls,
		PlaceID:         payload.Place.PlaceID,
		CreatedAt:       time.Now().UTC(),
		UserID:          c.GetString(middleware.ContextUID),
		UserDisplayName: c.GetString(middleware.ContextName),
		UserPhotoURL:    c.GetString(middleware.ContextPicture),
	}

	created, err := h.Store.Create(ctx, listing)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	h.Log.Info("washroom created",
		zap.String("id", created.ID),
		zap.String("userId", created.UserID))
	c.JSON(http.StatusCreated, created)
}

// DeleteWashroom removes one of the caller's listings. Deleting a
// listing that is already gone succeeds.
func (h *WashroomHandler) DeleteWashroom(c *gin.Context) {
	uid := c.GetString(middleware.ContextUID)
	if err := h.Store.Delete(c.Request.Context(), c.Param("id"), uid); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
