package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"flushfinder-api/apperr"
	"flushfinder-api/handler"
	"flushfinder-api/middleware"
	"flushfinder-api/model"
)

// --- fakes ---

type fakeStore struct {
	listings  []model.Listing
	listErr   error
	created   *model.Listing
	deleted   []string
	deleteErr error
}

func (f *fakeStore) List(context.Context) ([]model.Listing, error) {
	return f.listings, f.listErr
}

func (f *fakeStore) ListByUser(_ context.Context, uid string) ([]model.Listing, error) {
	out := []model.Listing{}
	for _, l := range f.listings {
		if l.UserID == uid {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, l model.Listing) (model.Listing, error) {
	l.ID = "new-id"
	f.created = &l
	return l, nil
}

func (f *fakeStore) Delete(_ context.Context, id, uid string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeUploader struct {
	urls []string
	err  error
}

func (f *fakeUploader) UploadImages(_ context.Context, images []model.ImagePayload) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.urls, nil
}

// fakeAuth injects claims the way the auth middleware does.
func fakeAuth(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid != "" {
			c.Set(middleware.ContextUID, uid)
			c.Set(middleware.ContextName, "Sam")
			c.Set(middleware.ContextPicture, "https://example.com/sam.png")
		}
		c.Next()
	}
}

func newRouter(h *handler.WashroomHandler, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/washrooms", h.ListWashrooms)
	r.POST("/washrooms", fakeAuth(uid), h.CreateWashroom)
	r.GET("/washrooms/mine", fakeAuth(uid), h.MyWashrooms)
	r.DELETE("/washrooms/:id", fakeAuth(uid), h.DeleteWashroom)
	return r
}

func coords(lat, lng float64) *model.Coordinates {
	return &model.Coordinates{Lat: lat, Lng: lng}
}

func sampleListings() []model.Listing {
	return []model.Listing{
		{ID: "a", Name: "Station", Address: "601 W Cordova St", Rating: 2, Location: coords(49.30, -123.12), UserID: "u1"},
		{ID: "b", Name: "Central Mall", Address: "123 Main St", Rating: 5, Location: coords(49.281, -123.12), UserID: "u2"},
	}
}

type listResponse struct {
	Washrooms    []model.RankedListing `json:"washrooms"`
	Count        int                   `json:"count"`
	Sort         string                `json:"sort"`
	SortFallback bool                  `json:"sortFallback"`
}

func doList(t *testing.T, h *handler.WashroomHandler, path string) (int, listResponse) {
	t.Helper()
	r := newRouter(h, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var resp listResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w.Code, resp
}

func TestListWashroomsDistanceSorted(t *testing.T) {
	h := &handler.WashroomHandler{Store: &fakeStore{listings: sampleListings()}, Log: zap.NewNop()}

	code, resp := doList(t, h, "/washrooms?lat=49.28&lng=-123.12")

	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Washrooms, 2)
	assert.False(t, resp.SortFallback)
	assert.Equal(t, "b", resp.Washrooms[0].ID)
	require.NotNil(t, resp.Washrooms[0].Distance)
}

func TestListWashroomsWithoutPositionFallsBack(t *testing.T) {
	h := &handler.WashroomHandler{Store: &fakeStore{listings: sampleListings()}, Log: zap.NewNop()}

	code, resp := doList(t, h, "/washrooms")

	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.SortFallback)
	assert.Equal(t, "a", resp.Washrooms[0].ID, "creation order preserved")
}

func TestListWashroomsRatingSort(t *testing.T) {
	h := &handler.WashroomHandler{Store: &fakeStore{listings: sampleListings()}, Log: zap.NewNop()}

	code, resp := doList(t, h, "/washrooms?sort=rating")

	require.Equal(t, http.StatusOK, code)
	assert.False(t, resp.SortFallback)
	assert.Equal(t, "b", resp.Washrooms[0].ID)
}

func TestListWashroomsSearchFilter(t *testing.T) {
	h := &handler.WashroomHandler{Store: &fakeStore{listings: sampleListings()}, Log: zap.NewNop()}

	code, resp := doList(t, h, "/washrooms?q=mall+main")

	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Washrooms, 1)
	assert.Equal(t, "b", resp.Washrooms[0].ID)
}

func TestListWashroomsBadCoordinates(t *testing.T) {
	h := &handler.WashroomHandler{Store: &fakeStore{listings: sampleListings()}, Log: zap.NewNop()}
	code, _ := doList(t, h, "/washrooms?lat=abc&lng=-123.12")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestListWashroomsStoreFailureIsGeneric(t *testing.T) {
	h := &handler.WashroomHandler{
		Store: &fakeStore{listErr: apperr.External("document store", errors.New("rpc error: deadline"))},
		Log:   zap.NewNop(),
	}
	r := newRouter(h, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/washrooms", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "rpc error", "internal detail must not leak")
}

func createBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(model.CreateWashroomPayload{
		Name:    "Central Mall Restroom",
		Address: "123 Main St, Vancouver, BC",
		Place: &model.Place{
			FormattedAddress: "123 Main St, Vancouver, BC",
			PlaceID:          "ChIJ-test",
			Lat:              49.2827,
			Lng:              -123.1207,
		},
		Rating:    4,
		Amenities: []string{"Accessible"},
		Images:    []model.ImagePayload{{Filename: "stall.jpg", Data: []byte{1, 2, 3}}},
	})
	require.NoError(t, err)
	return body
}

func TestCreateWashroomSuccess(t *testing.T) {
	store := &fakeStore{}
	h := &handler.WashroomHandler{
		Store:    store,
		Uploader: &fakeUploader{urls: []string{"https://storage.googleapis.com/b/washroom-images/x-stall.jpg"}},
		Log:      zap.NewNop(),
	}
	r := newRouter(h, "u1")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/washrooms", bytes.NewReader(createBody(t)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, store.created)
	assert.Equal(t, "u1", store.created.UserID)
	assert.Equal(t, "Sam", store.created.UserDisplayName)
	require.NotNil(t, store.created.Location)
	assert.Equal(t, 49.2827, store.created.Location.Lat)
	assert.Len(t, store.created.Images, 1)
	assert.False(t, store.created.CreatedAt.IsZero())
}

func TestCreateWashroomValidationFailureSkipsUpload(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("must not be called")}
	store := &fakeStore{}
	h := &handler.WashroomHandler{Store: store, Uploader: uploader, Log: zap.NewNop()}

	r := newRouter(h, "u1")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/washrooms", bytes.NewReader([]byte(`{"name":""}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Fields, 4)
	assert.Nil(t, store.created, "no record on validation failure")
}

func TestCreateWashroomUploadFailure(t *testing.T) {
	store := &fakeStore{}
	h := &handler.WashroomHandler{
		Store:    store,
		Uploader: &fakeUploader{err: apperr.External("object store", errors.New("bucket gone"))},
		Log:      zap.NewNop(),
	}
	r := newRouter(h, "u1")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/washrooms", bytes.NewReader(createBody(t)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Nil(t, store.created, "record must not be written on upload failure")
}

func TestDeleteWashroomNoContent(t *testing.T) {
	store := &fakeStore{}
	h := &handler.WashroomHandler{Store: store, Log: zap.NewNop()}
	r := newRouter(h, "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/washrooms/a", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"a"}, store.deleted)
}

func TestDeleteWashroomForbidden(t *testing.T) {
	h := &handler.WashroomHandler{Store: &fakeStore{deleteErr: apperr.ErrForbidden}, Log: zap.NewNop()}
	r := newRouter(h, "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/washrooms/b", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMyWashrooms(t *testing.T) {
	h := &handler.WashroomHandler{Store: &fakeStore{listings: sampleListings()}, Log: zap.NewNop()}
	r := newRouter(h, "u2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/washrooms/mine", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Washrooms []model.Listing `json:"washrooms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Washrooms, 1)
	assert.Equal(t, "b", resp.Washrooms[0].ID)
}
