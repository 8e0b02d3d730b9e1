// Package repository is the Firestore boundary. Documents cross it in
// both directions through explicit struct mapping; nothing downstream
// sees a raw record map.
package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	olc "github.com/google/open-location-code/go"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flushfinder-api/apperr"
	"flushfinder-api/model"
)

const washroomsCollection = "washrooms"

// plusCodeLen gives roughly a 25 m cell, enough to find a door.
const plusCodeLen = 11

// WashroomRepo stores washroom listings.
type WashroomRepo struct {
	client *firestore.Client
	log    *zap.Logger
}

// NewWashroomRepo builds a repo over the given Firestore client.
func NewWashroomRepo(client *firestore.Client, log *zap.Logger) *WashroomRepo {
	return &WashroomRepo{client: client, log: log}
}

// Create writes a new listing and returns it with the store-assigned ID.
// When coordinates are present the record is annotated with a plus code.
func (r *WashroomRepo) Create(ctx context.Context, l model.Listing) (model.Listing, error) {
	if l.Location != nil {
		l.PlusCode = olc.Encode(l.Location.Lat, l.Location.Lng, plusCodeLen)
	}
	ref, _, err := r.client.Collection(washroomsCollection).Add(ctx, l)
	if err != nil {
		return model.Listing{}, apperr.External("document store", err)
	}
	l.ID = ref.ID
	return l, nil
}

// List returns every listing, newest first.
func (r *WashroomRepo) List(ctx context.Context) ([]model.Listing, error) {
	iter := r.client.Collection(washroomsCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return r.collect(iter)
}

// ListByUser returns the listings created by uid.
func (r *WashroomRepo) ListByUser(ctx context.Context, uid string) ([]model.Listing, error) {
	iter := r.client.Collection(washroomsCollection).
		Where("userId", "==", uid).
		Documents(ctx)
	return r.collect(iter)
}

func (r *WashroomRepo) collect(iter *firestore.DocumentIterator) ([]model.Listing, error) {
	defer iter.Stop()
	listings := []model.Listing{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperr.External("document store", err)
		}
		listings = append(listings, listingFromData(doc.Ref.ID, doc.Data()))
	}
	return listings, nil
}

// Get fetches one listing by ID.
func (r *WashroomRepo) Get(ctx context.Context, id string) (model.Listing, error) {
	doc, err := r.client.Collection(washroomsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return model.Listing{}, apperr.ErrNotFound
	}
	if err != nil {
		return model.Listing{}, apperr.External("document store", err)
	}
	return listingFromData(doc.Ref.ID, doc.Data()), nil
}

// Delete removes a listing owned by uid. An absent record counts as
// already deleted; a record owned by someone else is refused.
func (r *WashroomRepo) Delete(ctx context.Context, id, uid string) error {
	l, err := r.Get(ctx, id)
	if err == apperr.ErrNotFound {
		r.log.Info("delete of absent washroom treated as success", zap.String("id", id))
		return nil
	}
	if err != nil {
		return err
	}
	if l.UserID != uid {
		return apperr.ErrForbidden
	}
	if _, err := r.client.Collection(washroomsCollection).Doc(id).Delete(ctx); err != nil {
		return apperr.External("document store", err)
	}
	return nil
}
