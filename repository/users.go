package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flushfinder-api/apperr"
	"flushfinder-api/model"
)

const usersCollection = "users"

// UserRepo stores user profile documents keyed by the identity
// provider's UID.
type UserRepo struct {
	client *firestore.Client
	log    *zap.Logger
}

func NewUserRepo(client *firestore.Client, log *zap.Logger) *UserRepo {
	return &UserRepo{client: client, log: log}
}

// Ensure returns the profile for u.UID, writing it first when absent.
// Mirrors the sign-in bookkeeping: the document is created once and
// never overwritten by later sign-ins.
func (r *UserRepo) Ensure(ctx context.Context, u model.User) (model.User, error) {
	ref := r.client.Collection(usersCollection).Doc(u.UID)

	doc, err := ref.Get(ctx)
	if err == nil {
		return userFromData(doc.Ref.ID, doc.Data()), nil
	}
	if status.Code(err) != codes.NotFound {
		return model.User{}, apperr.External("document store", err)
	}

	u.CreatedAt = time.Now().UTC()
	if _, err := ref.Set(ctx, u); err != nil {
		return model.User{}, apperr.External("document store", err)
	}
	r.log.Info("created user profile", zap.String("uid", u.UID))
	return u, nil
}

// Get fetches one profile.
func (r *UserRepo) Get(ctx context.Context, uid string) (model.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return model.User{}, apperr.ErrNotFound
	}
	if err != nil {
		return model.User{}, apperr.External("document store", err)
	}
	return userFromData(doc.Ref.ID, doc.Data()), nil
}
