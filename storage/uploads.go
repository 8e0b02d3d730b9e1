// Package storage puts listing photos in the Cloud Storage bucket and
// hands back their public URLs.
package storage

import (
	"context"
	"fmt"
	"net/url"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"flushfinder-api/apperr"
	"flushfinder-api/model"
)

const imagePrefix = "washroom-images"

// Uploader writes image payloads to a bucket.
type Uploader struct {
	bucket     *gcs.BucketHandle
	bucketName string
	log        *zap.Logger
}

// NewUploader builds an uploader for the named bucket.
func NewUploader(bucket *gcs.BucketHandle, bucketName string, log *zap.Logger) *Uploader {
	return &Uploader{bucket: bucket, bucketName: bucketName, log: log}
}

// UploadImages stores every image and returns their public URLs in input
// order. Uploads run concurrently but the call returns only once all of
// them have completed or failed; the listing record is never created on
// a partial set. One failure fails the whole batch, with no retry.
func (u *Uploader) UploadImages(ctx context.Context, images []model.ImagePayload) ([]string, error) {
	urls := make([]string, len(images))

	g, ctx := errgroup.WithContext(ctx)
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			object := fmt.Sprintf("%s/%s-%s", imagePrefix, uuid.NewString(), url.PathEscape(img.Filename))
			w := u.bucket.Object(object).NewWriter(ctx)
			if _, err := w.Write(img.Data); err != nil {
				_ = w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}
			urls[i] = u.publicURL(object)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		u.log.Error("image upload failed", zap.Error(err))
		return nil, apperr.External("object store", err)
	}
	return urls, nil
}

func (u *Uploader) publicURL(object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucketName, object)
}
