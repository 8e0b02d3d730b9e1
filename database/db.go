package database

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

// Clients bundles the Firebase service handles the app depends on. They
// are constructed once here and passed down explicitly; nothing reaches
// for them as globals.
type Clients struct {
	Firestore  *firestore.Client
	Auth       *auth.Client
	Bucket     *gcs.BucketHandle
	BucketName string
}

// Close releases the Firestore connection.
func (c *Clients) Close() error {
	return c.Firestore.Close()
}

// InitFirebase connects to Firebase and returns the service clients.
// Reads FIREBASE_CREDENTIALS_PATH and STORAGE_BUCKET, loading .env first
// when present.
func InitFirebase(ctx context.Context) (*Clients, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, reading from environment variables")
	}

	credentialsPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH environment variable not set")
	}
	bucketName := os.Getenv("STORAGE_BUCKET")
	if bucketName == "" {
		return nil, fmt.Errorf("STORAGE_BUCKET environment variable not set")
	}

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, opt)
	if err != nil {
		return nil, err
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, err
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		return nil, err
	}

	return &Clients{
		Firestore:  firestoreClient,
		Auth:       authClient,
		Bucket:     bucket,
		BucketName: bucketName,
	}, nil
}
