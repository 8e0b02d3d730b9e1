package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"flushfinder-api/database"
	"flushfinder-api/handler"
	"flushfinder-api/places"
	"flushfinder-api/repository"
	"flushfinder-api/router"
	"flushfinder-api/storage"
)

func main() {
	ctx := context.Background()

	clients, err := database.InitFirebase(ctx)
	if err != nil {
		log.Fatalf("Could not initialize Firebase: %v", err)
	}
	defer clients.Close()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("connected to Firebase services")

	var placeResolver places.Resolver
	if key := os.Getenv("GOOGLE_MAPS_API_KEY"); key != "" {
		placeResolver, err = places.NewGoogleResolver(key)
		if err != nil {
			logger.Fatal("could not initialize places client", zap.Error(err))
		}
	} else {
		logger.Warn("GOOGLE_MAPS_API_KEY not set, place selections are not verified server-side")
	}

	washroomHandler := &handler.WashroomHandler{
		Store:    repository.NewWashroomRepo(clients.Firestore, logger),
		Uploader: storage.NewUploader(clients.Bucket, clients.BucketName, logger),
		Places:   placeResolver,
		Log:      logger,
	}
	reportHandler := &handler.ReportHandler{
		Reports: repository.NewReportRepo(clients.Firestore, logger),
		Log:     logger,
	}
	sessionHandler := &handler.SessionHandler{
		Users: repository.NewUserRepo(clients.Firestore, logger),
		Log:   logger,
	}

	engine := router.SetupRouter(washroomHandler, reportHandler, sessionHandler, clients.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("server listening", zap.String("port", port))
	if err := engine.Run(":" + port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
