package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"flushfinder-api/apperr"
	"flushfinder-api/model"
)

const reportsCollection = "reports"

// ReportRepo stores flags against listings.
type ReportRepo struct {
	client *firestore.Client
	log    *zap.Logger
}

func NewReportRepo(client *firestore.Client, log *zap.Logger) *ReportRepo {
	return &ReportRepo{client: client, log: log}
}

// Create files a pending report against a washroom.
func (r *ReportRepo) Create(ctx context.Context, washroomID, reporterID string) (model.Report, error) {
	if reporterID == "" {
		reporterID = model.AnonymousReporter
	}
	report := model.Report{
		WashroomID: washroomID,
		ReporterID: reporterID,
		Status:     model.ReportStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	ref, _, err := r.client.Collection(reportsCollection).Add(ctx, report)
	if err != nil {
		return model.Report{}, apperr.External("document store", err)
	}
	report.ID = ref.ID
	return report, nil
}

// ListByWashroom returns the reports filed against one listing.
func (r *ReportRepo) ListByWashroom(ctx context.Context, washroomID string) ([]model.Report, error) {
	iter := r.client.Collection(reportsCollection).
		Where("washroomId", "==", washroomID).
		Documents(ctx)
	defer iter.Stop()

	reports := []model.Report{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperr.External("document store", err)
		}
		reports = append(reports, reportFromData(doc.Ref.ID, doc.Data()))
	}
	return reports, nil
}
