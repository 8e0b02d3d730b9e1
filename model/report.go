package model

import "time"

// Report statuses. New reports always start pending; moderation moves
// them along outside this service.
const (
	ReportStatusPending  = "pending"
	ReportStatusResolved = "resolved"
)

// AnonymousReporter is recorded when an unauthenticated visitor flags a
// listing.
const AnonymousReporter = "anonymous"

// Report is one flag against a washroom, stored in the "reports" collection.
type Report struct {
	ID         string    `json:"id" firestore:"-"`
	WashroomID string    `json:"washroomId" firestore:"washroomId"`
	ReporterID string    `json:"reporterId" firestore:"reporterId"`
	Status     string    `json:"status" firestore:"status"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}
