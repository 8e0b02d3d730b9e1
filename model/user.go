package model

import "time"

// User is the profile document kept in the "users" collection, written
// once on first sign-in from the identity provider's token claims.
type User struct {
	UID         string    `json:"uid" firestore:"-"`
	DisplayName string    `json:"displayName" firestore:"displayName"`
	Email       string    `json:"email" firestore:"email"`
	PhotoURL    string    `json:"photoURL" firestore:"photoURL"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
}
