// Package activity records notable account events for the admin dashboard.
package activity

import (
	"context"
	"time"
)

type Kind string

const (
	UserSignup       Kind = "user_signup"
	Payment          Kind = "payment"
	PaymentFailed    Kind = "payment_failed"
	ContentGenerated Kind = "content_generated"
	ReelPosted       Kind = "reel_posted"
	ReelFailed       Kind = "reel_failed"
	AdminAction      Kind = "admin_action"
)

// Event is one entry of the activity feed.
type Event struct {
	Type        Kind      `json:"type" bson:"type"`
	UserID      string    `json:"userId,omitempty" bson:"user_id,omitempty"`
	User        string    `json:"user" bson:"user"`
	Description string    `json:"description" bson:"description"`
	Status      string    `json:"status" bson:"status"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

// Feed stores and lists activity events, newest first.
type Feed interface {
	Record(ctx context.Context, event Event) error
	Recent(ctx context.Context, limit int) ([]Event, error)
}

// Success builds an event with status "success".
func Success(kind Kind, userID, user, description string) Event {
	return Event{Type: kind, UserID: userID, User: user, Description: description, Status: "success"}
}

// Failure builds an event with status "error".
func Failure(kind Kind, userID, user, description string) Event {
	return Event{Type: kind, UserID: userID, User: user, Description: description, Status: "error"}
}
