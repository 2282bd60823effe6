// Package store persists the reel studio records. GormStore is the production
// implementation; Memory backs demos and tests.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	// ErrStale means the record changed state since it was read.
	ErrStale = errors.New("record changed concurrently")
)

// ReelFilter narrows ListReels. Zero values match everything.
type ReelFilter struct {
	UserID string
	Status models.ReelStatus
	// DueBefore matches reels whose scheduledFor is at or before the time.
	DueBefore *time.Time
	// PostedSince matches reels posted at or after the time.
	PostedSince *time.Time
}

// UserFilter narrows ListUsers. Search matches name or email, case-insensitively.
type UserFilter struct {
	Search string
	Plan   models.Plan
}

// MonthlyRevenue is the recurring revenue booked by subscriptions that started
// in Month (YYYY-MM) and the number of users who joined that month.
type MonthlyRevenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
	Users   int64  `json:"users"`
}

type Users interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	TouchUser(ctx context.Context, id string, at time.Time) error
	ListUsers(ctx context.Context, filter UserFilter) ([]models.UserSummary, error)
	SetUserStatus(ctx context.Context, ids []string, status models.UserStatus) (int64, error)
	DeleteUsers(ctx context.Context, ids []string) (int64, error)

	CreateSubscription(ctx context.Context, sub *models.Subscription) error
	GetSubscription(ctx context.Context, userID string) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context) ([]models.Subscription, error)
	RevenueByMonth(ctx context.Context, since time.Time) ([]MonthlyRevenue, error)
}

type Accounts interface {
	CreateSocialAccount(ctx context.Context, account *models.SocialAccount) error
	ListSocialAccounts(ctx context.Context, userID string) ([]models.SocialAccount, error)
	DeleteSocialAccount(ctx context.Context, id string) error

	GetBrandKit(ctx context.Context, userID string) (*models.BrandKit, error)
	SaveBrandKit(ctx context.Context, kit *models.BrandKit) error
}

type Content interface {
	CreateBatch(ctx context.Context, batch *models.ContentBatch) error
	SetBatchStatus(ctx context.Context, id string, status models.BatchStatus) error
	// GetBatch loads a batch owned by userID with its reels, oldest first.
	GetBatch(ctx context.Context, id, userID string) (*models.ContentBatch, error)
	// ListBatches returns the user's batches, newest first.
	ListBatches(ctx context.Context, userID string) ([]models.BatchSummary, error)

	CreateReels(ctx context.Context, reels []*models.Reel) error
	GetReel(ctx context.Context, id string) (*models.Reel, error)
	SaveReel(ctx context.Context, reel *models.Reel) error
	// FinishScheduled stores the publish outcome (status, postedAt,
	// failureReason) only while the reel is still SCHEDULED, else ErrStale.
	FinishScheduled(ctx context.Context, reel *models.Reel) error
	// ListReels orders by scheduledFor ascending (unscheduled last), then
	// createdAt descending.
	ListReels(ctx context.Context, filter ReelFilter) ([]models.Reel, error)
	TopReels(ctx context.Context, userID string, limit int) ([]models.Reel, error)
	CountReels(ctx context.Context, status models.ReelStatus) (int64, error)
}

// Store is everything the API needs from persistence.
type Store interface {
	Users
	Accounts
	Content
}

func newID() string {
	return uuid.NewString()
}
