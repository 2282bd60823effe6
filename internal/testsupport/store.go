package testsupport

import (
	"context"
	"testing"
	"time"

	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
)

// Fixed is the clock every controller test runs at.
var Fixed = time.Date(2026, 5, 12, 10, 15, 0, 0, time.UTC)

// Clock returns Fixed.
func Clock() time.Time { return Fixed }

// NewCreator stores a user on plan with the given connected platforms.
func NewCreator(t testing.TB, s store.Store, email string, plan models.Plan, platforms ...models.Platform) *models.User {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Name: email, Email: email, Status: models.UserActive}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	details, _ := models.Lookup(plan)
	sub := &models.Subscription{
		UserID:       user.ID,
		Plan:         plan,
		Status:       models.SubscriptionActive,
		AutoPosting:  details.AutoPosting,
		MonthlyPrice: details.Price,
	}
	if err := s.CreateSubscription(ctx, sub); err != nil {
		t.Fatalf("CreateSubscription: %v", err)
	}

	for _, p := range platforms {
		if err := s.CreateSocialAccount(ctx, &models.SocialAccount{UserID: user.ID, Platform: p, Handle: "@" + email}); err != nil {
			t.Fatalf("CreateSocialAccount: %v", err)
		}
	}
	return user
}

// NewReel stores a reel for userID after applying mutate.
func NewReel(t testing.TB, s store.Store, userID string, mutate func(*models.Reel)) *models.Reel {
	t.Helper()

	reel := &models.Reel{
		UserID:   userID,
		Title:    "Reel",
		Hook:     "Hook",
		Script:   "Script",
		CTA:      "CTA",
		Hashtags: "#one #two",
		Category: models.CategoryAwareness,
		Status:   models.ReelDraft,
	}
	if mutate != nil {
		mutate(reel)
	}
	if err := s.CreateReels(context.Background(), []*models.Reel{reel}); err != nil {
		t.Fatalf("CreateReels: %v", err)
	}
	return reel
}
