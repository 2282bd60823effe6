package store

import (
	"context"
	"fmt"
	"time"

	"github.com/creatorstation/reelstudio/internal/models"
)

// Seed fills an empty store with a small demo workspace: three creators on
// different plans, connected accounts, and a batch of reels in every state.
func Seed(ctx context.Context, s Store, now time.Time) error {
	day := 24 * time.Hour

	creators := []struct {
		user models.User
		plan models.Plan
		sub  models.SubscriptionStatus
	}{
		{models.User{Name: "Sarah Johnson", Email: "sarah@fitnessexpert.com", Status: models.UserActive, CreatedAt: now.Add(-45 * day)}, models.PlanGrowth, models.SubscriptionActive},
		{models.User{Name: "Mike Chen", Email: "mike@businesscoach.io", Status: models.UserActive, CreatedAt: now.Add(-30 * day)}, models.PlanBusiness, models.SubscriptionActive},
		{models.User{Name: "Emma Davis", Email: "emma@salonpro.com", Status: models.UserTrial, CreatedAt: now.Add(-14 * day)}, models.PlanStarter, models.SubscriptionTrial},
	}

	for i, c := range creators {
		user := c.user
		lastActive := now.Add(-time.Duration(i) * day)
		user.LastActiveAt = &lastActive
		if err := s.CreateUser(ctx, &user); err != nil {
			return fmt.Errorf("seed user %s: %w", user.Email, err)
		}

		details, _ := models.Lookup(c.plan)
		price := details.Price
		if c.sub == models.SubscriptionTrial {
			price = 0
		}
		sub := models.Subscription{
			UserID:       user.ID,
			Plan:         c.plan,
			Status:       c.sub,
			AutoPosting:  details.AutoPosting,
			MonthlyPrice: price,
			CreatedAt:    user.CreatedAt,
		}
		if err := s.CreateSubscription(ctx, &sub); err != nil {
			return fmt.Errorf("seed subscription %s: %w", user.Email, err)
		}

		if err := s.CreateSocialAccount(ctx, &models.SocialAccount{
			UserID:   user.ID,
			Platform: models.PlatformInstagram,
			Handle:   fmt.Sprintf("@creator%d", i+1),
		}); err != nil {
			return err
		}

		if err := seedBatch(ctx, s, user.ID, now); err != nil {
			return err
		}
	}
	return nil
}

func seedBatch(ctx context.Context, s Store, userID string, now time.Time) error {
	batch := models.ContentBatch{
		UserID:      userID,
		Title:       "Morning routine tips",
		ContentType: models.ContentText,
		Content:     `{"raw":"Five habits that changed my mornings","description":"demo"}`,
		Status:      models.BatchCompleted,
		CreatedAt:   now.Add(-10 * 24 * time.Hour),
	}
	if err := s.CreateBatch(ctx, &batch); err != nil {
		return err
	}

	reels := make([]*models.Reel, 0, 8)
	for i := 0; i < 8; i++ {
		r := &models.Reel{
			UserID:         userID,
			ContentBatchID: batch.ID,
			Title:          fmt.Sprintf("Morning habit #%d", i+1),
			Hook:           "Stop scrolling if your mornings feel rushed...",
			Script:         "Here's one small change that makes the whole day easier.",
			CTA:            `Follow for more daily tips! DM "REEL" to work with us.`,
			Hashtags:       "#morningroutine #productivity #habits",
			Category:       models.Categories[i%len(models.Categories)],
			Status:         models.ReelDraft,
			CreatedAt:      batch.CreatedAt.Add(time.Duration(i) * time.Minute),
		}

		switch {
		case i < 4:
			posted := now.Add(-time.Duration(i+1) * 36 * time.Hour)
			r.Status = models.ReelPosted
			r.Platform = models.PlatformInstagram
			r.PostedAt = &posted
			r.ScheduledFor = &posted
			r.Views = int64(1200 - i*150)
			r.Likes = int64(90 - i*10)
			r.Comments = int64(14 - i)
			r.Shares = int64(8 - i)
			r.Saves = int64(30 - i*3)
		case i < 6:
			at := now.Add(time.Duration(i-3) * 24 * time.Hour)
			r.Status = models.ReelScheduled
			r.Platform = models.PlatformInstagram
			r.ScheduledFor = &at
		case i == 6:
			r.Status = models.ReelReady
		}
		reels = append(reels, r)
	}
	return s.CreateReels(ctx, reels)
}
