package store

import (
	"context"
	"testing"
	"time"

	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUsersAreUniqueByEmail(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.CreateUser(ctx, &models.User{Name: "A", Email: "A@Example.com"}))
	err := m.CreateUser(ctx, &models.User{Name: "B", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	u, err := m.GetUserByEmail(ctx, "a@EXAMPLE.com")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)
}

func TestMemoryListReelsOrdering(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := base.Add(2 * time.Hour)

	reels := []*models.Reel{
		{ID: "unscheduled-old", UserID: "u", Status: models.ReelDraft, CreatedAt: base},
		{ID: "unscheduled-new", UserID: "u", Status: models.ReelDraft, CreatedAt: base.Add(time.Minute)},
		{ID: "later", UserID: "u", Status: models.ReelScheduled, ScheduledFor: &later, CreatedAt: base},
		{ID: "sooner", UserID: "u", Status: models.ReelScheduled, ScheduledFor: &base, CreatedAt: base},
		{ID: "other-user", UserID: "x", Status: models.ReelDraft, CreatedAt: base},
	}
	require.NoError(t, m.CreateReels(ctx, reels))

	got, err := m.ListReels(ctx, ReelFilter{UserID: "u"})
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"sooner", "later", "unscheduled-new", "unscheduled-old"}, ids)

	due, err := m.ListReels(ctx, ReelFilter{Status: models.ReelScheduled, DueBefore: &base})
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "sooner", due[0].ID)
}

func TestMemoryGetBatchChecksOwner(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	batch := &models.ContentBatch{UserID: "owner", Title: "t", Status: models.BatchProcessing}
	require.NoError(t, m.CreateBatch(ctx, batch))
	require.NoError(t, m.CreateReels(ctx, []*models.Reel{
		{UserID: "owner", ContentBatchID: batch.ID, Title: "first"},
		{UserID: "owner", ContentBatchID: batch.ID, Title: "second"},
	}))

	_, err := m.GetBatch(ctx, batch.ID, "someone-else")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := m.GetBatch(ctx, batch.ID, "owner")
	require.NoError(t, err)
	require.Len(t, got.Reels, 2)
	assert.Equal(t, "first", got.Reels[0].Title)

	summaries, err := m.ListBatches(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.EqualValues(t, 2, summaries[0].ReelCount)
}

func TestMemorySaveReelUnknown(t *testing.T) {
	m := NewMemory()
	err := m.SaveReel(context.Background(), &models.Reel{ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDeleteUsersCascades(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, Seed(ctx, m, time.Now()))

	users, err := m.ListUsers(ctx, UserFilter{Search: "sarah"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.PlanGrowth, users[0].Plan)
	assert.EqualValues(t, 8, users[0].ReelsCreated)

	n, err := m.DeleteUsers(ctx, []string{users[0].ID, "missing"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	reels, err := m.ListReels(ctx, ReelFilter{UserID: users[0].ID})
	require.NoError(t, err)
	assert.Empty(t, reels)
	_, err = m.GetSubscription(ctx, users[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRevenueByMonth(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, m.CreateUser(ctx, &models.User{ID: "a", Email: "a@x", CreatedAt: jan}))
	require.NoError(t, m.CreateUser(ctx, &models.User{ID: "b", Email: "b@x", CreatedAt: feb}))
	require.NoError(t, m.CreateSubscription(ctx, &models.Subscription{UserID: "a", Status: models.SubscriptionActive, MonthlyPrice: 100, CreatedAt: jan}))
	require.NoError(t, m.CreateSubscription(ctx, &models.Subscription{UserID: "b", Status: models.SubscriptionTrial, CreatedAt: feb}))

	rows, err := m.RevenueByMonth(ctx, jan.AddDate(0, -1, 0))
	require.NoError(t, err)
	assert.Equal(t, []MonthlyRevenue{
		{Month: "2026-01", Revenue: 100, Users: 1},
		{Month: "2026-02", Revenue: 0, Users: 1},
	}, rows)
}
