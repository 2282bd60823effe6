package admin

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorstation/reelstudio/internal/activity"
	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
	"github.com/creatorstation/reelstudio/internal/testsupport"
)

func newApp(t *testing.T) (*fiber.App, *store.Memory, *activity.MemoryFeed) {
	t.Helper()

	log, _ := test.NewNullLogger()
	s := store.NewMemory()
	feed := activity.NewMemoryFeed(50)
	ctl := &Controller{Store: s, Feed: feed, Log: log, Now: testsupport.Clock}

	app := fiber.New()
	ctl.MountController(app.Group("/api/admin"))
	return app, s, feed
}

func TestStatsEndpoint(t *testing.T) {
	app, s, _ := newApp(t)
	sarah := testsupport.NewCreator(t, s, "sarah@example.com", models.PlanGrowth)
	testsupport.NewCreator(t, s, "mike@example.com", models.PlanBusiness)
	testsupport.NewReel(t, s, sarah.ID, nil)
	testsupport.NewReel(t, s, sarah.ID, func(r *models.Reel) { r.Status = models.ReelScheduled })

	resp := testsupport.JSON(t, app, http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Raw))

	stats := resp.Map(t, "stats")
	assert.EqualValues(t, 2, stats["totalUsers"])
	assert.EqualValues(t, 2, stats["activeUsers"])
	assert.EqualValues(t, 299900+599900, stats["monthlyRecurring"])
	assert.EqualValues(t, 2, stats["totalReels"])
	assert.EqualValues(t, 1, stats["scheduledPosts"])
	assert.EqualValues(t, 100, stats["conversionRate"])
}

func TestUsersFilter(t *testing.T) {
	app, s, _ := newApp(t)
	sarah := testsupport.NewCreator(t, s, "sarah@example.com", models.PlanGrowth)
	testsupport.NewCreator(t, s, "mike@example.com", models.PlanBusiness)
	testsupport.NewReel(t, s, sarah.ID, nil)

	resp := testsupport.JSON(t, app, http.MethodGet, "/api/admin/users?search=SAR", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	users := resp.List(t, "users")
	require.Len(t, users, 1)
	row := users[0].(map[string]any)
	assert.Equal(t, "GROWTH", row["plan"])
	assert.EqualValues(t, 1, row["reelsCreated"])

	resp = testsupport.JSON(t, app, http.MethodGet, "/api/admin/users?plan=business", nil)
	assert.Len(t, resp.List(t, "users"), 1)

	resp = testsupport.JSON(t, app, http.MethodGet, "/api/admin/users?plan=all", nil)
	assert.Len(t, resp.List(t, "users"), 2)

	resp = testsupport.JSON(t, app, http.MethodGet, "/api/admin/users?search=nobody", nil)
	assert.Empty(t, resp.List(t, "users"))

	resp = testsupport.JSON(t, app, http.MethodGet, "/api/admin/users?plan=FREE", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestBulkActions(t *testing.T) {
	app, s, feed := newApp(t)
	ctx := context.Background()
	a := testsupport.NewCreator(t, s, "a@example.com", models.PlanStarter)
	b := testsupport.NewCreator(t, s, "b@example.com", models.PlanStarter)

	resp := testsupport.JSON(t, app, http.MethodPost, "/api/admin/users/bulk", fiber.Map{
		"userIds": []string{a.ID, b.ID, "ghost"}, "action": "suspend",
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Raw))
	assert.EqualValues(t, 2, resp.Body["affected"])

	got, _ := s.GetUser(ctx, a.ID)
	assert.Equal(t, models.UserSuspended, got.Status)

	resp = testsupport.JSON(t, app, http.MethodPost, "/api/admin/users/bulk", fiber.Map{
		"userIds": []string{a.ID}, "action": "activate",
	})
	require.Equal(t, http.StatusOK, resp.Status)
	got, _ = s.GetUser(ctx, a.ID)
	assert.Equal(t, models.UserActive, got.Status)

	resp = testsupport.JSON(t, app, http.MethodPost, "/api/admin/users/bulk", fiber.Map{
		"userIds": []string{b.ID}, "action": "delete",
	})
	require.Equal(t, http.StatusOK, resp.Status)
	_, err := s.GetUser(ctx, b.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	resp = testsupport.JSON(t, app, http.MethodPost, "/api/admin/users/bulk", fiber.Map{
		"userIds": []string{}, "action": "promote",
	})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	details := resp.Map(t, "details")
	assert.Equal(t, "Select at least one user", details["userIds"])
	assert.Contains(t, details, "action")

	events, _ := feed.Recent(ctx, 10)
	require.Len(t, events, 3)
	assert.Equal(t, "Bulk delete applied to 1 users", events[0].Description)
}

func TestActivityFeed(t *testing.T) {
	app, _, feed := newApp(t)
	ctx := context.Background()
	for _, d := range []string{"one", "two", "three"} {
		require.NoError(t, feed.Record(ctx, activity.Success(activity.Payment, "u", "Sarah", d)))
	}

	resp := testsupport.JSON(t, app, http.MethodGet, "/api/admin/activity?limit=2", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	events := resp.List(t, "activity")
	require.Len(t, events, 2)
	assert.Equal(t, "three", events[0].(map[string]any)["description"])
}

func TestRevenueEndpoint(t *testing.T) {
	app, s, _ := newApp(t)
	ctx := context.Background()

	april := testsupport.Fixed.AddDate(0, -1, 0)
	user := &models.User{Name: "Sarah", Email: "sarah@example.com", Status: models.UserActive, CreatedAt: april}
	require.NoError(t, s.CreateUser(ctx, user))
	require.NoError(t, s.CreateSubscription(ctx, &models.Subscription{
		UserID: user.ID, Plan: models.PlanGrowth, Status: models.SubscriptionActive,
		MonthlyPrice: 299900, CreatedAt: april,
	}))

	resp := testsupport.JSON(t, app, http.MethodGet, "/api/admin/revenue?months=3", nil)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Raw))
	rows := resp.List(t, "revenue")
	require.Len(t, rows, 3)
	assert.Equal(t, "2026-03", rows[0].(map[string]any)["month"])
	apr := rows[1].(map[string]any)
	assert.Equal(t, "2026-04", apr["month"])
	assert.EqualValues(t, 299900, apr["revenue"])
	assert.EqualValues(t, 1, apr["users"])

	resp = testsupport.JSON(t, app, http.MethodGet, "/api/admin/revenue?months=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}
