package analytics

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
	"github.com/creatorstation/reelstudio/internal/testsupport"
)

func newApp(t *testing.T) (*fiber.App, *store.Memory) {
	t.Helper()

	log, _ := test.NewNullLogger()
	s := store.NewMemory()
	ctl := &Controller{Store: s, Audience: StaticAudience{}, Log: log, Now: testsupport.Clock}

	app := fiber.New()
	ctl.MountController(app.Group("/api/analytics"))
	return app, s
}

func seedPosted(t *testing.T, s store.Store, userID string, ago time.Duration, cat models.ReelCategory, views, likes int64) *models.Reel {
	t.Helper()
	at := testsupport.Fixed.Add(-ago)
	return testsupport.NewReel(t, s, userID, func(r *models.Reel) {
		r.Status = models.ReelPosted
		r.PostedAt = &at
		r.Category = cat
		r.Views = views
		r.Likes = likes
	})
}

func TestReport(t *testing.T) {
	app, s := newApp(t)
	day := 24 * time.Hour

	best := seedPosted(t, s, "u1", 2*day, models.CategoryTrust, 1000, 100)
	seedPosted(t, s, "u1", 3*day, models.CategoryAwareness, 500, 10)
	seedPosted(t, s, "u1", 60*day, models.CategorySale, 5000, 5000)
	seedPosted(t, s, "u2", day, models.CategoryTrust, 99999, 0)

	resp := testsupport.JSON(t, app, http.MethodPost, "/api/analytics", fiber.Map{
		"userId": "u1", "dateRange": "7d", "metrics": []string{"views", "likes", "reach"},
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Raw))
	assert.Equal(t, "day", resp.Body["granularity"])
	assert.Len(t, resp.List(t, "timeSeries"), 8)

	aggregates := resp.Map(t, "aggregates")
	assert.EqualValues(t, 1500, aggregates["views"].(map[string]any)["total"])
	assert.EqualValues(t, 3000, aggregates["reach"].(map[string]any)["total"])
	assert.EqualValues(t, 7.33, aggregates["engagement"].(map[string]any)["rate"])

	top := resp.List(t, "topContent")
	require.Len(t, top, 3)
	first := top[0].(map[string]any)
	assert.EqualValues(t, 5000, first["views"])
	assert.EqualValues(t, 100, first["engagementRate"])
	assert.Equal(t, best.ID, top[1].(map[string]any)["id"])

	categories := resp.List(t, "categoryStats")
	require.Len(t, categories, 2)
	assert.Equal(t, "AWARENESS", categories[0].(map[string]any)["category"])

	summary := resp.Map(t, "summary")
	assert.EqualValues(t, 2, summary["totalReels"])
	assert.EqualValues(t, 1500, summary["totalViews"])
	assert.EqualValues(t, 7.33, summary["avgEngagementRate"])
	assert.Equal(t, "TRUST", summary["bestPerformingCategory"])

	audience := resp.Map(t, "audienceInsights")
	assert.Equal(t, "Wednesday", audience["engagement"].(map[string]any)["bestDay"])
}

func TestReportEmpty(t *testing.T) {
	app, _ := newApp(t)

	resp := testsupport.JSON(t, app, http.MethodPost, "/api/analytics", fiber.Map{"userId": "nobody"})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.List(t, "timeSeries"), 31)
	assert.Equal(t, "N/A", resp.Map(t, "summary")["bestPerformingCategory"])
	assert.Empty(t, resp.List(t, "categoryStats"))
}

func TestReportValidation(t *testing.T) {
	app, _ := newApp(t)

	resp := testsupport.JSON(t, app, http.MethodPost, "/api/analytics", fiber.Map{
		"userId": "u1", "dateRange": "2w", "metrics": []string{"views", "followers"},
	})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	details := resp.Map(t, "details")
	assert.Contains(t, details, "dateRange")
	assert.Contains(t, details, "metrics")

	resp = testsupport.JSON(t, app, http.MethodPost, "/api/analytics", fiber.Map{})
	assert.Equal(t, "User ID is required", resp.Map(t, "details")["userId"])
}

func TestQuickStats(t *testing.T) {
	app, s := newApp(t)
	day := 24 * time.Hour

	seedPosted(t, s, "u1", day, models.CategoryTrust, 200, 20)
	seedPosted(t, s, "u1", 30*day, models.CategoryLead, 800, 20)
	testsupport.NewReel(t, s, "u1", func(r *models.Reel) { r.Views = 5000 })

	resp := testsupport.JSON(t, app, http.MethodGet, "/api/analytics?userId=u1", nil)
	require.Equal(t, http.StatusOK, resp.Status)

	quick := resp.Map(t, "quickStats")
	assert.EqualValues(t, 2, quick["totalReels"])
	assert.EqualValues(t, 1000, quick["totalViews"])
	assert.EqualValues(t, 4, quick["overallEngagementRate"])

	recent := resp.Map(t, "recentPerformance")
	assert.EqualValues(t, 1, recent["reelsPosted"])
	assert.EqualValues(t, 200, recent["views"])
	assert.EqualValues(t, 10, recent["engagementRate"])

	resp = testsupport.JSON(t, app, http.MethodGet, "/api/analytics", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}
