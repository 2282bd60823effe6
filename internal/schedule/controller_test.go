package schedule

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorstation/reelstudio/internal/config"
	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
	"github.com/creatorstation/reelstudio/internal/testsupport"
)

func newApp(t *testing.T) (*fiber.App, *store.Memory) {
	t.Helper()

	log, _ := test.NewNullLogger()
	s := store.NewMemory()
	ctl := &Controller{Store: s, Slots: config.DefaultSlots(), Log: log, Now: testsupport.Clock}

	app := fiber.New()
	ctl.MountController(app.Group("/api/schedule"))
	return app, s
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestScheduleSnapsToOptimalSlot(t *testing.T) {
	app, s := newApp(t)
	user := testsupport.NewCreator(t, s, "sarah@example.com", models.PlanGrowth, models.PlatformInstagram)
	reel := testsupport.NewReel(t, s, user.ID, func(r *models.Reel) { r.Status = models.ReelReady })

	resp := testsupport.JSON(t, app, http.MethodPost, "/api/schedule", fiber.Map{
		"reelId":       reel.ID,
		"scheduledFor": "2026-05-13T17:40:00Z",
		"options":      fiber.Map{},
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Raw))
	assert.Equal(t, "2026-05-13T18:00:00Z", resp.Body["scheduledFor"])
	assert.Equal(t, "Reel scheduled for optimal time: May 13, 2026 6:00 PM UTC", resp.Body["message"])

	task := resp.Map(t, "schedulingTask")
	assert.Equal(t, "scheduled", task["status"])
	assert.Equal(t, "INSTAGRAM", task["platform"])
	assert.Equal(t, true, task["options"].(map[string]any)["autoOptimize"])

	stored, err := s.GetReel(context.Background(), reel.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReelScheduled, stored.Status)
	assert.Equal(t, models.PlatformInstagram, stored.Platform)
	assert.True(t, at("2026-05-13T18:00:00Z").Equal(*stored.ScheduledFor))
}

func TestScheduleWithoutOptionsKeepsTime(t *testing.T) {
	app, s := newApp(t)
	user := testsupport.NewCreator(t, s, "mike@example.com", models.PlanBusiness, models.PlatformFacebook)
	reel := testsupport.NewReel(t, s, user.ID, nil)

	resp := testsupport.JSON(t, app, http.MethodPost, "/api/schedule", fiber.Map{
		"reelId":       reel.ID,
		"scheduledFor": "2026-05-13T17:40:00Z",
		"platform":     "BOTH",
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Raw))
	assert.Equal(t, "2026-05-13T17:40:00Z", resp.Body["scheduledFor"])
	assert.Equal(t, "Reel scheduled for: May 13, 2026 5:40 PM UTC", resp.Body["message"])
}

func TestScheduleKeepsTimeWhenSlotHasPassed(t *testing.T) {
	app, s := newApp(t)
	user := testsupport.NewCreator(t, s, "sarah@example.com", models.PlanGrowth, models.PlatformInstagram)
	reel := testsupport.NewReel(t, s, user.ID, nil)

	// Closest slot is 09:00 the same day, which is before the 10:15 clock.
	resp := testsupport.JSON(t, app, http.MethodPost, "/api/schedule", fiber.Map{
		"reelId":       reel.ID,
		"scheduledFor": "2026-05-12T10:40:00Z",
		"options":      fiber.Map{"autoOptimize": true},
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Raw))
	assert.Equal(t, "2026-05-12T10:40:00Z", resp.Body["scheduledFor"])
}

func TestScheduleRejections(t *testing.T) {
	app, s := newApp(t)
	starter := testsupport.NewCreator(t, s, "emma@example.com", models.PlanStarter, models.PlatformInstagram)
	growth := testsupport.NewCreator(t, s, "sarah@example.com", models.PlanGrowth, models.PlatformInstagram)
	starterReel := testsupport.NewReel(t, s, starter.ID, nil)
	growthReel := testsupport.NewReel(t, s, growth.ID, nil)

	cases := []struct {
		name   string
		body   fiber.Map
		status int
		err    string
	}{
		{
			name:   "missing reel",
			body:   fiber.Map{"reelId": "nope", "scheduledFor": "2026-05-13T10:00:00Z"},
			status: http.StatusNotFound,
			err:    "Reel not found",
		},
		{
			name:   "plan without auto-posting",
			body:   fiber.Map{"reelId": starterReel.ID, "scheduledFor": "2026-05-13T10:00:00Z"},
			status: http.StatusForbidden,
			err:    "Auto-posting is not included in your subscription plan",
		},
		{
			name:   "no account for platform",
			body:   fiber.Map{"reelId": growthReel.ID, "scheduledFor": "2026-05-13T10:00:00Z", "platform": "FACEBOOK"},
			status: http.StatusBadRequest,
			err:    "No FACEBOOK account connected. Please connect your social account first.",
		},
		{
			name:   "past time",
			body:   fiber.Map{"reelId": growthReel.ID, "scheduledFor": "2026-05-12T10:15:00Z"},
			status: http.StatusBadRequest,
			err:    "Scheduled time must be in the future",
		},
		{
			name:   "bad datetime",
			body:   fiber.Map{"reelId": growthReel.ID, "scheduledFor": "tomorrow"},
			status: http.StatusBadRequest,
			err:    "Invalid request data",
		},
		{
			name:   "bad timezone",
			body:   fiber.Map{"reelId": growthReel.ID, "scheduledFor": "2026-05-13T10:00:00Z", "timezone": "Mars/Olympus"},
			status: http.StatusBadRequest,
			err:    "Invalid request data",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := testsupport.JSON(t, app, http.MethodPost, "/api/schedule", tc.body)
			assert.Equal(t, tc.status, resp.Status, string(resp.Raw))
			assert.Equal(t, tc.err, resp.Body["error"])
		})
	}
}

func TestListSchedule(t *testing.T) {
	app, s := newApp(t)
	user := testsupport.NewCreator(t, s, "sarah@example.com", models.PlanGrowth)

	tomorrow := testsupport.Fixed.Add(24 * time.Hour)
	nextMonth := testsupport.Fixed.Add(30 * 24 * time.Hour)
	yesterday := testsupport.Fixed.Add(-24 * time.Hour)

	later := testsupport.NewReel(t, s, user.ID, func(r *models.Reel) {
		r.Status = models.ReelScheduled
		r.ScheduledFor = &nextMonth
	})
	soon := testsupport.NewReel(t, s, user.ID, func(r *models.Reel) {
		r.Status = models.ReelScheduled
		r.ScheduledFor = &tomorrow
	})
	testsupport.NewReel(t, s, user.ID, func(r *models.Reel) {
		r.Status = models.ReelPosted
		r.ScheduledFor = &yesterday
		r.PostedAt = &yesterday
	})
	testsupport.NewReel(t, s, user.ID, func(r *models.Reel) { r.Status = models.ReelFailed })
	testsupport.NewReel(t, s, "someone-else", func(r *models.Reel) { r.Status = models.ReelScheduled })

	resp := testsupport.JSON(t, app, http.MethodGet, "/api/schedule?userId="+user.ID, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.List(t, "scheduledReels"), 4)

	upcoming := resp.List(t, "upcomingReels")
	require.Len(t, upcoming, 1)
	assert.Equal(t, soon.ID, upcoming[0].(map[string]any)["id"])

	analytics := resp.Map(t, "analytics")
	assert.EqualValues(t, 2, analytics["totalScheduled"])
	assert.EqualValues(t, 1, analytics["totalPosted"])
	assert.EqualValues(t, 1, analytics["totalFailed"])
	assert.EqualValues(t, 1, analytics["upcomingThisWeek"])
	assert.Equal(t, soon.ID, analytics["nextScheduledPost"].(map[string]any)["id"])

	resp = testsupport.JSON(t, app, http.MethodGet, "/api/schedule?userId="+user.ID+"&status=scheduled", nil)
	reels := resp.List(t, "scheduledReels")
	require.Len(t, reels, 2)
	assert.Equal(t, soon.ID, reels[0].(map[string]any)["id"])
	assert.Equal(t, later.ID, reels[1].(map[string]any)["id"])

	resp = testsupport.JSON(t, app, http.MethodGet, "/api/schedule", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestUpdateActions(t *testing.T) {
	app, s := newApp(t)
	tomorrow := testsupport.Fixed.Add(24 * time.Hour)
	reel := testsupport.NewReel(t, s, "u1", func(r *models.Reel) {
		r.Status = models.ReelScheduled
		r.ScheduledFor = &tomorrow
	})
	ctx := context.Background()

	resp := testsupport.JSON(t, app, http.MethodPatch, "/api/schedule", fiber.Map{
		"reelId": reel.ID, "action": "reschedule", "newScheduledTime": "2026-05-20T09:00:00Z",
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Raw))
	assert.Equal(t, "Reel rescheduled successfully", resp.Body["message"])
	stored, _ := s.GetReel(ctx, reel.ID)
	assert.True(t, at("2026-05-20T09:00:00Z").Equal(*stored.ScheduledFor))

	resp = testsupport.JSON(t, app, http.MethodPatch, "/api/schedule", fiber.Map{"reelId": reel.ID, "action": "cancel"})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "Reel canceld successfully", resp.Body["message"])
	stored, _ = s.GetReel(ctx, reel.ID)
	assert.Equal(t, models.ReelDraft, stored.Status)
	assert.Nil(t, stored.ScheduledFor)

	resp = testsupport.JSON(t, app, http.MethodPatch, "/api/schedule", fiber.Map{"reelId": reel.ID, "action": "post_now"})
	require.Equal(t, http.StatusOK, resp.Status)
	stored, _ = s.GetReel(ctx, reel.ID)
	assert.Equal(t, models.ReelPosted, stored.Status)
	require.NotNil(t, stored.PostedAt)
	assert.True(t, testsupport.Fixed.Equal(*stored.PostedAt))
}

func TestUpdateRejections(t *testing.T) {
	app, s := newApp(t)
	reel := testsupport.NewReel(t, s, "u1", nil)

	cases := []struct {
		body   fiber.Map
		status int
		err    string
	}{
		{fiber.Map{"action": "cancel"}, http.StatusBadRequest, "Reel ID is required"},
		{fiber.Map{"reelId": reel.ID, "action": "archive"}, http.StatusBadRequest, "Invalid action"},
		{fiber.Map{"reelId": reel.ID, "action": "reschedule"}, http.StatusBadRequest, "New scheduled time is required for rescheduling"},
		{fiber.Map{"reelId": reel.ID, "action": "reschedule", "newScheduledTime": "soon"}, http.StatusBadRequest, "Invalid datetime format"},
		{fiber.Map{"reelId": "nope", "action": "cancel"}, http.StatusNotFound, "Reel not found"},
	}
	for _, tc := range cases {
		resp := testsupport.JSON(t, app, http.MethodPatch, "/api/schedule", tc.body)
		assert.Equal(t, tc.status, resp.Status, tc.err)
		assert.Equal(t, tc.err, resp.Body["error"])
	}
}

func TestOptimalSlots(t *testing.T) {
	app, _ := newApp(t)

	resp := testsupport.JSON(t, app, http.MethodGet, "/api/schedule/slots?platform=facebook", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "FACEBOOK", resp.Body["platform"])
	assert.Len(t, resp.List(t, "slots"), 3)
}
