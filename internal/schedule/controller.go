// Package schedule books reels into posting slots and manages the queue of
// scheduled reels.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/creatorstation/reelstudio/internal/api"
	"github.com/creatorstation/reelstudio/internal/config"
	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
)

const (
	upcomingWindow = 7 * 24 * time.Hour
	messageLayout  = "Jan 2, 2006 3:04 PM MST"
)

type Controller struct {
	Store store.Store
	Slots config.Slots
	Log   logrus.FieldLogger
	Now   func() time.Time
}

func (ctl *Controller) MountController(router fiber.Router) {
	router.Post("/", ctl.Schedule)
	router.Get("/", ctl.List)
	router.Patch("/", ctl.Update)
	router.Get("/slots", ctl.OptimalSlots)
}

// Schedule books a reel for automatic posting.
func (ctl *Controller) Schedule(c *fiber.Ctx) error {
	var body ScheduleBody
	if err := c.BodyParser(&body); err != nil {
		return api.Invalid(c, err)
	}
	body.Defaults()
	if err := body.Validate(); err != nil {
		return api.Invalid(c, err)
	}

	ctx := c.UserContext()
	log := ctl.Log.WithField("reel_id", body.ReelID)

	reel, err := ctl.Store.GetReel(ctx, body.ReelID)
	if errors.Is(err, store.ErrNotFound) {
		return api.Error(c, fiber.StatusNotFound, "Reel not found")
	}
	if err != nil {
		return api.Fail(c, log, err, "Failed to schedule reel")
	}

	sub, err := ctl.Store.GetSubscription(ctx, reel.UserID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return api.Fail(c, log, err, "Failed to schedule reel")
	}
	if sub == nil || !sub.AutoPosting {
		return api.Error(c, fiber.StatusForbidden, "Auto-posting is not included in your subscription plan")
	}

	accounts, err := ctl.Store.ListSocialAccounts(ctx, reel.UserID)
	if err != nil {
		return api.Fail(c, log, err, "Failed to schedule reel")
	}
	if !connected(accounts, body.Platform) {
		return api.Error(c, fiber.StatusBadRequest,
			fmt.Sprintf("No %s account connected. Please connect your social account first.", body.Platform))
	}

	now := ctl.Now()
	requested, _ := time.Parse(time.RFC3339, body.ScheduledFor)
	if !requested.After(now) {
		return api.Error(c, fiber.StatusBadRequest, "Scheduled time must be in the future")
	}

	loc, _ := time.LoadLocation(body.Timezone)
	final := requested
	optimized := false
	if body.optimize() {
		// A slot earlier that day may already have passed.
		if slot := Optimize(ctl.Slots.For(string(body.Platform)), requested, loc); slot.After(now) {
			final, optimized = slot, true
		}
	}
	final = final.UTC()

	reel.Status = models.ReelScheduled
	reel.ScheduledFor = &final
	reel.Platform = body.Platform
	reel.FailureReason = ""
	if err := ctl.Store.SaveReel(ctx, reel); err != nil {
		return api.Fail(c, log, err, "Failed to schedule reel")
	}

	log.WithField("scheduled_for", final).WithField("platform", body.Platform).Info("reel scheduled")

	message := "Reel scheduled for: " + final.In(loc).Format(messageLayout)
	if optimized {
		message = "Reel scheduled for optimal time: " + final.In(loc).Format(messageLayout)
	}

	return api.OK(c, fiber.Map{
		"reel": reel,
		"schedulingTask": fiber.Map{
			"id":           fmt.Sprintf("task_%d", now.UnixMilli()),
			"reelId":       reel.ID,
			"userId":       reel.UserID,
			"platform":     body.Platform,
			"scheduledFor": final,
			"status":       "scheduled",
			"createdAt":    now.UTC(),
			"options":      body.Options,
		},
		"scheduledFor": final,
		"message":      message,
	})
}

// connected reports whether an account can post to platform. BOTH is satisfied
// by either network.
func connected(accounts []models.SocialAccount, platform models.Platform) bool {
	for _, a := range accounts {
		if a.Platform == platform {
			return true
		}
		if platform == models.PlatformBoth &&
			(a.Platform == models.PlatformInstagram || a.Platform == models.PlatformFacebook) {
			return true
		}
	}
	return false
}

// List returns the user's reels with the coming week's schedule.
func (ctl *Controller) List(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return api.Error(c, fiber.StatusBadRequest, "User ID is required")
	}

	reels, err := ctl.Store.ListReels(c.UserContext(), store.ReelFilter{
		UserID: userID,
		Status: models.ReelStatus(strings.ToUpper(c.Query("status"))),
	})
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to retrieve scheduled reels")
	}

	now := ctl.Now()
	upcoming, analytics := Summarize(reels, now)

	return api.OK(c, fiber.Map{
		"scheduledReels": reels,
		"upcomingReels":  upcoming,
		"analytics":      analytics,
	})
}

// Analytics summarizes a list of reels for the schedule page.
type Analytics struct {
	TotalScheduled    int          `json:"totalScheduled"`
	TotalPosted       int          `json:"totalPosted"`
	TotalFailed       int          `json:"totalFailed"`
	UpcomingThisWeek  int          `json:"upcomingThisWeek"`
	NextScheduledPost *models.Reel `json:"nextScheduledPost"`
}

// Summarize picks the reels due within a week of now and counts statuses.
// reels must be ordered by scheduledFor ascending.
func Summarize(reels []models.Reel, now time.Time) ([]models.Reel, Analytics) {
	weekOut := now.Add(upcomingWindow)
	upcoming := []models.Reel{}
	var a Analytics

	for i, r := range reels {
		switch r.Status {
		case models.ReelScheduled:
			a.TotalScheduled++
			if r.ScheduledFor != nil && a.NextScheduledPost == nil {
				a.NextScheduledPost = &reels[i]
			}
		case models.ReelPosted:
			a.TotalPosted++
		case models.ReelFailed:
			a.TotalFailed++
		}

		if r.ScheduledFor != nil && !r.ScheduledFor.Before(now) && !r.ScheduledFor.After(weekOut) {
			upcoming = append(upcoming, r)
		}
	}
	a.UpcomingThisWeek = len(upcoming)
	return upcoming, a
}

// Update reschedules, cancels or immediately posts a reel.
func (ctl *Controller) Update(c *fiber.Ctx) error {
	var body UpdateBody
	if err := c.BodyParser(&body); err != nil {
		return api.Invalid(c, err)
	}
	if body.ReelID == "" {
		return api.Error(c, fiber.StatusBadRequest, "Reel ID is required")
	}

	ctx := c.UserContext()
	log := ctl.Log.WithField("reel_id", body.ReelID).WithField("action", body.Action)
	now := ctl.Now().UTC()

	var newTime time.Time
	switch body.Action {
	case ActionReschedule:
		if body.NewScheduledTime == "" {
			return api.Error(c, fiber.StatusBadRequest, "New scheduled time is required for rescheduling")
		}
		t, err := time.Parse(time.RFC3339, body.NewScheduledTime)
		if err != nil {
			return api.Error(c, fiber.StatusBadRequest, "Invalid datetime format")
		}
		newTime = t.UTC()
	case ActionCancel, ActionPostNow:
	default:
		return api.Error(c, fiber.StatusBadRequest, "Invalid action")
	}

	reel, err := ctl.Store.GetReel(ctx, body.ReelID)
	if errors.Is(err, store.ErrNotFound) {
		return api.Error(c, fiber.StatusNotFound, "Reel not found")
	}
	if err != nil {
		return api.Fail(c, log, err, "Failed to update schedule")
	}

	switch body.Action {
	case ActionReschedule:
		reel.ScheduledFor = &newTime
		reel.Status = models.ReelScheduled
	case ActionCancel:
		reel.ScheduledFor = nil
		reel.Status = models.ReelDraft
	case ActionPostNow:
		reel.ScheduledFor = &now
		reel.PostedAt = &now
		reel.Status = models.ReelPosted
	}
	reel.FailureReason = ""

	if err := ctl.Store.SaveReel(ctx, reel); err != nil {
		return api.Fail(c, log, err, "Failed to update schedule")
	}
	log.Info("schedule updated")

	return api.OK(c, fiber.Map{
		"reel":    reel,
		"message": fmt.Sprintf("Reel %sd successfully", body.Action),
	})
}

// OptimalSlots lists the posting slots of a platform.
func (ctl *Controller) OptimalSlots(c *fiber.Ctx) error {
	platform := strings.ToUpper(c.Query("platform", string(models.PlatformInstagram)))
	return api.OK(c, fiber.Map{
		"platform": platform,
		"slots":    ctl.Slots.For(platform),
	})
}
