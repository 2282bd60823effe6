// Package analytics reports how a creator's posted reels perform.
package analytics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/creatorstation/reelstudio/internal/api"
	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
)

const (
	topContentLimit = 10
	recentWindow    = 7 * 24 * time.Hour
)

type Controller struct {
	Store    store.Store
	Audience AudienceProvider
	Log      logrus.FieldLogger
	Now      func() time.Time
}

func (ctl *Controller) MountController(router fiber.Router) {
	router.Post("/", ctl.Report)
	router.Get("/", ctl.QuickStats)
}

// Report builds the full analytics view for a date range.
func (ctl *Controller) Report(c *fiber.Ctx) error {
	var body QueryBody
	if err := c.BodyParser(&body); err != nil {
		return api.Invalid(c, err)
	}
	body.Defaults()
	if err := body.Validate(); err != nil {
		return api.Invalid(c, err)
	}

	ctx := c.UserContext()
	log := ctl.Log.WithField("user_id", body.UserID)
	start, end := Range(body.DateRange, ctl.Now().UTC())

	posted, err := ctl.Store.ListReels(ctx, store.ReelFilter{UserID: body.UserID, PostedSince: &start})
	if err != nil {
		return api.Fail(c, log, err, "Failed to fetch analytics")
	}

	series := TimeSeries(posted, start, end, body.Granularity)
	aggregates := Aggregates(series, body.Metrics)

	top, err := ctl.Store.TopReels(ctx, body.UserID, topContentLimit)
	if err != nil {
		return api.Fail(c, log, err, "Failed to fetch analytics")
	}

	audience, err := ctl.Audience.Audience(ctx, body.UserID)
	if err != nil {
		return api.Fail(c, log, err, "Failed to fetch analytics")
	}

	categories := ByCategory(posted)

	var totals Totals
	for _, r := range posted {
		totals.Add(r)
	}

	return api.OK(c, fiber.Map{
		"dateRange":        fiber.Map{"startDate": start, "endDate": end},
		"granularity":      body.Granularity,
		"timeSeries":       series,
		"aggregates":       aggregates,
		"topContent":       topReels(top),
		"categoryStats":    categories,
		"audienceInsights": audience,
		"summary": fiber.Map{
			"totalReels":             totals.Count,
			"totalViews":             totals.Views,
			"avgEngagementRate":      totals.Rate(),
			"bestPerformingCategory": BestCategory(categories),
		},
	})
}

// QuickStats returns lifetime and last-week totals of posted reels.
func (ctl *Controller) QuickStats(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return api.Error(c, fiber.StatusBadRequest, "User ID is required")
	}

	reels, err := ctl.Store.ListReels(c.UserContext(), store.ReelFilter{UserID: userID, Status: models.ReelPosted})
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to fetch quick stats")
	}

	since := ctl.Now().Add(-recentWindow)
	var all, recent Totals
	for _, r := range reels {
		all.Add(r)
		if r.PostedAt != nil && !r.PostedAt.Before(since) {
			recent.Add(r)
		}
	}

	return api.OK(c, fiber.Map{
		"quickStats": fiber.Map{
			"totalReels":            all.Count,
			"totalViews":            all.Views,
			"totalLikes":            all.Likes,
			"totalComments":         all.Comments,
			"totalShares":           all.Shares,
			"totalSaves":            all.Saves,
			"overallEngagementRate": all.Rate(),
		},
		"recentPerformance": fiber.Map{
			"reelsPosted":    recent.Count,
			"views":          recent.Views,
			"likes":          recent.Likes,
			"comments":       recent.Comments,
			"shares":         recent.Shares,
			"saves":          recent.Saves,
			"engagementRate": recent.Rate(),
		},
	})
}
