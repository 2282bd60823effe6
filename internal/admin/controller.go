// Package admin serves the operator dashboard: user management, revenue and
// the activity feed.
package admin

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/creatorstation/reelstudio/internal/activity"
	"github.com/creatorstation/reelstudio/internal/api"
	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
	defaultRevenueMonths = 6
	maxRevenueMonths     = 24
)

type Controller struct {
	Store store.Store
	Feed  activity.Feed
	Log   logrus.FieldLogger
	Now   func() time.Time
}

func (ctl *Controller) MountController(router fiber.Router) {
	router.Get("/stats", ctl.Stats)
	router.Get("/users", ctl.Users)
	router.Post("/users/bulk", ctl.Bulk)
	router.Get("/activity", ctl.Activity)
	router.Get("/revenue", ctl.Revenue)
}

func (ctl *Controller) Stats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	users, err := ctl.Store.ListUsers(ctx, store.UserFilter{})
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to fetch stats")
	}
	subs, err := ctl.Store.ListSubscriptions(ctx)
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to fetch stats")
	}

	st := computeStats(users, subs, ctl.Now())

	if st.TotalReels, err = ctl.Store.CountReels(ctx, ""); err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to fetch stats")
	}
	if st.ScheduledPosts, err = ctl.Store.CountReels(ctx, models.ReelScheduled); err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to fetch stats")
	}

	return api.OK(c, fiber.Map{"stats": st})
}

// Users lists users matching ?search= (name or email) and ?plan= ("all" for any).
func (ctl *Controller) Users(c *fiber.Ctx) error {
	filter := store.UserFilter{Search: strings.TrimSpace(c.Query("search"))}

	if plan := strings.ToUpper(c.Query("plan")); plan != "" && plan != "ALL" {
		if _, ok := models.Lookup(models.Plan(plan)); !ok {
			return api.Error(c, fiber.StatusBadRequest, "Invalid plan")
		}
		filter.Plan = models.Plan(plan)
	}

	users, err := ctl.Store.ListUsers(c.UserContext(), filter)
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to fetch users")
	}
	if users == nil {
		users = []models.UserSummary{}
	}
	return api.OK(c, fiber.Map{"users": users, "total": len(users)})
}

// Bulk suspends, activates or deletes several users at once.
func (ctl *Controller) Bulk(c *fiber.Ctx) error {
	var body BulkBody
	if err := c.BodyParser(&body); err != nil {
		return api.Invalid(c, err)
	}
	if err := body.Validate(); err != nil {
		return api.Invalid(c, err)
	}

	ctx := c.UserContext()
	log := ctl.Log.WithField("action", body.Action).WithField("users", len(body.UserIDs))

	var affected int64
	var err error
	switch body.Action {
	case ActionSuspend:
		affected, err = ctl.Store.SetUserStatus(ctx, body.UserIDs, models.UserSuspended)
	case ActionActivate:
		affected, err = ctl.Store.SetUserStatus(ctx, body.UserIDs, models.UserActive)
	case ActionDelete:
		affected, err = ctl.Store.DeleteUsers(ctx, body.UserIDs)
	}
	if err != nil {
		return api.Fail(c, log, err, "Failed to update users")
	}

	event := activity.Success(activity.AdminAction, "", "admin",
		fmt.Sprintf("Bulk %s applied to %d users", body.Action, affected))
	event.Timestamp = ctl.Now()
	if err := ctl.Feed.Record(ctx, event); err != nil {
		log.WithError(err).Warn("admin: cannot record activity")
	}

	log.WithField("affected", affected).Info("bulk user action")
	return api.OK(c, fiber.Map{
		"action":   body.Action,
		"affected": affected,
	})
}

func (ctl *Controller) Activity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultActivityLimit)
	if limit <= 0 || limit > maxActivityLimit {
		limit = defaultActivityLimit
	}

	events, err := ctl.Feed.Recent(c.UserContext(), limit)
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to fetch activity")
	}
	if events == nil {
		events = []activity.Event{}
	}
	return api.OK(c, fiber.Map{"activity": events})
}

// Revenue reports booked revenue and signups for the last ?months= months.
func (ctl *Controller) Revenue(c *fiber.Ctx) error {
	months := c.QueryInt("months", defaultRevenueMonths)
	if months <= 0 || months > maxRevenueMonths {
		return api.Error(c, fiber.StatusBadRequest, fmt.Sprintf("months must be between 1 and %d", maxRevenueMonths))
	}

	now := ctl.Now().UTC()
	since := monthStart(now, months)

	rows, err := ctl.Store.RevenueByMonth(c.UserContext(), since)
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to fetch revenue")
	}
	return api.OK(c, fiber.Map{"revenue": fillMonths(rows, since, now)})
}
