// Package auth signs creators up and in.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/creatorstation/reelstudio/internal/activity"
	"github.com/creatorstation/reelstudio/internal/api"
	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
)

type Controller struct {
	Store store.Store
	Feed  activity.Feed
	Log   logrus.FieldLogger
	Now   func() time.Time
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
}

func (ctl *Controller) MountController(router fiber.Router) {
	router.Post("/signup", ctl.Signup)
	router.Post("/login", ctl.Login)
}

// Signup creates a trial user on the chosen plan.
func (ctl *Controller) Signup(c *fiber.Ctx) error {
	var body SignupBody
	if err := c.BodyParser(&body); err != nil {
		return api.Invalid(c, err)
	}
	body.Defaults()
	if err := body.Validate(); err != nil {
		return api.Invalid(c, err)
	}

	ctx := c.UserContext()
	email := body.Email
	log := ctl.Log.WithField("email", email)

	cost := ctl.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), cost)
	if err != nil {
		return api.Fail(c, log, err, "Failed to create account")
	}

	now := ctl.Now()
	user := &models.User{
		Name:         strings.TrimSpace(body.Name),
		Email:        email,
		PasswordHash: string(hash),
		Status:       models.UserTrial,
		LastActiveAt: &now,
	}
	err = ctl.Store.CreateUser(ctx, user)
	if errors.Is(err, store.ErrDuplicate) {
		return api.Error(c, fiber.StatusConflict, "An account with this email already exists")
	}
	if err != nil {
		return api.Fail(c, log, err, "Failed to create account")
	}

	details, _ := models.Lookup(body.Plan)
	sub := &models.Subscription{
		UserID:       user.ID,
		Plan:         body.Plan,
		Status:       models.SubscriptionTrial,
		AutoPosting:  details.AutoPosting,
		MonthlyPrice: details.Price,
	}
	if err := ctl.Store.CreateSubscription(ctx, sub); err != nil {
		if _, delErr := ctl.Store.DeleteUsers(ctx, []string{user.ID}); delErr != nil {
			log.WithError(delErr).Error("auth: cannot roll back user without subscription")
		}
		return api.Fail(c, log, err, "Failed to create account")
	}

	event := activity.Success(activity.UserSignup, user.ID, user.Name,
		fmt.Sprintf("New user signed up for %s plan", details.Name))
	event.Timestamp = now
	if err := ctl.Feed.Record(ctx, event); err != nil {
		log.WithError(err).Warn("auth: cannot record activity")
	}

	log.WithField("plan", body.Plan).Info("user signed up")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"user":         user,
		"subscription": sub,
	})
}

// Login checks a password and marks the user active.
func (ctl *Controller) Login(c *fiber.Ctx) error {
	var body LoginBody
	if err := c.BodyParser(&body); err != nil {
		return api.Invalid(c, err)
	}
	if err := body.Validate(); err != nil {
		return api.Invalid(c, err)
	}

	ctx := c.UserContext()
	email := normalizeEmail(body.Email)

	user, err := ctl.Store.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return api.Fail(c, ctl.Log, err, "Failed to sign in")
	}
	if user == nil || user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		return api.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if user.Status == models.UserSuspended {
		return api.Error(c, fiber.StatusForbidden, "Account suspended")
	}

	now := ctl.Now()
	if err := ctl.Store.TouchUser(ctx, user.ID, now); err != nil {
		ctl.Log.WithError(err).WithField("user_id", user.ID).Warn("auth: cannot update last active")
	}
	user.LastActiveAt = &now

	sub, err := ctl.Store.GetSubscription(ctx, user.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return api.Fail(c, ctl.Log, err, "Failed to sign in")
	}

	return api.OK(c, fiber.Map{
		"user":         user,
		"subscription": sub,
	})
}
