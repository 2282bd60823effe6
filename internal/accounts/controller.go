// Package accounts manages what a creator connects and configures: social
// accounts, the brand kit and the plan catalog.
package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/creatorstation/reelstudio/internal/api"
	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
)

type Controller struct {
	Store store.Store
	Log   logrus.FieldLogger
	// ToJPEG converts an uploaded logo that is not already a JPEG.
	ToJPEG func(ctx context.Context, input []byte, isHEIC bool) ([]byte, error)
}

// MountSocialAccounts serves /social-accounts.
func (ctl *Controller) MountSocialAccounts(router fiber.Router) {
	router.Get("/", ctl.ListSocialAccounts)
	router.Post("/", ctl.ConnectSocialAccount)
	router.Delete("/:id", ctl.DisconnectSocialAccount)
}

// MountBrandKit serves /brandkit.
func (ctl *Controller) MountBrandKit(router fiber.Router) {
	router.Get("/", ctl.GetBrandKit)
	router.Put("/", ctl.SaveBrandKit)
	router.Post("/logo", ctl.UploadLogo)
	router.Get("/logo", ctl.GetLogo)
}

// MountPlans serves /plans.
func (ctl *Controller) MountPlans(router fiber.Router) {
	router.Get("/", ListPlans)
}

func ListPlans(c *fiber.Ctx) error {
	return api.OK(c, fiber.Map{"plans": models.Catalog()})
}

func (ctl *Controller) ListSocialAccounts(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return api.Error(c, fiber.StatusBadRequest, "User ID is required")
	}

	accounts, err := ctl.Store.ListSocialAccounts(c.UserContext(), userID)
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to retrieve social accounts")
	}
	return api.OK(c, fiber.Map{"socialAccounts": accounts})
}

func (ctl *Controller) ConnectSocialAccount(c *fiber.Ctx) error {
	var body SocialAccountBody
	if err := c.BodyParser(&body); err != nil {
		return api.Invalid(c, err)
	}
	if err := body.Validate(); err != nil {
		return api.Invalid(c, err)
	}

	ctx := c.UserContext()
	log := ctl.Log.WithField("user_id", body.UserID)

	if _, err := ctl.Store.GetUser(ctx, body.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return api.Error(c, fiber.StatusNotFound, "User not found")
		}
		return api.Fail(c, log, err, "Failed to connect social account")
	}

	handle := body.Handle
	if !strings.HasPrefix(handle, "@") {
		handle = "@" + handle
	}

	existing, err := ctl.Store.ListSocialAccounts(ctx, body.UserID)
	if err != nil {
		return api.Fail(c, log, err, "Failed to connect social account")
	}
	for _, a := range existing {
		if a.Platform == body.Platform && strings.EqualFold(a.Handle, handle) {
			return api.Error(c, fiber.StatusConflict, "Account already connected")
		}
	}

	account := &models.SocialAccount{
		UserID:      body.UserID,
		Platform:    body.Platform,
		Handle:      handle,
		AccessToken: body.AccessToken,
	}
	if err := ctl.Store.CreateSocialAccount(ctx, account); err != nil {
		return api.Fail(c, log, err, "Failed to connect social account")
	}

	log.WithField("platform", account.Platform).Info("social account connected")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":       true,
		"socialAccount": account,
	})
}

func (ctl *Controller) DisconnectSocialAccount(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return api.Error(c, fiber.StatusBadRequest, "User ID is required")
	}

	ctx := c.UserContext()
	id := c.Params("id")

	accounts, err := ctl.Store.ListSocialAccounts(ctx, userID)
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to disconnect social account")
	}
	owned := false
	for _, a := range accounts {
		if a.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		return api.Error(c, fiber.StatusNotFound, "Social account not found")
	}

	if err := ctl.Store.DeleteSocialAccount(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		return api.Fail(c, ctl.Log, err, "Failed to disconnect social account")
	}
	return api.OK(c, fiber.Map{"message": "Social account disconnected"})
}

// requireBrandKitPlan answers 403 unless the user's plan includes a brand kit.
// It returns true when the handler should go on.
func (ctl *Controller) requireBrandKitPlan(c *fiber.Ctx, userID string) (bool, error) {
	sub, err := ctl.Store.GetSubscription(c.UserContext(), userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return false, api.Fail(c, ctl.Log, err, "Failed to save brand kit")
	}
	if sub != nil {
		if details, ok := models.Lookup(sub.Plan); ok && details.BrandKit {
			return true, nil
		}
	}
	return false, api.Error(c, fiber.StatusForbidden, "Brand kit is not included in your subscription plan")
}

func (ctl *Controller) GetBrandKit(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return api.Error(c, fiber.StatusBadRequest, "User ID is required")
	}

	kit, err := ctl.Store.GetBrandKit(c.UserContext(), userID)
	if errors.Is(err, store.ErrNotFound) {
		return api.OK(c, fiber.Map{"brandKit": nil, "hasLogo": false})
	}
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to retrieve brand kit")
	}
	return api.OK(c, fiber.Map{"brandKit": kit, "hasLogo": kit.HasLogo()})
}

func (ctl *Controller) SaveBrandKit(c *fiber.Ctx) error {
	var body BrandKitBody
	if err := c.BodyParser(&body); err != nil {
		return api.Invalid(c, err)
	}
	if err := body.Validate(); err != nil {
		return api.Invalid(c, err)
	}
	if ok, err := ctl.requireBrandKitPlan(c, body.UserID); !ok {
		return err
	}

	ctx := c.UserContext()
	kit, err := ctl.Store.GetBrandKit(ctx, body.UserID)
	if errors.Is(err, store.ErrNotFound) {
		kit = &models.BrandKit{UserID: body.UserID}
	} else if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to save brand kit")
	}

	kit.PrimaryColor = body.PrimaryColor
	kit.SecondaryColor = body.SecondaryColor
	kit.Font = body.Font
	if err := ctl.Store.SaveBrandKit(ctx, kit); err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to save brand kit")
	}
	return api.OK(c, fiber.Map{"brandKit": kit, "hasLogo": kit.HasLogo()})
}

func (ctl *Controller) GetLogo(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return api.Error(c, fiber.StatusBadRequest, "User ID is required")
	}

	kit, err := ctl.Store.GetBrandKit(c.UserContext(), userID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && !kit.HasLogo()) {
		return api.Error(c, fiber.StatusNotFound, "Logo not found")
	}
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to retrieve logo")
	}

	c.Context().SetContentType("image/jpeg")
	return c.Status(fiber.StatusOK).Send(kit.Logo)
}
