// Package reels serves reel enhancement, render status and edits.
package reels

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/creatorstation/reelstudio/internal/api"
	"github.com/creatorstation/reelstudio/internal/generator"
	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
)

const renderEstimate = 5 * time.Minute

type Controller struct {
	Store     store.Store
	Generator generator.Generator
	Log       logrus.FieldLogger
	Now       func() time.Time
	// Thumbnail grabs a JPEG frame from a video.
	Thumbnail func(ctx context.Context, video []byte) ([]byte, error)
	// Fetch downloads a video given by URL instead of an upload.
	Fetch func(ctx context.Context, url string) ([]byte, error)
}

func (ctl *Controller) MountController(router fiber.Router) {
	router.Post("/generate", ctl.Generate)
	router.Get("/generate", ctl.Status)
	router.Get("/:id", ctl.Get)
	router.Patch("/:id", ctl.Edit)
	router.Post("/:id/thumbnail", ctl.GenerateThumbnail)
}

// Generate enhances a reel's copy, marks it READY and returns the render plan.
func (ctl *Controller) Generate(c *fiber.Ctx) error {
	var body GenerateBody
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
		return api.Fail(c, log, err, "Failed to generate reel")
	}

	opts := *body.Options
	enhanced, err := ctl.Generator.Enhance(ctx, *reel, generator.EnhanceOptions{
		IncludeTrendingAudio: opts.IncludeTrendingAudio,
		Style:                opts.Style,
		TargetAudience:       opts.TargetAudience,
		Niche:                opts.Niche,
	})
	if err != nil {
		return api.Fail(c, log, err, "Failed to generate reel")
	}

	metadata := BuildMetadata(enhanced, opts)

	reel.Hook = enhanced.EnhancedHook
	reel.Script = enhanced.EnhancedScript
	reel.CTA = enhanced.EnhancedCTA
	reel.Hashtags = enhanced.OptimizedHashtags
	reel.Status = models.ReelReady
	if err := ctl.Store.SaveReel(ctx, reel); err != nil {
		return api.Fail(c, log, err, "Failed to generate reel")
	}

	var brandKit *models.BrandKit
	kit, err := ctl.Store.GetBrandKit(ctx, reel.UserID)
	switch {
	case err == nil:
		brandKit = kit
	case !errors.Is(err, store.ErrNotFound):
		log.WithError(err).Warn("reels: cannot load brand kit")
	}

	log.WithField("score", enhanced.EngagementScore).Info("reel enhanced")

	return api.OK(c, fiber.Map{
		"reel":          reel,
		"enhanced":      enhanced,
		"videoMetadata": metadata,
		"videoTask": fiber.Map{
			"reelId":   reel.ID,
			"metadata": metadata,
			"brandKit": brandKit,
			"status":   "pending",
		},
	})
}

// Status reports how far the render of a reel has got.
func (ctl *Controller) Status(c *fiber.Ctx) error {
	reelID := c.Query("reelId")
	if reelID == "" {
		return api.Error(c, fiber.StatusBadRequest, "Reel ID is required")
	}

	reel, err := ctl.Store.GetReel(c.UserContext(), reelID)
	if errors.Is(err, store.ErrNotFound) {
		return api.Error(c, fiber.StatusNotFound, "Reel not found")
	}
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to get reel status")
	}

	return api.OK(c, fiber.Map{
		"reel":        reel,
		"videoStatus": videoStatus(*reel, ctl.Now()),
	})
}

func videoStatus(reel models.Reel, now time.Time) fiber.Map {
	if reel.Status == models.ReelReady {
		return fiber.Map{
			"status":              "completed",
			"progress":            100,
			"videoUrl":            nullable(reel.VideoURL),
			"thumbnailUrl":        nullable(reel.ThumbnailURL),
			"estimatedCompletion": nil,
		}
	}
	return fiber.Map{
		"status":              "pending",
		"progress":            45,
		"videoUrl":            nullable(reel.VideoURL),
		"thumbnailUrl":        nullable(reel.ThumbnailURL),
		"estimatedCompletion": now.Add(renderEstimate).UTC(),
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Get returns a reel with the batch it came from.
func (ctl *Controller) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()

	reel, err := ctl.Store.GetReel(ctx, c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return api.Error(c, fiber.StatusNotFound, "Reel not found")
	}
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to retrieve reel")
	}

	out := fiber.Map{"reel": reel, "contentBatch": nil}
	if reel.ContentBatchID != "" {
		batch, err := ctl.Store.GetBatch(ctx, reel.ContentBatchID, reel.UserID)
		if err == nil {
			batch.Reels = nil
			out["contentBatch"] = batch
		} else if !errors.Is(err, store.ErrNotFound) {
			return api.Fail(c, ctl.Log, err, "Failed to retrieve reel")
		}
	}
	return api.OK(c, out)
}

// Edit rewrites the copy of a reel that has not been posted yet.
func (ctl *Controller) Edit(c *fiber.Ctx) error {
	var body EditBody
	if err := c.BodyParser(&body); err != nil {
		return api.Invalid(c, err)
	}
	if err := body.Validate(); err != nil {
		return api.Invalid(c, err)
	}
	if body.empty() {
		return api.Error(c, fiber.StatusBadRequest, "Nothing to update")
	}

	ctx := c.UserContext()
	reel, err := ctl.Store.GetReel(ctx, c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return api.Error(c, fiber.StatusNotFound, "Reel not found")
	}
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to update reel")
	}
	if reel.Status == models.ReelPosted {
		return api.Error(c, fiber.StatusConflict, "Posted reels cannot be edited")
	}

	apply(&reel.Title, body.Title)
	apply(&reel.Hook, body.Hook)
	apply(&reel.Script, body.Script)
	apply(&reel.CTA, body.CTA)
	if body.Hashtags != nil {
		reel.Hashtags = generator.MergeHashtags(*body.Hashtags)
	}

	if err := ctl.Store.SaveReel(ctx, reel); err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to update reel")
	}
	return api.OK(c, fiber.Map{"reel": reel})
}

func apply(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
