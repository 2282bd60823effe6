package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/creatorstation/reelstudio/internal/activity"
	"github.com/creatorstation/reelstudio/internal/api"
	"github.com/creatorstation/reelstudio/internal/extract"
	"github.com/creatorstation/reelstudio/internal/generator"
	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
)

type Controller struct {
	Store     store.Store
	Generator generator.Generator
	Extractor extract.Extractor
	Feed      activity.Feed
	Log       logrus.FieldLogger
	Now       func() time.Time
}

func (ctl *Controller) MountController(router fiber.Router) {
	router.Post("/", ctl.Generate)
	router.Get("/", ctl.List)
	router.Post("/process", ctl.Process)
}

// Generate stores a content batch and the reel ideas generated from it.
func (ctl *Controller) Generate(c *fiber.Ctx) error {
	var body GenerateBody
	if err := c.BodyParser(&body); err != nil {
		return api.Invalid(c, err)
	}
	if err := body.Validate(); err != nil {
		return api.Invalid(c, err)
	}

	ctx := c.UserContext()
	log := ctl.Log.WithField("user_id", body.UserID)

	user, err := ctl.Store.GetUser(ctx, body.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return api.Error(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return api.Fail(c, log, err, "Failed to generate content")
	}

	raw, _ := json.Marshal(storedContent{Raw: body.Content, Description: body.Description})
	batch := &models.ContentBatch{
		UserID:      body.UserID,
		Title:       body.Title,
		ContentType: body.ContentType,
		Content:     string(raw),
		Status:      models.BatchProcessing,
	}
	if err := ctl.Store.CreateBatch(ctx, batch); err != nil {
		return api.Fail(c, log, err, "Failed to generate content")
	}
	log = log.WithField("batch_id", batch.ID)

	ideas, err := ctl.Generator.Ideas(ctx, generator.Request{
		Title:       body.Title,
		ContentType: body.ContentType,
		Content:     body.Content,
		Count:       generator.DefaultBatchSize,
	})
	if err != nil {
		ctl.failBatch(c, log, batch.ID)
		return api.Fail(c, log, err, "Failed to generate content")
	}

	reels := make([]*models.Reel, len(ideas))
	for i, idea := range ideas {
		reels[i] = &models.Reel{
			UserID:         body.UserID,
			ContentBatchID: batch.ID,
			Title:          idea.Title,
			Hook:           idea.Hook,
			Script:         idea.Script,
			CTA:            idea.CTA,
			Hashtags:       idea.Hashtags,
			Category:       idea.Category,
			Status:         models.ReelDraft,
		}
	}
	if err := ctl.Store.CreateReels(ctx, reels); err != nil {
		ctl.failBatch(c, log, batch.ID)
		return api.Fail(c, log, err, "Failed to generate content")
	}

	if err := ctl.Store.SetBatchStatus(ctx, batch.ID, models.BatchCompleted); err != nil {
		return api.Fail(c, log, err, "Failed to generate content")
	}
	batch.Status = models.BatchCompleted

	event := activity.Success(activity.ContentGenerated, user.ID, user.Name,
		fmt.Sprintf("Generated %d new reels", len(reels)))
	event.Timestamp = ctl.Now()
	if err := ctl.Feed.Record(ctx, event); err != nil {
		log.WithError(err).Warn("content: cannot record activity")
	}

	log.WithField("reels", len(reels)).Info("content batch generated")

	summaries := make([]fiber.Map, len(reels))
	for i, r := range reels {
		summaries[i] = fiber.Map{
			"id":       r.ID,
			"title":    r.Title,
			"hook":     r.Hook,
			"category": r.Category,
			"status":   r.Status,
		}
	}

	return api.OK(c, fiber.Map{
		"contentBatch": fiber.Map{
			"id":             batch.ID,
			"title":          batch.Title,
			"status":         batch.Status,
			"reelsGenerated": len(reels),
		},
		"reels": summaries,
	})
}

func (ctl *Controller) failBatch(c *fiber.Ctx, log logrus.FieldLogger, id string) {
	if err := ctl.Store.SetBatchStatus(c.UserContext(), id, models.BatchFailed); err != nil {
		log.WithError(err).Warn("content: cannot mark batch failed")
	}
}

// List returns one batch with its reels, or every batch of the user.
func (ctl *Controller) List(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return api.Error(c, fiber.StatusBadRequest, "User ID is required")
	}

	ctx := c.UserContext()

	if batchID := c.Query("batchId"); batchID != "" {
		batch, err := ctl.Store.GetBatch(ctx, batchID, userID)
		if errors.Is(err, store.ErrNotFound) {
			return api.Error(c, fiber.StatusNotFound, "Content batch not found")
		}
		if err != nil {
			return api.Fail(c, ctl.Log, err, "Failed to retrieve content")
		}
		return api.OK(c, fiber.Map{"contentBatch": batch})
	}

	batches, err := ctl.Store.ListBatches(ctx, userID)
	if err != nil {
		return api.Fail(c, ctl.Log, err, "Failed to retrieve content")
	}
	return api.OK(c, fiber.Map{"contentBatches": batches})
}
