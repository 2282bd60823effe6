// Package publisher posts scheduled reels once they fall due.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/creatorstation/reelstudio/internal/activity"
	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
)

// ErrBusy is returned by Run while another run is in progress.
var ErrBusy = errors.New("publisher: a run is already in progress")

// Result counts the outcome of one run.
type Result struct {
	Due    int `json:"due"`
	Posted int `json:"posted"`
	Failed int `json:"failed"`
	// Skipped reels were cancelled or rescheduled while being posted.
	Skipped int `json:"skipped"`
}

type outcome int

const (
	outcomePosted outcome = iota
	outcomeFailed
	outcomeSkipped
)

type Publisher struct {
	Store  store.Store
	Poster Poster
	Feed   activity.Feed
	Log    logrus.FieldLogger
	Now    func() time.Time

	mu sync.Mutex
}

// Start runs the publisher on spec (standard five-field cron syntax, UTC).
func (p *Publisher) Start(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(spec, func() {
		if _, err := p.Run(context.Background()); err != nil && !errors.Is(err, ErrBusy) {
			p.Log.WithError(err).Error("publisher: run failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("publisher: invalid schedule %q: %w", spec, err)
	}

	c.Start()
	p.Log.WithField("schedule", spec).Info("publisher cron job scheduled")
	return c, nil
}

func (p *Publisher) MountController(router fiber.Router) {
	router.Post("/publish/run", p.trigger)
}

// trigger starts a run in the background, or waits for it with ?wait=true.
func (p *Publisher) trigger(c *fiber.Ctx) error {
	if !c.QueryBool("wait") {
		go func() {
			if _, err := p.Run(context.Background()); err != nil && !errors.Is(err, ErrBusy) {
				p.Log.WithError(err).Error("publisher: run failed")
			}
		}()
		return c.JSON(fiber.Map{
			"message": "Publish job started",
		})
	}

	res, err := p.Run(c.UserContext())
	if errors.Is(err, ErrBusy) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		p.Log.WithError(err).Error("publisher: run failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Publish job failed"})
	}
	return c.JSON(fiber.Map{
		"message": "Publish job completed",
		"result":  res,
	})
}

// Run posts every SCHEDULED reel whose time has come.
func (p *Publisher) Run(ctx context.Context) (Result, error) {
	if !p.mu.TryLock() {
		return Result{}, ErrBusy
	}
	defer p.mu.Unlock()

	now := p.Now().UTC()
	due, err := p.Store.ListReels(ctx, store.ReelFilter{
		Status:    models.ReelScheduled,
		DueBefore: &now,
	})
	if err != nil {
		return Result{}, fmt.Errorf("publisher: list due reels: %w", err)
	}

	res := Result{Due: len(due)}
	if len(due) > 0 {
		p.Log.WithField("due", len(due)).Info("publisher: starting run")
	}

	for i := range due {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		switch p.publish(ctx, &due[i]) {
		case outcomePosted:
			res.Posted++
		case outcomeSkipped:
			res.Skipped++
		default:
			res.Failed++
		}
	}

	if len(due) > 0 {
		p.Log.WithFields(logrus.Fields{"posted": res.Posted, "failed": res.Failed, "skipped": res.Skipped}).Info("publisher: run completed")
	}
	return res, nil
}

func (p *Publisher) publish(ctx context.Context, reel *models.Reel) outcome {
	log := p.Log.WithField("reel_id", reel.ID).WithField("user_id", reel.UserID)

	postErr := p.post(ctx, *reel)

	now := p.Now().UTC()
	if postErr == nil {
		reel.Status = models.ReelPosted
		reel.PostedAt = &now
		reel.FailureReason = ""
	} else {
		reel.Status = models.ReelFailed
		reel.FailureReason = postErr.Error()
		log.WithError(postErr).Warn("publisher: reel failed")
	}

	if err := p.Store.FinishScheduled(ctx, reel); err != nil {
		if errors.Is(err, store.ErrStale) {
			log.Warn("publisher: reel changed while posting, keeping the newer state")
			return outcomeSkipped
		}
		log.WithError(err).Error("publisher: cannot save reel")
		return outcomeFailed
	}

	p.record(ctx, *reel, postErr, now)
	if postErr != nil {
		return outcomeFailed
	}
	return outcomePosted
}

func (p *Publisher) post(ctx context.Context, reel models.Reel) error {
	accounts, err := p.Store.ListSocialAccounts(ctx, reel.UserID)
	if err != nil {
		return err
	}

	var targets []models.SocialAccount
	for _, a := range accounts {
		if reel.Platform == "" || reel.Platform == models.PlatformBoth || a.Platform == reel.Platform {
			targets = append(targets, a)
		}
	}
	if len(targets) == 0 {
		return fmt.Errorf("no %s account connected", platformName(reel.Platform))
	}

	return p.Poster.Post(ctx, reel, targets)
}

func platformName(p models.Platform) models.Platform {
	if p == "" {
		return models.PlatformInstagram
	}
	return p
}

func (p *Publisher) record(ctx context.Context, reel models.Reel, postErr error, at time.Time) {
	name := reel.UserID
	if user, err := p.Store.GetUser(ctx, reel.UserID); err == nil {
		name = user.Name
	}

	var event activity.Event
	if postErr == nil {
		event = activity.Success(activity.ReelPosted, reel.UserID, name, fmt.Sprintf("Posted %q to %s", reel.Title, platformName(reel.Platform)))
	} else {
		event = activity.Failure(activity.ReelFailed, reel.UserID, name, fmt.Sprintf("Failed to post %q: %v", reel.Title, postErr))
	}
	event.Timestamp = at

	if err := p.Feed.Record(ctx, event); err != nil {
		p.Log.WithError(err).Warn("publisher: cannot record activity")
	}
}
