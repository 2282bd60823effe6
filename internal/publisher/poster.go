package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/creatorstation/reelstudio/internal/models"
)

// Poster hands a reel to the social network.
type Poster interface {
	Post(ctx context.Context, reel models.Reel, accounts []models.SocialAccount) error
}

// LogPoster only logs what would be posted.
type LogPoster struct {
	Log logrus.FieldLogger
}

func (p LogPoster) Post(_ context.Context, reel models.Reel, accounts []models.SocialAccount) error {
	handles := make([]string, 0, len(accounts))
	for _, a := range accounts {
		handles = append(handles, a.Handle)
	}
	p.Log.WithFields(logrus.Fields{
		"reel_id":  reel.ID,
		"platform": reel.Platform,
		"handles":  handles,
	}).Info("publisher: posting reel")
	return nil
}

// WebhookPayload is the JSON body sent for each reel.
type WebhookPayload struct {
	ReelID       string          `json:"reelId"`
	UserID       string          `json:"userId"`
	Platform     models.Platform `json:"platform"`
	Handles      []string        `json:"handles"`
	Title        string          `json:"title"`
	Hook         string          `json:"hook"`
	Script       string          `json:"script"`
	CTA          string          `json:"cta"`
	Hashtags     string          `json:"hashtags"`
	VideoURL     string          `json:"videoUrl,omitempty"`
	ThumbnailURL string          `json:"thumbnailUrl,omitempty"`
	ScheduledFor *time.Time      `json:"scheduledFor"`
}

// Webhook posts each reel to an automation endpoint that talks to the
// platform APIs.
type Webhook struct {
	client *resty.Client
	url    string
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		client: resty.New().SetTimeout(30 * time.Second).SetRetryCount(2),
		url:    url,
	}
}

func (w *Webhook) Post(ctx context.Context, reel models.Reel, accounts []models.SocialAccount) error {
	payload := WebhookPayload{
		ReelID:       reel.ID,
		UserID:       reel.UserID,
		Platform:     reel.Platform,
		Title:        reel.Title,
		Hook:         reel.Hook,
		Script:       reel.Script,
		CTA:          reel.CTA,
		Hashtags:     reel.Hashtags,
		VideoURL:     reel.VideoURL,
		ThumbnailURL: reel.ThumbnailURL,
		ScheduledFor: reel.ScheduledFor,
	}
	for _, a := range accounts {
		payload.Handles = append(payload.Handles, a.Handle)
	}

	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(w.url)
	if err != nil {
		return err
	}

	if resp.IsError() {
		return fmt.Errorf("webhook rejected reel: %s", resp.Status())
	}
	return nil
}
