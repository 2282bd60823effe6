package schedule

import (
	"errors"
	"time"
	_ "time/tzdata"

	v "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/creatorstation/reelstudio/internal/models"
)

var platforms = []any{models.PlatformInstagram, models.PlatformFacebook, models.PlatformBoth}

type ScheduleBody struct {
	ReelID       string           `json:"reelId"`
	ScheduledFor string           `json:"scheduledFor"`
	Platform     models.Platform  `json:"platform"`
	Timezone     string           `json:"timezone"`
	Options      *ScheduleOptions `json:"options"`
}

type ScheduleOptions struct {
	AutoOptimize *bool `json:"autoOptimize"`
	CrossPost    bool  `json:"crossPost"`
	NotifyOnPost *bool `json:"notifyOnPost"`
}

func (b *ScheduleBody) Defaults() {
	if b.Platform == "" {
		b.Platform = models.PlatformInstagram
	}
	if b.Timezone == "" {
		b.Timezone = "UTC"
	}
	if b.Options != nil {
		if b.Options.AutoOptimize == nil {
			b.Options.AutoOptimize = ptr(true)
		}
		if b.Options.NotifyOnPost == nil {
			b.Options.NotifyOnPost = ptr(true)
		}
	}
}

func (b ScheduleBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.ReelID, v.Required.Error("Reel ID is required")),
		v.Field(&b.ScheduledFor, v.Required, v.Date(time.RFC3339).Error("Invalid datetime format")),
		v.Field(&b.Platform, v.In(platforms...)),
		v.Field(&b.Timezone, v.By(knownZone)),
	)
}

// optimize reports whether the time should snap to an optimal slot. Without
// an options object the requested time is kept as is.
func (b ScheduleBody) optimize() bool {
	return b.Options != nil && b.Options.AutoOptimize != nil && *b.Options.AutoOptimize
}

func knownZone(value any) error {
	name, _ := value.(string)
	if _, err := time.LoadLocation(name); err != nil {
		return errors.New("unknown timezone")
	}
	return nil
}

func ptr[T any](x T) *T { return &x }

const (
	ActionReschedule = "reschedule"
	ActionCancel     = "cancel"
	ActionPostNow    = "post_now"
)

type UpdateBody struct {
	ReelID           string `json:"reelId"`
	Action           string `json:"action"`
	NewScheduledTime string `json:"newScheduledTime"`
}
