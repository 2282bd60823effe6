package generator

import (
	"context"

	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/sirupsen/logrus"
)

// Fallback tries Primary and answers from Secondary when it fails.
type Fallback struct {
	Primary   Generator
	Secondary Generator
	Log       logrus.FieldLogger
}

var _ Generator = Fallback{}

func (f Fallback) Ideas(ctx context.Context, req Request) ([]Idea, error) {
	ideas, err := f.Primary.Ideas(ctx, req)
	if err == nil {
		return ideas, nil
	}
	f.Log.WithError(err).Warn("generator: primary failed, using fallback ideas")
	return f.Secondary.Ideas(ctx, req)
}

func (f Fallback) Enhance(ctx context.Context, reel models.Reel, opts EnhanceOptions) (Enhancement, error) {
	e, err := f.Primary.Enhance(ctx, reel, opts)
	if err == nil {
		return e, nil
	}
	f.Log.WithError(err).WithField("reel_id", reel.ID).Warn("generator: primary failed, using fallback enhancement")
	return f.Secondary.Enhance(ctx, reel, opts)
}
