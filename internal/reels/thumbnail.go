package reels

import (
	"errors"
	"io"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"

	"github.com/creatorstation/reelstudio/internal/api"
	"github.com/creatorstation/reelstudio/internal/store"
)

// GenerateThumbnail answers a JPEG frame of the reel's video, taken either
// from the uploaded file or from mediaUri. A fetched mediaUri becomes the
// reel's video URL.
func (ctl *Controller) GenerateThumbnail(c *fiber.Ctx) error {
	ctx := c.UserContext()
	log := ctl.Log.WithField("reel_id", c.Params("id"))

	reel, err := ctl.Store.GetReel(ctx, c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return api.Error(c, fiber.StatusNotFound, "Reel not found")
	}
	if err != nil {
		return api.Fail(c, log, err, "Failed to generate thumbnail")
	}

	var videoData []byte
	var fetched string
	mediaURI := c.FormValue("mediaUri")

	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return api.Fail(c, log, err, "Failed to generate thumbnail")
		}
		defer f.Close()
		if videoData, err = io.ReadAll(f); err != nil {
			return api.Fail(c, log, err, "Failed to generate thumbnail")
		}
	} else if mediaURI != "" {
		if err := v.Validate(mediaURI, is.URL); err != nil {
			return api.Invalid(c, v.Errors{"mediaUri": err})
		}
		if videoData, err = ctl.Fetch(ctx, mediaURI); err != nil {
			return api.Fail(c, log, err, "Failed to fetch video")
		}
		fetched = mediaURI
	} else {
		return api.Error(c, fiber.StatusBadRequest, "Video file or mediaUri is required")
	}

	thumb, err := ctl.Thumbnail(ctx, videoData)
	if err != nil {
		return api.Fail(c, log, err, "Failed to generate thumbnail")
	}

	if fetched != "" && reel.VideoURL != fetched {
		reel.VideoURL = fetched
		if err := ctl.Store.SaveReel(ctx, reel); err != nil {
			log.WithError(err).Warn("reels: cannot store video url")
		}
	}

	c.Context().SetContentType("image/jpeg")
	return c.Status(fiber.StatusOK).Send(thumb)
}
