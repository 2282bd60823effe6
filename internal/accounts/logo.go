package accounts

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/creatorstation/reelstudio/internal/api"
	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/internal/store"
	"github.com/creatorstation/reelstudio/pkg/img"
)

// Stored logos are at most one megapixel.
const logoMaxMPXS = 1.0

// UploadLogo stores the brand kit logo as a downscaled JPEG.
func (ctl *Controller) UploadLogo(c *fiber.Ctx) error {
	userID := c.FormValue("userId")
	if userID == "" {
		return api.Error(c, fiber.StatusBadRequest, "User ID is required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, "Logo file is required")
	}
	if ok, err := ctl.requireBrandKitPlan(c, userID); !ok {
		return err
	}

	ctx := c.UserContext()
	log := ctl.Log.WithField("user_id", userID)

	f, err := file.Open()
	if err != nil {
		return api.Fail(c, log, err, "Failed to upload logo")
	}
	defer f.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, f); err != nil {
		return api.Fail(c, log, err, "Failed to upload logo")
	}
	data := buf.Bytes()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	if contentType != "image/jpeg" {
		isHEIC := contentType == "image/heif" || contentType == "image/heic"
		data, err = ctl.ToJPEG(ctx, data, isHEIC)
		if err != nil {
			return api.Fail(c, log, err, "Failed to convert logo")
		}
	}

	resized, err := img.Downscale(data, logoMaxMPXS)
	if err != nil {
		return api.Error(c, fiber.StatusBadRequest, "Logo must be an image")
	}

	kit, err := ctl.Store.GetBrandKit(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		kit = &models.BrandKit{UserID: userID}
	} else if err != nil {
		return api.Fail(c, log, err, "Failed to upload logo")
	}

	kit.Logo = resized
	// GET on the upload path serves the logo back.
	kit.LogoURL = c.Path() + "?userId=" + url.QueryEscape(userID)
	if err := ctl.Store.SaveBrandKit(ctx, kit); err != nil {
		return api.Fail(c, log, err, "Failed to upload logo")
	}

	log.WithField("before", len(buf.Bytes())).WithField("after", len(resized)).Info("brand kit logo stored")
	return api.OK(c, fiber.Map{"brandKit": kit, "hasLogo": true})
}
