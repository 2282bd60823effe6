package accounts

import (
	"regexp"

	v "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/creatorstation/reelstudio/internal/models"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type SocialAccountBody struct {
	UserID      string          `json:"userId"`
	Platform    models.Platform `json:"platform"`
	Handle      string          `json:"handle"`
	AccessToken string          `json:"accessToken"`
}

func (b SocialAccountBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.UserID, v.Required.Error("User ID is required")),
		v.Field(&b.Platform, v.Required, v.In(models.PlatformInstagram, models.PlatformFacebook)),
		v.Field(&b.Handle, v.Required.Error("Handle is required"), v.Length(0, 100)),
	)
}

type BrandKitBody struct {
	UserID         string `json:"userId"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	Font           string `json:"font"`
}

func (b BrandKitBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.UserID, v.Required.Error("User ID is required")),
		v.Field(&b.PrimaryColor, v.Match(hexColor).Error("must be a hex color")),
		v.Field(&b.SecondaryColor, v.Match(hexColor).Error("must be a hex color")),
		v.Field(&b.Font, v.Length(0, 64)),
	)
}
