package content

import (
	v "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/creatorstation/reelstudio/internal/models"
)

type GenerateBody struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	ContentType models.ContentType `json:"contentType"`
	Content     string             `json:"content"`
	UserID      string             `json:"userId"`
}

func (b GenerateBody) Validate() error {
	return v.ValidateStruct(&b,
		v.Field(&b.Title, v.Required.Error("Title is required")),
		v.Field(&b.ContentType, v.Required, v.In(models.ContentTypes...)),
		v.Field(&b.Content, v.Required.Error("Content is required")),
		v.Field(&b.UserID, v.Required.Error("User ID is required")),
	)
}

// storedContent is what ContentBatch.Content holds.
type storedContent struct {
	Raw         string `json:"raw"`
	Description string `json:"description,omitempty"`
}
