package content

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/creatorstation/reelstudio/internal/api"
	"github.com/creatorstation/reelstudio/internal/extract"
	"github.com/creatorstation/reelstudio/internal/models"
)

const (
	minEstimatedReels = 10
	maxEstimatedReels = 30
	wordsPerReel      = 50
)

// Process turns an upload or link into plain text and estimates how many
// reels it can feed.
func (ctl *Controller) Process(c *fiber.Ctx) error {
	contentType := models.ContentType(c.FormValue("contentType"))
	userID := c.FormValue("userId")

	if contentType == "" || userID == "" {
		return api.Error(c, fiber.StatusBadRequest, "Content type and user ID are required")
	}

	src := extract.Source{ContentType: contentType}
	var fileName string

	switch contentType {
	case models.ContentVoiceNote, models.ContentPDF:
		header, err := c.FormFile("file")
		if err != nil {
			if contentType == models.ContentVoiceNote {
				return api.Error(c, fiber.StatusBadRequest, "Audio file is required for voice notes")
			}
			return api.Error(c, fiber.StatusBadRequest, "PDF file is required")
		}
		data, err := readUpload(header)
		if err != nil {
			return api.Fail(c, ctl.Log, err, "Failed to process content")
		}
		fileName = header.Filename
		src.FileName = header.Filename
		src.MimeType = header.Header.Get("Content-Type")
		src.File = data

	case models.ContentYouTubeLink, models.ContentBlogLink:
		src.URL = strings.TrimSpace(c.FormValue("url"))
		if src.URL == "" {
			if contentType == models.ContentYouTubeLink {
				return api.Error(c, fiber.StatusBadRequest, "YouTube URL is required")
			}
			return api.Error(c, fiber.StatusBadRequest, "Blog URL is required")
		}

	case models.ContentBulletPoints, models.ContentText, models.ContentNotes:
		src.Text = c.FormValue("content")
		if strings.TrimSpace(src.Text) == "" {
			if contentType == models.ContentBulletPoints {
				return api.Error(c, fiber.StatusBadRequest, "Bullet points content is required")
			}
			return api.Error(c, fiber.StatusBadRequest, "Text content is required")
		}

	default:
		return api.Error(c, fiber.StatusBadRequest, "Invalid content type")
	}

	text, err := ctl.Extractor.Extract(c.UserContext(), src)
	if errors.Is(err, extract.ErrUnsupported) {
		return api.Error(c, fiber.StatusBadRequest, "Invalid content type")
	}
	if err != nil {
		return api.Fail(c, ctl.Log.WithField("user_id", userID), err, "Failed to process content")
	}

	words := WordCount(text)

	var name any
	if fileName != "" {
		name = fileName
	}

	return api.OK(c, fiber.Map{
		"contentType":    contentType,
		"fileName":       name,
		"content":        text,
		"wordCount":      words,
		"estimatedReels": EstimateReels(words),
	})
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// EstimateReels is one reel per fifty words, clamped to [10, 30].
func EstimateReels(words int) int {
	return min(maxEstimatedReels, max(minEstimatedReels, words/wordsPerReel))
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
