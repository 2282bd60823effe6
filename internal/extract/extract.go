// Package extract turns uploaded files and links into plain text that reel
// ideas can be generated from.
package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/creatorstation/reelstudio/pkg/convert"
	"github.com/creatorstation/reelstudio/pkg/web"
	"github.com/sirupsen/logrus"
)

// ErrUnsupported is returned for content types that carry no extractable input.
var ErrUnsupported = errors.New("unsupported content type")

// Source is one piece of creator input. Which fields are set depends on
// ContentType.
type Source struct {
	ContentType models.ContentType
	URL         string
	FileName    string
	MimeType    string
	File        []byte
	Text        string
}

type Extractor interface {
	Extract(ctx context.Context, src Source) (string, error)
}

// Fetcher downloads a URL.
type Fetcher func(ctx context.Context, url string) ([]byte, error)

// Service extracts text using the whisper endpoint, the web and pdftotext.
type Service struct {
	transcriber Transcriber
	fetch       Fetcher
	pdf         PDFReader
	log         logrus.FieldLogger
}

var _ Extractor = (*Service)(nil)

func NewService(transcriber Transcriber, pdf PDFReader, log logrus.FieldLogger) *Service {
	return &Service{transcriber: transcriber, fetch: web.FetchMedia, pdf: pdf, log: log}
}

// WithFetcher replaces the downloader, mainly for tests.
func (s *Service) WithFetcher(f Fetcher) *Service {
	s.fetch = f
	return s
}

func (s *Service) Extract(ctx context.Context, src Source) (string, error) {
	switch src.ContentType {
	case models.ContentVoiceNote:
		return s.voiceNote(ctx, src)
	case models.ContentYouTubeLink:
		return s.page(ctx, src.URL, YouTubeText)
	case models.ContentBlogLink:
		return s.page(ctx, src.URL, ArticleText)
	case models.ContentPDF:
		return s.pdf.Text(ctx, src.File)
	case models.ContentBulletPoints, models.ContentText, models.ContentNotes:
		return strings.TrimSpace(src.Text), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, src.ContentType)
	}
}

func (s *Service) voiceNote(ctx context.Context, src Source) (string, error) {
	audio := src.File
	// The placeholder transcriber ignores the audio, so ffmpeg is not needed.
	if _, static := s.transcriber.(StaticTranscriber); !static && !isMP3(src) {
		mp3, err := convert.ToMP3(ctx, audio)
		if err != nil {
			return "", fmt.Errorf("convert voice note: %w", err)
		}
		audio = mp3
	}
	return s.transcriber.Transcribe(ctx, audio)
}

func (s *Service) page(ctx context.Context, url string, text func([]byte) (string, error)) (string, error) {
	body, err := s.fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	out, err := text(body)
	if err != nil {
		return "", err
	}
	s.log.WithField("url", url).WithField("chars", len(out)).Debug("extract: page text")
	return out, nil
}

func isMP3(src Source) bool {
	return src.MimeType == "audio/mpeg" || strings.EqualFold(filepath.Ext(src.FileName), ".mp3")
}
