package main

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/creatorstation/reelstudio/internal/accounts"
	"github.com/creatorstation/reelstudio/internal/activity"
	"github.com/creatorstation/reelstudio/internal/admin"
	"github.com/creatorstation/reelstudio/internal/analytics"
	"github.com/creatorstation/reelstudio/internal/auth"
	"github.com/creatorstation/reelstudio/internal/config"
	"github.com/creatorstation/reelstudio/internal/content"
	"github.com/creatorstation/reelstudio/internal/db"
	"github.com/creatorstation/reelstudio/internal/extract"
	"github.com/creatorstation/reelstudio/internal/generator"
	"github.com/creatorstation/reelstudio/internal/logging"
	"github.com/creatorstation/reelstudio/internal/publisher"
	"github.com/creatorstation/reelstudio/internal/reels"
	"github.com/creatorstation/reelstudio/internal/schedule"
	"github.com/creatorstation/reelstudio/internal/store"
	"github.com/creatorstation/reelstudio/pkg/convert"
	"github.com/creatorstation/reelstudio/pkg/video"
	"github.com/creatorstation/reelstudio/pkg/web"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
)

const (
	bodyLimit      = 200 * 1024 * 1024
	activityBuffer = 500
)

const (
	fallbackTranscript = "Voice note transcript is unavailable; no transcription service is configured."
	fallbackPDFText    = "PDF text is unavailable; pdftotext is not installed on this server."
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	s, err := openStore(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("store")
	}

	feed, err := openFeed(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("activity feed")
	}

	gen := newGenerator(cfg, log)
	extractor := extract.NewService(newTranscriber(cfg), newPDFReader(), log.WithField("component", "extract"))

	app := fiber.New(fiber.Config{BodyLimit: bodyLimit})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(logging.Middleware(log))

	api := app.Group("/api")

	contentCtl := &content.Controller{Store: s, Generator: gen, Extractor: extractor, Feed: feed, Log: log, Now: time.Now}
	contentCtl.MountController(api.Group("/content"))

	reelsCtl := &reels.Controller{Store: s, Generator: gen, Log: log, Now: time.Now, Thumbnail: video.Thumbnail, Fetch: web.FetchMedia}
	reelsCtl.MountController(api.Group("/reels"))

	scheduleCtl := &schedule.Controller{Store: s, Slots: cfg.Slots, Log: log, Now: time.Now}
	scheduleCtl.MountController(api.Group("/schedule"))

	analyticsCtl := &analytics.Controller{Store: s, Audience: analytics.StaticAudience{}, Log: log, Now: time.Now}
	analyticsCtl.MountController(api.Group("/analytics"))

	authCtl := &auth.Controller{Store: s, Feed: feed, Log: log, Now: time.Now}
	authCtl.MountController(api.Group("/auth"))

	accountsCtl := &accounts.Controller{Store: s, Log: log, ToJPEG: convert.JPEG}
	accountsCtl.MountSocialAccounts(api.Group("/social-accounts"))
	accountsCtl.MountBrandKit(api.Group("/brandkit"))
	accountsCtl.MountPlans(api.Group("/plans"))

	adminCtl := &admin.Controller{Store: s, Feed: feed, Log: log, Now: time.Now}
	adminCtl.MountController(api.Group("/admin"))

	pub := &publisher.Publisher{Store: s, Poster: newPoster(cfg, log), Feed: feed, Log: log.WithField("component", "publisher"), Now: time.Now}
	pub.MountController(api.Group("/cron"))

	scheduler, err := pub.Start(cfg.PublishCron)
	if err != nil {
		log.WithError(err).Fatal("publisher")
	}
	defer scheduler.Stop()

	log.WithField("addr", cfg.HTTPAddr).Info("listening")
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (store.Store, error) {
	if cfg.Store == config.StoreMemory {
		m := store.NewMemory()
		if err := store.Seed(ctx, m, time.Now()); err != nil {
			return nil, err
		}
		log.Info("using in-memory store with demo data")
		return m, nil
	}

	gdb, err := db.Connect(cfg.DatabaseDSN, log)
	if err != nil {
		return nil, err
	}
	return store.NewGormStore(gdb), nil
}

func openFeed(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (activity.Feed, error) {
	if cfg.MongoURI == "" {
		return activity.NewMemoryFeed(activityBuffer), nil
	}

	mdb, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	log.WithField("database", cfg.MongoDatabase).Info("activity feed on mongo")
	return activity.NewMongoFeed(mdb), nil
}

func newGenerator(cfg config.Config, log logrus.FieldLogger) generator.Generator {
	if cfg.LLMEndpoint == "" {
		return generator.Template{}
	}
	return generator.Fallback{
		Primary:   generator.NewLLM(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel),
		Secondary: generator.Template{},
		Log:       log.WithField("component", "generator"),
	}
}

func newTranscriber(cfg config.Config) extract.Transcriber {
	if cfg.WhisperURL == "" {
		return extract.StaticTranscriber(fallbackTranscript)
	}
	return extract.NewWhisper(cfg.WhisperURL)
}

func newPDFReader() extract.PDFReader {
	binary, err := exec.LookPath("pdftotext")
	if err != nil {
		return extract.StaticPDF(fallbackPDFText)
	}
	return extract.PDFToText{Binary: binary}
}

func newPoster(cfg config.Config, log logrus.FieldLogger) publisher.Poster {
	if cfg.PublishWebhookURL == "" {
		return publisher.LogPoster{Log: log.WithField("component", "poster")}
	}
	return publisher.NewWebhook(cfg.PublishWebhookURL)
}
