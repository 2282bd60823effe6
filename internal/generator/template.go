package generator

import (
	"context"
	"fmt"

	"github.com/creatorstation/reelstudio/internal/models"
)

// Template produces predictable ideas without calling a model.
type Template struct{}

var _ Generator = Template{}

func (Template) Ideas(_ context.Context, req Request) ([]Idea, error) {
	count := req.Count
	if count <= 0 {
		count = DefaultBatchSize
	}

	ideas := make([]Idea, count)
	for i := range ideas {
		n := i + 1
		ideas[i] = Idea{
			Title:    fmt.Sprintf("Reel Idea %d", n),
			Hook:     fmt.Sprintf("Hook %d: Stop scrolling if you want to...", n),
			Script:   fmt.Sprintf("Script for reel %d: Here's a quick tip that will change everything...", n),
			CTA:      `Follow for more daily tips! DM "REEL" to work with us.`,
			Hashtags: fmt.Sprintf("#reeltips%d #instagramgrowth #businesstips #contentmarketing", n),
			Category: models.Categories[i%len(models.Categories)],
		}
	}
	return ideas, nil
}

func (Template) Enhance(_ context.Context, reel models.Reel, opts EnhanceOptions) (Enhancement, error) {
	extra := "#viralreels #instagramgrowth #fyp"
	if opts.Niche != "" {
		extra += " #" + slug(opts.Niche)
	}

	suggestions := []string{"Fast cuts", "Text overlays"}
	if opts.IncludeTrendingAudio {
		suggestions = append(suggestions, "Trending audio")
	}

	return Enhancement{
		EnhancedHook:      "🔥 STOP SCROLLING! " + reel.Hook,
		EnhancedScript:    "✨ " + reel.Script + " This changes everything!",
		EnhancedCTA:       `👇 DM "REEL" for the full strategy!`,
		OptimizedHashtags: MergeHashtags(reel.Hashtags, extra),
		VisualSuggestions: suggestions,
		EngagementScore:   85,
	}, nil
}
