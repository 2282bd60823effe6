// Package generator turns raw creator content into reel ideas and polishes
// individual reels. The language model behind it is an external collaborator;
// Template is the deterministic stand-in used when none is configured.
package generator

import (
	"context"
	"strings"

	"github.com/creatorstation/reelstudio/internal/models"
)

// DefaultBatchSize is how many ideas a content batch produces.
const DefaultBatchSize = 30

// Request describes the content a batch is generated from.
type Request struct {
	Title       string
	ContentType models.ContentType
	Content     string
	Count       int
}

// Idea is a single generated reel.
type Idea struct {
	Title    string              `json:"title"`
	Hook     string              `json:"hook"`
	Script   string              `json:"script"`
	CTA      string              `json:"cta"`
	Hashtags string              `json:"hashtags"`
	Category models.ReelCategory `json:"category"`
}

// EnhanceOptions tune how a reel is polished.
type EnhanceOptions struct {
	IncludeTrendingAudio bool
	Style                string
	TargetAudience       string
	Niche                string
}

// Enhancement is the polished copy of a reel.
type Enhancement struct {
	EnhancedHook      string   `json:"enhancedHook"`
	EnhancedScript    string   `json:"enhancedScript"`
	EnhancedCTA       string   `json:"enhancedCTA"`
	OptimizedHashtags string   `json:"optimizedHashtags"`
	VisualSuggestions []string `json:"visualSuggestions"`
	EngagementScore   int      `json:"engagementScore"`
}

type Generator interface {
	Ideas(ctx context.Context, req Request) ([]Idea, error)
	Enhance(ctx context.Context, reel models.Reel, opts EnhanceOptions) (Enhancement, error)
}

// MergeHashtags joins hashtag lists written with spaces or commas, adds the
// missing "#" and drops duplicates while keeping first-seen order.
func MergeHashtags(lists ...string) string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		fields := strings.FieldsFunc(list, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\n' || r == '\t'
		})
		for _, tag := range fields {
			tag = strings.TrimSpace(tag)
			if tag == "" || tag == "#" {
				continue
			}
			if !strings.HasPrefix(tag, "#") {
				tag = "#" + tag
			}
			key := strings.ToLower(tag)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, tag)
		}
	}
	return strings.Join(out, " ")
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
