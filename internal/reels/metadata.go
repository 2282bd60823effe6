package reels

import "github.com/creatorstation/reelstudio/internal/generator"

const (
	reelDuration  = 15
	hookEnd       = 3
	ctaStart      = 13
	trendingAudio = "trending_audio_123.mp3"
)

// VideoMetadata is the render plan handed to the video pipeline.
type VideoMetadata struct {
	Duration       int           `json:"duration"`
	Scenes         []Scene       `json:"scenes"`
	TextOverlays   []TextOverlay `json:"textOverlays"`
	SuggestedAudio *string       `json:"suggestedAudio"`
	VisualStyle    string        `json:"visualStyle"`
}

type Scene struct {
	StartTime int    `json:"startTime"`
	EndTime   int    `json:"endTime"`
	Type      string `json:"type"`
	Text      string `json:"text"`
	Visual    string `json:"visual"`
}

type TextOverlay struct {
	Text      string `json:"text"`
	StartTime int    `json:"startTime"`
	EndTime   int    `json:"endTime"`
	Style     string `json:"style"`
}

// BuildMetadata lays the enhanced copy out on a 15 second timeline: hook for
// the first three seconds, call to action for the last two.
func BuildMetadata(e generator.Enhancement, opts GenerateOptions) VideoMetadata {
	meta := VideoMetadata{
		Duration: reelDuration,
		Scenes: []Scene{
			{StartTime: 0, EndTime: hookEnd, Type: "hook", Text: e.EnhancedHook, Visual: "Bold text with animation"},
			{StartTime: hookEnd, EndTime: ctaStart, Type: "content", Text: e.EnhancedScript, Visual: "Talking head or B-roll"},
			{StartTime: ctaStart, EndTime: reelDuration, Type: "cta", Text: e.EnhancedCTA, Visual: "Call-to-action overlay"},
		},
		TextOverlays: []TextOverlay{
			{Text: e.EnhancedHook, StartTime: 0, EndTime: hookEnd, Style: "bold_large"},
			{Text: e.EnhancedCTA, StartTime: ctaStart, EndTime: reelDuration, Style: "highlighted"},
		},
		VisualStyle: opts.Style,
	}
	if opts.IncludeTrendingAudio {
		audio := trendingAudio
		meta.SuggestedAudio = &audio
	}
	return meta
}
