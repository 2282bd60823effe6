package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/go-resty/resty/v2"
)

const ideasPrompt = `You are a professional Instagram content creator. Based on the following content, generate %d unique Instagram reel ideas.

Content Title: %s
Content Type: %s
Raw Content: %s

For each reel provide a catchy title under 50 characters, a 3-second hook,
a 7-20 second script, a call-to-action, 5-10 hashtags and a category
(AWARENESS, TRUST, LEAD or SALE). Mix the categories.

Respond with a JSON array only:
[{"title":"","hook":"","script":"","cta":"","hashtags":"#a #b","category":"AWARENESS"}]`

const enhancePrompt = `Enhance this Instagram reel for better engagement.

Original Hook: %s
Original Script: %s
Original CTA: %s
Category: %s
Style: %s
Target audience: %s
Niche: %s

Respond with a JSON object only:
{"enhancedHook":"","enhancedScript":"","enhancedCTA":"","optimizedHashtags":"#a #b","visualSuggestions":[""],"engagementScore":0}`

// LLM asks an OpenAI-compatible chat completions endpoint for ideas.
type LLM struct {
	client   *resty.Client
	endpoint string
	model    string
}

var _ Generator = (*LLM)(nil)

func NewLLM(endpoint, apiKey, model string) *LLM {
	client := resty.New().
		SetAuthToken(apiKey).
		SetTimeout(60 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &LLM{client: client, endpoint: endpoint, model: model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (l *LLM) complete(ctx context.Context, prompt string) (string, error) {
	var out chatResponse
	resp, err := l.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": l.model,
			"messages": []chatMessage{
				{Role: "system", Content: "You write short-form video copy. Reply with JSON only."},
				{Role: "user", Content: prompt},
			},
		}).
		SetResult(&out).
		Post(l.endpoint)
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("llm error %s: %s", resp.Status(), strings.TrimSpace(resp.String()))
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices")
	}
	return stripFence(out.Choices[0].Message.Content), nil
}

// stripFence removes a ```json fence models like to wrap answers in.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func (l *LLM) Ideas(ctx context.Context, req Request) ([]Idea, error) {
	count := req.Count
	if count <= 0 {
		count = DefaultBatchSize
	}

	answer, err := l.complete(ctx, fmt.Sprintf(ideasPrompt, count, req.Title, req.ContentType, req.Content))
	if err != nil {
		return nil, err
	}

	var ideas []Idea
	if err := json.Unmarshal([]byte(answer), &ideas); err != nil {
		return nil, fmt.Errorf("decode ideas: %w", err)
	}
	if len(ideas) < count {
		return nil, fmt.Errorf("llm returned %d of %d ideas", len(ideas), count)
	}
	if len(ideas) > count {
		ideas = ideas[:count]
	}

	for i := range ideas {
		if !validCategory(ideas[i].Category) {
			ideas[i].Category = models.Categories[i%len(models.Categories)]
		}
		ideas[i].Hashtags = MergeHashtags(ideas[i].Hashtags)
	}
	return ideas, nil
}

func (l *LLM) Enhance(ctx context.Context, reel models.Reel, opts EnhanceOptions) (Enhancement, error) {
	prompt := fmt.Sprintf(enhancePrompt, reel.Hook, reel.Script, reel.CTA, reel.Category,
		opts.Style, opts.TargetAudience, opts.Niche)

	answer, err := l.complete(ctx, prompt)
	if err != nil {
		return Enhancement{}, err
	}

	var e Enhancement
	if err := json.Unmarshal([]byte(answer), &e); err != nil {
		return Enhancement{}, fmt.Errorf("decode enhancement: %w", err)
	}
	if e.EnhancedHook == "" || e.EnhancedScript == "" {
		return Enhancement{}, fmt.Errorf("llm returned an empty enhancement")
	}
	e.OptimizedHashtags = MergeHashtags(e.OptimizedHashtags)
	return e, nil
}

func validCategory(c models.ReelCategory) bool {
	for _, known := range models.Categories {
		if c == known {
			return true
		}
	}
	return false
}
