package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateIdeasCycleCategories(t *testing.T) {
	ideas, err := Template{}.Ideas(context.Background(), Request{Title: "t", Content: "c"})
	require.NoError(t, err)
	require.Len(t, ideas, DefaultBatchSize)

	assert.Equal(t, "Reel Idea 1", ideas[0].Title)
	assert.Equal(t, models.CategoryAwareness, ideas[0].Category)
	assert.Equal(t, models.CategoryTrust, ideas[1].Category)
	assert.Equal(t, models.CategoryLead, ideas[2].Category)
	assert.Equal(t, models.CategorySale, ideas[3].Category)
	assert.Equal(t, models.CategoryAwareness, ideas[4].Category)
}

func TestTemplateEnhance(t *testing.T) {
	reel := models.Reel{Hook: "Wait", Script: "Do this.", Hashtags: "#fitness,#instagramgrowth"}
	e, err := Template{}.Enhance(context.Background(), reel, EnhanceOptions{Niche: "Home Workouts", IncludeTrendingAudio: true})
	require.NoError(t, err)

	assert.Equal(t, "🔥 STOP SCROLLING! Wait", e.EnhancedHook)
	assert.Equal(t, "✨ Do this. This changes everything!", e.EnhancedScript)
	assert.Equal(t, "#fitness #instagramgrowth #viralreels #fyp #homeworkouts", e.OptimizedHashtags)
	assert.Contains(t, e.VisualSuggestions, "Trending audio")
	assert.Equal(t, 85, e.EngagementScore)
}

func TestMergeHashtags(t *testing.T) {
	assert.Equal(t, "#a #b #c", MergeHashtags("a, #b", "#A #c", "#"))
	assert.Equal(t, "", MergeHashtags(""))
}

func chatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
		})
	}))
}

func TestLLMIdeasParsesFencedJSON(t *testing.T) {
	srv := chatServer(t, "```json\n[{\"title\":\"T\",\"hook\":\"H\",\"script\":\"S\",\"cta\":\"C\",\"hashtags\":\"a,b\",\"category\":\"BOGUS\"}]\n```", http.StatusOK)
	defer srv.Close()

	ideas, err := NewLLM(srv.URL, "secret", "m").Ideas(context.Background(), Request{Count: 1})
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, models.CategoryAwareness, ideas[0].Category)
	assert.Equal(t, "#a #b", ideas[0].Hashtags)
}

func TestLLMShortAnswerFallsBack(t *testing.T) {
	idea := `{"title":"T","hook":"H","script":"S","cta":"C","hashtags":"#a","category":"TRUST"}`
	srv := chatServer(t, "["+idea+","+idea+"]", http.StatusOK)
	defer srv.Close()

	_, err := NewLLM(srv.URL, "secret", "m").Ideas(context.Background(), Request{})
	assert.ErrorContains(t, err, "llm returned 2 of 30 ideas")

	log, hook := test.NewNullLogger()
	f := Fallback{Primary: NewLLM(srv.URL, "secret", "m"), Secondary: Template{}, Log: log}
	ideas, err := f.Ideas(context.Background(), Request{})
	require.NoError(t, err)
	require.Len(t, ideas, DefaultBatchSize)
	assert.Equal(t, "Reel Idea 1", ideas[0].Title)
	assert.Len(t, hook.AllEntries(), 1)
}

func TestLLMErrorStatus(t *testing.T) {
	srv := chatServer(t, "", http.StatusTooManyRequests)
	defer srv.Close()

	_, err := NewLLM(srv.URL, "secret", "m").Ideas(context.Background(), Request{})
	assert.ErrorContains(t, err, "llm error")
}

type failing struct{}

func (failing) Ideas(context.Context, Request) ([]Idea, error) { return nil, errors.New("down") }
func (failing) Enhance(context.Context, models.Reel, EnhanceOptions) (Enhancement, error) {
	return Enhancement{}, errors.New("down")
}

func TestFallbackUsesSecondary(t *testing.T) {
	log, hook := test.NewNullLogger()
	f := Fallback{Primary: failing{}, Secondary: Template{}, Log: log}

	ideas, err := f.Ideas(context.Background(), Request{Count: 3})
	require.NoError(t, err)
	assert.Len(t, ideas, 3)

	_, err = f.Enhance(context.Background(), models.Reel{ID: "r1"}, EnhanceOptions{})
	require.NoError(t, err)
	assert.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
