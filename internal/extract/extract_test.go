package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/creatorstation/reelstudio/internal/models"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogPage = `<html><head><title>x</title><script>var a=1;</script></head>
<body><nav><p>Home | About</p></nav>
<article><h1>Grow on Instagram</h1>
<p>Post   every day.</p><ul><li>Use hooks</li><li>Reply to comments</li></ul></article>
<footer><p>© 2026</p></footer></body></html>`

const youtubePage = `<html><head>
<meta property="og:title" content="10 Business Growth Tips">
<meta name="description" content="Everything I learned scaling my agency.">
<title>10 Business Growth Tips - YouTube</title></head><body></body></html>`

func newService(fetch Fetcher) *Service {
	log, _ := test.NewNullLogger()
	return NewService(StaticTranscriber("spoken words"), StaticPDF("pdf words"), log).WithFetcher(fetch)
}

func TestArticleTextSkipsChrome(t *testing.T) {
	text, err := ArticleText([]byte(blogPage))
	require.NoError(t, err)
	assert.Equal(t, "Grow on Instagram\nPost every day.\nUse hooks\nReply to comments", text)
}

func TestArticleTextEmpty(t *testing.T) {
	_, err := ArticleText([]byte("<html><body></body></html>"))
	assert.Error(t, err)
}

func TestYouTubeText(t *testing.T) {
	text, err := YouTubeText([]byte(youtubePage))
	require.NoError(t, err)
	assert.Equal(t, "10 Business Growth Tips\nEverything I learned scaling my agency.", text)
}

func TestServiceDispatch(t *testing.T) {
	pages := map[string]string{"https://blog.example/post": blogPage, "https://youtube.example/watch": youtubePage}
	svc := newService(func(_ context.Context, url string) ([]byte, error) {
		if p, ok := pages[url]; ok {
			return []byte(p), nil
		}
		return nil, errors.New("404")
	})
	ctx := context.Background()

	got, err := svc.Extract(ctx, Source{ContentType: models.ContentBlogLink, URL: "https://blog.example/post"})
	require.NoError(t, err)
	assert.Contains(t, got, "Reply to comments")

	got, err = svc.Extract(ctx, Source{ContentType: models.ContentYouTubeLink, URL: "https://youtube.example/watch"})
	require.NoError(t, err)
	assert.Contains(t, got, "Business Growth")

	got, err = svc.Extract(ctx, Source{ContentType: models.ContentVoiceNote, FileName: "note.mp3", File: []byte{1}})
	require.NoError(t, err)
	assert.Equal(t, "spoken words", got)

	got, err = svc.Extract(ctx, Source{ContentType: models.ContentPDF, File: []byte("%PDF")})
	require.NoError(t, err)
	assert.Equal(t, "pdf words", got)

	got, err = svc.Extract(ctx, Source{ContentType: models.ContentBulletPoints, Text: "  - one\n- two  "})
	require.NoError(t, err)
	assert.Equal(t, "- one\n- two", got)

	_, err = svc.Extract(ctx, Source{ContentType: models.ContentBlogLink, URL: "https://missing.example"})
	assert.ErrorContains(t, err, "fetch https://missing.example")

	_, err = svc.Extract(ctx, Source{ContentType: "GIF"})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestStaticTranscriberSkipsConversion(t *testing.T) {
	svc := newService(nil)
	t.Setenv("PATH", t.TempDir())

	got, err := svc.Extract(context.Background(), Source{
		ContentType: models.ContentVoiceNote,
		FileName:    "memo.m4a",
		MimeType:    "audio/mp4",
		File:        []byte("audio"),
	})
	require.NoError(t, err)
	assert.Equal(t, "spoken words", got)
}

func TestWhisperTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, whisperModel, r.FormValue("model"))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "audio.mp3", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"  hello \n world "}`))
	}))
	defer srv.Close()

	text, err := NewWhisper(srv.URL).Transcribe(context.Background(), []byte("ID3"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestWhisperError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewWhisper(srv.URL).Transcribe(context.Background(), []byte("ID3"))
	assert.ErrorContains(t, err, "model not loaded")
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "a\n\nb", normalizeSpace("a  \n\n\n\nb\n\n"))
}
