package testsupport

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// Response is a decoded JSON reply.
type Response struct {
	Status int
	Body   map[string]any
	Raw    []byte
}

// JSON sends body (nil for none) as JSON and decodes the reply.
func JSON(t testing.TB, app *fiber.App, method, path string, body any) Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return Do(t, app, req)
}

// File is one multipart file part.
type File struct {
	Field, Name, ContentType string
	Data                     []byte
}

// Multipart posts form fields and files.
func Multipart(t testing.TB, app *fiber.App, path string, fields map[string]string, files ...File) Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, f := range files {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="` + f.Field + `"; filename="` + f.Name + `"`}
		h["Content-Type"] = []string{f.ContentType}
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return Do(t, app, req)
}

// Do runs a request through the app and decodes a JSON reply when there is one.
func Do(t testing.TB, app *fiber.App, req *http.Request) Response {
	t.Helper()

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	out := Response{Status: resp.StatusCode, Raw: raw}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &out.Body); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return out
}

// Map returns a nested object of the reply, failing the test when absent.
func (r Response) Map(t testing.TB, key string) map[string]any {
	t.Helper()
	m, ok := r.Body[key].(map[string]any)
	if !ok {
		t.Fatalf("response has no object %q: %s", key, r.Raw)
	}
	return m
}

// List returns a nested array of the reply, failing the test when absent.
func (r Response) List(t testing.TB, key string) []any {
	t.Helper()
	l, ok := r.Body[key].([]any)
	if !ok {
		t.Fatalf("response has no array %q: %s", key, r.Raw)
	}
	return l
}
