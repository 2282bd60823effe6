package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ArticleText pulls the readable paragraphs out of a blog post. It prefers
// <article>, then <main>, then the whole body.
func ArticleText(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, nav, header, footer, aside, form").Remove()

	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("main").First()
	}
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	var parts []string
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		parts = append(parts, title)
	}
	root.Find("h2, h3, p, li").Each(func(_ int, s *goquery.Selection) {
		if text := collapse(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	if len(parts) == 0 {
		return "", fmt.Errorf("no readable text found")
	}
	return strings.Join(parts, "\n"), nil
}

// YouTubeText reads the title and description a YouTube watch page exposes in
// its meta tags.
func YouTubeText(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	meta := func(selectors ...string) string {
		for _, sel := range selectors {
			if v, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}

	title := meta(`meta[property="og:title"]`, `meta[name="title"]`)
	if title == "" {
		title = strings.TrimSpace(strings.TrimSuffix(doc.Find("title").Text(), "- YouTube"))
	}
	description := meta(`meta[property="og:description"]`, `meta[name="description"]`)

	if title == "" && description == "" {
		return "", fmt.Errorf("no video details found")
	}
	return strings.TrimSpace(title + "\n" + description), nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
