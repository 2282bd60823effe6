package web

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var client = resty.New().
	SetTimeout(60*time.Second).
	SetHeader("User-Agent", "reelstudio-fetch")

// FetchMedia downloads a remote file or page.
func FetchMedia(ctx context.Context, mediaURI string) ([]byte, error) {
	resp, err := client.R().SetContext(ctx).Get(mediaURI)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch media: %s, %s", resp.Status(), resp.String())
	}

	return resp.Body(), nil
}
