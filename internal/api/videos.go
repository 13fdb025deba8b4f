// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/olegiv/studio-go/internal/model"
)

// Video upload retry policy. Only transport-level failures are retried;
// HTTP-level errors (413, 422, 5xx) surface immediately since resending the
// same payload cannot change the outcome.
const maxUploadAttempts = 3

// uploadRetryDelay is fixed between attempts; a variable so tests can
// shorten it.
var uploadRetryDelay = 2 * time.Second

// GetHeroVideo fetches the singleton hero video record for the home page.
// A backend 404 means no video is currently set.
func (c *Client) GetHeroVideo(ctx context.Context) (model.ServiceVideo, error) {
	return c.getVideo(ctx, "/api/home/hero-video")
}

// UploadHeroVideo replaces the hero video. The form must carry the video
// file; retries follow the bounded fixed-delay policy.
func (c *Client) UploadHeroVideo(ctx context.Context, form *Form) error {
	return c.uploadVideo(ctx, "/api/home/hero-video", form)
}

// DeleteHeroVideo removes the current hero video record.
func (c *Client) DeleteHeroVideo(ctx context.Context) error {
	return c.send(ctx, http.MethodDelete, "/api/home/hero-video", nil)
}

// GetServiceVideo fetches the singleton video for a named service.
func (c *Client) GetServiceVideo(ctx context.Context, name string) (model.ServiceVideo, error) {
	return c.getVideo(ctx, "/api/services/"+name+"/video")
}

// UploadServiceVideo replaces the video for a named service.
func (c *Client) UploadServiceVideo(ctx context.Context, name string, form *Form) error {
	return c.uploadVideo(ctx, "/api/services/"+name+"/video", form)
}

// DeleteServiceVideo removes the current video record for a named service.
func (c *Client) DeleteServiceVideo(ctx context.Context, name string) error {
	return c.send(ctx, http.MethodDelete, "/api/services/"+name+"/video", nil)
}

func (c *Client) getVideo(ctx context.Context, path string) (model.ServiceVideo, error) {
	video, err := fetchItem[model.ServiceVideo](ctx, c, path, nil)
	if err != nil {
		return model.ServiceVideo{}, err
	}
	video.Path = c.ResolveMediaURL(StorageVideos, video.Path)
	return video, nil
}

// uploadVideo posts a video multipart form with bounded retry. The encoded
// body is buffered once and re-sent verbatim on each attempt; the delay
// between attempts is fixed. A context cancellation stops retrying.
func (c *Client) uploadVideo(ctx context.Context, path string, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}

	contentType, body := form.Encode()

	var lastErr error
	for attempt := 1; attempt <= maxUploadAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return &Error{Kind: KindNetwork, Err: err}
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", contentType)

		_, err = c.do(req)
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsNetwork(err) {
			return err
		}

		c.log.Warn("video upload attempt failed",
			"path", path, "attempt", attempt, "max_attempts", maxUploadAttempts, "error", err)

		if attempt == maxUploadAttempts {
			break
		}

		select {
		case <-time.After(uploadRetryDelay):
		case <-ctx.Done():
			return &Error{Kind: KindNetwork, Err: ctx.Err()}
		}
	}

	return lastErr
}
