// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/olegiv/studio-go/internal/model"
)

// ListSEOSettings fetches SEO metadata for all pages. On failure an empty
// slice is returned and pages fall back to built-in defaults.
func (c *Client) ListSEOSettings(ctx context.Context) []model.SEOSetting {
	settings := fetchList[model.SEOSetting](ctx, c, "/api/seo-settings", nil)
	for i := range settings {
		settings[i].OGImage = c.ResolveMediaURL(StorageBlog, settings[i].OGImage)
	}
	return settings
}

// GetSEOSetting fetches the SEO record for one page key (e.g. "home").
func (c *Client) GetSEOSetting(ctx context.Context, page string) (model.SEOSetting, error) {
	s, err := fetchItem[model.SEOSetting](ctx, c, "/api/seo-settings/"+page, nil)
	if err != nil {
		return model.SEOSetting{}, err
	}
	s.OGImage = c.ResolveMediaURL(StorageBlog, s.OGImage)
	return s, nil
}

// CreateSEOSetting creates the SEO record for a page.
func (c *Client) CreateSEOSetting(ctx context.Context, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	return c.submit(ctx, "/api/seo-settings", form)
}

// UpdateSEOSetting updates a page's SEO record via the `_method=PUT` override.
func (c *Client) UpdateSEOSetting(ctx context.Context, id int64, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	form.MethodPut()
	return c.submit(ctx, fmt.Sprintf("/api/seo-settings/%d", id), form)
}

// DeleteSEOSetting removes a page's SEO record.
func (c *Client) DeleteSEOSetting(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/seo-settings/%d", id), nil)
}
