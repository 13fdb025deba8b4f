// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/olegiv/studio-go/internal/model"
)

// ListMediaServices fetches the service blocks for the media/services page,
// with nested features and media pairs. Asset paths are resolved on ingest
// and nested lists re-sorted by sort_order.
func (c *Client) ListMediaServices(ctx context.Context) []model.MediaService {
	services := fetchList[model.MediaService](ctx, c, "/api/media-services", nil)
	for i := range services {
		c.normalizeMediaService(&services[i])
	}
	return services
}

// GetMediaService fetches one service block by id.
func (c *Client) GetMediaService(ctx context.Context, id int64) (model.MediaService, error) {
	svc, err := fetchItem[model.MediaService](ctx, c, fmt.Sprintf("/api/media-services/%d", id), nil)
	if err != nil {
		return model.MediaService{}, err
	}
	c.normalizeMediaService(&svc)
	return svc, nil
}

// CreateMediaService creates a service block.
func (c *Client) CreateMediaService(ctx context.Context, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	return c.submit(ctx, "/api/media-services", form)
}

// UpdateMediaService updates a service block via the `_method=PUT` override.
func (c *Client) UpdateMediaService(ctx context.Context, id int64, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	form.MethodPut()
	return c.submit(ctx, fmt.Sprintf("/api/media-services/%d", id), form)
}

// DeleteMediaService deletes a service block and its nested records.
func (c *Client) DeleteMediaService(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/media-services/%d", id), nil)
}

// AddServiceFeature appends a feature (title + ordered paragraphs) to a
// service block.
func (c *Client) AddServiceFeature(ctx context.Context, serviceID int64, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	return c.submit(ctx, fmt.Sprintf("/api/media-services/%d/features", serviceID), form)
}

// UpdateServiceFeature updates one feature of a service block.
func (c *Client) UpdateServiceFeature(ctx context.Context, serviceID, featureID int64, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	form.MethodPut()
	return c.submit(ctx, fmt.Sprintf("/api/media-services/%d/features/%d", serviceID, featureID), form)
}

// DeleteServiceFeature removes one feature from a service block.
func (c *Client) DeleteServiceFeature(ctx context.Context, serviceID, featureID int64) error {
	return c.send(ctx, http.MethodDelete,
		fmt.Sprintf("/api/media-services/%d/features/%d", serviceID, featureID), nil)
}

// AddMediaPair appends a media pair (main + secondary asset) to a service
// block. The form carries typed assets: image|video files with an optional
// poster for videos.
func (c *Client) AddMediaPair(ctx context.Context, serviceID int64, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	return c.submit(ctx, fmt.Sprintf("/api/media-services/%d/media", serviceID), form)
}

// UpdateMediaPair updates one media pair of a service block.
func (c *Client) UpdateMediaPair(ctx context.Context, serviceID, pairID int64, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	form.MethodPut()
	return c.submit(ctx, fmt.Sprintf("/api/media-services/%d/media/%d", serviceID, pairID), form)
}

// DeleteMediaPair removes one media pair from a service block.
func (c *Client) DeleteMediaPair(ctx context.Context, serviceID, pairID int64) error {
	return c.send(ctx, http.MethodDelete,
		fmt.Sprintf("/api/media-services/%d/media/%d", serviceID, pairID), nil)
}

func (c *Client) normalizeMediaService(s *model.MediaService) {
	for i := range s.Media {
		pair := &s.Media[i]
		pair.Main.Path = c.ResolveMediaURL(StorageServices, pair.Main.Path)
		pair.Main.Poster = c.ResolveMediaURL(StorageServices, pair.Main.Poster)
		pair.Secondary.Path = c.ResolveMediaURL(StorageServices, pair.Secondary.Path)
		pair.Secondary.Poster = c.ResolveMediaURL(StorageServices, pair.Secondary.Poster)
	}
	sort.SliceStable(s.Features, func(i, j int) bool {
		return s.Features[i].SortOrder < s.Features[j].SortOrder
	})
	sort.SliceStable(s.Media, func(i, j int) bool {
		return s.Media[i].SortOrder < s.Media[j].SortOrder
	})
}
