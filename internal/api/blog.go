// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/olegiv/studio-go/internal/model"
)

// ListBlogPosts fetches all blog posts, active and inactive. Media paths are
// resolved to absolute URLs on ingest. On failure an empty slice is returned.
func (c *Client) ListBlogPosts(ctx context.Context) []model.BlogPost {
	posts := fetchList[model.BlogPost](ctx, c, "/api/blog-posts", nil)
	for i := range posts {
		c.normalizeBlogPost(&posts[i])
	}
	return posts
}

// ListActiveBlogPosts fetches only the posts whose coerced status is true,
// for the public blog pages.
func (c *Client) ListActiveBlogPosts(ctx context.Context) []model.BlogPost {
	all := c.ListBlogPosts(ctx)
	active := make([]model.BlogPost, 0, len(all))
	for _, p := range all {
		if p.Status.Bool() {
			active = append(active, p)
		}
	}
	return active
}

// GetBlogPostBySlug fetches a single post by its public slug.
func (c *Client) GetBlogPostBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	post, err := fetchItem[model.BlogPost](ctx, c, "/api/blog-posts/"+slug, nil)
	if err != nil {
		return model.BlogPost{}, err
	}
	c.normalizeBlogPost(&post)
	return post, nil
}

// CreateBlogPost creates a post from a multipart form.
func (c *Client) CreateBlogPost(ctx context.Context, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	return c.submit(ctx, "/api/blog-posts", form)
}

// UpdateBlogPost updates a post. The backend routes blog updates through a
// dedicated POST endpoint rather than the `_method` override; the target id
// travels in the form.
func (c *Client) UpdateBlogPost(ctx context.Context, id int64, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	form.SetInt("id", id)
	return c.submit(ctx, "/api/blog-posts/update", form)
}

// DeleteBlogPost deletes a post by id.
func (c *Client) DeleteBlogPost(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/blog-posts/%d", id), nil)
}

// SetBlogPostStatus toggles a post's published status. On failure the caller
// keeps its pre-toggle state; no optimistic flip is retained.
func (c *Client) SetBlogPostStatus(ctx context.Context, id int64, active bool) error {
	return c.send(ctx, http.MethodPatch, fmt.Sprintf("/api/blog-posts/%d/status", id),
		map[string]bool{"status": active})
}

func (c *Client) normalizeBlogPost(p *model.BlogPost) {
	p.Image = c.ResolveMediaURL(StorageBlog, p.Image)
}
