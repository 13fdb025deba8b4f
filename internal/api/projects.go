// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/olegiv/studio-go/internal/model"
)

// ListProjects fetches projects, optionally filtered by category. Pass 0 for
// no filter. Image paths are resolved on ingest and category associations are
// re-sorted defensively.
func (c *Client) ListProjects(ctx context.Context, categoryID int64) []model.Project {
	var query url.Values
	if categoryID > 0 {
		query = url.Values{"category_id": {strconv.FormatInt(categoryID, 10)}}
	}

	projects := fetchList[model.Project](ctx, c, "/api/projects", query)
	for i := range projects {
		c.normalizeProject(&projects[i])
	}
	return projects
}

// CreateProject creates a project. The form carries the repeated
// category_ids[] field and up to three image files.
func (c *Client) CreateProject(ctx context.Context, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	return c.submit(ctx, "/api/projects", form)
}

// UpdateProject updates a project via POST with the `_method=PUT` override,
// which is how the backend accepts multipart updates.
func (c *Client) UpdateProject(ctx context.Context, id int64, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	form.MethodPut()
	return c.submit(ctx, fmt.Sprintf("/api/projects/%d", id), form)
}

// DeleteProject deletes a project by id.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil)
}

func (c *Client) normalizeProject(p *model.Project) {
	p.MainImage = c.ResolveMediaURL(StorageProjects, p.MainImage)
	p.ProjectsPageImage = c.ResolveMediaURL(StorageProjects, p.ProjectsPageImage)
	p.Logo = c.ResolveMediaURL(StorageProjects, p.Logo)
	sortCategories(p.Categories)
}

// ListCategories fetches project categories sorted by sort_order. The
// backend usually returns them ordered already; we re-sort defensively since
// sort_order is admin-assigned and not guaranteed contiguous.
func (c *Client) ListCategories(ctx context.Context) []model.ProjectCategory {
	cats := fetchList[model.ProjectCategory](ctx, c, "/api/project-categories", nil)
	sortCategories(cats)
	return cats
}

// CreateCategory creates a project category.
func (c *Client) CreateCategory(ctx context.Context, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	return c.submit(ctx, "/api/project-categories", form)
}

// UpdateCategory updates a category via the `_method=PUT` override.
func (c *Client) UpdateCategory(ctx context.Context, id int64, form *Form) error {
	if err := form.Err(); err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	form.MethodPut()
	return c.submit(ctx, fmt.Sprintf("/api/project-categories/%d", id), form)
}

// DeleteCategory deletes a category by id.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/project-categories/%d", id), nil)
}

// setCategorySortOrder updates a single category's sort_order.
func (c *Client) setCategorySortOrder(ctx context.Context, id int64, sortOrder int) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/api/project-categories/%d/sort-order", id),
		map[string]int{"sort_order": sortOrder})
}

// SwapCategoryOrder exchanges the sort_order of two adjacent categories as
// two sequential PUT requests. There is no batch-reorder endpoint: if the
// second request fails, the first category's order HAS already changed and
// the list is left in an intermediate state. Callers must re-fetch after
// either outcome; the partial-failure window is a documented limitation of
// the backend contract, not something this client can repair.
func (c *Client) SwapCategoryOrder(ctx context.Context, a, b model.ProjectCategory) error {
	if err := c.setCategorySortOrder(ctx, a.ID.Int64(), b.SortOrder); err != nil {
		return err
	}
	if err := c.setCategorySortOrder(ctx, b.ID.Int64(), a.SortOrder); err != nil {
		return fmt.Errorf("partial reorder: first swap applied, second failed: %w", err)
	}
	return nil
}

func sortCategories(cats []model.ProjectCategory) {
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].SortOrder < cats[j].SortOrder
	})
}
