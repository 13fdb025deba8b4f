// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo assembles per-page metadata from admin-managed SEO settings,
// falling back to built-in defaults when a page has no record.
package seo

import (
	"strings"

	"github.com/olegiv/studio-go/internal/model"
)

// Meta is the resolved metadata rendered into a page's <head>.
type Meta struct {
	Title       string
	Description string
	Keywords    string
	OGImage     string
}

// Defaults for pages without an SEO record.
type Defaults struct {
	SiteName    string
	Description string
}

// Resolver looks up page metadata by page key.
type Resolver struct {
	byPage   map[string]model.SEOSetting
	defaults Defaults
}

// NewResolver indexes the fetched SEO settings by page key.
func NewResolver(settings []model.SEOSetting, defaults Defaults) *Resolver {
	byPage := make(map[string]model.SEOSetting, len(settings))
	for _, s := range settings {
		byPage[s.Page] = s
	}
	return &Resolver{byPage: byPage, defaults: defaults}
}

// For resolves metadata for a page key. pageTitle is appended to the site
// name when the page has no admin-managed title.
func (r *Resolver) For(page, pageTitle string) Meta {
	m := Meta{
		Title:       joinTitle(pageTitle, r.defaults.SiteName),
		Description: r.defaults.Description,
	}

	s, ok := r.byPage[page]
	if !ok {
		return m
	}

	if s.Title != "" {
		m.Title = s.Title
	}
	if s.Description != "" {
		m.Description = s.Description
	}
	m.Keywords = s.Keywords
	m.OGImage = s.OGImage
	return m
}

func joinTitle(pageTitle, siteName string) string {
	switch {
	case pageTitle == "":
		return siteName
	case siteName == "":
		return pageTitle
	default:
		return strings.TrimSpace(pageTitle) + " — " + siteName
	}
}
