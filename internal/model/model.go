// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the server-owned content entities consumed from the
// backend API. Records are fetched fresh per request; nothing here is
// authoritative local state.
package model

import "time"

// Validation bounds shared by handlers and templates.
const (
	// ProjectYearMin and ProjectYearMax bound the accepted project year.
	ProjectYearMin = 1900
	ProjectYearMax = 2100

	// MaxVideoSize is the advisory client-side ceiling for video uploads.
	// The backend enforces the authoritative limit.
	MaxVideoSize = 50 << 20 // 50 MB
)

// ContentBlock is one titled block of a blog post body: a title plus up to
// three paragraphs.
type ContentBlock struct {
	Title      string `json:"title"`
	Paragraph1 string `json:"paragraph_1"`
	Paragraph2 string `json:"paragraph_2"`
	Paragraph3 string `json:"paragraph_3"`
}

// BlogPost is a blog entry. Image arrives as a storage-relative path and is
// resolved to an absolute URL on ingest. Status arrives in one of several
// encodings and is coerced by FlexBool.
type BlogPost struct {
	ID          FlexInt64      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Position    string         `json:"position"`
	Slug        string         `json:"slug"`
	Status      FlexBool       `json:"status"`
	Blocks      []ContentBlock `json:"content_blocks"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ProjectCategory orders and groups projects. SortOrder is admin-assigned
// and not guaranteed contiguous; lists are re-sorted defensively on ingest.
type ProjectCategory struct {
	ID        FlexInt64 `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SortOrder int       `json:"sort_order"`
}

// Project is a portfolio entry with up to three images and one or more
// category associations.
type Project struct {
	ID                FlexInt64         `json:"id"`
	MainTitle         string            `json:"main_title"`
	ProjectsPageTitle string            `json:"projects_page_title"`
	Year              int               `json:"year"`
	Categories        []ProjectCategory `json:"categories"`
	MainImage         string            `json:"main_image"`
	ProjectsPageImage string            `json:"projects_page_image"`
	Logo              string            `json:"logo"`
}

// MediaAsset is a single slide asset, typed image or video, with an optional
// poster frame for videos.
type MediaAsset struct {
	ID     FlexInt64 `json:"id"`
	Type   string    `json:"type"` // "image" or "video"
	Path   string    `json:"path"`
	Poster string    `json:"poster"`
}

// MediaPair groups the main and secondary asset of one slide.
type MediaPair struct {
	ID        FlexInt64  `json:"id"`
	Main      MediaAsset `json:"main"`
	Secondary MediaAsset `json:"secondary"`
	SortOrder int        `json:"sort_order"`
}

// ServiceFeature is a titled, ordered paragraph list inside a service block.
type ServiceFeature struct {
	ID         FlexInt64 `json:"id"`
	Title      string    `json:"title"`
	Paragraphs []string  `json:"paragraphs"`
	SortOrder  int       `json:"sort_order"`
}

// MediaService is an admin-managed service block on the media/services page.
type MediaService struct {
	ID             FlexInt64        `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	DarkBackground FlexBool         `json:"dark_background"`
	Features       []ServiceFeature `json:"features"`
	Media          []MediaPair      `json:"media"`
}

// ServiceVideo is a singleton video record (hero video or a named service
// video): at most one active row, fetched and replaced rather than listed.
type ServiceVideo struct {
	ID               FlexInt64 `json:"id"`
	Path             string    `json:"path"`
	OriginalFilename string    `json:"original_filename"`
	Size             int64     `json:"size"`
	Active           FlexBool  `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
}

// SEOSetting holds per-page SEO metadata managed from the admin.
type SEOSetting struct {
	ID          FlexInt64 `json:"id"`
	Page        string    `json:"page"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Keywords    string    `json:"keywords"`
	OGImage     string    `json:"og_image"`
}
