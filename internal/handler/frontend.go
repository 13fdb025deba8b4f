// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for the public site and the
// admin screens. Public pages render whatever the backend returns; a backend
// failure on a list endpoint degrades to an empty section, never a 500.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-go/internal/api"
	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/internal/seo"
)

// FrontendHandler serves the public site pages.
type FrontendHandler struct {
	api      *api.Client
	renderer *render.Renderer
	seoDefs  seo.Defaults
	siteURL  string
	log      *slog.Logger
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(client *api.Client, renderer *render.Renderer, defs seo.Defaults, siteURL string, log *slog.Logger) *FrontendHandler {
	return &FrontendHandler{
		api:      client,
		renderer: renderer,
		seoDefs:  defs,
		siteURL:  siteURL,
		log:      log,
	}
}

// seoFor resolves page metadata, refetching the admin-managed SEO settings.
// The settings list is small and the public pages sit behind the page cache,
// so a fetch per rendered page is fine.
func (h *FrontendHandler) seoFor(r *http.Request, page, pageTitle string) seo.Meta {
	resolver := seo.NewResolver(h.api.ListSEOSettings(r.Context()), h.seoDefs)
	return resolver.For(page, pageTitle)
}

// HomeData holds data for the home page.
type HomeData struct {
	HeroVideo   *model.ServiceVideo
	Posts       []model.BlogPost
	Projects    []model.Project
	HasVideo    bool
	VideoSource string
}

// Home renders the landing page with the hero video and recent content.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := HomeData{
		Posts:    firstN(h.api.ListActiveBlogPosts(r.Context()), 3),
		Projects: firstN(h.api.ListProjects(r.Context(), 0), 6),
	}

	// A missing hero video is normal: the section is simply omitted.
	if video, err := h.api.GetHeroVideo(r.Context()); err == nil && video.Path != "" {
		data.HeroVideo = &video
		data.HasVideo = true
		data.VideoSource = video.Path
	}

	h.render(w, r, "public/home", render.TemplateData{
		Title: "Главная",
		Data:  data,
		Meta:  h.seoFor(r, "home", ""),
	})
}

// BlogListData holds data for the blog list page.
type BlogListData struct {
	Posts []model.BlogPost
}

// Blog renders the public blog list. Only active posts are shown.
func (h *FrontendHandler) Blog(w http.ResponseWriter, r *http.Request) {
	data := BlogListData{Posts: h.api.ListActiveBlogPosts(r.Context())}

	h.render(w, r, "public/blog", render.TemplateData{
		Title: "Блог",
		Data:  data,
		Meta:  h.seoFor(r, "blog", "Блог"),
	})
}

// BlogPostData holds data for a single blog post page.
type BlogPostData struct {
	Post model.BlogPost
}

// BlogPost renders a single blog post by slug. Inactive posts 404.
func (h *FrontendHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.api.GetBlogPostBySlug(r.Context(), slug)
	if err != nil || !post.Status.Bool() {
		h.NotFound(w, r)
		return
	}

	h.render(w, r, "public/blog_post", render.TemplateData{
		Title: post.Title,
		Data:  BlogPostData{Post: post},
		Meta:  h.seoFor(r, "blog", post.Title),
	})
}

// ProjectsData holds data for the projects page.
type ProjectsData struct {
	Projects   []model.Project
	Categories []model.ProjectCategory
	ActiveID   int64
}

// Projects renders the portfolio, optionally filtered by ?category_id=.
func (h *FrontendHandler) Projects(w http.ResponseWriter, r *http.Request) {
	categoryID, _ := strconv.ParseInt(r.URL.Query().Get("category_id"), 10, 64)

	data := ProjectsData{
		Projects:   h.api.ListProjects(r.Context(), categoryID),
		Categories: h.api.ListCategories(r.Context()),
		ActiveID:   categoryID,
	}

	h.render(w, r, "public/projects", render.TemplateData{
		Title: "Проекты",
		Data:  data,
		Meta:  h.seoFor(r, "projects", "Проекты"),
	})
}

// ServicesData holds data for the media/services page.
type ServicesData struct {
	Services []model.MediaService
	Video    *model.ServiceVideo
}

// Services renders the media services page with its intro video.
func (h *FrontendHandler) Services(w http.ResponseWriter, r *http.Request) {
	data := ServicesData{Services: h.api.ListMediaServices(r.Context())}

	if video, err := h.api.GetServiceVideo(r.Context(), "media"); err == nil && video.Path != "" {
		data.Video = &video
	}

	h.render(w, r, "public/services", render.TemplateData{
		Title: "Услуги",
		Data:  data,
		Meta:  h.seoFor(r, "media", "Услуги"),
	})
}

// About renders the static about page.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "public/about", render.TemplateData{
		Title: "О студии",
		Meta:  h.seoFor(r, "about", "О студии"),
	})
}

// Contact renders the static contact page.
func (h *FrontendHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "public/contact", render.TemplateData{
		Title: "Контакты",
		Meta:  h.seoFor(r, "contact", "Контакты"),
	})
}

// Sitemap generates a sitemap.xml from the public routes and active posts.
func (h *FrontendHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")

	fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprint(w, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`+"\n")

	for _, path := range []string{"/", RouteBlog, RouteProjects, RouteMediaServices, RouteAbout, RouteContact} {
		fmt.Fprintf(w, "  <url><loc>%s%s</loc></url>\n", h.siteURL, path)
	}
	for _, post := range h.api.ListActiveBlogPosts(r.Context()) {
		fmt.Fprintf(w, "  <url><loc>%s%s/%s</loc></url>\n", h.siteURL, RouteBlog, post.Slug)
	}

	fmt.Fprint(w, "</urlset>\n")
}

// Robots serves robots.txt. The admin area is excluded from crawling.
func (h *FrontendHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nDisallow: /admin\nDisallow: /login\nSitemap: %s/sitemap.xml\n", h.siteURL)
}

// NotFound renders the 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	if err := h.renderer.Render(w, r, "public/not_found", render.TemplateData{Title: "Страница не найдена"}); err != nil {
		http.Error(w, "404 Not Found", http.StatusNotFound)
	}
}

func (h *FrontendHandler) render(w http.ResponseWriter, r *http.Request, name string, data render.TemplateData) {
	if err := h.renderer.Render(w, r, name, data); err != nil {
		h.log.Error("template render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// firstN returns at most n leading items.
func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
