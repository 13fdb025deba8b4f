// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-go/internal/api"
	"github.com/olegiv/studio-go/internal/cache"
	"github.com/olegiv/studio-go/internal/imaging"
	"github.com/olegiv/studio-go/internal/render"
)

// maxFormMemory bounds in-memory multipart parsing; larger parts spill to
// temp files.
const maxFormMemory = 32 << 20

// AdminHandler carries the shared dependencies of the admin screens.
type AdminHandler struct {
	api       *api.Client
	renderer  *render.Renderer
	sessions  *scs.SessionManager
	pageCache cache.Cache
	previews  *imaging.Previewer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(client *api.Client, renderer *render.Renderer, sm *scs.SessionManager, pc cache.Cache, previews *imaging.Previewer) *AdminHandler {
	return &AdminHandler{
		api:       client,
		renderer:  renderer,
		sessions:  sm,
		pageCache: pc,
		previews:  previews,
	}
}

// DashboardData holds counts for the admin dashboard.
type DashboardData struct {
	PostCount     int
	ProjectCount  int
	CategoryCount int
	ServiceCount  int
}

// Dashboard renders the admin landing page with content counts.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := DashboardData{
		PostCount:     len(h.api.ListBlogPosts(r.Context())),
		ProjectCount:  len(h.api.ListProjects(r.Context(), 0)),
		CategoryCount: len(h.api.ListCategories(r.Context())),
		ServiceCount:  len(h.api.ListMediaServices(r.Context())),
	}

	h.render(w, r, "admin/dashboard", render.TemplateData{
		Title:   "Панель управления",
		Data:    data,
		IsAdmin: true,
	})
}

func (h *AdminHandler) render(w http.ResponseWriter, r *http.Request, name string, data render.TemplateData) {
	data.IsAdmin = true
	if err := h.renderer.Render(w, r, name, data); err != nil {
		logAndInternalError(w, "template render failed", "template", name, "error", err)
	}
}

// ImagePreview generates a local thumbnail for a just-selected image so the
// admin form can show it before the record is saved. The thumbnail lives in
// the previews directory served under /previews/; failures are cosmetic and
// reported as JSON without blocking the main form.
func (h *AdminHandler) ImagePreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Некорректные данные формы")
		return
	}

	file, _ := formFile(r, "image")
	if file == nil {
		writeJSONError(w, http.StatusBadRequest, "Выберите изображение")
		return
	}
	defer func() { _ = file.Close() }()

	res, err := h.previews.Generate(file)
	if err != nil {
		slog.Debug("preview generation failed", "error", err)
		writeJSONError(w, http.StatusUnprocessableEntity, "Не удалось обработать изображение")
		return
	}

	writeJSONSuccess(w, map[string]any{
		"url":    "/previews/" + res.Filename,
		"width":  res.Width,
		"height": res.Height,
	})
}

// invalidatePages drops the rendered-page cache after a successful mutation
// so the public site reflects the change immediately instead of waiting out
// the revalidation window.
func (h *AdminHandler) invalidatePages(r *http.Request) {
	if h.pageCache == nil {
		return
	}
	if err := h.pageCache.Clear(r.Context()); err != nil {
		slog.Error("page cache invalidation failed", "error", err)
	}
}

// urlParamID parses the {id} route parameter.
func urlParamID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// urlParamInt64 parses a named route parameter.
func urlParamInt64(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// formFile returns the named multipart file if one was submitted, or nil.
func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return file, header
}

// attachFile adds an optional uploaded file to an outgoing backend form,
// closing the multipart part after it is consumed.
func attachFile(form *api.Form, r *http.Request, field string) {
	file, header := formFile(r, field)
	if file == nil {
		return
	}
	defer func() { _ = file.Close() }()
	form.File(field, header.Filename, file)
}
