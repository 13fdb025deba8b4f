// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/olegiv/studio-go/internal/api"
	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/render"
)

// seoPages are the page keys an SEO record can target.
var seoPages = []string{"home", "blog", "projects", "media", "about", "contact"}

// SEOListData holds data for the SEO settings admin list.
type SEOListData struct {
	Settings []model.SEOSetting
}

// ListSEO renders the SEO settings list.
func (h *AdminHandler) ListSEO(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/seo", render.TemplateData{
		Title: "SEO",
		Data:  SEOListData{Settings: h.api.ListSEOSettings(r.Context())},
	})
}

// SEOFormData holds data for the SEO setting create/edit form.
type SEOFormData struct {
	Setting model.SEOSetting
	Pages   []string
	IsNew   bool
}

// NewSEOForm renders the empty SEO setting form.
func (h *AdminHandler) NewSEOForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/seo_form", render.TemplateData{
		Title: "Новая запись SEO",
		Data:  SEOFormData{Pages: seoPages, IsNew: true},
	})
}

// EditSEOForm renders the SEO setting form populated from the backend.
func (h *AdminHandler) EditSEOForm(w http.ResponseWriter, r *http.Request) {
	setting, ok := h.requireSEOSetting(w, r)
	if !ok {
		return
	}

	h.render(w, r, "admin/seo_form", render.TemplateData{
		Title: "Редактирование SEO",
		Data:  SEOFormData{Setting: setting, Pages: seoPages},
	})
}

// CreateSEO handles the SEO setting create submission.
func (h *AdminHandler) CreateSEO(w http.ResponseWriter, r *http.Request) {
	newURL := redirectAdminSEO + RouteSuffixNew

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		flashError(w, r, h.renderer, newURL, "Некорректные данные формы")
		return
	}

	if strings.TrimSpace(r.PostFormValue("page")) == "" {
		flashError(w, r, h.renderer, newURL, "Выберите страницу")
		return
	}

	if err := h.api.CreateSEOSetting(r.Context(), h.buildSEOForm(r)); err != nil {
		flashError(w, r, h.renderer, newURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminSEO, "Запись создана")
}

// UpdateSEO handles the SEO setting edit submission.
func (h *AdminHandler) UpdateSEO(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	editURL := fmt.Sprintf("%s/%d/edit", redirectAdminSEO, id)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		flashError(w, r, h.renderer, editURL, "Некорректные данные формы")
		return
	}

	if err := h.api.UpdateSEOSetting(r.Context(), id, h.buildSEOForm(r)); err != nil {
		flashError(w, r, h.renderer, editURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminSEO, "Запись сохранена")
}

// DeleteSEOConfirm renders the delete confirmation page.
func (h *AdminHandler) DeleteSEOConfirm(w http.ResponseWriter, r *http.Request) {
	setting, ok := h.requireSEOSetting(w, r)
	if !ok {
		return
	}

	h.render(w, r, "admin/confirm_delete", render.TemplateData{
		Title: "Удаление записи SEO",
		Data: ConfirmDeleteData{
			Heading:   "Удалить запись SEO?",
			ItemName:  setting.Page,
			ActionURL: fmt.Sprintf("%s/%d/delete", redirectAdminSEO, int64(setting.ID)),
			CancelURL: redirectAdminSEO,
		},
	})
}

// DeleteSEO deletes an SEO setting after confirmation.
func (h *AdminHandler) DeleteSEO(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.api.DeleteSEOSetting(r.Context(), id); err != nil {
		flashError(w, r, h.renderer, redirectAdminSEO, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminSEO, "Запись удалена")
}

// buildSEOForm assembles the outgoing multipart form, including the optional
// OG image upload.
func (h *AdminHandler) buildSEOForm(r *http.Request) *api.Form {
	form := api.NewForm().
		Set("page", r.PostFormValue("page")).
		Set("title", r.PostFormValue("title")).
		Set("description", r.PostFormValue("description")).
		Set("keywords", r.PostFormValue("keywords"))

	attachFile(form, r, "og_image")
	return form
}

// requireSEOSetting fetches the setting behind the {id} route parameter.
func (h *AdminHandler) requireSEOSetting(w http.ResponseWriter, r *http.Request) (model.SEOSetting, bool) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return model.SEOSetting{}, false
	}

	for _, s := range h.api.ListSEOSettings(r.Context()) {
		if int64(s.ID) == id {
			return s, true
		}
	}

	flashError(w, r, h.renderer, redirectAdminSEO, "Запись не найдена")
	return model.SEOSetting{}, false
}
