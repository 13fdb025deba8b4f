// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-go/internal/api"
	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/render"
)

// VideoSlot describes one replaceable video on the videos admin screen.
type VideoSlot struct {
	Name    string // "" for the hero video
	Label   string
	Video   *model.ServiceVideo
	HasFile bool
}

// VideosData holds data for the videos admin screen.
type VideosData struct {
	Slots       []VideoSlot
	MaxSizeMB   int
	AcceptTypes string
}

// namedVideoSlots are the service pages carrying their own intro video.
var namedVideoSlots = []struct {
	Name  string
	Label string
}{
	{"media", "Видео на странице услуг"},
}

// Videos renders the videos admin screen: the home hero slot plus one slot
// per named service video.
func (h *AdminHandler) Videos(w http.ResponseWriter, r *http.Request) {
	data := VideosData{
		MaxSizeMB:   model.MaxVideoSize >> 20,
		AcceptTypes: "video/mp4,video/webm,video/quicktime",
	}

	hero := VideoSlot{Label: "Видео на главной"}
	if v, err := h.api.GetHeroVideo(r.Context()); err == nil && v.Path != "" {
		hero.Video = &v
		hero.HasFile = true
	}
	data.Slots = append(data.Slots, hero)

	for _, slot := range namedVideoSlots {
		s := VideoSlot{Name: slot.Name, Label: slot.Label}
		if v, err := h.api.GetServiceVideo(r.Context(), slot.Name); err == nil && v.Path != "" {
			s.Video = &v
			s.HasFile = true
		}
		data.Slots = append(data.Slots, s)
	}

	h.render(w, r, "admin/videos", render.TemplateData{
		Title: "Видео",
		Data:  data,
	})
}

// UploadHeroVideo replaces the home page hero video.
func (h *AdminHandler) UploadHeroVideo(w http.ResponseWriter, r *http.Request) {
	h.uploadVideo(w, r, func(form *api.Form) error {
		return h.api.UploadHeroVideo(r.Context(), form)
	})
}

// DeleteHeroVideo removes the home page hero video.
func (h *AdminHandler) DeleteHeroVideo(w http.ResponseWriter, r *http.Request) {
	if err := h.api.DeleteHeroVideo(r.Context()); err != nil {
		flashError(w, r, h.renderer, redirectAdminVideos, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminVideos, "Видео удалено")
}

// UploadServiceVideo replaces a named service video.
func (h *AdminHandler) UploadServiceVideo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	h.uploadVideo(w, r, func(form *api.Form) error {
		return h.api.UploadServiceVideo(r.Context(), name, form)
	})
}

// DeleteServiceVideo removes a named service video.
func (h *AdminHandler) DeleteServiceVideo(w http.ResponseWriter, r *http.Request) {
	if err := h.api.DeleteServiceVideo(r.Context(), chi.URLParam(r, "name")); err != nil {
		flashError(w, r, h.renderer, redirectAdminVideos, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminVideos, "Видео удалено")
}

// uploadVideo validates the submitted file and hands it to the backend
// upload path, which retries transient network failures on its own.
func (h *AdminHandler) uploadVideo(w http.ResponseWriter, r *http.Request, send func(*api.Form) error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		flashError(w, r, h.renderer, redirectAdminVideos, "Некорректные данные формы")
		return
	}

	file, header := formFile(r, "video")
	if file == nil {
		flashError(w, r, h.renderer, redirectAdminVideos, "Выберите видеофайл")
		return
	}
	defer func() { _ = file.Close() }()

	if errs := ValidateVideoUpload(header.Filename, header.Size); len(errs) > 0 {
		flashError(w, r, h.renderer, redirectAdminVideos, joinErrors(errs))
		return
	}

	form := api.NewForm().File("video", header.Filename, file)
	if err := send(form); err != nil {
		flashError(w, r, h.renderer, redirectAdminVideos, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminVideos, "Видео загружено")
}
