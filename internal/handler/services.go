// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"

	"github.com/olegiv/studio-go/internal/api"
	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/render"
)

// ServiceListData holds data for the admin media service list.
type ServiceListData struct {
	Services []model.MediaService
}

// ListAdminServices renders the admin media service list.
func (h *AdminHandler) ListAdminServices(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/services", render.TemplateData{
		Title: "Услуги",
		Data:  ServiceListData{Services: h.api.ListMediaServices(r.Context())},
	})
}

// ServiceFormData holds data for the media service create/edit form. The
// edit form also manages the service's nested features and media pairs.
type ServiceFormData struct {
	Service model.MediaService
	IsNew   bool
}

// NewServiceForm renders the empty media service form.
func (h *AdminHandler) NewServiceForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/service_form", render.TemplateData{
		Title: "Новая услуга",
		Data:  ServiceFormData{IsNew: true},
	})
}

// EditServiceForm renders the media service form with nested features and
// media pairs fetched fresh from the backend.
func (h *AdminHandler) EditServiceForm(w http.ResponseWriter, r *http.Request) {
	service, ok := h.requireService(w, r)
	if !ok {
		return
	}

	h.render(w, r, "admin/service_form", render.TemplateData{
		Title: "Редактирование услуги",
		Data:  ServiceFormData{Service: service},
	})
}

// CreateService handles the media service create submission.
func (h *AdminHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	newURL := redirectAdminServices + RouteSuffixNew

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		flashError(w, r, h.renderer, newURL, "Некорректные данные формы")
		return
	}

	if errs := ValidateServiceForm(r.PostForm); len(errs) > 0 {
		flashError(w, r, h.renderer, newURL, joinErrors(errs))
		return
	}

	if err := h.api.CreateMediaService(r.Context(), h.buildServiceForm(r)); err != nil {
		flashError(w, r, h.renderer, newURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminServices, "Услуга создана")
}

// UpdateService handles the media service edit submission.
func (h *AdminHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	editURL := fmt.Sprintf(redirectAdminServicesID, id)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		flashError(w, r, h.renderer, editURL, "Некорректные данные формы")
		return
	}

	if errs := ValidateServiceForm(r.PostForm); len(errs) > 0 {
		flashError(w, r, h.renderer, editURL, joinErrors(errs))
		return
	}

	if err := h.api.UpdateMediaService(r.Context(), id, h.buildServiceForm(r)); err != nil {
		flashError(w, r, h.renderer, editURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminServices, "Услуга сохранена")
}

// DeleteServiceConfirm renders the delete confirmation page.
func (h *AdminHandler) DeleteServiceConfirm(w http.ResponseWriter, r *http.Request) {
	service, ok := h.requireService(w, r)
	if !ok {
		return
	}

	h.render(w, r, "admin/confirm_delete", render.TemplateData{
		Title: "Удаление услуги",
		Data: ConfirmDeleteData{
			Heading:   "Удалить услугу?",
			ItemName:  service.Title,
			ActionURL: fmt.Sprintf("%s/%d/delete", redirectAdminServices, int64(service.ID)),
			CancelURL: redirectAdminServices,
		},
	})
}

// DeleteService deletes a media service after confirmation.
func (h *AdminHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.api.DeleteMediaService(r.Context(), id); err != nil {
		flashError(w, r, h.renderer, redirectAdminServices, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminServices, "Услуга удалена")
}

// AddFeature adds a feature block to a service.
func (h *AdminHandler) AddFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	editURL := fmt.Sprintf(redirectAdminServicesID, id)

	if !parseFormOrRedirect(w, r, h.renderer, editURL) {
		return
	}

	if err := h.api.AddServiceFeature(r.Context(), id, h.buildFeatureForm(r)); err != nil {
		flashError(w, r, h.renderer, editURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, editURL, "Блок добавлен")
}

// UpdateFeature updates a feature block.
func (h *AdminHandler) UpdateFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	featureID, ok2 := urlParamInt64(r, "featureId")
	if !ok || !ok2 {
		http.NotFound(w, r)
		return
	}
	editURL := fmt.Sprintf(redirectAdminServicesID, id)

	if !parseFormOrRedirect(w, r, h.renderer, editURL) {
		return
	}

	if err := h.api.UpdateServiceFeature(r.Context(), id, featureID, h.buildFeatureForm(r)); err != nil {
		flashError(w, r, h.renderer, editURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, editURL, "Блок сохранён")
}

// DeleteFeature removes a feature block.
func (h *AdminHandler) DeleteFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	featureID, ok2 := urlParamInt64(r, "featureId")
	if !ok || !ok2 {
		http.NotFound(w, r)
		return
	}
	editURL := fmt.Sprintf(redirectAdminServicesID, id)

	if err := h.api.DeleteServiceFeature(r.Context(), id, featureID); err != nil {
		flashError(w, r, h.renderer, editURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, editURL, "Блок удалён")
}

// AddMediaPair adds a main/secondary slide pair to a service.
func (h *AdminHandler) AddMediaPair(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	editURL := fmt.Sprintf(redirectAdminServicesID, id)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		flashError(w, r, h.renderer, editURL, "Некорректные данные формы")
		return
	}

	if err := h.api.AddMediaPair(r.Context(), id, h.buildMediaPairForm(r)); err != nil {
		flashError(w, r, h.renderer, editURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, editURL, "Слайд добавлен")
}

// UpdateMediaPair replaces the assets of a slide pair.
func (h *AdminHandler) UpdateMediaPair(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	pairID, ok2 := urlParamInt64(r, "pairId")
	if !ok || !ok2 {
		http.NotFound(w, r)
		return
	}
	editURL := fmt.Sprintf(redirectAdminServicesID, id)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		flashError(w, r, h.renderer, editURL, "Некорректные данные формы")
		return
	}

	if err := h.api.UpdateMediaPair(r.Context(), id, pairID, h.buildMediaPairForm(r)); err != nil {
		flashError(w, r, h.renderer, editURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, editURL, "Слайд сохранён")
}

// DeleteMediaPair removes a slide pair.
func (h *AdminHandler) DeleteMediaPair(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	pairID, ok2 := urlParamInt64(r, "pairId")
	if !ok || !ok2 {
		http.NotFound(w, r)
		return
	}
	editURL := fmt.Sprintf(redirectAdminServicesID, id)

	if err := h.api.DeleteMediaPair(r.Context(), id, pairID); err != nil {
		flashError(w, r, h.renderer, editURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, editURL, "Слайд удалён")
}

func (h *AdminHandler) buildServiceForm(r *http.Request) *api.Form {
	return api.NewForm().
		Set("title", r.PostFormValue("title")).
		Set("description", r.PostFormValue("description")).
		SetBool("dark_background", r.PostFormValue("dark_background") == "1")
}

// buildFeatureForm forwards a feature's title and its ordered paragraphs.
func (h *AdminHandler) buildFeatureForm(r *http.Request) *api.Form {
	form := api.NewForm().
		Set("title", r.PostFormValue("title")).
		Set("sort_order", r.PostFormValue("sort_order"))

	for _, p := range r.PostForm["paragraphs[]"] {
		if p != "" {
			form.Add("paragraphs[]", p)
		}
	}
	return form
}

// buildMediaPairForm forwards the main/secondary asset files with their
// declared types and optional poster frames.
func (h *AdminHandler) buildMediaPairForm(r *http.Request) *api.Form {
	form := api.NewForm().
		Set("main_type", r.PostFormValue("main_type")).
		Set("secondary_type", r.PostFormValue("secondary_type")).
		Set("sort_order", r.PostFormValue("sort_order"))

	attachFile(form, r, "main")
	attachFile(form, r, "main_poster")
	attachFile(form, r, "secondary")
	attachFile(form, r, "secondary_poster")
	return form
}

// requireService fetches the service behind the {id} route parameter.
func (h *AdminHandler) requireService(w http.ResponseWriter, r *http.Request) (model.MediaService, bool) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return model.MediaService{}, false
	}

	service, err := h.api.GetMediaService(r.Context(), id)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminServices, "Услуга не найдена")
		return model.MediaService{}, false
	}
	return service, true
}
