// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"

	"github.com/olegiv/studio-go/internal/api"
	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/internal/util"
)

// CategoryListData holds data for the admin category list.
type CategoryListData struct {
	Categories []model.ProjectCategory
}

// ListAdminCategories renders the admin category list in sort order.
func (h *AdminHandler) ListAdminCategories(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/categories", render.TemplateData{
		Title: "Категории",
		Data:  CategoryListData{Categories: h.api.ListCategories(r.Context())},
	})
}

// CategoryFormData holds data for the category create/edit form.
type CategoryFormData struct {
	Category model.ProjectCategory
	IsNew    bool
}

// NewCategoryForm renders the empty category form.
func (h *AdminHandler) NewCategoryForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/category_form", render.TemplateData{
		Title: "Новая категория",
		Data:  CategoryFormData{IsNew: true},
	})
}

// EditCategoryForm renders the category form populated from the backend.
func (h *AdminHandler) EditCategoryForm(w http.ResponseWriter, r *http.Request) {
	category, ok := h.requireCategory(w, r)
	if !ok {
		return
	}

	h.render(w, r, "admin/category_form", render.TemplateData{
		Title: "Редактирование категории",
		Data:  CategoryFormData{Category: category},
	})
}

// CreateCategory handles the category create submission.
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	newURL := redirectAdminCategories + RouteSuffixNew

	if !parseFormOrRedirect(w, r, h.renderer, newURL) {
		return
	}

	if r.PostForm.Get("slug") == "" {
		r.PostForm.Set("slug", util.Slugify(r.PostForm.Get("name")))
	}

	if errs := ValidateCategoryForm(r.PostForm); len(errs) > 0 {
		flashError(w, r, h.renderer, newURL, joinErrors(errs))
		return
	}

	if err := h.api.CreateCategory(r.Context(), h.buildCategoryForm(r)); err != nil {
		flashError(w, r, h.renderer, newURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminCategories, "Категория создана")
}

// UpdateCategory handles the category edit submission.
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	editURL := fmt.Sprintf("%s/%d/edit", redirectAdminCategories, id)

	if !parseFormOrRedirect(w, r, h.renderer, editURL) {
		return
	}

	if errs := ValidateCategoryForm(r.PostForm); len(errs) > 0 {
		flashError(w, r, h.renderer, editURL, joinErrors(errs))
		return
	}

	if err := h.api.UpdateCategory(r.Context(), id, h.buildCategoryForm(r)); err != nil {
		flashError(w, r, h.renderer, editURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminCategories, "Категория сохранена")
}

// DeleteCategoryConfirm renders the delete confirmation page.
func (h *AdminHandler) DeleteCategoryConfirm(w http.ResponseWriter, r *http.Request) {
	category, ok := h.requireCategory(w, r)
	if !ok {
		return
	}

	h.render(w, r, "admin/confirm_delete", render.TemplateData{
		Title: "Удаление категории",
		Data: ConfirmDeleteData{
			Heading:   "Удалить категорию?",
			ItemName:  category.Name,
			ActionURL: fmt.Sprintf("%s/%d/delete", redirectAdminCategories, int64(category.ID)),
			CancelURL: redirectAdminCategories,
		},
	})
}

// DeleteCategory deletes a category after confirmation.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.api.DeleteCategory(r.Context(), id); err != nil {
		flashError(w, r, h.renderer, redirectAdminCategories, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminCategories, "Категория удалена")
}

// MoveCategory swaps a category's sort order with its neighbor in the given
// direction (?dir=up|down). The swap is two separate backend writes; if the
// second fails the list is left half-swapped and the admin sees an error
// telling them to retry.
func (h *AdminHandler) MoveCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	categories := h.api.ListCategories(r.Context())
	idx := -1
	for i, cat := range categories {
		if int64(cat.ID) == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		flashError(w, r, h.renderer, redirectAdminCategories, "Категория не найдена")
		return
	}

	other := idx - 1
	if r.URL.Query().Get("dir") == "down" {
		other = idx + 1
	}
	if other < 0 || other >= len(categories) {
		// Already at the edge
		http.Redirect(w, r, redirectAdminCategories, http.StatusSeeOther)
		return
	}

	if err := h.api.SwapCategoryOrder(r.Context(), categories[idx], categories[other]); err != nil {
		flashError(w, r, h.renderer, redirectAdminCategories,
			"Не удалось изменить порядок, обновите страницу и повторите")
		return
	}

	h.invalidatePages(r)
	http.Redirect(w, r, redirectAdminCategories, http.StatusSeeOther)
}

func (h *AdminHandler) buildCategoryForm(r *http.Request) *api.Form {
	return api.NewForm().
		Set("name", r.PostFormValue("name")).
		Set("slug", r.PostFormValue("slug"))
}

// requireCategory fetches the category behind the {id} route parameter.
func (h *AdminHandler) requireCategory(w http.ResponseWriter, r *http.Request) (model.ProjectCategory, bool) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return model.ProjectCategory{}, false
	}

	for _, cat := range h.api.ListCategories(r.Context()) {
		if int64(cat.ID) == id {
			return cat, true
		}
	}

	flashError(w, r, h.renderer, redirectAdminCategories, "Категория не найдена")
	return model.ProjectCategory{}, false
}
