// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/olegiv/studio-go/internal/api"
	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/render"
)

const projectsPerPage = 20

// ProjectListData holds data for the admin project list.
type ProjectListData struct {
	Projects   []model.Project
	Categories []model.ProjectCategory
	ActiveID   int64
	Pagination AdminPagination
}

// ListAdminProjects renders the admin project list, optionally filtered by
// ?category_id=.
func (h *AdminHandler) ListAdminProjects(w http.ResponseWriter, r *http.Request) {
	categoryID, _ := strconv.ParseInt(r.URL.Query().Get("category_id"), 10, 64)
	projects := h.api.ListProjects(r.Context(), categoryID)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pagination := BuildAdminPagination(page, len(projects), projectsPerPage, redirectAdminProjects, r.URL.Query())

	h.render(w, r, "admin/projects", render.TemplateData{
		Title: "Проекты",
		Data: ProjectListData{
			Projects:   pageSlice(projects, pagination.CurrentPage, projectsPerPage),
			Categories: h.api.ListCategories(r.Context()),
			ActiveID:   categoryID,
			Pagination: pagination,
		},
	})
}

// ProjectFormData holds data for the project create/edit form.
type ProjectFormData struct {
	Project    model.Project
	Categories []model.ProjectCategory
	Selected   map[string]bool // Keyed by decimal category ID for template lookups
	IsNew      bool
}

// NewProjectForm renders the empty project form.
func (h *AdminHandler) NewProjectForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/project_form", render.TemplateData{
		Title: "Новый проект",
		Data: ProjectFormData{
			Categories: h.api.ListCategories(r.Context()),
			Selected:   map[string]bool{},
			IsNew:      true,
		},
	})
}

// EditProjectForm renders the project form populated from the backend.
func (h *AdminHandler) EditProjectForm(w http.ResponseWriter, r *http.Request) {
	project, ok := h.requireProject(w, r)
	if !ok {
		return
	}

	selected := make(map[string]bool, len(project.Categories))
	for _, cat := range project.Categories {
		selected[fmt.Sprintf("%d", int64(cat.ID))] = true
	}

	h.render(w, r, "admin/project_form", render.TemplateData{
		Title: "Редактирование проекта",
		Data: ProjectFormData{
			Project:    project,
			Categories: h.api.ListCategories(r.Context()),
			Selected:   selected,
		},
	})
}

// CreateProject handles the project create submission.
func (h *AdminHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	newURL := redirectAdminProjects + RouteSuffixNew

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		flashError(w, r, h.renderer, newURL, "Некорректные данные формы")
		return
	}

	if errs := ValidateProjectForm(r.PostForm); len(errs) > 0 {
		flashError(w, r, h.renderer, newURL, joinErrors(errs))
		return
	}

	if err := h.api.CreateProject(r.Context(), h.buildProjectForm(r)); err != nil {
		flashError(w, r, h.renderer, newURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminProjects, "Проект создан")
}

// UpdateProject handles the project edit submission.
func (h *AdminHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	editURL := fmt.Sprintf(redirectAdminProjectsID, id)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		flashError(w, r, h.renderer, editURL, "Некорректные данные формы")
		return
	}

	if errs := ValidateProjectForm(r.PostForm); len(errs) > 0 {
		flashError(w, r, h.renderer, editURL, joinErrors(errs))
		return
	}

	if err := h.api.UpdateProject(r.Context(), id, h.buildProjectForm(r)); err != nil {
		flashError(w, r, h.renderer, editURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminProjects, "Проект сохранён")
}

// DeleteProjectConfirm renders the delete confirmation page.
func (h *AdminHandler) DeleteProjectConfirm(w http.ResponseWriter, r *http.Request) {
	project, ok := h.requireProject(w, r)
	if !ok {
		return
	}

	h.render(w, r, "admin/confirm_delete", render.TemplateData{
		Title: "Удаление проекта",
		Data: ConfirmDeleteData{
			Heading:   "Удалить проект?",
			ItemName:  project.MainTitle,
			ActionURL: fmt.Sprintf("%s/%d/delete", redirectAdminProjects, int64(project.ID)),
			CancelURL: redirectAdminProjects,
		},
	})
}

// DeleteProject deletes a project after confirmation.
func (h *AdminHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.api.DeleteProject(r.Context(), id); err != nil {
		flashError(w, r, h.renderer, redirectAdminProjects, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminProjects, "Проект удалён")
}

// buildProjectForm assembles the outgoing multipart form. Categories are
// forwarded as the repeated category_ids[] field; the three image slots are
// attached only when a new file was chosen.
func (h *AdminHandler) buildProjectForm(r *http.Request) *api.Form {
	form := api.NewForm().
		Set("main_title", r.PostFormValue("main_title")).
		Set("projects_page_title", r.PostFormValue("projects_page_title")).
		Set("year", r.PostFormValue("year"))

	for _, id := range r.PostForm["category_ids[]"] {
		form.Add("category_ids[]", id)
	}

	attachFile(form, r, "main_image")
	attachFile(form, r, "projects_page_image")
	attachFile(form, r, "logo")
	return form
}

// requireProject fetches the project behind the {id} route parameter.
func (h *AdminHandler) requireProject(w http.ResponseWriter, r *http.Request) (model.Project, bool) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return model.Project{}, false
	}

	for _, project := range h.api.ListProjects(r.Context(), 0) {
		if int64(project.ID) == id {
			return project, true
		}
	}

	flashError(w, r, h.renderer, redirectAdminProjects, "Проект не найден")
	return model.Project{}, false
}
