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
	"github.com/olegiv/studio-go/internal/util"
)

const postsPerPage = 20

// PostListData holds data for the admin blog post list.
type PostListData struct {
	Posts      []model.BlogPost
	Pagination AdminPagination
}

// ListPosts renders the admin blog post list.
func (h *AdminHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts := h.api.ListBlogPosts(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pagination := BuildAdminPagination(page, len(posts), postsPerPage, redirectAdminPosts, r.URL.Query())

	h.render(w, r, "admin/posts", render.TemplateData{
		Title: "Посты",
		Data: PostListData{
			Posts:      pageSlice(posts, pagination.CurrentPage, postsPerPage),
			Pagination: pagination,
		},
	})
}

// PostFormData holds data for the blog post create/edit form.
type PostFormData struct {
	Post  model.BlogPost
	IsNew bool
}

// NewPostForm renders the empty blog post form.
func (h *AdminHandler) NewPostForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/post_form", render.TemplateData{
		Title: "Новый пост",
		Data:  PostFormData{IsNew: true},
	})
}

// EditPostForm renders the blog post form populated from the backend.
func (h *AdminHandler) EditPostForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requirePost(w, r)
	if !ok {
		return
	}

	h.render(w, r, "admin/post_form", render.TemplateData{
		Title: "Редактирование поста",
		Data:  PostFormData{Post: post},
	})
}

// CreatePost handles the blog post create submission.
func (h *AdminHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		flashError(w, r, h.renderer, redirectAdminPostsNew, "Некорректные данные формы")
		return
	}

	// An empty slug is auto-generated from the title, transliterating
	// Cyrillic along the way.
	if r.PostForm.Get("slug") == "" {
		r.PostForm.Set("slug", util.Slugify(r.PostForm.Get("title")))
	}

	if errs := ValidateBlogPostForm(r.PostForm); len(errs) > 0 {
		flashError(w, r, h.renderer, redirectAdminPostsNew, joinErrors(errs))
		return
	}

	if err := h.api.CreateBlogPost(r.Context(), h.buildPostForm(r)); err != nil {
		flashError(w, r, h.renderer, redirectAdminPostsNew, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminPosts, "Пост создан")
}

// UpdatePost handles the blog post edit submission.
func (h *AdminHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	editURL := fmt.Sprintf(redirectAdminPostsID, id)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		flashError(w, r, h.renderer, editURL, "Некорректные данные формы")
		return
	}

	if errs := ValidateBlogPostForm(r.PostForm); len(errs) > 0 {
		flashError(w, r, h.renderer, editURL, joinErrors(errs))
		return
	}

	if err := h.api.UpdateBlogPost(r.Context(), id, h.buildPostForm(r)); err != nil {
		flashError(w, r, h.renderer, editURL, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminPosts, "Пост сохранён")
}

// DeletePostConfirm renders the delete confirmation page.
func (h *AdminHandler) DeletePostConfirm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requirePost(w, r)
	if !ok {
		return
	}

	h.render(w, r, "admin/confirm_delete", render.TemplateData{
		Title: "Удаление поста",
		Data: ConfirmDeleteData{
			Heading:   "Удалить пост?",
			ItemName:  post.Title,
			ActionURL: fmt.Sprintf("%s/%d/delete", redirectAdminPosts, int64(post.ID)),
			CancelURL: redirectAdminPosts,
		},
	})
}

// DeletePost deletes a blog post after confirmation.
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := h.api.DeleteBlogPost(r.Context(), id); err != nil {
		flashError(w, r, h.renderer, redirectAdminPosts, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminPosts, "Пост удалён")
}

// TogglePostStatus flips a post's published state.
func (h *AdminHandler) TogglePostStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	active := r.FormValue("active") == "1"
	if err := h.api.SetBlogPostStatus(r.Context(), id, active); err != nil {
		flashError(w, r, h.renderer, redirectAdminPosts, api.UserMessage(err))
		return
	}

	h.invalidatePages(r)
	flashSuccess(w, r, h.renderer, redirectAdminPosts, "Статус обновлён")
}

// buildPostForm assembles the outgoing multipart form from the submitted
// admin form. Content blocks arrive as parallel arrays and are forwarded as
// indexed fields.
func (h *AdminHandler) buildPostForm(r *http.Request) *api.Form {
	form := api.NewForm().
		Set("title", r.PostFormValue("title")).
		Set("description", r.PostFormValue("description")).
		Set("position", r.PostFormValue("position")).
		Set("slug", r.PostFormValue("slug")).
		SetBool("status", r.PostFormValue("status") == "1")

	titles := r.PostForm["block_title[]"]
	p1 := r.PostForm["block_paragraph_1[]"]
	p2 := r.PostForm["block_paragraph_2[]"]
	p3 := r.PostForm["block_paragraph_3[]"]
	for i, title := range titles {
		if title == "" {
			continue
		}
		prefix := fmt.Sprintf("content_blocks[%d]", i)
		form.Set(prefix+"[title]", title)
		form.Set(prefix+"[paragraph_1]", valueAt(p1, i))
		form.Set(prefix+"[paragraph_2]", valueAt(p2, i))
		form.Set(prefix+"[paragraph_3]", valueAt(p3, i))
	}

	attachFile(form, r, "image")
	return form
}

// requirePost fetches the post behind the {id} route parameter, redirecting
// to the list with a flash message when it cannot be loaded.
func (h *AdminHandler) requirePost(w http.ResponseWriter, r *http.Request) (model.BlogPost, bool) {
	id, ok := urlParamID(r)
	if !ok {
		http.NotFound(w, r)
		return model.BlogPost{}, false
	}

	for _, post := range h.api.ListBlogPosts(r.Context()) {
		if int64(post.ID) == id {
			return post, true
		}
	}

	flashError(w, r, h.renderer, redirectAdminPosts, "Пост не найден")
	return model.BlogPost{}, false
}

// valueAt returns values[i] or "" when the slice is shorter.
func valueAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

// ConfirmDeleteData drives the shared delete confirmation template.
type ConfirmDeleteData struct {
	Heading   string
	ItemName  string
	ActionURL string
	CancelURL string
}
