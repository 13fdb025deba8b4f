// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplatesFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": {Data: []byte(
			`{{define "base"}}<title>{{.Meta.Title}}</title><main>{{template "content" .}}</main>{{end}}`)},
		"layouts/admin.html": {Data: []byte(
			`{{define "content"}}<nav></nav>{{template "admin_content" .}}{{end}}`)},
		"public/hello.html": {Data: []byte(
			`{{define "content"}}<p>{{.Data}}</p>{{end}}`)},
		"admin/list.html": {Data: []byte(
			`{{define "admin_content"}}<table>{{.Data}}</table>{{end}}`)},
	}
}

func TestRenderPublicPageUsesBaseLayout(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	err = r.Render(w, req, "public/hello", TemplateData{Title: "Привет", Data: "тело"})
	require.NoError(t, err)

	body := w.Body.String()
	assert.Contains(t, body, "<title>Привет</title>")
	assert.Contains(t, body, "<p>тело</p>")
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestRenderAdminPageWrapsAdminLayout(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)

	err = r.Render(w, req, "admin/list", TemplateData{Title: "Список", Data: "строки"})
	require.NoError(t, err)

	body := w.Body.String()
	assert.Contains(t, body, "<nav></nav>")
	assert.Contains(t, body, "<table>строки</table>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	err = r.Render(w, req, "public/missing", TemplateData{})
	assert.Error(t, err)
}

func TestRenderMetaTitleDefaultsToPageTitle(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	require.NoError(t, r.Render(w, req, "public/hello", TemplateData{Title: "Блог"}))
	assert.Contains(t, w.Body.String(), "<title>Блог</title>")
}

func TestRenderMarkdownSanitizesHTML(t *testing.T) {
	r, err := New(Config{TemplatesFS: fstest.MapFS{}})
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		contains string
		excludes string
	}{
		{
			name:     "basic markdown",
			input:    "**жирный** текст",
			contains: "<strong>жирный</strong>",
		},
		{
			name:     "script stripped",
			input:    "привет <script>alert(1)</script>",
			contains: "привет",
			excludes: "<script>",
		},
		{
			name:     "links kept",
			input:    "[сайт](https://example.com)",
			contains: `href="https://example.com"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.RenderMarkdown(tt.input)
			assert.Contains(t, got, tt.contains)
			if tt.excludes != "" {
				assert.NotContains(t, got, tt.excludes)
			}
		})
	}
}
