package handler

import (
	"net/url"
	"strings"
	"testing"
)

func TestValidateProjectForm(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		wantErr string // substring expected in joined errors; empty = valid
	}{
		{
			name: "valid",
			form: url.Values{
				"main_title":     {"Квартира на Тверской"},
				"year":           {"2024"},
				"category_ids[]": {"1", "2"},
			},
		},
		{
			name: "missing title",
			form: url.Values{
				"year":           {"2024"},
				"category_ids[]": {"1"},
			},
			wantErr: "Укажите название проекта",
		},
		{
			name: "year below minimum",
			form: url.Values{
				"main_title":     {"Test"},
				"year":           {"1800"},
				"category_ids[]": {"1"},
			},
			wantErr: "Недопустимый год",
		},
		{
			name: "year not a number",
			form: url.Values{
				"main_title":     {"Test"},
				"year":           {"abc"},
				"category_ids[]": {"1"},
			},
			wantErr: "Недопустимый год",
		},
		{
			name: "no categories",
			form: url.Values{
				"main_title": {"Test"},
				"year":       {"2024"},
			},
			wantErr: "хотя бы одну категорию",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateProjectForm(tt.form)
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Errorf("unexpected errors: %v", errs)
				}
				return
			}
			if !strings.Contains(joinErrors(errs), tt.wantErr) {
				t.Errorf("errors %v missing %q", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateBlogPostForm(t *testing.T) {
	valid := url.Values{"title": {"Пост"}, "slug": {"post"}}
	if errs := ValidateBlogPostForm(valid); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}

	invalid := url.Values{"title": {"  "}, "slug": {"Bad Slug!"}}
	errs := ValidateBlogPostForm(invalid)
	if len(errs) != 2 {
		t.Errorf("expected 2 errors, got %v", errs)
	}
}

func TestValidateVideoUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErrs int
	}{
		{"valid mp4", "clip.mp4", 10 << 20, 0},
		{"valid uppercase extension", "clip.MP4", 1 << 20, 0},
		{"too large", "clip.mp4", 51 << 20, 1},
		{"wrong extension", "clip.avi", 1 << 20, 1},
		{"too large and wrong type", "clip.avi", 51 << 20, 2},
		{"no file", "", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateVideoUpload(tt.filename, tt.size)
			if len(errs) != tt.wantErrs {
				t.Errorf("got %d errors %v, want %d", len(errs), errs, tt.wantErrs)
			}
		})
	}
}
