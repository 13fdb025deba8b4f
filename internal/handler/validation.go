package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/olegiv/studio-go/internal/model"
	"github.com/olegiv/studio-go/internal/util"
)

// ValidateSlugFormat validates only the slug format.
// Returns an error message string if validation fails, or empty string if valid.
func ValidateSlugFormat(slug string) string {
	if slug == "" {
		return "Укажите slug"
	}
	if !util.IsValidSlug(slug) {
		return "Недопустимый slug (используйте строчные буквы, цифры и дефисы)"
	}
	return ""
}

// ValidateBlogPostForm checks a blog post form before it is sent to the
// backend. Returns a list of error messages; empty means valid.
func ValidateBlogPostForm(form url.Values) []string {
	var errs []string

	if strings.TrimSpace(form.Get("title")) == "" {
		errs = append(errs, "Укажите заголовок")
	}
	if msg := ValidateSlugFormat(form.Get("slug")); msg != "" {
		errs = append(errs, msg)
	}

	return errs
}

// ValidateProjectForm checks a project form before it is sent to the backend.
// A project needs a title, a year within bounds and at least one category.
func ValidateProjectForm(form url.Values) []string {
	var errs []string

	if strings.TrimSpace(form.Get("main_title")) == "" {
		errs = append(errs, "Укажите название проекта")
	}

	yearStr := form.Get("year")
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < model.ProjectYearMin || year > model.ProjectYearMax {
		errs = append(errs, fmt.Sprintf("Недопустимый год (от %d до %d)", model.ProjectYearMin, model.ProjectYearMax))
	}

	if len(form["category_ids[]"]) == 0 {
		errs = append(errs, "Выберите хотя бы одну категорию")
	}

	return errs
}

// ValidateCategoryForm checks a category form.
func ValidateCategoryForm(form url.Values) []string {
	var errs []string

	if strings.TrimSpace(form.Get("name")) == "" {
		errs = append(errs, "Укажите название категории")
	}
	if msg := ValidateSlugFormat(form.Get("slug")); msg != "" {
		errs = append(errs, msg)
	}

	return errs
}

// ValidateServiceForm checks a media service form.
func ValidateServiceForm(form url.Values) []string {
	var errs []string

	if strings.TrimSpace(form.Get("title")) == "" {
		errs = append(errs, "Укажите название услуги")
	}

	return errs
}

// ValidateVideoUpload checks an uploaded video's size and extension before
// the transfer to the backend starts. size is the multipart part size as
// reported by the browser; the backend enforces the authoritative limit.
func ValidateVideoUpload(filename string, size int64) []string {
	var errs []string

	if filename == "" {
		errs = append(errs, "Выберите видеофайл")
		return errs
	}

	if size > model.MaxVideoSize {
		errs = append(errs, "Файл слишком большой (максимум 50 МБ)")
	}

	ext := strings.ToLower(filename)
	ok := false
	for _, allowed := range []string{".mp4", ".webm", ".mov"} {
		if strings.HasSuffix(ext, allowed) {
			ok = true
			break
		}
	}
	if !ok {
		errs = append(errs, "Неподдерживаемый формат видео (mp4, webm, mov)")
	}

	return errs
}

// joinErrors combines validation messages into a single flash message.
func joinErrors(errs []string) string {
	return strings.Join(errs, "; ")
}
