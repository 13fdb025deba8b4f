package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/studio-go/internal/api"
	"github.com/olegiv/studio-go/internal/cache"
	"github.com/olegiv/studio-go/internal/imaging"
	"github.com/olegiv/studio-go/internal/render"
)

// adminTestTemplates is the minimal template set needed by tests that render
// a page; redirect-only paths never reach a template.
func adminTestTemplates() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html":  {Data: []byte(`{{define "base"}}{{template "content" .}}{{end}}`)},
		"layouts/admin.html": {Data: []byte(`{{define "content"}}{{template "admin_content" .}}{{end}}`)},
		"admin/confirm_delete.html": {Data: []byte(
			`{{define "admin_content"}}<h2>{{.Data.Heading}}</h2>` +
				`<form method="post" action="{{.Data.ActionURL}}"></form>` +
				`<a href="{{.Data.CancelURL}}">Отмена</a>{{end}}`)},
	}
}

// newTestAdminHandler wires an AdminHandler against a stub backend.
func newTestAdminHandler(t *testing.T, backendURL string) (*AdminHandler, cache.Cache) {
	t.Helper()

	renderer, err := render.New(render.Config{TemplatesFS: adminTestTemplates()})
	if err != nil {
		t.Fatal(err)
	}

	client := api.New(api.Config{BaseURL: backendURL, Timeout: 5 * time.Second})
	pc := cache.NewMemoryCache(cache.MemoryOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = pc.Close() })

	previews, err := imaging.NewPreviewer(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	return NewAdminHandler(client, renderer, nil, pc, previews), pc
}

func adminRouter(h *AdminHandler) chi.Router {
	r := chi.NewRouter()
	r.Post("/admin/categories/{id}/move", h.MoveCategory)
	r.Post("/admin/projects", h.CreateProject)
	r.Get("/admin/posts/{id}/delete", h.DeletePostConfirm)
	r.Post("/admin/posts/{id}/delete", h.DeletePost)
	r.Post("/admin/posts/{id}/status", h.TogglePostStatus)
	r.Post("/admin/previews", h.ImagePreview)
	return r
}

func TestMoveCategorySwapsSortOrderWithNeighbor(t *testing.T) {
	var puts []string
	var bodies []map[string]int

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{"status":"success","data":[
				{"id":1,"name":"Interiors","slug":"interiors","sort_order":1},
				{"id":2,"name":"Houses","slug":"houses","sort_order":2}
			]}`))
		case r.Method == http.MethodPut:
			puts = append(puts, r.URL.Path)
			var body map[string]int
			_ = json.NewDecoder(r.Body).Decode(&body)
			bodies = append(bodies, body)
			_, _ = w.Write([]byte(`{"status":"success","data":null}`))
		}
	}))
	defer backend.Close()

	h, _ := newTestAdminHandler(t, backend.URL)

	req := httptest.NewRequest(http.MethodPost, "/admin/categories/1/move?dir=down", nil)
	rec := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if len(puts) != 2 {
		t.Fatalf("PUT count = %d, want 2", len(puts))
	}
	if puts[0] != "/api/project-categories/1/sort-order" || puts[1] != "/api/project-categories/2/sort-order" {
		t.Errorf("PUT paths = %v", puts)
	}
	// Category 1 takes order 2, category 2 takes order 1
	if bodies[0]["sort_order"] != 2 || bodies[1]["sort_order"] != 1 {
		t.Errorf("swapped orders = %v", bodies)
	}
}

func TestMoveCategoryAtEdgeIsNoop(t *testing.T) {
	var puts int
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			puts++
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"A","slug":"a","sort_order":1}]}`))
	}))
	defer backend.Close()

	h, _ := newTestAdminHandler(t, backend.URL)

	req := httptest.NewRequest(http.MethodPost, "/admin/categories/1/move?dir=up", nil)
	rec := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if puts != 0 {
		t.Errorf("edge move issued %d PUTs, want 0", puts)
	}
}

func TestCreateProjectRejectsInvalidFormWithoutBackendCall(t *testing.T) {
	var backendCalls int
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalls++
	}))
	defer backend.Close()

	h, _ := newTestAdminHandler(t, backend.URL)

	// Year out of range and no categories selected
	body, contentType := multipartBody(t, map[string][]string{
		"main_title": {"Test"},
		"year":       {"1500"},
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/projects", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if backendCalls != 0 {
		t.Errorf("invalid form reached the backend %d times", backendCalls)
	}
}

func TestDeleteRequiresConfirmationBeforeBackendCall(t *testing.T) {
	var deletes int
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"status":"success","data":[
				{"id":7,"title":"Пост","slug":"post","status":1}
			]}`))
		case http.MethodDelete:
			deletes++
			_, _ = w.Write([]byte(`{"status":"success","data":null}`))
		}
	}))
	defer backend.Close()

	h, _ := newTestAdminHandler(t, backend.URL)
	router := adminRouter(h)

	// Opening the confirmation page must not touch the record. Leaving via
	// the cancel link means the form is never posted, so this is also the
	// cancel path: zero DELETE requests either way.
	req := httptest.NewRequest(http.MethodGet, "/admin/posts/7/delete", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("confirm page status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `action="/admin/posts/7/delete"`) {
		t.Errorf("confirm page missing the delete form: %s", rec.Body.String())
	}
	if deletes != 0 {
		t.Fatalf("confirmation page issued %d DELETEs, want 0", deletes)
	}

	// Only the confirmed POST reaches the backend.
	req = httptest.NewRequest(http.MethodPost, "/admin/posts/7/delete", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete status = %d, want 303", rec.Code)
	}
	if deletes != 1 {
		t.Errorf("confirmed delete issued %d DELETEs, want 1", deletes)
	}
}

func TestDeletePostInvalidatesPageCache(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/blog-posts/7" {
			t.Errorf("unexpected backend call: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"success","data":null}`))
	}))
	defer backend.Close()

	h, pc := newTestAdminHandler(t, backend.URL)
	_ = pc.Set(context.Background(), "page:/blog", []byte("stale"), time.Minute)

	req := httptest.NewRequest(http.MethodPost, "/admin/posts/7/delete", nil)
	rec := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if _, err := pc.Get(context.Background(), "page:/blog"); err == nil {
		t.Error("page cache entry survived a delete")
	}
}

func TestTogglePostStatusSendsPatch(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"status":"success","data":null}`))
	}))
	defer backend.Close()

	h, _ := newTestAdminHandler(t, backend.URL)

	req := httptest.NewRequest(http.MethodPost, "/admin/posts/3/status", strings.NewReader("active=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(rec, req)

	if gotMethod != http.MethodPatch || gotPath != "/api/blog-posts/3/status" {
		t.Errorf("backend saw %s %s", gotMethod, gotPath)
	}
	if !strings.Contains(gotBody, `"status":true`) {
		t.Errorf("body = %q", gotBody)
	}
}

func TestImagePreviewReturnsThumbnailURL(t *testing.T) {
	h, _ := newTestAdminHandler(t, "http://unused.invalid")

	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 64, A: 255})
		}
	}
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatal(err)
	}

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, _ := mw.CreateFormFile("image", "photo.png")
	_, _ = fw.Write(pngBuf.Bytes())
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/previews", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
		Width   int    `json:"width"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || !strings.HasPrefix(resp.URL, "/previews/") {
		t.Errorf("response = %+v", resp)
	}
	if resp.Width != imaging.PreviewWidth {
		t.Errorf("width = %d, want %d", resp.Width, imaging.PreviewWidth)
	}
}

func TestImagePreviewRejectsNonImage(t *testing.T) {
	h, _ := newTestAdminHandler(t, "http://unused.invalid")

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, _ := mw.CreateFormFile("image", "notes.txt")
	_, _ = fw.Write([]byte("not an image"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/previews", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	adminRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

// multipartBody builds a multipart form from value fields only.
func multipartBody(t *testing.T, fields map[string][]string) (io.Reader, string) {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	for key, values := range fields {
		for _, v := range values {
			if err := mw.WriteField(key, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	_ = mw.Close()
	return body, mw.FormDataContentType()
}
