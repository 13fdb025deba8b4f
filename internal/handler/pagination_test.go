package handler

import (
	"net/url"
	"testing"
)

func TestBuildAdminPagination(t *testing.T) {
	p := BuildAdminPagination(2, 45, 20, "/admin/posts", nil)

	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages)
	}
	if !p.HasPrev || !p.HasNext {
		t.Error("middle page should have prev and next")
	}
	if p.NextURL() != "/admin/posts?page=3" {
		t.Errorf("NextURL = %q", p.NextURL())
	}
}

func TestBuildAdminPaginationClampsPage(t *testing.T) {
	p := BuildAdminPagination(99, 10, 20, "/admin/posts", nil)
	if p.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", p.CurrentPage)
	}
	if p.ShouldShow() {
		t.Error("single page should not show pagination")
	}
}

func TestBuildAdminPaginationPreservesFilters(t *testing.T) {
	q := url.Values{"category_id": {"2"}, "page": {"1"}}
	p := BuildAdminPagination(1, 50, 20, "/admin/projects", q)

	if p.QueryString != "category_id=2" {
		t.Errorf("QueryString = %q, want category_id=2", p.QueryString)
	}
	if p.PageURL(2) != "/admin/projects?category_id=2&page=2" {
		t.Errorf("PageURL = %q", p.PageURL(2))
	}
}

func TestPageSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	if got := pageSlice(items, 1, 2); len(got) != 2 || got[0] != 1 {
		t.Errorf("page 1 = %v", got)
	}
	if got := pageSlice(items, 3, 2); len(got) != 1 || got[0] != 5 {
		t.Errorf("page 3 = %v", got)
	}
	if got := pageSlice(items, 4, 2); got != nil {
		t.Errorf("out of range page = %v, want nil", got)
	}
}
