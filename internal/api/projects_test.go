// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/studio-go/internal/model"
)

// sortOrderServer records sort-order PUTs and fails requests for the ids
// listed in failIDs.
type sortOrderServer struct {
	mu      sync.Mutex
	applied map[string]int
	failIDs map[string]bool
}

func newSortOrderServer(t *testing.T, failIDs ...string) (*sortOrderServer, *httptest.Server) {
	t.Helper()
	s := &sortOrderServer{
		applied: make(map[string]int),
		failIDs: make(map[string]bool),
	}
	for _, id := range failIDs {
		s.failIDs[id] = true
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)

		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/") // api, project-categories, {id}, sort-order
		require.Len(t, parts, 4)
		id := parts[2]

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.failIDs[id] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		s.applied[id] = body["sort_order"]
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(srv.Close)
	return s, srv
}

func TestSwapCategoryOrder(t *testing.T) {
	state, srv := newSortOrderServer(t)
	c := New(Config{BaseURL: srv.URL})

	a := model.ProjectCategory{ID: 1, SortOrder: 1}
	b := model.ProjectCategory{ID: 2, SortOrder: 2}

	require.NoError(t, c.SwapCategoryOrder(context.Background(), a, b))

	state.mu.Lock()
	defer state.mu.Unlock()
	assert.Equal(t, 2, state.applied["1"])
	assert.Equal(t, 1, state.applied["2"])
}

// A failure on the second PUT must surface as an error while the first
// category's new order stays applied: the swap is two independent requests
// and the backend offers no way to roll the first one back.
func TestSwapCategoryOrderSecondFailureLeavesFirstApplied(t *testing.T) {
	state, srv := newSortOrderServer(t, "2")
	c := New(Config{BaseURL: srv.URL})

	a := model.ProjectCategory{ID: 1, SortOrder: 1}
	b := model.ProjectCategory{ID: 2, SortOrder: 2}

	err := c.SwapCategoryOrder(context.Background(), a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "partial reorder")

	state.mu.Lock()
	defer state.mu.Unlock()
	assert.Equal(t, 2, state.applied["1"], "first swap should remain applied")
	_, second := state.applied["2"]
	assert.False(t, second, "second swap must not have been applied")
}

func TestSwapCategoryOrderFirstFailureChangesNothing(t *testing.T) {
	state, srv := newSortOrderServer(t, "1")
	c := New(Config{BaseURL: srv.URL})

	a := model.ProjectCategory{ID: 1, SortOrder: 1}
	b := model.ProjectCategory{ID: 2, SortOrder: 2}

	err := c.SwapCategoryOrder(context.Background(), a, b)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "partial reorder")

	state.mu.Lock()
	defer state.mu.Unlock()
	assert.Empty(t, state.applied)
}
