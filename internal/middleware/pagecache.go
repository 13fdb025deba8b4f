// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/studio-go/internal/cache"
)

// PageCacheConfig holds configuration for the rendered-page cache.
type PageCacheConfig struct {
	Cache cache.Cache

	// TTL is the revalidation window. Pages older than this are re-rendered
	// on the next request.
	TTL time.Duration

	// KeyPrefix namespaces cache keys so Clear on a shared Redis doesn't
	// touch other applications.
	KeyPrefix string

	Logger *slog.Logger
}

// PageCache caches rendered public pages. Only successful GET responses with
// an HTML content type are cached; everything else passes through. Cached
// responses are marked with an X-Cache header for debugging.
func PageCache(cfg PageCacheConfig) func(http.Handler) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || cfg.Cache == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := cfg.KeyPrefix + r.URL.RequestURI()

			if body, err := cfg.Cache.Get(r.Context(), key); err == nil {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Header().Set("X-Cache", "HIT")
				_, _ = w.Write(body)
				return
			} else if !errors.Is(err, cache.ErrCacheMiss) {
				log.Warn("page cache get failed", "key", key, "error", err)
			}

			rec := &cacheRecorder{ResponseWriter: w, status: http.StatusOK}
			rec.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK && isHTML(rec.Header().Get("Content-Type")) {
				if err := cfg.Cache.Set(r.Context(), key, rec.buf.Bytes(), cfg.TTL); err != nil {
					log.Warn("page cache set failed", "key", key, "error", err)
				}
			}
		})
	}
}

func isHTML(contentType string) bool {
	return strings.HasPrefix(contentType, "text/html")
}

// cacheRecorder tees the response body into a buffer while writing through
// to the client.
type cacheRecorder struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (rec *cacheRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *cacheRecorder) Write(b []byte) (int, error) {
	rec.buf.Write(b)
	return rec.ResponseWriter.Write(b)
}
