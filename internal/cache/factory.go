// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// Options selects and configures a cache backend.
type Options struct {
	RedisURL   string // Empty = in-memory backend
	Prefix     string
	DefaultTTL time.Duration
	MaxEntries int
}

// New creates the configured cache backend. When Redis is configured but
// unreachable, it falls back to the in-memory backend so the site keeps
// serving; the degradation is logged.
func New(opts Options) Cache {
	if opts.RedisURL != "" {
		c, err := NewRedisCache(RedisOptions{
			URL:        opts.RedisURL,
			Prefix:     opts.Prefix,
			DefaultTTL: opts.DefaultTTL,
		})
		if err == nil {
			slog.Info("page cache initialized", "backend", "redis")
			return c
		}
		slog.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	slog.Info("page cache initialized", "backend", "memory")
	return NewMemoryCache(MemoryOptions{
		DefaultTTL:      opts.DefaultTTL,
		MaxEntries:      opts.MaxEntries,
		CleanupInterval: time.Minute,
	})
}
