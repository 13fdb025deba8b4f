// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import "strings"

// Storage subpaths per resource; bare filenames returned by the backend are
// resolved under these.
const (
	StorageBlog     = "blog"
	StorageProjects = "projects"
	StorageServices = "services"
	StorageVideos   = "videos"
)

// ResolveMediaURL derives an absolute URL from a media path field:
//
//   - absolute http(s) URLs pass through unchanged;
//   - /storage/... paths are prefixed with the backend origin, exactly once;
//   - /images/... paths are locally served static assets, left unchanged;
//   - bare filenames are resolved under the resource's storage subpath.
//
// An empty input stays empty so templates can use simple truthiness checks.
func (c *Client) ResolveMediaURL(subpath, path string) string {
	switch {
	case path == "":
		return ""
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return path
	case strings.HasPrefix(path, "/storage/"):
		return c.baseURL + path
	case strings.HasPrefix(path, "/images/"):
		return path
	default:
		return c.baseURL + "/storage/" + subpath + "/" + strings.TrimPrefix(path, "/")
	}
}
