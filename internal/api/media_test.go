package api

import "testing"

func TestResolveMediaURL(t *testing.T) {
	c := New(Config{BaseURL: "https://api.example.com"})

	tests := []struct {
		name     string
		subpath  string
		input    string
		expected string
	}{
		{
			name:     "absolute https passthrough",
			subpath:  StorageBlog,
			input:    "https://cdn.example.com/a.jpg",
			expected: "https://cdn.example.com/a.jpg",
		},
		{
			name:     "absolute http passthrough",
			subpath:  StorageBlog,
			input:    "http://cdn.example.com/a.jpg",
			expected: "http://cdn.example.com/a.jpg",
		},
		{
			name:     "storage path gets origin prefix",
			subpath:  StorageBlog,
			input:    "/storage/blog/x.jpg",
			expected: "https://api.example.com/storage/blog/x.jpg",
		},
		{
			name:     "local static images path unchanged",
			subpath:  StorageBlog,
			input:    "/images/placeholder.png",
			expected: "/images/placeholder.png",
		},
		{
			name:     "bare filename gets resource subpath",
			subpath:  StorageBlog,
			input:    "cover.jpg",
			expected: "https://api.example.com/storage/blog/cover.jpg",
		},
		{
			name:     "bare filename under projects",
			subpath:  StorageProjects,
			input:    "loft.webp",
			expected: "https://api.example.com/storage/projects/loft.webp",
		},
		{
			name:     "empty stays empty",
			subpath:  StorageBlog,
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ResolveMediaURL(tt.subpath, tt.input)
			if got != tt.expected {
				t.Errorf("ResolveMediaURL(%q, %q) = %q, want %q", tt.subpath, tt.input, got, tt.expected)
			}
		})
	}
}

func TestResolveMediaURLPrefixesExactlyOnce(t *testing.T) {
	c := New(Config{BaseURL: "https://api.example.com"})

	once := c.ResolveMediaURL(StorageBlog, "/storage/blog/x.jpg")
	twice := c.ResolveMediaURL(StorageBlog, once)
	if once != twice {
		t.Errorf("resolving an already-resolved URL changed it: %q -> %q", once, twice)
	}
}
