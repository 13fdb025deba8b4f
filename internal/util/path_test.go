package util

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"plain filename", "video.mp4", "video.mp4", false},
		{"with directory", "uploads/video.mp4", "video.mp4", false},
		{"traversal attempt", "../../../etc/passwd", "passwd", false},
		{"dot", ".", "", true},
		{"dotdot", "..", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFilename(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SanitizeFilename(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("SanitizeFilename(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSafeJoinPath(t *testing.T) {
	base := t.TempDir()

	if _, err := SafeJoinPath(base, "previews", "a.jpg"); err != nil {
		t.Errorf("expected join within base to succeed: %v", err)
	}

	if _, err := SafeJoinPath(base, "..", "outside.jpg"); err == nil {
		t.Error("expected traversal outside base to fail")
	} else if !strings.Contains(err.Error(), "traversal") {
		t.Errorf("unexpected error: %v", err)
	}
}
