// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging generates local preview thumbnails for images uploaded
// through the admin. The backend stores the authoritative file; previews
// only exist so the admin list screens don't hot-link full-size originals.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/olegiv/studio-go/internal/util"
)

// PreviewWidth is the bounding width of generated thumbnails.
const PreviewWidth = 320

// previewQuality is the JPEG quality for thumbnails.
const previewQuality = 85

// Previewer writes preview thumbnails into a local directory.
type Previewer struct {
	dir string
}

// NewPreviewer creates a Previewer rooted at dir, creating it if needed.
func NewPreviewer(dir string) (*Previewer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating previews directory: %w", err)
	}
	return &Previewer{dir: dir}, nil
}

// Result describes a generated preview.
type Result struct {
	Filename string // Name within the previews directory
	Width    int
	Height   int
}

// Generate decodes an uploaded image, applies its EXIF orientation, scales
// it down to the preview width and stores it as JPEG under a random name.
// Unsupported or undecodable input is an error; callers treat a failed
// preview as cosmetic and proceed with the upload regardless.
func (p *Previewer) Generate(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	if !isSupportedImage(data) {
		return nil, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	if img.Bounds().Dx() > PreviewWidth {
		img = imaging.Resize(img, PreviewWidth, 0, imaging.Lanczos)
	}

	name := uuid.NewString() + ".jpg"
	path, err := util.SafeJoinPath(p.dir, name)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating preview file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: previewQuality}); err != nil {
		return nil, fmt.Errorf("encoding preview: %w", err)
	}

	bounds := img.Bounds()
	return &Result{Filename: name, Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

// isSupportedImage accepts jpeg, png, gif and webp. TIFF is rejected
// explicitly (CVE-2023-36308 in disintegration/imaging).
func isSupportedImage(data []byte) bool {
	contentType := http.DetectContentType(data)
	if strings.Contains(contentType, "tiff") {
		return false
	}
	for _, t := range []string{"jpeg", "png", "gif", "webp"} {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation applies an EXIF orientation transformation to an image.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// Dir returns the previews directory path for static serving.
func (p *Previewer) Dir() string { return p.dir }
