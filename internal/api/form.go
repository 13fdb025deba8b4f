// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// Form builds a multipart request body. The backend expects every mutation as
// multipart/form-data, file or not, and distinguishes create from update by a
// `_method=PUT` override field rather than the HTTP verb.
type Form struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error // First error encountered while building
}

// NewForm creates an empty multipart form.
func NewForm() *Form {
	f := &Form{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

// Set writes a single-valued field.
func (f *Form) Set(key, value string) *Form {
	if f.err == nil {
		f.err = f.writer.WriteField(key, value)
	}
	return f
}

// Add writes one value of a repeated field. The backend's array fields use
// the bracket convention, e.g. category_ids[].
func (f *Form) Add(key, value string) *Form {
	return f.Set(key, value)
}

// SetInt writes an integer field.
func (f *Form) SetInt(key string, value int64) *Form {
	return f.Set(key, fmt.Sprintf("%d", value))
}

// SetBool writes a boolean field in the 0/1 form the backend expects.
func (f *Form) SetBool(key string, value bool) *Form {
	if value {
		return f.Set(key, "1")
	}
	return f.Set(key, "0")
}

// MethodPut marks the form as an update via the `_method=PUT` override.
func (f *Form) MethodPut() *Form {
	return f.Set("_method", "PUT")
}

// File attaches a file field. The reader is consumed immediately so the form
// body can be re-sent on retry.
func (f *Form) File(field, filename string, r io.Reader) *Form {
	if f.err != nil {
		return f
	}
	part, err := f.writer.CreateFormFile(field, filename)
	if err != nil {
		f.err = err
		return f
	}
	if _, err := io.Copy(part, r); err != nil {
		f.err = err
	}
	return f
}

// Err returns the first error encountered while building the form.
func (f *Form) Err() error { return f.err }

// Encode finalizes the form and returns its content type and body bytes.
// The returned bytes are stable and may be sent more than once.
func (f *Form) Encode() (contentType string, body []byte) {
	_ = f.writer.Close()
	return f.writer.FormDataContentType(), f.buf.Bytes()
}
