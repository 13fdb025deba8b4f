// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrorKind classifies backend API failures for user-facing reporting.
type ErrorKind int

const (
	// KindNetwork is a transport-level failure: connection refused, timeout,
	// context cancellation. The request may never have reached the backend.
	KindNetwork ErrorKind = iota

	// KindValidation is HTTP 422 with field-keyed messages.
	KindValidation

	// KindTooLarge is HTTP 413 (upload exceeds the backend limit).
	KindTooLarge

	// KindClient is any other 4xx.
	KindClient

	// KindServer is any 5xx.
	KindServer
)

// Error is a classified backend API failure. Write-path handlers surface
// UserMessage to the operator; read paths log Error and degrade to empty
// values.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string              // Server-reported message, if any
	Fields     map[string][]string // 422 field errors, keyed by field name
	Err        error               // Underlying transport error for KindNetwork
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("api: network error: %v", e.Err)
	case KindValidation:
		return fmt.Sprintf("api: validation failed: %s", e.joinedFieldErrors())
	default:
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
}

// Unwrap returns the underlying transport error, if any.
func (e *Error) Unwrap() error { return e.Err }

// UserMessage returns the operator-facing message for this failure. The site
// and its admin are Russian-language, matching the backend's audience.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindNetwork:
		return "Ошибка соединения с сервером"
	case KindValidation:
		if msg := e.joinedFieldErrors(); msg != "" {
			return msg
		}
		return "Проверьте правильность заполнения формы"
	case KindTooLarge:
		return "Файл слишком большой (максимум 50 МБ)"
	case KindServer:
		return "Ошибка сервера, попробуйте позже"
	default:
		return fmt.Sprintf("Ошибка запроса (код %d)", e.StatusCode)
	}
}

// joinedFieldErrors joins 422 field messages into one string, verbatim,
// in stable field order.
func (e *Error) joinedFieldErrors() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var msgs []string
	for _, f := range fields {
		msgs = append(msgs, e.Fields[f]...)
	}
	return strings.Join(msgs, "; ")
}

// kindForStatus maps an HTTP status code to an ErrorKind.
func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusRequestEntityTooLarge:
		return KindTooLarge
	case status == http.StatusUnprocessableEntity:
		return KindValidation
	case status >= 500:
		return KindServer
	default:
		return KindClient
	}
}

// UserMessage extracts an operator-facing message from any error. Non-API
// errors fall back to the generic connection failure text.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return "Ошибка соединения с сервером"
}

// IsNetwork reports whether the error is a transport-level failure.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}
