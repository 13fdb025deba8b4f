// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexBool is a boolean that tolerates the heterogeneous status encodings the
// backend is known to emit: true/false, 0/1, "0"/"1", "true"/"false",
// "active"/"inactive". Anything unrecognized decodes to false. Coercion
// happens once, at the ingest boundary; everything downstream sees a plain
// bool.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}

	// Quoted string form
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = coerceBoolString(s)
		return nil
	}

	switch string(data) {
	case "true", "1":
		*b = true
	default:
		*b = false
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// Bool returns the coerced boolean value.
func (b FlexBool) Bool() bool { return bool(b) }

func coerceBoolString(s string) FlexBool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "active":
		return true
	default:
		return false
	}
}

// FlexInt64 is an integer ID that tolerates both numeric and quoted-string
// JSON representations.
type FlexInt64 int64

// UnmarshalJSON implements json.Unmarshaler.
func (i *FlexInt64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*i = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*i = FlexInt64(n)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*i = FlexInt64(n)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (i FlexInt64) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(i))
}

// Int64 returns the underlying value.
func (i FlexInt64) Int64() int64 { return int64(i) }
