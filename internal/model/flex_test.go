package model

import (
	"encoding/json"
	"testing"
)

func TestFlexBoolUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"bool true", `true`, true},
		{"bool false", `false`, false},
		{"number one", `1`, true},
		{"number zero", `0`, false},
		{"string one", `"1"`, true},
		{"string zero", `"0"`, false},
		{"string true", `"true"`, true},
		{"string active", `"active"`, true},
		{"string inactive", `"inactive"`, false},
		{"string active uppercase", `"ACTIVE"`, true},
		{"null", `null`, false},
		{"garbage string", `"yes please"`, false},
		{"other number", `2`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b FlexBool
			if err := json.Unmarshal([]byte(tt.input), &b); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			if b.Bool() != tt.expected {
				t.Errorf("FlexBool(%s) = %v, want %v", tt.input, b.Bool(), tt.expected)
			}
		})
	}
}

func TestFlexBoolInStruct(t *testing.T) {
	var post BlogPost
	raw := `{"id":1,"slug":"a","status":"1"}`
	if err := json.Unmarshal([]byte(raw), &post); err != nil {
		t.Fatalf("unmarshal post: %v", err)
	}
	if !post.Status.Bool() {
		t.Error("status \"1\" should coerce to true")
	}
	if post.ID.Int64() != 1 {
		t.Errorf("id = %d, want 1", post.ID.Int64())
	}
}

func TestFlexInt64Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{"number", `42`, 42, false},
		{"string number", `"42"`, 42, false},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"non-numeric string", `"abc"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var i FlexInt64
			err := json.Unmarshal([]byte(tt.input), &i)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			if i.Int64() != tt.expected {
				t.Errorf("FlexInt64(%s) = %d, want %d", tt.input, i.Int64(), tt.expected)
			}
		})
	}
}
