package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("strconv.Atoi: parsing \"x\": invalid syntax")
	err := Wrap(ErrCodeMalformedOverlay, cause, "record id %q", "x")

	if err.Code != ErrCodeMalformedOverlay {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMalformedOverlay)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeAmbiguousSource, "test"),
			code:     ErrCodeAmbiguousSource,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeAmbiguousSource, "test"),
			code:     ErrCodeMissingAsset,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidDocument, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInvalidDocument,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("parse: %w", New(ErrCodeMalformedOverlay, "bad id")),
			code:     ErrCodeMalformedOverlay,
			expected: true,
		},
		{
			name:     "layer error",
			err:      NewLayerError(ErrCodeAmbiguousSource, 7, "Title", "empty style run"),
			code:     ErrCodeAmbiguousSource,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeMissingAsset, "test"),
			expected: ErrCodeMissingAsset,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLayerError(t *testing.T) {
	err := NewLayerError(ErrCodeAmbiguousSource, 12, "Price", "text layer has no style runs")

	msg := err.Error()
	for _, want := range []string{"AMBIGUOUS_SOURCE", "layer 12", `"Price"`, "no style runs"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	var le *LayerError
	if !errors.As(fmt.Errorf("build: %w", err), &le) {
		t.Fatal("errors.As should find *LayerError through wrapping")
	}
	if le.LayerID != 12 || le.LayerName != "Price" {
		t.Errorf("got layer %d %q, want 12 \"Price\"", le.LayerID, le.LayerName)
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeMalformedOverlay,
		ErrCodeAmbiguousSource,
		ErrCodeMissingAsset,
		ErrCodeInvalidInput,
		ErrCodeInvalidDocument,
		ErrCodeInvalidConfig,
		ErrCodeInvalidPath,
		ErrCodeFileNotFound,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
