package utils

import (
	"testing"
)

func TestStripRefPrefix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"refs/heads/main", "main"},
		{"refs/heads/feature/login", "feature/login"},
		{"refs/tags/v1.2.3", "v1.2.3"},
		{"main", "main"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := StripRefPrefix(tt.input)
			if got != tt.expected {
				t.Errorf("StripRefPrefix(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected string
	}{
		{"first wins", []string{"a", "b"}, "a"},
		{"skips empty", []string{"", "b"}, "b"},
		{"skips whitespace", []string{"  ", "b"}, "b"},
		{"all empty", []string{"", ""}, ""},
		{"no args", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstNonEmpty(tt.input...)
			if got != tt.expected {
				t.Errorf("FirstNonEmpty(%v) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}
