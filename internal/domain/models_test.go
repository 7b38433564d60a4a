package domain

import (
	"testing"
	"time"
)

func TestNewStorageKey(t *testing.T) {
	ts := time.UnixMilli(1700000000000)

	tests := []struct {
		name     string
		filename string
		want     StorageKey
	}{
		{"plain filename", "receipt.png", "uploads/1700000000000-receipt.png"},
		{"directory part dropped", "../../etc/passwd.png", "uploads/1700000000000-passwd.png"},
		{"no extension", "scan", "uploads/1700000000000-scan"},
		{"empty filename", "", "uploads/1700000000000-image"},
		{"dot", ".", "uploads/1700000000000-image"},
		{"slash", "/", "uploads/1700000000000-image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewStorageKey(ts, tt.filename); got != tt.want {
				t.Errorf("NewStorageKey(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestStorageKeyMarkdown(t *testing.T) {
	tests := []struct {
		name string
		key  StorageKey
		want StorageKey
	}{
		{"png", "uploads/1700000000000-receipt.png", "uploads/1700000000000-receipt.md"},
		{"only last extension replaced", "uploads/1-a.b.jpeg", "uploads/1-a.b.md"},
		{"no extension gets one", "uploads/1-scan", "uploads/1-scan.md"},
		{"dotfile", "uploads/1-.env", "uploads/1-.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.Markdown(); got != tt.want {
				t.Errorf("%q.Markdown() = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestProcessingTime(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"whole seconds", 2 * time.Second, "2.00s"},
		{"sub-second", 450 * time.Millisecond, "0.45s"},
		{"truncated to two decimals", 1234 * time.Millisecond, "1.23s"},
		{"zero", 0, "0.00s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := OcrResult{Elapsed: tt.elapsed}
			if got := r.ProcessingTime(); got != tt.want {
				t.Errorf("ProcessingTime() = %q, want %q", got, tt.want)
			}
		})
	}
}
