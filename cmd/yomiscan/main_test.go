package main

import (
	"strings"
	"testing"

	"github.com/jbukl/yomitan/internal/config"
)

func TestExtract(t *testing.T) {
	page := []byte(`<html><body><p>Hello <b>world</b></p><p>second</p></body></html>`)

	tests := []struct {
		name string
		scan config.ScanConfig
		opts options
		want string
	}{
		{
			name: "whole document",
			scan: config.ScanConfig{LayoutContent: true},
			want: "Hello world\nsecond",
		},
		{
			name: "limited length",
			scan: config.ScanConfig{Length: 5, LayoutContent: true},
			want: "Hello",
		},
		{
			name: "backward from phrase",
			scan: config.ScanConfig{Length: -6, LayoutContent: true},
			opts: options{find: "world"},
			want: "Hello",
		},
		{
			name: "no layout content",
			scan: config.ScanConfig{LayoutContent: false},
			want: "Hello worldsecond",
		},
		{
			name: "grapheme truncation",
			scan: config.ScanConfig{LayoutContent: true, MaxGraphemes: 3},
			want: "Hel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extract(page, tt.scan, tt.opts)
			if err != nil {
				t.Fatalf("extract() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractFindMissing(t *testing.T) {
	_, err := extract([]byte("<p>abc</p>"), config.ScanConfig{}, options{find: "zzz"})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("extract() error = %v, want not-found error", err)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	_, err := extract([]byte("<html><body></body></html>"), config.ScanConfig{}, options{})
	if err == nil {
		t.Error("extract() error = nil, want error for empty document")
	}
}
