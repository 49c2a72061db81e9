package assets

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestAssetResolver - Custom directory with embedded fallback
// ---------------------------------------------------------------------------

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver(\"\") error = %v", err)
	}
	if r.HasCustomLoader() {
		t.Error("HasCustomLoader() = true, want false")
	}

	r, err = NewAssetResolver(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetResolver(dir) error = %v", err)
	}
	if !r.HasCustomLoader() {
		t.Error("HasCustomLoader() = false, want true")
	}

	if _, err := NewAssetResolver("/nonexistent/redmark/assets"); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewAssetResolver(missing) error = %v, want ErrInvalidBasePath", err)
	}
}

func TestAssetResolver_LoadStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "styles", "mine.css"), "/* mine */")
	writeFile(t, filepath.Join(dir, "styles", "paper.css"), "/* override */")

	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	tests := []struct {
		name    string
		style   string
		want    string
		wantErr error
	}{
		{name: "custom only", style: "mine", want: "/* mine */"},
		{name: "custom overrides embedded", style: "paper", want: "/* override */"},
		{name: "falls back to embedded", style: "night", want: "night: dark theme"},
		{name: "missing everywhere", style: "nope", wantErr: ErrStyleNotFound},
		{name: "validation not fallen back", style: "../x", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.LoadStyle(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", tt.style, err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("LoadStyle(%q) = %.60q, want it to contain %q", tt.style, got, tt.want)
			}
		})
	}
}

func TestAssetResolver_LoadTemplateSet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "templates", "default", "page.html"), "custom page")
	writeFile(t, filepath.Join(dir, "templates", "default", "header.html"), "custom header")
	writeFile(t, filepath.Join(dir, "templates", "broken", "page.html"), "only page")

	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	ts, err := r.LoadTemplateSet(DefaultTemplateSetName)
	if err != nil {
		t.Fatalf("LoadTemplateSet(default) error = %v", err)
	}
	if ts.Page != "custom page" {
		t.Errorf("Page = %q, want custom override", ts.Page)
	}

	// An incomplete custom set is an error, not a reason to fall back.
	if _, err := r.LoadTemplateSet("broken"); !errors.Is(err, ErrIncompleteTemplateSet) {
		t.Errorf("LoadTemplateSet(broken) error = %v, want ErrIncompleteTemplateSet", err)
	}

	embeddedOnly, _ := NewAssetResolver("")
	ts, err = embeddedOnly.LoadTemplateSet(DefaultTemplateSetName)
	if err != nil || !strings.Contains(ts.Page, "<!DOCTYPE html>") {
		t.Errorf("embedded LoadTemplateSet(default) = %v, %v", ts, err)
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"style not found", ErrStyleNotFound, true},
		{"template set not found", ErrTemplateSetNotFound, true},
		{"wrapped", fmt.Errorf("%w: %q", ErrStyleNotFound, "x"), true},
		{"incomplete set", ErrIncompleteTemplateSet, false},
		{"invalid name", ErrInvalidAssetName, false},
		{"read error", ErrAssetRead, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isNotFoundError(tt.err); got != tt.want {
				t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
