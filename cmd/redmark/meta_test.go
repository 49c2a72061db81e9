package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	redmark "github.com/alnah/go-redmark"
	"github.com/alnah/go-redmark/internal/yamlutil"
)

// ---------------------------------------------------------------------------
// TestRunMain_Meta - Metadata and post summary output
// ---------------------------------------------------------------------------

func TestRunMain_Meta(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "hello.md", samplePost)

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		if code := runMain([]string{"redmark", "meta", in}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr:\n%s", code, env.stderr.String())
		}
		out := env.stdout.String()
		for _, want := range []string{"title:", "Hello World", "hello-world", "go, web", "notes", "header:", "  date: 2025-03-01"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("yaml keeps header order", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		if code := runMain([]string{"redmark", "meta", in, "-f", "yaml"}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr:\n%s", code, env.stderr.String())
		}
		out := env.stdout.String()
		title := strings.Index(out, "  title: Hello World")
		tags := strings.Index(out, "  tags:")
		if title < 0 || tags < 0 || title > tags {
			t.Errorf("metadata keys out of order:\n%s", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		if code := runMain([]string{"redmark", "meta", in, "--format", "json"}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr:\n%s", code, env.stderr.String())
		}

		var got struct {
			Post struct {
				Title string   `yaml:"title"`
				Slug  string   `yaml:"slug"`
				Tags  []string `yaml:"tags"`
			} `yaml:"post"`
		}
		if err := yamlutil.Unmarshal(env.stdout.Bytes(), &got); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, env.stdout.String())
		}
		if got.Post.Title != "Hello World" || got.Post.Slug != "hello-world" {
			t.Errorf("post = %+v", got.Post)
		}
		if diff := cmp.Diff([]string{"go", "web"}, got.Post.Tags); diff != "" {
			t.Errorf("tags mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		if code := runMain([]string{"redmark", "meta", in, "-f", "xml"}, env.Environment); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})
}

// ---------------------------------------------------------------------------
// TestReadMarkdown - Single file argument
// ---------------------------------------------------------------------------

func TestReadMarkdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "a.md", "# A")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no args", nil, ErrNoInput},
		{"two args", []string{in, in}, ErrUsage},
		{"wrong extension", []string{"a.txt"}, ErrInvalidExtension},
		{"missing", []string{filepath.Join(dir, "b.md")}, ErrReadMarkdown},
		{"ok", []string{in}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, content, err := readMarkdown(tt.args)
			if tt.wantErr == nil {
				if err != nil || content != "# A" {
					t.Errorf("readMarkdown() = %q, %v", content, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_TOC - Table of contents output
// ---------------------------------------------------------------------------

func TestRunMain_TOC(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "toc.md", "# Title\n\n## Setup\n\n### Install\n\n## Setup\n\n#### Deep\n")

	t.Run("text defaults", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		if code := runMain([]string{"redmark", "toc", in}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr:\n%s", code, env.stderr.String())
		}
		want := "- Setup (#setup)\n  - Install (#install)\n- Setup (#setup-1)\n"
		if diff := cmp.Diff(want, env.stdout.String()); diff != "" {
			t.Errorf("output mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("yaml with depths", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		args := []string{"redmark", "toc", in, "-f", "yaml", "--toc-min-depth", "1", "--toc-max-depth", "1"}
		if code := runMain(args, env.Environment); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr:\n%s", code, env.stderr.String())
		}

		var items []redmark.TocItem
		if err := yamlutil.Unmarshal(env.stdout.Bytes(), &items); err != nil {
			t.Fatalf("parsing output: %v", err)
		}
		want := []redmark.TocItem{{ID: "title", Text: "Title", Level: 1, Line: 0}}
		if diff := cmp.Diff(want, items); diff != "" {
			t.Errorf("items mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invalid depth", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		if code := runMain([]string{"redmark", "toc", in, "--toc-min-depth", "7"}, env.Environment); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(env.stderr.String(), "hint:") {
			t.Errorf("stderr should carry a hint: %s", env.stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Preview - Terminal rendering
// ---------------------------------------------------------------------------

func TestRunMain_Preview(t *testing.T) {
	t.Parallel()

	in := writeFile(t, t.TempDir(), "hello.md", samplePost)

	env := newTestEnv(nil)
	if code := runMain([]string{"redmark", "preview", in, "--width", "60"}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr:\n%s", code, env.stderr.String())
	}
	out := env.stdout.String()
	for _, want := range []string{"Hello World", "First Section", "Println"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q:\n%s", want, out)
		}
	}

	env = newTestEnv(nil)
	if code := runMain([]string{"redmark", "preview", in, "--width", "-1"}, env.Environment); code != ExitUsage {
		t.Errorf("negative width exit = %d, want %d", code, ExitUsage)
	}
}
