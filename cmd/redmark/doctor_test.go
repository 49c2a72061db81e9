package main

// Notes:
// - runDoctor touches the real temp directory and the container markers of
//   the host; assertions avoid depending on the host environment.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-redmark/internal/yamlutil"
)

// ---------------------------------------------------------------------------
// TestRunDoctor - Diagnostic checks
// ---------------------------------------------------------------------------

func TestRunDoctor(t *testing.T) {
	t.Parallel()

	t.Run("defaults are ready", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		r := runDoctor("", env.Environment)

		if len(r.Errors) != 0 {
			t.Fatalf("errors = %v", r.Errors)
		}
		if r.Config.Source != "defaults" || !r.Config.Valid || !r.Assets.Resolved {
			t.Errorf("result = %+v", r)
		}
		if !r.System.TempWritable {
			t.Error("temp dir should be writable")
		}
	})

	t.Run("bad theme is an error", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(map[string]string{"REDMARK_THEME": "missing"})
		r := runDoctor("", env.Environment)

		if r.Status != statusErrors || r.Assets.Resolved {
			t.Errorf("status = %q, resolved = %v", r.Status, r.Assets.Resolved)
		}
		if len(r.Errors) == 0 || !strings.Contains(r.Errors[0], "missing") {
			t.Errorf("errors = %v", r.Errors)
		}
	})

	t.Run("unknown variable warns", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(map[string]string{"REDMARK_THEMES": "night", "REDMARK_AUTHOR": "Ada"})
		r := runDoctor("", env.Environment)

		if len(r.Warnings) != 1 || !strings.Contains(r.Warnings[0], "REDMARK_THEMES") {
			t.Errorf("warnings = %v", r.Warnings)
		}
		if len(r.Env.Variables) != 1 || r.Env.Variables[0] != "REDMARK_AUTHOR" {
			t.Errorf("variables = %v", r.Env.Variables)
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		r := runDoctor(filepath.Join(t.TempDir(), "none.yaml"), env.Environment)

		if r.Status != statusErrors || r.Config.Valid {
			t.Errorf("status = %q, valid = %v", r.Status, r.Config.Valid)
		}
	})

	t.Run("output directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfgPath := filepath.Join(dir, "site.yaml")
		if err := os.WriteFile(cfgPath, []byte("output:\n  defaultDir: "+dir+"\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		env := newTestEnv(nil)
		r := runDoctor(cfgPath, env.Environment)

		if !r.System.OutputWritable || r.System.OutputDir != dir {
			t.Errorf("system = %+v, errors = %v", r.System, r.Errors)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Output formats and exit codes
// ---------------------------------------------------------------------------

func TestRunDoctorCmd(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		if code := runMain([]string{"redmark", "doctor"}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit = %d, stdout:\n%s", code, env.stdout.String())
		}
		out := env.stdout.String()
		for _, want := range []string{"redmark doctor", "Configuration", "Assets", "Environment", "System", "Status: Ready"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(map[string]string{"REDMARK_CODE_STYLE": "nope"})
		code := runMain([]string{"redmark", "doctor", "--json"}, env.Environment)
		if code != ExitGeneral {
			t.Errorf("exit = %d, want %d", code, ExitGeneral)
		}

		var got struct {
			Status string   `yaml:"status"`
			Errors []string `yaml:"errors"`
		}
		if err := yamlutil.Unmarshal(env.stdout.Bytes(), &got); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, env.stdout.String())
		}
		if got.Status != statusErrors || len(got.Errors) == 0 {
			t.Errorf("result = %+v", got)
		}
	})

	t.Run("bad flag", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		if code := runMain([]string{"redmark", "doctor", "--nope"}, env.Environment); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})
}
