package main

// Notes:
// - GenerateCompletion: we test that shell scripts are generated with expected
//   content markers. We do not run the scripts in the target shells.

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGenerateCompletion_SupportedShells - Shell completion script generation
// ---------------------------------------------------------------------------

func TestGenerateCompletion_SupportedShells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		shell        Shell
		wantContains []string
	}{
		{
			name:  "bash",
			shell: ShellBash,
			wantContains: []string{
				"_redmark_completions",
				"complete -o filenames -F _redmark_completions redmark",
				"compgen",
				"render",
				"--output|-o)",
				"--theme)",
				"paper",
			},
		},
		{
			name:  "zsh",
			shell: ShellZsh,
			wantContains: []string{
				"#compdef redmark",
				"_describe",
				"_arguments",
				"'(-o --output)'{-o,--output}",
				"--theme[theme name or .css file path]",
				"'1:argument:(bash zsh fish)'",
			},
		},
		{
			name:  "fish",
			shell: ShellFish,
			wantContains: []string{
				"complete -c redmark",
				"__fish_redmark_needs_command",
				"__fish_redmark_using_command render",
				"-l output -s o",
				"-l format -s f -x -a 'text yaml json'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion(%q) returned error: %v", tt.shell, err)
			}

			output := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing expected content %q", want)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestGenerateCompletion_UnsupportedShell - Error handling for unknown shells
// ---------------------------------------------------------------------------

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()

	for _, shell := range []Shell{"", "sh", "powershell"} {
		var buf bytes.Buffer
		err := GenerateCompletion(&buf, shell)
		if !errors.Is(err, ErrUnsupportedShell) {
			t.Errorf("GenerateCompletion(%q) = %v, want ErrUnsupportedShell", shell, err)
		}
		if buf.Len() != 0 {
			t.Errorf("GenerateCompletion(%q) wrote output on error", shell)
		}
	}
}

// ---------------------------------------------------------------------------
// TestGetCommands - Command registry mirrors the flag sets
// ---------------------------------------------------------------------------

func TestGetCommands(t *testing.T) {
	t.Parallel()

	cmds := getCommands()
	byName := make(map[string]commandDef, len(cmds))
	for _, c := range cmds {
		byName[c.Name] = c
	}

	for _, name := range commandNames {
		if _, ok := byName[name]; !ok {
			t.Errorf("command %q missing from completion registry", name)
		}
	}

	flagsOf := func(cmd string) map[string]flagDef {
		out := make(map[string]flagDef)
		for _, f := range byName[cmd].Flags {
			out[f.Long] = f
		}
		return out
	}

	render := flagsOf(cmdRender)
	for _, want := range []string{"output", "workers", "theme", "code-style", "toc", "no-toc", "fragment", "unsafe", "image-base", "include-drafts"} {
		if _, ok := render[want]; !ok {
			t.Errorf("render flag --%s missing", want)
		}
	}
	if render["theme"].Type != flagEnum || len(render["theme"].Values) == 0 {
		t.Errorf("--theme should complete theme names: %+v", render["theme"])
	}
	if render["output"].Type != flagDir {
		t.Errorf("--output should complete directories")
	}
	if render["config"].Type != flagFile {
		t.Errorf("--config should complete files")
	}
	if render["fragment"].Type != flagBool {
		t.Errorf("--fragment should be a bool flag")
	}

	if _, ok := flagsOf(cmdDoctor)["json"]; !ok {
		t.Error("doctor flag --json missing")
	}
	if _, ok := flagsOf(cmdPreview)["width"]; !ok {
		t.Error("preview flag --width missing")
	}
}

func TestRunMain_Completion(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	if code := runMain([]string{"redmark", "completion"}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(env.stdout.String(), "Usage: redmark completion <shell>") {
		t.Errorf("stdout = %q", env.stdout.String())
	}

	env = newTestEnv(nil)
	if code := runMain([]string{"redmark", "completion", "tcsh"}, env.Environment); code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
}
