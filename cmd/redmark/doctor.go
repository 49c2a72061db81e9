package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	redmark "github.com/alnah/go-redmark"
	"github.com/alnah/go-redmark/internal/config"
	"github.com/alnah/go-redmark/internal/render"
	"github.com/alnah/go-redmark/internal/yamlutil"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config string
	json   bool
}

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `yaml:"status"` // "ready", "warnings", "errors"
	Config   configInfo `yaml:"config"`
	Assets   assetInfo  `yaml:"assets"`
	Env      envInfo    `yaml:"environment"`
	System   systemInfo `yaml:"system"`
	Warnings []string   `yaml:"warnings,omitempty"`
	Errors   []string   `yaml:"errors,omitempty"`
}

// configInfo describes the config file in use.
type configInfo struct {
	Source    string `yaml:"source"` // file name or "defaults"
	Valid     bool   `yaml:"valid"`
	Theme     string `yaml:"theme"`
	CodeStyle string `yaml:"code_style"`
}

// assetInfo holds asset resolution results.
type assetInfo struct {
	Themes     []string `yaml:"themes"`
	CodeStyles int      `yaml:"code_styles"`
	BasePath   string   `yaml:"base_path,omitempty"`
	Resolved   bool     `yaml:"resolved"` // theme and code style load
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string   `yaml:"os"`
	Arch          string   `yaml:"arch"`
	Container     bool     `yaml:"container"`
	ContainerHint string   `yaml:"container_hint,omitempty"`
	CI            bool     `yaml:"ci"`
	Variables     []string `yaml:"variables,omitempty"` // REDMARK_* in use
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable   bool   `yaml:"temp_writable"`
	OutputDir      string `yaml:"output_dir,omitempty"`
	OutputWritable bool   `yaml:"output_writable"`
}

func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(cmdDoctor, flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	return fs
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	f := &doctorFlags{}
	fs := newDoctorFlagSet(f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printCommandUsage(env.Stderr, cmdDoctor) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	result := runDoctor(f.config, env)

	if f.json {
		data, err := yamlutil.MarshalJSON(result)
		if err != nil {
			fmt.Fprintln(env.Stderr, err)
			return ExitGeneral
		}
		fmt.Fprintln(env.Stdout, string(data))
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(configName string, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	cfg := checkConfig(result, configName, env)
	checkAssets(result, cfg)
	checkEnvironment(result, env)
	checkSystem(result, cfg)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkConfig loads the config the render command would use.
func checkConfig(result *doctorResult, name string, env *Environment) *config.Config {
	envCfg := loadEnvConfig(env.Getenv)
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	result.Config.Source = "defaults"
	if name != "" {
		result.Config.Source = name
		loaded, err := config.LoadConfig(name)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
			return cfg
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return cfg
	}
	result.Config.Valid = true
	result.Config.Theme = cfg.Render.Theme
	result.Config.CodeStyle = cfg.Render.CodeStyle
	return cfg
}

// checkAssets verifies that the configured theme and code style resolve.
func checkAssets(result *doctorResult, cfg *config.Config) {
	themes, err := redmark.Themes()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Embedded themes unreadable: %v", err))
	}
	result.Assets.Themes = themes
	result.Assets.CodeStyles = len(render.StyleNames())
	result.Assets.BasePath = cfg.Assets.BasePath

	if _, err := newRenderer(cfg, zerolog.Nop(), nil); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Assets: %v", withHint(err)))
		return
	}
	result.Assets.Resolved = true
}

// checkEnvironment detects container and CI environments and REDMARK_*
// variables.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container, result.Env.ContainerHint = isContainer(env.Getenv)

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if env.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	for name := range knownEnvVars {
		if env.Getenv(name) != "" {
			result.Env.Variables = append(result.Env.Variables, name)
		}
	}
	slices.Sort(result.Env.Variables)

	for _, name := range unknownEnvVars(env.Environ()) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Unknown environment variable %s (typo?)", name))
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies that temp and output directories are writable.
func checkSystem(result *doctorResult, cfg *config.Config) {
	tmpDir := os.TempDir()
	if err := probeWritable(tmpDir); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		result.System.TempWritable = true
	}

	out := cfg.Output.DefaultDir
	if out == "" {
		return
	}
	result.System.OutputDir = out
	if _, err := os.Stat(out); os.IsNotExist(err) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Output directory %s does not exist yet; it will be created", out))
		return
	}
	if err := probeWritable(out); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Output directory not writable: %s", out))
		return
	}
	result.System.OutputWritable = true
}

func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, "redmark-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(filepath.Clean(name))
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "redmark doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration")
	if r.Config.Valid {
		fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
		fmt.Fprintf(w, "  [OK] Theme: %s\n", r.Config.Theme)
		fmt.Fprintf(w, "  [OK] Code style: %s\n", r.Config.CodeStyle)
	} else {
		fmt.Fprintf(w, "  [ERROR] Source: %s\n", r.Config.Source)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Assets")
	fmt.Fprintf(w, "  [OK] Embedded themes: %d\n", len(r.Assets.Themes))
	fmt.Fprintf(w, "  [OK] Code styles: %d\n", r.Assets.CodeStyles)
	if r.Assets.BasePath != "" {
		fmt.Fprintf(w, "  [OK] Asset path: %s\n", r.Assets.BasePath)
	}
	if r.Assets.Resolved {
		fmt.Fprintln(w, "  [OK] Theme and code style resolve")
	} else {
		fmt.Fprintln(w, "  [ERROR] Theme or code style does not resolve")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	for _, v := range r.Env.Variables {
		fmt.Fprintf(w, "  [OK] %s is set\n", v)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	if r.System.OutputWritable {
		fmt.Fprintf(w, "  [OK] Output directory: %s writable\n", r.System.OutputDir)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to render")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
