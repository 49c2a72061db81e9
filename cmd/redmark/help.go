package main

import (
	"fmt"
	"io"
	"slices"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: redmark <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render      Render markdown files to HTML")
	fmt.Fprintln(w, "  meta        Print metadata and post summary of a file")
	fmt.Fprintln(w, "  toc         Print the table of contents of a file")
	fmt.Fprintln(w, "  preview     Preview a file in the terminal")
	fmt.Fprintln(w, "  index       List posts grouped by category")
	fmt.Fprintln(w, "  styles      List themes and code styles")
	fmt.Fprintln(w, "  doctor      Check configuration and environment")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'redmark help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: redmark render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto, max 32)")
	fmt.Fprintln(w, "      --include-drafts      Render posts marked published: false")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Shape:")
	fmt.Fprintln(w, "      --fragment            Body only, without page shell or styles")
	fmt.Fprintln(w, "      --no-header           Omit the post header")
	fmt.Fprintln(w, "      --unsafe              Skip HTML sanitization")
	fmt.Fprintln(w, "      --image-base <s>      URL or directory for relative links and images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --toc                 Insert a table of contents")
	fmt.Fprintln(w, "      --no-toc              Disable table of contents")
	fmt.Fprintln(w, "      --toc-title <s>       TOC heading text")
	fmt.Fprintln(w, "      --toc-min-depth <n>   Min heading depth (1-6, default: 2)")
	fmt.Fprintln(w, "      --toc-max-depth <n>   Max heading depth (1-6, default: 3)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --theme <s>           Theme name or .css file path")
	fmt.Fprintln(w, "      --code-style <s>      Syntax highlighting style")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file appended after the theme")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output and timing")
	fmt.Fprintln(w)
	printEnvironmentHelp(w)
}

func printEnvironmentHelp(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  REDMARK_CONFIG, REDMARK_THEME, REDMARK_CODE_STYLE, REDMARK_INPUT_DIR,")
	fmt.Fprintln(w, "  REDMARK_OUTPUT_DIR, REDMARK_IMAGE_BASE, REDMARK_DATE_FORMAT,")
	fmt.Fprintln(w, "  REDMARK_AUTHOR, REDMARK_WORKERS")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// printCommandUsage prints usage for cmd.
func printCommandUsage(w io.Writer, cmd string) {
	switch cmd {
	case cmdRender:
		printRenderUsage(w)
	case cmdMeta:
		fmt.Fprintln(w, "Usage: redmark meta <file> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print the header metadata and the post summary of a file.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  -f, --format <s>          Output format: text, yaml, json")
		fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	case cmdTOC:
		fmt.Fprintln(w, "Usage: redmark toc <file> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print the table of contents of a file with anchor ids.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  -f, --format <s>          Output format: text, yaml, json")
		fmt.Fprintln(w, "      --toc-min-depth <n>   Min heading depth (1-6, default: 2)")
		fmt.Fprintln(w, "      --toc-max-depth <n>   Max heading depth (1-6, default: 3)")
	case cmdPreview:
		fmt.Fprintln(w, "Usage: redmark preview <file> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Render a file as styled terminal text.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "      --width <n>           Wrap width in columns (0 = 80)")
		fmt.Fprintln(w, "      --code-style <s>      Syntax highlighting style")
		fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	case cmdIndex:
		fmt.Fprintln(w, "Usage: redmark index <dir> [flags]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "List posts grouped by category, newest first.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  -f, --format <s>          Output format: text, yaml, json")
		fmt.Fprintln(w, "      --include-drafts      List posts marked published: false")
		fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	case cmdStyles:
		fmt.Fprintln(w, "Usage: redmark styles")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "List embedded themes and code highlighting styles.")
	case cmdDoctor:
		fmt.Fprintln(w, "Usage: redmark doctor [--json] [--config <name>]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Check configuration, assets, environment and writable directories.")
		fmt.Fprintln(w)
		printEnvironmentHelp(w)
	case cmdCompletion:
		printCompletionUsage(w)
	case cmdVersion:
		fmt.Fprintln(w, "Usage: redmark version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(w, "Usage: redmark help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	}
}

var commandNames = []string{
	cmdRender, cmdMeta, cmdTOC, cmdPreview, cmdIndex, cmdStyles,
	cmdDoctor, cmdCompletion, cmdVersion, cmdHelp,
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}
	if slices.Contains(commandNames, args[0]) {
		printCommandUsage(env.Stdout, args[0])
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
}
