package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for a command the CLI does not define.
var ErrUnknownCommand = errors.New("unknown command")

// Command names.
const (
	cmdRender     = "render"
	cmdMeta       = "meta"
	cmdTOC        = "toc"
	cmdPreview    = "preview"
	cmdIndex      = "index"
	cmdStyles     = "styles"
	cmdDoctor     = "doctor"
	cmdCompletion = "completion"
	cmdVersion    = "version"
	cmdHelp       = "help"
)

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain runs the CLI with args (program name first) and returns the exit
// code.
func runMain(args []string, env *Environment) int {
	verbose := slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
	setMaxProcs(newLogger(env.Stderr, false, verbose))

	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	// doctor prints its own findings and picks its exit code.
	if args[1] == cmdDoctor {
		return runDoctorCmd(args[2:], env)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err := run(ctx, args[1], args[2:], env)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintln(env.Stderr, err)
	if errors.Is(err, ErrUnknownCommand) {
		printUsage(env.Stderr)
	}
	return exitCodeFor(err)
}

// setMaxProcs sizes GOMAXPROCS to the container CPU quota, logging the
// result at debug level.
func setMaxProcs(log zerolog.Logger) {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Debug().Msgf(format, args...)
	}))
}

// run dispatches one command.
func run(ctx context.Context, cmd string, args []string, env *Environment) error {
	switch cmd {
	case cmdRender:
		flags, rest, err := parseRenderFlags(args, env.Stderr)
		if err != nil {
			return err
		}
		log := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
		return runRender(ctx, rest, flags, log, env)

	case cmdMeta, cmdTOC, cmdPreview, cmdIndex:
		flags, rest, err := parseDocFlags(cmd, args, env.Stderr)
		if err != nil {
			return err
		}
		log := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
		switch cmd {
		case cmdMeta:
			return runMeta(rest, flags, log, env)
		case cmdTOC:
			return runTOC(rest, flags, env)
		case cmdPreview:
			return runPreview(ctx, rest, flags, log, env)
		default:
			return runIndex(rest, flags, log, env)
		}

	case cmdStyles:
		return runStyles(env.Stdout)

	case cmdCompletion:
		return runCompletion(args, env)

	case cmdVersion, "--version":
		fmt.Fprintf(env.Stdout, "redmark %s\n", Version)
		return nil

	case cmdHelp, "-h", "--help":
		return runHelp(args, env)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}
