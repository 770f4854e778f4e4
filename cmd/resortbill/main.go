package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args[1] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	if err := loadDotEnv(dotEnvFile); err != nil {
		fmt.Fprintf(env.Stderr, "warning: %v\n", err)
	}
	warnUnknownEnvVars(env.Stderr, env.Environ())

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "render":
		return reportError(env, runRender(ctx, rest, env))
	case "preview":
		return reportError(env, runPreview(ctx, rest, env))
	case "quote":
		return reportError(env, runQuote(rest, env))
	case "doctor":
		return reportError(env, runDoctorCmd(rest, env))
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "resortbill %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		return reportError(env, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd))
	}
}

// reportError prints err with its hint and maps it to an exit code.
// Requests for help are not errors.
func reportError(env *Environment, err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	if errors.Is(err, ErrUnknownCommand) {
		printUsage(env.Stderr)
	}
	return exitCodeFor(err)
}
