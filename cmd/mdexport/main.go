package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-mdexport/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
// A first argument that is a flag, a markdown file or a directory runs
// convert implicitly.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "convert":
		return convertMain(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mdexport %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	case "completion":
		if err := runCompletion(rest, env); err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	}

	if looksLikeInput(cmd) {
		return convertMain(args[1:], env)
	}

	fmt.Fprintf(env.Stderr, "error: %v: %s\n\n", ErrUnknownCommand, cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// looksLikeInput reports whether arg starts an implicit convert invocation.
func looksLikeInput(arg string) bool {
	if strings.HasPrefix(arg, "-") || fileutil.IsMarkdown(arg) {
		return true
	}
	info, err := os.Stat(arg)
	return err == nil && info.IsDir()
}

// convertMain parses convert flags and runs the conversion.
func convertMain(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		err = fmt.Errorf("%w: %v", ErrUsage, err)
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	if len(positional) > 1 {
		err := fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	setMaxProcs(flags.common.verbose, env.Stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// setMaxProcs configures GOMAXPROCS from the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}
