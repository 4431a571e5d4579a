// Package main provides the CLI entrypoint for specgen.
//
// specgen compiles tabular message specifications:
//   - build turns spec rows into the canonical field tree
//   - layout computes byte offsets of every leaf
//   - check compares field sets extracted from several artifacts
//   - slice splits a fixed-width payload into its fields
//   - dump prints the raw tree for debugging
//   - serve exposes the same operations over HTTP
package main

import (
	"fmt"
	"io"
	"os"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	exitRuntime = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	cmd, ok := commands[args[0]]
	if !ok {
		if args[0] == "help" || args[0] == "-h" || args[0] == "-help" || args[0] == "--help" {
			usage(stdout)
			return exitOK
		}

		fmt.Fprintf(stderr, "specgen: unknown command %q\n\n", args[0])
		usage(stderr)

		return exitUsage
	}

	return cmd.run(args[1:], stdout, stderr)
}

type command struct {
	summary string
	run     func(args []string, stdout, stderr io.Writer) int
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"build":  {"compile rows into the canonical tree (yaml or json)", runBuild},
		"layout": {"print offset tables (markdown, html or json)", runLayout},
		"check":  {"compare descriptor sets across artifacts", runCheck},
		"slice":  {"split a fixed-width payload into fields", runSlice},
		"dump":   {"print the raw tree structure", runDump},
		"serve":  {"serve the HTTP API", runServe},
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: specgen <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")

	for _, name := range []string{"build", "layout", "check", "slice", "dump", "serve"} {
		fmt.Fprintf(w, "  %-7s %s\n", name, commands[name].summary)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "run 'specgen <command> -h' for command flags")
}
