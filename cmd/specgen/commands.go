package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"

	"specgen/internal/compile"
	"specgen/internal/config"
	"specgen/internal/consistency"
	"specgen/internal/diagnostic"
	"specgen/internal/observability"
	"specgen/internal/report"
	"specgen/internal/rowsource"
	"specgen/internal/server"
	"specgen/internal/spec"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	section    string
	logLevel   string
}

func (g *globalFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&g.configPath, "config", "", "config file (.yaml, .yml or .toml)")
	fs.StringVar(&g.section, "section", "", "section for rows that name none")
	fs.StringVar(&g.logLevel, "log-level", "", "log level (overrides config)")
}

// env is what a command needs after flags are parsed.
type env struct {
	cfg    *config.Config
	log    zerolog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (g *globalFlags) setup(stdout, stderr io.Writer) (*env, error) {
	cfg := config.Default()

	if g.configPath != "" {
		loaded, err := config.LoadFile(g.configPath)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}

	logger, err := observability.NewLogger(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, log: logger, stdout: stdout, stderr: stderr}, nil
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	return fs
}

// parse handles -h and flag errors uniformly. It returns a non-negative
// exit code when the command should stop.
func parse(fs *flag.FlagSet, args []string) int {
	err := fs.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}

	if err != nil {
		return exitUsage
	}

	return -1
}

func (e *env) compile(path, section string, withLayout bool) (*compile.Result, int) {
	rows, err := rowsource.Open(path, rowsource.Options{DefaultSection: section})
	if err != nil {
		e.log.Error().Err(err).Msg("reading rows failed")
		return nil, exitRuntime
	}

	res, err := compile.Run(rows, compile.Options{
		Build:  e.cfg.BuilderConfig(),
		Layout: withLayout,
		Limits: e.cfg.LayoutLimits(),
	})
	if err != nil {
		var se *spec.StructuralError
		if errors.As(err, &se) {
			e.log.Error().
				Str("kind", se.Kind.String()).
				Str("section", se.Provenance.Section).
				Int("row", se.Provenance.Row).
				Msg(err.Error())

			return nil, exitFailed
		}

		e.log.Error().Err(err).Msg("compile failed")

		return nil, exitRuntime
	}

	for d := range res.Diagnostics.All() {
		event := e.log.Info()
		switch d.Severity {
		case diagnostic.SeverityError:
			event = e.log.Error()
		case diagnostic.SeverityWarning:
			event = e.log.Warn()
		}

		event.Str("code", d.Code).Str("scope", d.Scope).Msg(d.String())
	}

	fields := 0
	for _, scope := range res.Tree.Scopes() {
		fields += spec.Count(scope.Fields)
	}

	e.log.Debug().Str("file", path).Int("rows", len(rows)).Int("fields", fields).Msg("compiled")

	return res, exitOK
}

// emit writes data to stdout, or atomically to out when set.
func (e *env) emit(out string, data []byte) int {
	if out == "" {
		if _, err := e.stdout.Write(data); err != nil {
			e.log.Error().Err(err).Msg("writing output failed")
			return exitRuntime
		}

		return exitOK
	}

	err := report.WriteFiles([]report.File{{Name: filepath.Base(out), Content: data}}, filepath.Dir(out))
	if err != nil {
		e.log.Error().Err(err).Msg("writing output failed")
		return exitRuntime
	}

	e.log.Info().Str("file", out).Msg("wrote output")

	return exitOK
}

func runBuild(args []string, stdout, stderr io.Writer) int {
	var (
		g      globalFlags
		format string
		out    string
	)

	fs := newFlagSet("build", stderr)
	g.register(fs)
	fs.StringVar(&format, "format", "yaml", "output format: yaml or json")
	fs.StringVar(&out, "o", "", "output file (default stdout)")

	if code := parse(fs, args); code >= 0 {
		return code
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: specgen build [flags] <rows.csv|rows.yaml>")
		return exitUsage
	}

	e, err := g.setup(stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "specgen:", err)
		return exitUsage
	}

	res, code := e.compile(fs.Arg(0), g.section, false)
	if code != exitOK {
		return code
	}

	var data []byte

	switch format {
	case "yaml":
		data, err = spec.MarshalCanonical(res.Tree)
	case "json":
		data, err = spec.MarshalCanonicalJSON(res.Tree)
	default:
		fmt.Fprintf(stderr, "specgen: unknown format %q\n", format)
		return exitUsage
	}

	if err != nil {
		e.log.Error().Err(err).Msg("serialization failed")
		return exitRuntime
	}

	return e.emit(out, data)
}

func runLayout(args []string, stdout, stderr io.Writer) int {
	var (
		g      globalFlags
		format string
		out    string
	)

	fs := newFlagSet("layout", stderr)
	g.register(fs)
	fs.StringVar(&format, "format", "markdown", "output format: markdown, html or json")
	fs.StringVar(&out, "o", "", "output file (default stdout)")

	if code := parse(fs, args); code >= 0 {
		return code
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: specgen layout [flags] <rows.csv|rows.yaml>")
		return exitUsage
	}

	e, err := g.setup(stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "specgen:", err)
		return exitUsage
	}

	res, code := e.compile(fs.Arg(0), g.section, true)
	if code != exitOK {
		return code
	}

	var data []byte

	switch format {
	case "json":
		data, err = json.MarshalIndent(res.Tables, "", "  ")
		data = append(data, '\n')
	case "markdown", "html":
		data, err = report.Layout(res.Tables, res.Diagnostics)
		if err == nil && format == "html" {
			data, err = report.ToHTML(data)
		}
	default:
		fmt.Fprintf(stderr, "specgen: unknown format %q\n", format)
		return exitUsage
	}

	if err != nil {
		e.log.Error().Err(err).Msg("rendering failed")
		return exitRuntime
	}

	return e.emit(out, data)
}

// listFlag collects a comma separated or repeated flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}

	return nil
}

func runCheck(args []string, stdout, stderr io.Writer) int {
	var (
		g        globalFlags
		strict   bool
		ignore   listFlag
		rows     string
		scope    string
		artifact string
		format   string
	)

	fs := newFlagSet("check", stderr)
	g.register(fs)
	fs.BoolVar(&strict, "strict", false, "treat unrecognized types as errors")
	fs.Var(&ignore, "ignore", "field paths to skip (repeatable, comma separated)")
	fs.StringVar(&rows, "rows", "", "also compare the fields of this spec rows file")
	fs.StringVar(&scope, "scope", string(spec.ScopeRequest), "scope of -rows to compare")
	fs.StringVar(&artifact, "artifact", "spec", "artifact name for -rows")
	fs.StringVar(&format, "format", "markdown", "output format: markdown or json")

	if code := parse(fs, args); code >= 0 {
		return code
	}

	if fs.NArg()+boolInt(rows != "") < 2 {
		fmt.Fprintln(stderr, "usage: specgen check [flags] <set.yaml> <set.yaml> [...]")
		return exitUsage
	}

	e, err := g.setup(stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "specgen:", err)
		return exitUsage
	}

	sets := make(map[string][]consistency.FieldRecord)

	for _, p := range fs.Args() {
		ds, err := consistency.LoadSet(p)
		if err != nil {
			e.log.Error().Err(err).Msg("loading descriptor set failed")
			return exitRuntime
		}

		if _, dup := sets[ds.Artifact]; dup {
			e.log.Error().Str("artifact", ds.Artifact).Msg("artifact given twice")
			return exitUsage
		}

		sets[ds.Artifact] = ds.Fields
	}

	if rows != "" {
		if _, dup := sets[artifact]; dup {
			e.log.Error().Str("artifact", artifact).Msg("artifact given twice")
			return exitUsage
		}

		res, code := e.compile(rows, g.section, false)
		if code != exitOK {
			return code
		}

		sets[artifact] = consistency.FromTree(res.Tree, spec.ScopeName(scope))
	}

	opts := e.cfg.CheckOptions()
	opts.Ignore = append(opts.Ignore, ignore...)
	opts.Strict = opts.Strict || strict

	res := consistency.Check(sets, opts)

	e.log.Info().
		Strs("artifacts", res.Artifacts).
		Int("issues", len(res.Issues)).
		Int("missing", res.Count(consistency.MissingField)).
		Bool("failed", res.Failed()).
		Msg("consistency check")

	var data []byte

	switch format {
	case "json":
		data, err = json.MarshalIndent(res, "", "  ")
		data = append(data, '\n')
	case "markdown":
		data, err = report.Issues(res)
	default:
		fmt.Fprintf(stderr, "specgen: unknown format %q\n", format)
		return exitUsage
	}

	if err != nil {
		e.log.Error().Err(err).Msg("rendering failed")
		return exitRuntime
	}

	if code := e.emit("", data); code != exitOK {
		return code
	}

	if diags := res.Diagnostics(); diags.HasErrors() {
		e.log.Debug().Err(diags.Err()).Msg("consistency errors")
		return exitFailed
	}

	return exitOK
}

func runSlice(args []string, stdout, stderr io.Writer) int {
	var (
		g     globalFlags
		scope string
		field string
	)

	fs := newFlagSet("slice", stderr)
	g.register(fs)
	fs.StringVar(&scope, "scope", string(spec.ScopeRequest), "message scope the payload belongs to")
	fs.StringVar(&field, "field", "", "print only this field path")

	if code := parse(fs, args); code >= 0 {
		return code
	}

	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "usage: specgen slice [flags] <rows.csv|rows.yaml> <payload>")
		return exitUsage
	}

	e, err := g.setup(stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "specgen:", err)
		return exitUsage
	}

	payload, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		e.log.Error().Err(err).Msg("reading payload failed")
		return exitRuntime
	}

	res, code := e.compile(fs.Arg(0), g.section, true)
	if code != exitOK {
		return code
	}

	table := res.Table(spec.ScopeName(scope))
	if table == nil {
		fmt.Fprintf(stderr, "specgen: unknown scope %q\n", scope)
		return exitUsage
	}

	segments, err := table.Slice(payload)
	if err != nil {
		e.log.Error().Err(err).Msg("payload does not fit layout")
		return exitFailed
	}

	if field != "" {
		entry, ok := table.Lookup(field)
		if !ok {
			e.log.Error().Str("field", field).Msg("no such field in layout")
			return exitFailed
		}

		fmt.Fprintln(stdout, string(payload[entry.StartOffset:entry.End()]))

		return exitOK
	}

	for _, seg := range segments {
		fmt.Fprintf(stdout, "%s\t%q\n", seg.Entry.FieldPath, seg.Bytes)
	}

	return exitOK
}

func runDump(args []string, stdout, stderr io.Writer) int {
	var g globalFlags

	fs := newFlagSet("dump", stderr)
	g.register(fs)

	if code := parse(fs, args); code >= 0 {
		return code
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: specgen dump [flags] <rows.csv|rows.yaml>")
		return exitUsage
	}

	e, err := g.setup(stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "specgen:", err)
		return exitUsage
	}

	res, code := e.compile(fs.Arg(0), g.section, false)
	if code != exitOK {
		return code
	}

	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
	cfg.Fdump(stdout, res.Tree)

	return exitOK
}

func runServe(args []string, stdout, stderr io.Writer) int {
	var (
		g    globalFlags
		addr string
	)

	fs := newFlagSet("serve", stderr)
	g.register(fs)
	fs.StringVar(&addr, "addr", ":8080", "listen address")

	if code := parse(fs, args); code >= 0 {
		return code
	}

	e, err := g.setup(stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "specgen:", err)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(e.cfg, e.log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		e.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		e.log.Error().Err(err).Msg("server stopped")
		return exitRuntime
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		e.log.Error().Err(err).Msg("shutdown failed")
		return exitRuntime
	}

	e.log.Info().Msg("server stopped")

	return exitOK
}

func boolInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
