// Package dispatch executes one command-line invocation end to end: find the
// app, load its command set, derive the grammar, parse and coerce the
// arguments, call the function, and render its result.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel/codes"

	"github.com/jvanvugt/auto-cli/internal/cachemanager"
	"github.com/jvanvugt/auto-cli/internal/command"
	"github.com/jvanvugt/auto-cli/internal/domain/app"
	"github.com/jvanvugt/auto-cli/internal/flags"
	"github.com/jvanvugt/auto-cli/internal/grammar"
	"github.com/jvanvugt/auto-cli/internal/log"
	"github.com/jvanvugt/auto-cli/internal/manifest"
	"github.com/jvanvugt/auto-cli/internal/presentation"
	"github.com/jvanvugt/auto-cli/internal/resolve"
	"github.com/jvanvugt/auto-cli/internal/tracing"
)

const grammarTTL = 10 * time.Minute

// Dispatcher routes one parsed invocation to a registered function.
type Dispatcher struct {
	repo       app.Repository
	loader     *resolve.Loader
	resolver   *resolve.Resolver
	searchPath []string
	formatter  *presentation.Formatter
	tracer     *tracing.Provider
	grammars   *cachemanager.ReadThroughCache[string, *grammar.Grammar, *command.Command]
}

// NewDispatcher wires a dispatcher. searchPath lists extra directories to
// probe for app manifests when the registered location no longer has one.
func NewDispatcher(
	repo app.Repository,
	loader *resolve.Loader,
	searchPath []string,
	out io.Writer,
	featureFlags *flags.Registry,
	tracer *tracing.Provider,
) *Dispatcher {
	cache := cachemanager.NewInMemoryCacheManager[string, *grammar.Grammar](
		"grammar", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	return &Dispatcher{
		repo:       repo,
		loader:     loader,
		resolver:   resolve.NewResolver(loader),
		searchPath: searchPath,
		formatter:  presentation.NewFormatter(out),
		tracer:     tracer,
		grammars: cachemanager.NewReadThroughCache(cache,
			func(ctx context.Context, cmd *command.Command) (*grammar.Grammar, error) {
				return grammar.Compile(cmd), nil
			},
			!featureFlags.Enabled(flags.FlagGrammarCache)),
	}
}

// Dispatch runs `ac <appName> <argv...>`. With no command (or --help) it
// prints the app's command catalog. Errors returned by the invoked function
// come back unwrapped; everything else is a dispatch or usage error.
func (d *Dispatcher) Dispatch(ctx context.Context, appName string, argv []string) error {
	entries, err := d.commandSet(appName)
	if err != nil {
		return err
	}

	if len(argv) == 0 || argv[0] == "--help" || argv[0] == "-h" {
		return d.formatter.FormatCatalog(appName, d.catalogEntries(entries))
	}

	commandName := argv[0]
	if strings.HasPrefix(commandName, "-") {
		return &UnknownArgumentError{Command: appName, Token: commandName}
	}

	var entry manifest.Command
	found := false
	for _, e := range entries {
		if e.Name == commandName {
			entry, found = e, true
			break
		}
	}
	if !found {
		return &UnknownCommandError{App: appName, Command: commandName}
	}

	ctx, span := d.tracer.StartInvocation(ctx, appName, commandName)
	defer span.End()

	if err := d.run(ctx, appName, entry, argv[1:]); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// run resolves, parses, invokes, and renders one command.
func (d *Dispatcher) run(ctx context.Context, appName string, entry manifest.Command, args []string) error {
	cmd, err := d.resolver.Resolve(entry.Ref)
	if err != nil {
		return err
	}

	cached, err := d.grammars.Get(ctx, appName+"."+entry.Name, cmd, grammarTTL)
	if err != nil {
		return err
	}
	// Manifest entries may rename a command or override its summary; the
	// cached grammar stays untouched.
	g := *cached
	g.Command = entry.Name
	if entry.Summary != "" {
		g.Summary = entry.Summary
	}

	log.Info(log.CatDispatch, "Invoking command", "app", appName, "command", entry.Name, "ref", entry.Ref)
	return execute(ctx, appName, g, cmd, args, d.formatter)
}

// execute parses argv against a grammar, invokes the command, and renders the
// result.
func execute(ctx context.Context, appName string, g grammar.Grammar, cmd *command.Command, args []string, formatter *presentation.Formatter) error {
	// Every flag is registered as a string and coerced under grammar
	// control, so booleans take explicit true/false value tokens.
	fs := pflag.NewFlagSet(g.Command, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	for _, f := range g.Flags {
		if f.Repeated {
			fs.StringArrayP(f.Name, f.Short, nil, f.Help)
		} else {
			fs.StringP(f.Name, f.Short, "", f.Help)
		}
	}
	help := fs.BoolP("help", "h", false, "show this help text")

	if err := fs.Parse(args); err != nil {
		if token, ok := unknownFlagToken(err); ok {
			return &UnknownArgumentError{Command: g.Command, Token: token}
		}
		return fmt.Errorf("parse arguments for %q: %w", g.Command, err)
	}
	if *help {
		return formatter.FormatUsage(g.Usage(appName))
	}
	if fs.NArg() > 0 {
		return &UnknownArgumentError{Command: g.Command, Token: fs.Args()[0]}
	}

	values := make([]any, 0, len(g.Flags))
	for _, f := range g.Flags {
		switch {
		case fs.Changed(f.Name):
			var v any
			var err error
			if f.Repeated {
				var raws []string
				raws, err = fs.GetStringArray(f.Name)
				if err == nil {
					v, err = f.CoerceSlice(raws)
				}
			} else {
				var raw string
				raw, err = fs.GetString(f.Name)
				if err == nil {
					v, err = f.Coerce(raw)
				}
			}
			if err != nil {
				return err
			}
			values = append(values, v)
		case f.Required:
			return &MissingArgumentError{Command: g.Command, Flag: f.Name}
		default:
			values = append(values, f.Default)
		}
	}

	return invoke(ctx, cmd, values, formatter)
}

// invoke calls the resolved function and renders its result. An error from
// the function itself propagates unwrapped.
func invoke(ctx context.Context, cmd *command.Command, values []any, formatter *presentation.Formatter) error {
	in := make([]reflect.Value, 0, len(values)+1)
	if cmd.HasContext() {
		in = append(in, reflect.ValueOf(ctx))
	}
	for _, v := range values {
		in = append(in, reflect.ValueOf(v))
	}

	outs := cmd.Func().Call(in)

	if cmd.ReturnsError() {
		if errv := outs[len(outs)-1]; !errv.IsNil() {
			return errv.Interface().(error)
		}
	}
	if cmd.ReturnType() != nil {
		return formatter.FormatResult(outs[0].Interface())
	}
	return nil
}

// commandSet loads the command entries for an app. The built-in app reads
// straight from the loader; registered apps re-read their manifest on every
// invocation so edits take effect immediately.
func (d *Dispatcher) commandSet(appName string) ([]manifest.Command, error) {
	if appName == app.ReservedName {
		symbols := d.loader.Module(app.ReservedName)
		entries := make([]manifest.Command, 0, len(symbols))
		for _, sym := range symbols {
			ref := app.ReservedName + "." + sym
			var summary string
			if _, spec, err := d.loader.Lookup(ref); err == nil {
				summary = spec.Summary
			}
			entries = append(entries, manifest.Command{Name: sym, Ref: ref, Summary: summary})
		}
		return entries, nil
	}

	a, err := d.repo.Get(appName)
	if err != nil {
		return nil, err
	}
	path, err := manifest.Locate(appName, a.Location(), d.searchPath)
	if err != nil {
		return nil, err
	}
	m, err := manifest.Load(appName, path)
	if err != nil {
		return nil, err
	}
	return m.Commands(), nil
}

func (d *Dispatcher) catalogEntries(entries []manifest.Command) []presentation.CatalogEntry {
	out := make([]presentation.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		summary := e.Summary
		if summary == "" {
			if _, spec, err := d.loader.Lookup(e.Ref); err == nil {
				summary = spec.Summary
			}
		}
		out = append(out, presentation.CatalogEntry{Name: e.Name, Summary: summary})
	}
	return out
}

// unknownFlagToken extracts the offending token from pflag's unknown flag
// errors.
func unknownFlagToken(err error) (string, bool) {
	msg := err.Error()
	if token, ok := strings.CutPrefix(msg, "unknown flag: "); ok {
		return token, true
	}
	if rest, ok := strings.CutPrefix(msg, "unknown shorthand flag: "); ok {
		if idx := strings.Index(rest, " in "); idx >= 0 {
			return strings.TrimSpace(rest[idx+4:]), true
		}
		return rest, true
	}
	return "", false
}
