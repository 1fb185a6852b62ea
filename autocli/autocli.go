// Package autocli is the public registration API for app authors.
//
// An app exposes a function by registering it under a dotted-path reference,
// typically from an init function:
//
//	func init() {
//		autocli.MustRegister("weather.get_weather", GetWeather, autocli.Spec{
//			Summary: "Fetch the forecast",
//			Params: []autocli.Param{
//				{Name: "location", Help: "city to look up"},
//				{Name: "days", Default: 3},
//			},
//		})
//	}
//
// The app's ac.yaml manifest then lists the reference, and after
// `ac cli register_app` the function is callable as
// `ac weather get_weather --location Amsterdam`.
package autocli

import (
	"context"
	"io"
	"os"

	"github.com/jvanvugt/auto-cli/internal/command"
	"github.com/jvanvugt/auto-cli/internal/dispatch"
	"github.com/jvanvugt/auto-cli/internal/resolve"
)

// Spec carries the metadata reflection cannot see: parameter names, defaults,
// and documentation.
type Spec = command.Spec

// Param is the metadata for a single parameter. A nil Default marks the
// parameter required.
type Param = command.Param

// Register adds a function to the process-wide registration table under the
// given dotted-path reference. Registering the same reference twice is an
// error.
func Register(ref string, fn any, spec Spec) error {
	return resolve.Default().Register(ref, fn, spec)
}

// MustRegister is Register for init functions: it panics on error.
func MustRegister(ref string, fn any, spec Spec) {
	if err := Register(ref, fn, spec); err != nil {
		panic(err)
	}
}

// RunFunc resolves a function handle and runs it against argv, parsing and
// coercing flags exactly as a dispatched invocation would. Results render to
// out; pass os.Stdout for terminal behavior.
func RunFunc(ctx context.Context, fn any, spec Spec, argv []string, out io.Writer) error {
	resolver := resolve.NewResolver(resolve.Default())
	cmd, err := resolver.ResolveFunc(fn, spec)
	if err != nil {
		return err
	}
	return dispatch.RunCommand(ctx, cmd, argv, out)
}

// Run resolves a registered reference and runs it against argv, writing
// results to stdout.
func Run(ctx context.Context, ref string, argv []string) error {
	resolver := resolve.NewResolver(resolve.Default())
	cmd, err := resolver.Resolve(ref)
	if err != nil {
		return err
	}
	return dispatch.RunCommand(ctx, cmd, argv, os.Stdout)
}
