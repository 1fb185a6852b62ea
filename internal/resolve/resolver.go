package resolve

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/jvanvugt/auto-cli/internal/command"
	"github.com/jvanvugt/auto-cli/internal/log"
)

// Resolver resolves command references against a loader. Resolution is pure
// apart from table lookup and is re-run on every invocation, so edits to
// registration metadata take effect without any rebuild of derived state.
type Resolver struct {
	loader *Loader
}

// NewResolver creates a resolver backed by the given loader.
func NewResolver(loader *Loader) *Resolver {
	return &Resolver{loader: loader}
}

// Resolve resolves a dotted-path reference into a Command with full
// parameter metadata.
func (r *Resolver) Resolve(ref string) (*command.Command, error) {
	fn, spec, err := r.loader.Lookup(ref)
	if err != nil {
		log.Debug(log.CatResolve, "Lookup failed", "ref", ref, "error", err)
		return nil, err
	}
	_, symbol, err := SplitRef(ref)
	if err != nil {
		return nil, err
	}
	return command.Describe(symbol, ref, fn, spec)
}

// ResolveFunc resolves a direct function handle. The function's runtime name
// is introspected for display purposes only.
func (r *Resolver) ResolveFunc(fn any, spec command.Spec) (*command.Command, error) {
	return command.Describe(funcName(fn), "", fn, spec)
}

// funcName derives a display name from a function value's runtime symbol,
// e.g. "github.com/acme/weather.GetWeather" becomes "GetWeather".
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return "<not a function>"
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return "<anonymous>"
	}
	name := rf.Name()
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	// Method values carry a -fm suffix.
	return strings.TrimSuffix(name, "-fm")
}
