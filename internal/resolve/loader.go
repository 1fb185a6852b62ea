// Package resolve turns command references into resolved commands.
//
// Go has no dynamic import, so dotted-path references resolve against a static
// registration table: packages register their functions at init time (usually
// via a blank import of the registering package) and the table maps
// "module.function" references to the registered callable plus the metadata
// reflection cannot recover (parameter names, defaults, documentation).
package resolve

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/jvanvugt/auto-cli/internal/command"
	"github.com/jvanvugt/auto-cli/internal/log"
)

// Registration errors.
var (
	ErrInvalidRef = fmt.Errorf("reference must be a dotted path like %q", "module.function")
	ErrDuplicate  = fmt.Errorf("reference is already registered")
)

// ModuleNotFoundError reports a dotted-path module with no registrations.
type ModuleNotFoundError struct {
	Module string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("no module %q is registered", e.Module)
}

// FunctionNotFoundError reports a known module without the requested function.
type FunctionNotFoundError struct {
	Module   string
	Function string
}

func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("module %q has no function %q", e.Module, e.Function)
}

var refSegment = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

type entry struct {
	fn   any
	spec command.Spec
}

// Loader is the static registration table keyed by dotted-path reference.
// It is safe for concurrent use; registration normally happens in init
// functions before any lookup.
type Loader struct {
	mu      sync.RWMutex
	modules map[string]map[string]entry
	symbols map[string][]string // per-module registration order
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{
		modules: make(map[string]map[string]entry),
		symbols: make(map[string][]string),
	}
}

var defaultLoader = NewLoader()

// Default returns the process-wide loader that package-level registration
// (autocli.Register) feeds into.
func Default() *Loader {
	return defaultLoader
}

// Register adds a function under the given dotted-path reference.
// The reference must be at least "module.function"; deeper module paths like
// "pkg.sub.function" are allowed. Registering the same reference twice is an
// explicit error, never a silent overwrite.
func (l *Loader) Register(ref string, fn any, spec command.Spec) error {
	module, symbol, err := SplitRef(ref)
	if err != nil {
		return err
	}
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return fmt.Errorf("register %q: %w", ref, command.ErrNotFunction)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	funcs, ok := l.modules[module]
	if !ok {
		funcs = make(map[string]entry)
		l.modules[module] = funcs
	}
	if _, exists := funcs[symbol]; exists {
		return fmt.Errorf("register %q: %w", ref, ErrDuplicate)
	}
	funcs[symbol] = entry{fn: fn, spec: spec}
	l.symbols[module] = append(l.symbols[module], symbol)
	log.Debug(log.CatResolve, "Registered function", "ref", ref)
	return nil
}

// Lookup finds a registered function by dotted-path reference.
func (l *Loader) Lookup(ref string) (any, command.Spec, error) {
	module, symbol, err := SplitRef(ref)
	if err != nil {
		return nil, command.Spec{}, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	funcs, ok := l.modules[module]
	if !ok {
		return nil, command.Spec{}, &ModuleNotFoundError{Module: module}
	}
	e, ok := funcs[symbol]
	if !ok {
		return nil, command.Spec{}, &FunctionNotFoundError{Module: module, Function: symbol}
	}
	return e.fn, e.spec, nil
}

// Module returns the function names registered under a module, in
// registration order.
func (l *Loader) Module(name string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.symbols[name]...)
}

// SplitRef splits a dotted-path reference into module and function parts.
// "weather.forecast.get" splits into module "weather.forecast" and function
// "get".
func SplitRef(ref string) (module, symbol string, err error) {
	idx := strings.LastIndex(ref, ".")
	if idx <= 0 || idx == len(ref)-1 {
		return "", "", fmt.Errorf("%q: %w", ref, ErrInvalidRef)
	}
	module, symbol = ref[:idx], ref[idx+1:]
	for _, seg := range strings.Split(module, ".") {
		if !refSegment.MatchString(seg) {
			return "", "", fmt.Errorf("%q: %w", ref, ErrInvalidRef)
		}
	}
	if !refSegment.MatchString(symbol) {
		return "", "", fmt.Errorf("%q: %w", ref, ErrInvalidRef)
	}
	return module, symbol, nil
}
