// Package grammar derives command-line flag grammars from resolved commands.
//
// Compilation is deterministic and order-preserving: one long-form flag per
// parameter, in the function's declaration order. Type validation happens
// earlier, at resolution time, so every parameter reaching the compiler
// already has a coercion rule.
package grammar

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jvanvugt/auto-cli/internal/command"
	"github.com/jvanvugt/auto-cli/internal/log"
)

// FlagSpec describes one derived flag.
type FlagSpec struct {
	Name     string
	Short    string
	Kind     command.Kind // element kind for repeated flags
	Repeated bool
	Type     reflect.Type // declared type of the backing parameter
	Required bool
	Default  any // nil when the flag is required
	Help     string
	Options  []string
}

// Grammar is the flag surface derived from one command's signature.
type Grammar struct {
	Command string
	Summary string
	Doc     string
	Flags   []FlagSpec
}

// Compile derives the grammar from a resolved command.
func Compile(cmd *command.Command) *Grammar {
	g := &Grammar{
		Command: cmd.Name(),
		Summary: cmd.Summary(),
		Doc:     cmd.Doc(),
		Flags:   make([]FlagSpec, 0, len(cmd.Params())),
	}
	for _, p := range cmd.Params() {
		g.Flags = append(g.Flags, FlagSpec{
			Name:     p.Name(),
			Short:    p.Short(),
			Kind:     p.Kind(),
			Repeated: p.Repeated(),
			Type:     p.Type(),
			Required: p.Required(),
			Default:  p.Default(),
			Help:     p.Help(),
			Options:  p.Options(),
		})
	}
	log.Debug(log.CatGrammar, "Compiled grammar", "command", cmd.Name(), "flags", len(g.Flags))
	return g
}

// Find returns the flag with the given long name.
func (g *Grammar) Find(name string) (FlagSpec, bool) {
	for _, f := range g.Flags {
		if f.Name == name {
			return f, true
		}
	}
	return FlagSpec{}, false
}

// CoercionError reports a command-line value that could not be converted to
// the flag's declared type.
type CoercionError struct {
	Flag  string
	Value string
	Kind  command.Kind
	Hint  string // optional, e.g. the allowed enum values
}

func (e *CoercionError) Error() string {
	msg := fmt.Sprintf("invalid value %q for flag --%s: expected %s", e.Value, e.Flag, e.Kind)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// rangeHint distinguishes an out-of-range number from a malformed one.
func rangeHint(err error, target reflect.Type) string {
	if errors.Is(err, strconv.ErrRange) {
		return "out of range for " + target.String()
	}
	return ""
}

// Coerce converts one raw command-line token to the flag's declared type.
// For repeated flags the result has the element type.
func (f *FlagSpec) Coerce(raw string) (any, error) {
	target := f.Type
	if f.Repeated {
		target = f.Type.Elem()
	}

	if len(f.Options) > 0 && !slices.Contains(f.Options, raw) {
		return nil, &CoercionError{
			Flag: f.Name, Value: raw, Kind: f.Kind,
			Hint: "one of " + strings.Join(f.Options, ", "),
		}
	}

	var v reflect.Value
	switch f.Kind {
	case command.KindString:
		v = reflect.ValueOf(raw)
	case command.KindInt:
		// Parsing at the target's bit size makes out-of-range values a
		// coercion error instead of a silent wrap-around.
		n, err := strconv.ParseInt(raw, 10, target.Bits())
		if err != nil {
			return nil, &CoercionError{Flag: f.Name, Value: raw, Kind: f.Kind, Hint: rangeHint(err, target)}
		}
		v = reflect.ValueOf(n)
	case command.KindUint:
		n, err := strconv.ParseUint(raw, 10, target.Bits())
		if err != nil {
			return nil, &CoercionError{Flag: f.Name, Value: raw, Kind: f.Kind, Hint: rangeHint(err, target)}
		}
		v = reflect.ValueOf(n)
	case command.KindFloat:
		n, err := strconv.ParseFloat(raw, target.Bits())
		if err != nil {
			return nil, &CoercionError{Flag: f.Name, Value: raw, Kind: f.Kind, Hint: rangeHint(err, target)}
		}
		v = reflect.ValueOf(n)
	case command.KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &CoercionError{
				Flag: f.Name, Value: raw, Kind: f.Kind,
				Hint: "true or false",
			}
		}
		v = reflect.ValueOf(b)
	case command.KindDuration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, &CoercionError{
				Flag: f.Name, Value: raw, Kind: f.Kind,
				Hint: `like "30s" or "2h45m"`,
			}
		}
		v = reflect.ValueOf(d)
	default:
		return nil, &CoercionError{Flag: f.Name, Value: raw, Kind: f.Kind}
	}

	return v.Convert(target).Interface(), nil
}

// CoerceSlice converts raw tokens for a repeated flag into a slice of the
// flag's declared type.
func (f *FlagSpec) CoerceSlice(raws []string) (any, error) {
	out := reflect.MakeSlice(f.Type, 0, len(raws))
	for _, raw := range raws {
		v, err := f.Coerce(raw)
		if err != nil {
			return nil, err
		}
		out = reflect.Append(out, reflect.ValueOf(v))
	}
	return out.Interface(), nil
}
