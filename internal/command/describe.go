package command

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"time"
)

// Spec carries the registration-time metadata for one function: the pieces Go
// reflection cannot see (parameter names, defaults, documentation).
type Spec struct {
	Summary string  // one-line description, shown in command catalogs
	Doc     string  // longer description, shown in --help output
	Params  []Param // one entry per command-line-exposed parameter, in order
}

// Param is the registration-time metadata for a single parameter.
type Param struct {
	Name    string   // flag name, required
	Help    string   // flag help text
	Short   string   // optional one-letter short flag
	Default any      // default value; nil means the parameter is required
	Options []string // allowed values for string parameters (enum)
}

var (
	ctxType  = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType  = reflect.TypeOf((*error)(nil)).Elem()
	flagName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
)

// Describe builds a Command from a function value and its registration
// metadata. It extracts parameter and return types via reflection, pairs them
// positionally with spec.Params, and fails with a diagnostic naming the
// offending parameter when the metadata is incomplete or a type has no string
// coercion rule. A leading context.Context parameter and a trailing error
// result are recognized and excluded from the grammar.
func Describe(name, ref string, fn any, spec Spec) (*Command, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFunction)
	}
	t := v.Type()

	cmd := &Command{
		name:    name,
		ref:     ref,
		summary: spec.Summary,
		doc:     spec.Doc,
		fn:      v,
	}

	start := 0
	if t.NumIn() > 0 && t.In(0) == ctxType {
		cmd.hasContext = true
		start = 1
	}

	end := t.NumIn()
	if t.IsVariadic() {
		// Variadic tails have no flag representation; the function is
		// called without them.
		cmd.variadic = true
		end--
	}

	exposed := end - start
	if len(spec.Params) > exposed {
		return nil, fmt.Errorf("%q: parameter %q: %w",
			name, spec.Params[exposed].Name, ErrExtraParamSpec)
	}

	for i := start; i < end; i++ {
		idx := i - start
		if idx >= len(spec.Params) || spec.Params[idx].Name == "" {
			return nil, &UnnamedParameterError{Command: name, Index: idx}
		}
		p, err := describeParam(name, t.In(i), spec.Params[idx])
		if err != nil {
			return nil, err
		}
		cmd.params = append(cmd.params, p)
	}

	if err := describeReturns(cmd, t); err != nil {
		return nil, err
	}
	return cmd, nil
}

func describeParam(cmdName string, t reflect.Type, spec Param) (*ParameterSpec, error) {
	if !flagName.MatchString(spec.Name) {
		return nil, fmt.Errorf("%q of %q: %w", spec.Name, cmdName, ErrInvalidParamName)
	}
	// The dispatcher synthesizes -h/--help on every command; a colliding
	// registration has to fail here, before any flag set is built.
	if spec.Name == "help" || spec.Short == "h" {
		return nil, fmt.Errorf("%q of %q: %w", spec.Name, cmdName, ErrReservedName)
	}
	if len(spec.Short) > 1 {
		return nil, fmt.Errorf("%q of %q: %w", spec.Name, cmdName, ErrInvalidShortName)
	}

	kind, repeated := kindOf(t)
	if kind == KindInvalid {
		return nil, &UnsupportedTypeError{Command: cmdName, Param: spec.Name, Type: t.String()}
	}

	if len(spec.Options) > 0 && kind != KindString {
		return nil, fmt.Errorf("%q of %q: %w", spec.Name, cmdName, ErrOptionsNotString)
	}

	p := &ParameterSpec{
		name:     spec.Name,
		kind:     kind,
		repeated: repeated,
		typ:      t,
		required: spec.Default == nil,
		help:     spec.Help,
		short:    spec.Short,
		options:  spec.Options,
	}

	if spec.Default != nil {
		dv := reflect.ValueOf(spec.Default)
		switch {
		case dv.Type().AssignableTo(t):
			p.defaultValue = spec.Default
		case dv.Type().ConvertibleTo(t) && kindOfScalar(dv.Type()) == kindOfScalar(t):
			// Same coercion family, e.g. an untyped int literal for an
			// int64 parameter or a plain string for a named string type.
			p.defaultValue = dv.Convert(t).Interface()
		default:
			return nil, fmt.Errorf("%q of %q (%s given, %s wanted): %w",
				spec.Name, cmdName, dv.Type(), t, ErrBadDefault)
		}
	}
	return p, nil
}

func describeReturns(cmd *Command, t reflect.Type) error {
	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) == errType {
			cmd.returnsErr = true
		} else {
			cmd.returnType = t.Out(0)
		}
	case 2:
		if t.Out(1) != errType {
			return fmt.Errorf("%q: %w", cmd.name, ErrBadSignature)
		}
		cmd.returnType = t.Out(0)
		cmd.returnsErr = true
	default:
		return fmt.Errorf("%q: %w", cmd.name, ErrBadSignature)
	}
	return nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// kindOf maps a Go type to its coercion kind. For slices of supported scalars
// it returns the element kind with repeated set.
func kindOf(t reflect.Type) (Kind, bool) {
	if t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Slice {
		kind := kindOfScalar(t.Elem())
		if kind == KindInvalid {
			return KindInvalid, false
		}
		return kind, true
	}
	return kindOfScalar(t), false
}

func kindOfScalar(t reflect.Type) Kind {
	if t == durationType {
		return KindDuration
	}
	switch t.Kind() {
	case reflect.String:
		return KindString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Bool:
		return KindBool
	default:
		return KindInvalid
	}
}
