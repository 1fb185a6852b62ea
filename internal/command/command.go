// Package command provides the pure domain layer for resolved commands.
//
// A Command is the in-memory description of one exposed function: its callable,
// its ordered parameter metadata, and its return shape. Commands are built
// fresh on every invocation by Describe and are never persisted.
package command

import "reflect"

// Kind classifies a parameter's coercible value type.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindUint
	KindFloat
	KindBool
	KindDuration
)

// String returns the user-facing type name, as shown in usage text and
// coercion errors.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDuration:
		return "duration"
	default:
		return "invalid"
	}
}

// ParameterSpec describes one command-line-exposed parameter.
// Fields are unexported; use the getter methods.
type ParameterSpec struct {
	name         string
	kind         Kind
	repeated     bool
	typ          reflect.Type
	required     bool
	defaultValue any
	help         string
	short        string
	options      []string
}

// Name returns the parameter name (the long flag name).
func (p *ParameterSpec) Name() string {
	return p.name
}

// Kind returns the value kind. For repeated parameters this is the element kind.
func (p *ParameterSpec) Kind() Kind {
	return p.kind
}

// Repeated returns true if the parameter accepts multiple values (slice type).
func (p *ParameterSpec) Repeated() bool {
	return p.repeated
}

// Type returns the declared Go type of the function parameter.
func (p *ParameterSpec) Type() reflect.Type {
	return p.typ
}

// Required returns true iff the parameter has no default.
func (p *ParameterSpec) Required() bool {
	return p.required
}

// Default returns the registered default value, nil when none exists.
// Defaults are passed to the function as-is, never coerced.
func (p *ParameterSpec) Default() any {
	return p.defaultValue
}

// Help returns the parameter's help text.
func (p *ParameterSpec) Help() string {
	return p.help
}

// Short returns the one-letter short flag name, empty when none is registered.
func (p *ParameterSpec) Short() string {
	return p.short
}

// Options returns the allowed values for enumerated string parameters.
// Empty means any value is accepted.
func (p *ParameterSpec) Options() []string {
	return p.options
}

// Command is the in-memory description of a resolved command.
type Command struct {
	name       string
	ref        string
	summary    string
	doc        string
	fn         reflect.Value
	hasContext bool
	variadic   bool
	params     []*ParameterSpec
	returnType reflect.Type
	returnsErr bool
}

// Name returns the command name (the last segment of its reference).
func (c *Command) Name() string {
	return c.name
}

// Ref returns the dotted-path reference the command was resolved from,
// empty for direct function handles.
func (c *Command) Ref() string {
	return c.ref
}

// Summary returns the one-line description shown in catalogs.
func (c *Command) Summary() string {
	return c.summary
}

// Doc returns the longer description shown in usage text.
func (c *Command) Doc() string {
	return c.doc
}

// Func returns the callable as a reflect.Value.
func (c *Command) Func() reflect.Value {
	return c.fn
}

// HasContext reports whether the function's first parameter is a
// context.Context, supplied at invoke time rather than from the command line.
func (c *Command) HasContext() bool {
	return c.hasContext
}

// Variadic reports whether the function has a trailing variadic parameter.
// Variadic parameters are not exposed on the command line and receive no values.
func (c *Command) Variadic() bool {
	return c.variadic
}

// Params returns the command-line-exposed parameters in declaration order.
func (c *Command) Params() []*ParameterSpec {
	return c.params
}

// ReturnType returns the type of the function's non-error result,
// nil when the function returns nothing renderable.
func (c *Command) ReturnType() reflect.Type {
	return c.returnType
}

// ReturnsError reports whether the function's last result is an error.
func (c *Command) ReturnsError() bool {
	return c.returnsErr
}
