// Package presentation renders command results and catalogs for the terminal.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatResult renders a command's return value. Scalars print in their
// natural string form, structured values as indented JSON. A nil result
// produces no output at all.
func (f *Formatter) FormatResult(v any) error {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	if s, ok := v.(fmt.Stringer); ok {
		_, err := fmt.Fprintln(f.writer, s.String())
		return err
	}

	switch rv.Kind() {
	case reflect.String,
		reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		_, err := fmt.Fprintln(f.writer, rv.Interface())
		return err
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rv.Interface())
}

// CatalogEntry is one row of a command catalog.
type CatalogEntry struct {
	Name    string
	Summary string
}

const catalogIndent = 24

// FormatCatalog renders the command listing shown when an app is invoked
// without a command, or with --help.
func (f *Formatter) FormatCatalog(appName string, entries []CatalogEntry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: ac %s <command> [flags]\n", appName)
	if len(entries) > 0 {
		b.WriteString("\nCommands:\n")
		for _, e := range entries {
			line := "  " + e.Name
			if e.Summary != "" {
				if len(line) < catalogIndent {
					line += strings.Repeat(" ", catalogIndent-len(line))
				} else {
					line += "  "
				}
				line += e.Summary
			}
			b.WriteString(line + "\n")
		}
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatUsage writes pre-rendered usage text.
func (f *Formatter) FormatUsage(text string) error {
	_, err := io.WriteString(f.writer, text)
	return err
}
