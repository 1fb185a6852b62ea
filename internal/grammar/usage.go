package grammar

import (
	"fmt"
	"strings"
)

const helpIndent = 24

// Usage renders the help text for a command's grammar: a synopsis line,
// the command's documentation, and a two-column flag listing.
func (g *Grammar) Usage(app string) string {
	var b strings.Builder

	if app == "" {
		fmt.Fprintf(&b, "Usage: ac %s", g.Command)
	} else {
		fmt.Fprintf(&b, "Usage: ac %s %s", app, g.Command)
	}
	for _, f := range g.Flags {
		if f.Required {
			fmt.Fprintf(&b, " --%s %s", f.Name, f.Kind)
		}
	}
	if g.optionalCount() > 0 {
		b.WriteString(" [flags]")
	}
	b.WriteString("\n")

	if doc := strings.TrimSpace(g.Doc); doc != "" {
		b.WriteString("\n" + doc + "\n")
	} else if g.Summary != "" {
		b.WriteString("\n" + g.Summary + "\n")
	}

	b.WriteString("\nFlags:\n")
	for _, f := range g.Flags {
		b.WriteString(flagLine(f))
	}
	b.WriteString(flagLine(FlagSpec{Name: "help", Short: "h", Help: "show this help text"}))
	return b.String()
}

func flagLine(f FlagSpec) string {
	left := "  "
	if f.Short != "" {
		left += "-" + f.Short + ", "
	} else {
		left += "    "
	}
	left += "--" + f.Name
	if f.Kind != 0 {
		left += " " + f.Kind.String()
		if f.Repeated {
			left += "..."
		}
	}

	right := f.Help
	switch {
	case f.Required:
		right = appendClause(right, "required")
	case f.Default != nil:
		right = appendClause(right, fmt.Sprintf("default %v", f.Default))
	}
	if len(f.Options) > 0 {
		right = appendClause(right, "one of "+strings.Join(f.Options, ", "))
	}

	if right == "" {
		return left + "\n"
	}
	if len(left) < helpIndent {
		left += strings.Repeat(" ", helpIndent-len(left))
	} else {
		left += "  "
	}
	return left + right + "\n"
}

func appendClause(help, clause string) string {
	if help == "" {
		return "(" + clause + ")"
	}
	return help + " (" + clause + ")"
}

func (g *Grammar) optionalCount() int {
	n := 0
	for _, f := range g.Flags {
		if !f.Required {
			n++
		}
	}
	return n
}
