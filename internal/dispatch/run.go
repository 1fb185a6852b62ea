package dispatch

import (
	"context"
	"io"

	"github.com/jvanvugt/auto-cli/internal/command"
	"github.com/jvanvugt/auto-cli/internal/grammar"
	"github.com/jvanvugt/auto-cli/internal/presentation"
)

// RunCommand executes one resolved command against argv, outside any registry
// lookup. App authors use it (through the autocli package) to exercise a
// command without registering the app first.
func RunCommand(ctx context.Context, cmd *command.Command, args []string, out io.Writer) error {
	g := grammar.Compile(cmd)
	return execute(ctx, "", *g, cmd, args, presentation.NewFormatter(out))
}
