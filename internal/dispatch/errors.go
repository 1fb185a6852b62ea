package dispatch

import "fmt"

// UnknownCommandError reports a command name the app's manifest does not list.
type UnknownCommandError struct {
	App     string
	Command string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("app %q has no command %q, run 'ac %s' to see its commands", e.App, e.Command, e.App)
}

// UnknownArgumentError reports a flag or positional token the command's
// grammar does not define.
type UnknownArgumentError struct {
	Command string
	Token   string
}

func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("unknown argument %q for command %q", e.Token, e.Command)
}

// MissingArgumentError reports a required flag that was not supplied.
type MissingArgumentError struct {
	Command string
	Flag    string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("command %q requires --%s", e.Command, e.Flag)
}
