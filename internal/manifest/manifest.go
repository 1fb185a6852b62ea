// Package manifest loads app command manifests.
//
// Each registered app exposes its commands through an ac.yaml file in its base
// directory. The manifest is re-read on every invocation, so edits take effect
// immediately without re-registering the app.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jvanvugt/auto-cli/internal/log"
	"github.com/jvanvugt/auto-cli/internal/resolve"
)

// FileName is the manifest file looked up in an app's base directory.
const FileName = "ac.yaml"

// NotFoundError reports a manifest file that could not be located for an app.
type NotFoundError struct {
	App  string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find %s for app %q at %s, was it deleted?", FileName, e.App, e.Path)
}

// DuplicateCommandError reports two manifest entries exposing the same
// command name. Collisions are an explicit error, never a silent shadow.
type DuplicateCommandError struct {
	App     string
	Command string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("app %q exposes command %q more than once", e.App, e.Command)
}

// Command is a single manifest entry.
type Command struct {
	// Name is the command name on the command line. Defaults to the last
	// segment of Ref when omitted.
	Name string `yaml:"name"`
	// Ref is the dotted-path reference of the registered function.
	Ref string `yaml:"ref"`
	// Summary overrides the registered one-line description.
	Summary string `yaml:"summary"`
}

// file is the root structure of ac.yaml.
type file struct {
	Commands []Command `yaml:"commands"`
}

// Manifest is an app's parsed command set, in file order.
type Manifest struct {
	app      string
	path     string
	commands []Command
}

// Load reads and validates the manifest at path for the named app.
func Load(appName, path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the user's own registry
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{App: appName, Path: path}
		}
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	seen := make(map[string]bool, len(f.Commands))
	for i := range f.Commands {
		c := &f.Commands[i]
		if c.Ref == "" {
			return nil, fmt.Errorf("manifest %s: command %d has no ref", path, i)
		}
		if c.Name == "" {
			_, symbol, err := resolve.SplitRef(c.Ref)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: %w", path, err)
			}
			c.Name = symbol
		}
		if seen[c.Name] {
			return nil, &DuplicateCommandError{App: appName, Command: c.Name}
		}
		seen[c.Name] = true
	}

	log.Debug(log.CatManifest, "Loaded manifest", "app", appName, "path", path, "commands", len(f.Commands))
	return &Manifest{app: appName, path: path, commands: f.Commands}, nil
}

// Locate finds an app's manifest file. The app's recorded base directory is
// tried first, then each search-path directory with the app name appended.
func Locate(appName, location string, searchPath []string) (string, error) {
	candidates := make([]string, 0, len(searchPath)+1)
	if location != "" {
		candidates = append(candidates, filepath.Join(location, FileName))
	}
	for _, dir := range searchPath {
		candidates = append(candidates, filepath.Join(dir, appName, FileName))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	primary := filepath.Join(location, FileName)
	if location == "" && len(candidates) > 0 {
		primary = candidates[0]
	}
	return "", &NotFoundError{App: appName, Path: primary}
}

// App returns the app name the manifest belongs to.
func (m *Manifest) App() string {
	return m.app
}

// Path returns the manifest's file path.
func (m *Manifest) Path() string {
	return m.path
}

// Commands returns all entries in file order.
func (m *Manifest) Commands() []Command {
	return m.commands
}

// Find returns the entry with the given command name.
func (m *Manifest) Find(name string) (Command, bool) {
	for _, c := range m.commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}
