// Package builtin implements the resident "cli" app: the registry's own
// management commands. Unlike registered apps it needs no manifest and can
// never be deleted, so `ac cli apps` keeps working even on an empty registry.
package builtin

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jvanvugt/auto-cli/internal/command"
	"github.com/jvanvugt/auto-cli/internal/domain/app"
	"github.com/jvanvugt/auto-cli/internal/flags"
	"github.com/jvanvugt/auto-cli/internal/log"
	"github.com/jvanvugt/auto-cli/internal/manifest"
	"github.com/jvanvugt/auto-cli/internal/pubsub"
	"github.com/jvanvugt/auto-cli/internal/resolve"
)

// Service backs the built-in registry management commands.
type Service struct {
	repo     app.Repository
	resolver *resolve.Resolver
	flags    *flags.Registry
	broker   *pubsub.Broker[*app.App]
}

// NewService creates the built-in command service. The broker may be nil when
// nothing observes registry mutations.
func NewService(repo app.Repository, resolver *resolve.Resolver, featureFlags *flags.Registry, broker *pubsub.Broker[*app.App]) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		flags:    featureFlags,
		broker:   broker,
	}
}

// Apps returns the registered app names, one per line. The built-in app is
// always listed first; the rest follow registration order.
func (s *Service) Apps() (string, error) {
	apps, err := s.repo.List()
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(apps)+1)
	names = append(names, app.ReservedName)
	for _, a := range apps {
		names = append(names, a.Name())
	}
	return strings.Join(names, "\n"), nil
}

// RegisterApp registers an app under the given name, with location as the
// directory holding its command manifest. The location is stored absolute so
// later invocations work from any directory. Registration fails when no
// manifest exists there; with manifest validation enabled every command
// reference in the manifest must also resolve.
func (s *Service) RegisterApp(name, location string) (string, error) {
	location, err := filepath.Abs(location)
	if err != nil {
		return "", fmt.Errorf("resolve location: %w", err)
	}
	a, err := app.NewApp(name, location)
	if err != nil {
		return "", err
	}

	m, err := manifest.Load(name, filepath.Join(location, manifest.FileName))
	if err != nil {
		// At register time the manifest has never existed, so the
		// dispatch-time "was it deleted?" wording would mislead.
		var nf *manifest.NotFoundError
		if errors.As(err, &nf) {
			return "", fmt.Errorf("can not find %s", nf.Path)
		}
		return "", err
	}

	if s.flags.Enabled(flags.FlagManifestValidate) {
		for _, c := range m.Commands() {
			if _, err := s.resolver.Resolve(c.Ref); err != nil {
				return "", fmt.Errorf("command %q does not resolve: %w", c.Name, err)
			}
		}
	}

	if err := s.repo.Save(a); err != nil {
		return "", err
	}
	if s.broker != nil {
		s.broker.Publish(pubsub.CreatedEvent, a)
	}
	log.Info(log.CatStore, "Registered app", "name", name, "location", location, "commands", len(m.Commands()))
	return fmt.Sprintf("Registered %s (%d commands)", name, len(m.Commands())), nil
}

// DeleteApp removes an app from the registry. Deleting an unknown app is an
// error and changes nothing.
func (s *Service) DeleteApp(name string) (string, error) {
	if name == app.ReservedName {
		return "", app.ErrReservedName
	}

	// Fetch first so the event payload carries the full record.
	a, err := s.repo.Get(name)
	if err != nil {
		return "", err
	}
	if err := s.repo.Delete(name); err != nil {
		return "", err
	}
	if s.broker != nil {
		s.broker.Publish(pubsub.DeletedEvent, a)
	}
	log.Info(log.CatStore, "Deleted app", "name", name)
	return fmt.Sprintf("Deleted %s", name), nil
}

// Register installs the built-in commands into a loader under the reserved
// module name.
func (s *Service) Register(loader *resolve.Loader) error {
	regs := []struct {
		ref  string
		fn   any
		spec command.Spec
	}{
		{
			ref:  app.ReservedName + ".apps",
			fn:   s.Apps,
			spec: command.Spec{Summary: "List the registered apps"},
		},
		{
			ref: app.ReservedName + ".register_app",
			fn:  s.RegisterApp,
			spec: command.Spec{
				Summary: "Register an app with the registry",
				Params: []command.Param{
					{Name: "name", Help: "name the app will be invoked by"},
					{Name: "location", Help: "directory holding the app's " + manifest.FileName, Default: "."},
				},
			},
		},
		{
			ref: app.ReservedName + ".delete_app",
			fn:  s.DeleteApp,
			spec: command.Spec{
				Summary: "Remove an app from the registry",
				Params: []command.Param{
					{Name: "name", Help: "app to remove"},
				},
			},
		},
	}

	var errs []error
	for _, r := range regs {
		if err := loader.Register(r.ref, r.fn, r.spec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
