package app

import "fmt"

// NotFoundError is returned when a named app is not in the registry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown app %q, run 'ac cli apps' to see which apps are registered", e.Name)
}

// Repository defines the persistence interface for the app registry.
// Implementations may use SQLite or in-memory storage.
type Repository interface {
	// Save upserts an app keyed by name. Re-registering an existing app
	// overwrites its location and keeps its original registration order.
	Save(app *App) error

	// Get retrieves an app by name.
	// Returns NotFoundError if no app with that name is registered.
	Get(name string) (*App, error)

	// List returns all registered apps in registration order.
	List() ([]*App, error)

	// Delete removes an app by name.
	// Returns NotFoundError if no app with that name is registered.
	Delete(name string) error

	// Close releases any resources held by the repository.
	Close() error
}
