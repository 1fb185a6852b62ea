// Package app provides the pure domain layer for the app registry with no
// infrastructure dependencies.
//
// An App is a named collection of commands, backed by one manifest file in its
// base directory. The package defines the App entity, the Repository interface
// for durable storage, and the domain error types surfaced to users.
package app

import (
	"errors"
	"strings"
	"time"
)

// Validation errors returned by NewApp.
var (
	ErrEmptyName    = errors.New("app name cannot be empty")
	ErrNameHasSpace = errors.New("spaces are not allowed in the app name")
)

// ReservedName is the name of the built-in app that manages the registry.
// It is always resolvable and cannot be registered or deleted.
const ReservedName = "cli"

// ErrReservedName is returned when registering or deleting the built-in app.
var ErrReservedName = errors.New("app name is reserved for the built-in cli app")

// App represents a registered application: a name plus the base directory
// holding its command manifest. Fields are unexported; use the constructor
// and getter methods.
type App struct {
	name      string
	location  string
	createdAt time.Time
	updatedAt time.Time
}

// NewApp creates a new App with the given name and base directory.
// The name must be non-empty and contain no spaces.
func NewApp(name, location string) (*App, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if strings.ContainsRune(name, ' ') {
		return nil, ErrNameHasSpace
	}
	if name == ReservedName {
		return nil, ErrReservedName
	}
	now := time.Now()
	return &App{
		name:      name,
		location:  location,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Rehydrate reconstructs an App from persisted state. It bypasses name
// validation: the stored record is trusted.
func Rehydrate(name, location string, createdAt, updatedAt time.Time) *App {
	return &App{
		name:      name,
		location:  location,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Name returns the unique app name.
func (a *App) Name() string {
	return a.name
}

// Location returns the app's base directory.
func (a *App) Location() string {
	return a.location
}

// CreatedAt returns when the app was first registered.
func (a *App) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt returns when the app was last re-registered.
func (a *App) UpdatedAt() time.Time {
	return a.updatedAt
}
