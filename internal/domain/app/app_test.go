package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNewApp_Valid verifies a plain name and location round-trip through accessors.
func TestNewApp_Valid(t *testing.T) {
	a, err := NewApp("weather", "/srv/weather")
	require.NoError(t, err)
	require.Equal(t, "weather", a.Name())
	require.Equal(t, "/srv/weather", a.Location())
	require.False(t, a.CreatedAt().IsZero())
	require.Equal(t, a.CreatedAt(), a.UpdatedAt())
}

// TestNewApp_EmptyName verifies empty names are rejected.
func TestNewApp_EmptyName(t *testing.T) {
	_, err := NewApp("", "/tmp")
	require.ErrorIs(t, err, ErrEmptyName)
}

// TestNewApp_NameWithSpace verifies names with spaces are rejected.
func TestNewApp_NameWithSpace(t *testing.T) {
	_, err := NewApp("my app", "/tmp")
	require.ErrorIs(t, err, ErrNameHasSpace)
}

// TestNewApp_ReservedName verifies the built-in cli app cannot be shadowed.
func TestNewApp_ReservedName(t *testing.T) {
	_, err := NewApp(ReservedName, "/tmp")
	require.ErrorIs(t, err, ErrReservedName)
}

// TestNotFoundError_MessageNamesApp verifies the error identifies the missing app.
func TestNotFoundError_MessageNamesApp(t *testing.T) {
	err := &NotFoundError{Name: "nonexistent"}
	require.Contains(t, err.Error(), "nonexistent")
}
