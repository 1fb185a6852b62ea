package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExpandHome tilde prefixes resolve against the home directory
func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, ".config", "ac"), ExpandHome("~/.config/ac"))
	assert.Equal(t, "/absolute/path", ExpandHome("/absolute/path"))
	assert.Equal(t, "relative/path", ExpandHome("relative/path"))
	assert.Equal(t, "", ExpandHome(""))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"), "~user form passes through")
}

// TestExpandHomeAll expands every entry
func TestExpandHomeAll(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got := ExpandHomeAll([]string{"~/apps", "/opt/apps"})
	assert.Equal(t, []string{filepath.Join(home, "apps"), "/opt/apps"}, got)

	assert.Nil(t, ExpandHomeAll(nil))
}
