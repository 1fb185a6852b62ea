package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jvanvugt/auto-cli/internal/manifest"
)

// WriteManifest creates a temp app directory holding an ac.yaml that lists
// the given refs, and returns the directory.
func WriteManifest(t *testing.T, refs ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("commands:\n")
	for _, ref := range refs {
		b.WriteString("  - ref: " + ref + "\n")
	}
	return WriteManifestYAML(t, b.String())
}

// WriteManifestYAML creates a temp app directory holding the given ac.yaml
// content verbatim, and returns the directory.
func WriteManifestYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.FileName), []byte(content), 0600))
	return dir
}
