package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEnabled_KnownFlag verifies configured flags report their value.
func TestEnabled_KnownFlag(t *testing.T) {
	r := New(map[string]bool{
		FlagManifestValidate: true,
		FlagGrammarCache:     false,
	})

	require.True(t, r.Enabled(FlagManifestValidate))
	require.False(t, r.Enabled(FlagGrammarCache))
}

// TestEnabled_UnknownFlagDefaultsFalse verifies unknown flags are disabled.
func TestEnabled_UnknownFlagDefaultsFalse(t *testing.T) {
	r := New(map[string]bool{FlagGrammarCache: true})
	require.False(t, r.Enabled("no-such-flag"))
}

// TestEnabled_NilRegistry verifies nil-safety.
func TestEnabled_NilRegistry(t *testing.T) {
	var r *Registry
	require.False(t, r.Enabled(FlagGrammarCache))
	require.Empty(t, r.All())
}

// TestNew_NilMap verifies a nil config map yields an empty registry.
func TestNew_NilMap(t *testing.T) {
	r := New(nil)
	require.False(t, r.Enabled(FlagManifestValidate))
	require.Empty(t, r.All())
}

// TestAll_ReturnsCopy verifies mutating the result does not affect the registry.
func TestAll_ReturnsCopy(t *testing.T) {
	r := New(map[string]bool{FlagGrammarCache: true})
	all := r.All()
	all[FlagGrammarCache] = false
	require.True(t, r.Enabled(FlagGrammarCache))
}
