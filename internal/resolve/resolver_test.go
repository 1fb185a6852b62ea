package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvanvugt/auto-cli/internal/command"
)

func forecast(location string, days int) string { return location }

// TestResolve_ByRef verifies dotted-path resolution produces full metadata.
func TestResolve_ByRef(t *testing.T) {
	l := NewLoader()
	require.NoError(t, l.Register("weather.forecast", forecast, command.Spec{
		Summary: "Forecast the weather",
		Params: []command.Param{
			{Name: "location"},
			{Name: "days", Default: 1},
		},
	}))

	cmd, err := NewResolver(l).Resolve("weather.forecast")
	require.NoError(t, err)
	assert.Equal(t, "forecast", cmd.Name())
	assert.Equal(t, "weather.forecast", cmd.Ref())
	require.Len(t, cmd.Params(), 2)
	assert.True(t, cmd.Params()[0].Required())
	assert.False(t, cmd.Params()[1].Required())
}

// TestResolve_UnknownRef verifies lookup errors pass through typed.
func TestResolve_UnknownRef(t *testing.T) {
	r := NewResolver(NewLoader())
	_, err := r.Resolve("nowhere.nothing")

	var notFound *ModuleNotFoundError
	require.ErrorAs(t, err, &notFound)
}

// TestResolve_MetadataErrorSurfacesAtResolution verifies incomplete
// registration metadata fails when the command is touched, not at call time.
func TestResolve_MetadataErrorSurfacesAtResolution(t *testing.T) {
	l := NewLoader()
	require.NoError(t, l.Register("m.f", func(a, b string) {}, command.Spec{
		Params: []command.Param{{Name: "a"}},
	}))

	_, err := NewResolver(l).Resolve("m.f")
	var unnamed *command.UnnamedParameterError
	require.ErrorAs(t, err, &unnamed)
	assert.Equal(t, 1, unnamed.Index)
}

// TestResolveFunc_DirectHandle verifies handle resolution and name
// introspection.
func TestResolveFunc_DirectHandle(t *testing.T) {
	r := NewResolver(NewLoader())
	cmd, err := r.ResolveFunc(forecast, command.Spec{
		Params: []command.Param{{Name: "location"}, {Name: "days", Default: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "forecast", cmd.Name())
	assert.Empty(t, cmd.Ref())
}
