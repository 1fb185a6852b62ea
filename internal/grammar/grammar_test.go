package grammar

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jvanvugt/auto-cli/internal/command"
)

func mustDescribe(t *testing.T, name string, fn any, spec command.Spec) *command.Command {
	t.Helper()
	cmd, err := command.Describe(name, "", fn, spec)
	require.NoError(t, err)
	return cmd
}

// TestCompilePreservesOrder flags come out in the function's declaration order
func TestCompilePreservesOrder(t *testing.T) {
	fn := func(location string, days int, celsius bool) string { return "" }
	cmd := mustDescribe(t, "get_weather", fn, command.Spec{
		Params: []command.Param{
			{Name: "location"},
			{Name: "days", Default: 3},
			{Name: "celsius", Default: true},
		},
	})

	g := Compile(cmd)

	require.Len(t, g.Flags, 3)
	assert.Equal(t, "location", g.Flags[0].Name)
	assert.Equal(t, "days", g.Flags[1].Name)
	assert.Equal(t, "celsius", g.Flags[2].Name)
	assert.True(t, g.Flags[0].Required)
	assert.False(t, g.Flags[1].Required)
	assert.Equal(t, 3, g.Flags[1].Default)
}

// TestFind looks up flags by long name
func TestFind(t *testing.T) {
	fn := func(verbose bool) {}
	g := Compile(mustDescribe(t, "run", fn, command.Spec{
		Params: []command.Param{{Name: "verbose", Default: false}},
	}))

	f, ok := g.Find("verbose")
	require.True(t, ok)
	assert.Equal(t, command.KindBool, f.Kind)

	_, ok = g.Find("missing")
	assert.False(t, ok)
}

// TestCoerceScalars converts tokens for every supported kind
func TestCoerceScalars(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		raw  string
		want any
	}{
		{reflect.TypeOf(""), "hello", "hello"},
		{reflect.TypeOf(0), "-42", -42},
		{reflect.TypeOf(uint16(0)), "7", uint16(7)},
		{reflect.TypeOf(float64(0)), "2.5", 2.5},
		{reflect.TypeOf(false), "true", true},
		{reflect.TypeOf(false), "False", false},
		{reflect.TypeOf(time.Duration(0)), "90s", 90 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			fnType := reflect.FuncOf([]reflect.Type{tt.typ}, nil, false)
			fn := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
				return nil
			}).Interface()
			g := Compile(mustDescribe(t, "cmd", fn, command.Spec{
				Params: []command.Param{{Name: "value"}},
			}))

			got, err := g.Flags[0].Coerce(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestCoerceFailure bad tokens yield a CoercionError naming the flag
func TestCoerceFailure(t *testing.T) {
	fn := func(count int) {}
	g := Compile(mustDescribe(t, "cmd", fn, command.Spec{
		Params: []command.Param{{Name: "count"}},
	}))

	_, err := g.Flags[0].Coerce("seven")
	var cerr *CoercionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "count", cerr.Flag)
	assert.Equal(t, "seven", cerr.Value)
	assert.Contains(t, cerr.Error(), "expected int")
}

// TestCoerceOutOfRange values that do not fit a sized numeric type fail
// instead of wrapping around
func TestCoerceOutOfRange(t *testing.T) {
	tests := []struct {
		typ reflect.Type
		raw string
	}{
		{reflect.TypeOf(int8(0)), "300"},
		{reflect.TypeOf(int8(0)), "-200"},
		{reflect.TypeOf(uint8(0)), "256"},
		{reflect.TypeOf(float32(0)), "1e39"},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String()+"/"+tt.raw, func(t *testing.T) {
			fnType := reflect.FuncOf([]reflect.Type{tt.typ}, nil, false)
			fn := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
				return nil
			}).Interface()
			g := Compile(mustDescribe(t, "cmd", fn, command.Spec{
				Params: []command.Param{{Name: "n"}},
			}))

			_, err := g.Flags[0].Coerce(tt.raw)
			var cerr *CoercionError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, "n", cerr.Flag)
			assert.Contains(t, cerr.Error(), "out of range for "+tt.typ.String())
		})
	}

	// In-range values for the same sized types still convert.
	fn := func(n int8) {}
	g := Compile(mustDescribe(t, "cmd", fn, command.Spec{
		Params: []command.Param{{Name: "n"}},
	}))
	got, err := g.Flags[0].Coerce("-128")
	require.NoError(t, err)
	assert.Equal(t, int8(-128), got)
}

// TestCoerceBoolRejectsJunk bool flags only accept boolean tokens
func TestCoerceBoolRejectsJunk(t *testing.T) {
	fn := func(dry bool) {}
	g := Compile(mustDescribe(t, "cmd", fn, command.Spec{
		Params: []command.Param{{Name: "dry", Default: false}},
	}))

	_, err := g.Flags[0].Coerce("yes please")
	var cerr *CoercionError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Error(), "true or false")
}

// TestCoerceEnum values outside the registered options are rejected
func TestCoerceEnum(t *testing.T) {
	fn := func(unit string) {}
	g := Compile(mustDescribe(t, "cmd", fn, command.Spec{
		Params: []command.Param{{Name: "unit", Default: "metric", Options: []string{"metric", "imperial"}}},
	}))

	got, err := g.Flags[0].Coerce("imperial")
	require.NoError(t, err)
	assert.Equal(t, "imperial", got)

	_, err = g.Flags[0].Coerce("nautical")
	var cerr *CoercionError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Error(), "one of metric, imperial")
}

// TestCoerceNamedType tokens convert into named scalar types
func TestCoerceNamedType(t *testing.T) {
	type temperature float64
	fn := func(temp temperature) {}
	g := Compile(mustDescribe(t, "cmd", fn, command.Spec{
		Params: []command.Param{{Name: "temp"}},
	}))

	got, err := g.Flags[0].Coerce("21.5")
	require.NoError(t, err)
	assert.Equal(t, temperature(21.5), got)
}

// TestCoerceSlice repeated flags accumulate into a typed slice
func TestCoerceSlice(t *testing.T) {
	fn := func(ids []int64) {}
	g := Compile(mustDescribe(t, "cmd", fn, command.Spec{
		Params: []command.Param{{Name: "ids"}},
	}))
	require.True(t, g.Flags[0].Repeated)

	got, err := g.Flags[0].CoerceSlice([]string{"1", "2", "3"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, got)

	_, err = g.Flags[0].CoerceSlice([]string{"1", "oops"})
	var cerr *CoercionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "oops", cerr.Value)
}

// TestUsage help text lists required flags in the synopsis and all flags below
func TestUsage(t *testing.T) {
	fn := func(location string, days int) string { return "" }
	g := Compile(mustDescribe(t, "get_weather", fn, command.Spec{
		Summary: "Fetch the forecast",
		Params: []command.Param{
			{Name: "location", Help: "city to look up"},
			{Name: "days", Short: "d", Default: 3, Help: "forecast horizon"},
		},
	}))

	out := g.Usage("weather")
	assert.Contains(t, out, "Usage: ac weather get_weather --location string [flags]")
	assert.Contains(t, out, "Fetch the forecast")
	assert.Contains(t, out, "--location string")
	assert.Contains(t, out, "city to look up (required)")
	assert.Contains(t, out, "-d, --days int")
	assert.Contains(t, out, "forecast horizon (default 3)")
	assert.Contains(t, out, "-h, --help")
}

// TestUsageNoFlags a flagless command still documents --help
func TestUsageNoFlags(t *testing.T) {
	fn := func() {}
	g := Compile(mustDescribe(t, "version", fn, command.Spec{}))

	out := g.Usage("cli")
	assert.Contains(t, out, "Usage: ac cli version\n")
	assert.Contains(t, out, "--help")
}

// TestCompileFlagCounts for any function with n required and m optional
// parameters the grammar has exactly n required and m optional flags, in
// declaration order.
func TestCompileFlagCounts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 6).Draw(t, "required")
		m := rapid.IntRange(0, 6).Draw(t, "optional")

		total := n + m
		ins := make([]reflect.Type, total)
		params := make([]command.Param, total)
		for i := range total {
			ins[i] = reflect.TypeOf("")
			params[i] = command.Param{Name: fmt.Sprintf("p%d", i)}
			if i >= n {
				params[i].Default = "fallback"
			}
		}

		fnType := reflect.FuncOf(ins, nil, false)
		fn := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
			return nil
		}).Interface()

		cmd, err := command.Describe("cmd", "", fn, command.Spec{Params: params})
		require.NoError(t, err)
		g := Compile(cmd)

		require.Len(t, g.Flags, total)
		var required, optional int
		for i, f := range g.Flags {
			assert.Equal(t, fmt.Sprintf("p%d", i), f.Name)
			if f.Required {
				required++
			} else {
				optional++
			}
		}
		assert.Equal(t, n, required)
		assert.Equal(t, m, optional)
	})
}
