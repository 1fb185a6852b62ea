package presentation

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFormatResult_Scalars scalars print in their natural string form
func TestFormatResult_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "sunny, 21C", "sunny, 21C\n"},
		{"int", 42, "42\n"},
		{"float", 2.5, "2.5\n"},
		{"bool", true, "true\n"},
		{"duration", 90 * time.Second, "1m30s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := NewFormatter(&buf).FormatResult(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

// TestFormatResult_Nil nil produces no output
func TestFormatResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	require.NoError(t, f.FormatResult(nil))
	assert.Empty(t, buf.String())

	var p *struct{ X int }
	require.NoError(t, f.FormatResult(p))
	assert.Empty(t, buf.String(), "typed nil pointer should produce no output")
}

// TestFormatResult_Struct structured values render as indented JSON
func TestFormatResult_Struct(t *testing.T) {
	type forecast struct {
		Location string `json:"location"`
		TempC    int    `json:"temp_c"`
	}

	var buf bytes.Buffer
	err := NewFormatter(&buf).FormatResult(forecast{Location: "Amsterdam", TempC: 18})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"location\": \"Amsterdam\",\n  \"temp_c\": 18\n}\n", buf.String())
}

// TestFormatResult_Slice slices render as JSON arrays
func TestFormatResult_Slice(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(&buf).FormatResult([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "[\n  1,\n  2,\n  3\n]\n", buf.String())
}

// TestFormatResult_PointerToStruct pointers render their element
func TestFormatResult_PointerToStruct(t *testing.T) {
	type report struct {
		OK bool `json:"ok"`
	}

	var buf bytes.Buffer
	err := NewFormatter(&buf).FormatResult(&report{OK: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"ok\": true")
}

// TestFormatCatalog commands line up in two columns
func TestFormatCatalog(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(&buf).FormatCatalog("weather", []CatalogEntry{
		{Name: "get_weather", Summary: "Fetch the forecast"},
		{Name: "history", Summary: ""},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Usage: ac weather <command> [flags]")
	assert.Contains(t, out, "  get_weather           Fetch the forecast\n")
	assert.Contains(t, out, "  history\n")
}

// TestFormatCatalog_Empty no commands section when the app has none
func TestFormatCatalog_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(&buf).FormatCatalog("empty", nil)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "Commands:")
}
