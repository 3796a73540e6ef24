package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseString(t *testing.T) {
	assert.Equal(t, "fallback", ParseString("INKWELL_TEST_UNSET", "fallback"))

	t.Setenv("INKWELL_TEST_STR", "from-env")
	assert.Equal(t, "from-env", ParseString("INKWELL_TEST_STR", "fallback"))

	t.Setenv("INKWELL_TEST_EMPTY", "")
	assert.Equal(t, "fallback", ParseString("INKWELL_TEST_EMPTY", "fallback"))
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		t.Setenv("INKWELL_TEST_BOOL", tt.value)
		assert.Equal(t, tt.want, ParseBool("INKWELL_TEST_BOOL", tt.def), "value %q default %v", tt.value, tt.def)
	}

	assert.True(t, ParseBool("INKWELL_TEST_BOOL_UNSET", true))
}

func TestParseDuration(t *testing.T) {
	t.Setenv("INKWELL_TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, ParseDuration("INKWELL_TEST_DUR", time.Minute))

	t.Setenv("INKWELL_TEST_DUR", "eventually")
	assert.Equal(t, time.Minute, ParseDuration("INKWELL_TEST_DUR", time.Minute))

	assert.Equal(t, time.Minute, ParseDuration("INKWELL_TEST_DUR_UNSET", time.Minute))
}
