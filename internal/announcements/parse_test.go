package announcements

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBool(t *testing.T) {
	cases := []struct {
		in     any
		value  bool
		parsed bool
	}{
		{true, true, true},
		{false, false, true},
		{float64(1), true, true},
		{float64(0), false, true},
		{float64(-3), true, true},
		{7, true, true},
		{json.Number("0"), false, true},
		{"true", true, true},
		{"TRUE", true, true},
		{"1", true, true},
		{"yes", false, true},
		{"0", false, true},
		{"", false, true},
		{nil, false, false},
		{map[string]any{}, false, false},
		{[]any{true}, false, false},
	}
	for _, tc := range cases {
		value, ok := ParseBool(tc.in)
		assert.Equal(t, tc.parsed, ok, "parsed %#v", tc.in)
		assert.Equal(t, tc.value, value, "value %#v", tc.in)
	}
}

func TestNullableText(t *testing.T) {
	assert.Nil(t, nullableText(nil))
	assert.Nil(t, nullableText(""))
	assert.Nil(t, nullableText(false))
	assert.Nil(t, nullableText(float64(0)))

	got := nullableText("banner.png")
	require.NotNil(t, got)
	assert.Equal(t, "banner.png", *got)

	pages := nullableText([]any{"/inicio", "/descargas"})
	require.NotNil(t, pages)
	assert.Equal(t, `["/inicio","/descargas"]`, *pages)
}

func TestParseTimestamp(t *testing.T) {
	ts, err := parseTimestamp("2025-03-07T10:30:00Z")
	require.NoError(t, err)
	assert.True(t, ts.Equal(time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)))

	for _, s := range []string{"2025-03-07T10:30", "2025-03-07 10:30:00", "2025-03-07 10:30"} {
		ts, err := parseTimestamp(s)
		require.NoError(t, err, s)
		assert.True(t, ts.Equal(time.Date(2025, 3, 7, 10, 30, 0, 0, time.Local)), s)
		assert.Equal(t, time.UTC, ts.Location(), s)
	}

	ts, err = parseTimestamp("")
	require.NoError(t, err)
	assert.Nil(t, ts)

	ts, err = parseTimestamp(nil)
	require.NoError(t, err)
	assert.Nil(t, ts)

	_, err = parseTimestamp("mañana")
	assert.Error(t, err)
	_, err = parseTimestamp(float64(12))
	assert.Error(t, err)
}

func TestParseTimestampKeepsOffsetInstant(t *testing.T) {
	ts, err := parseTimestamp("2026-01-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC), *ts)
}
