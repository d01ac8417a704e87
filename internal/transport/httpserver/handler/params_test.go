package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateParam(t *testing.T) {
	parsed, err := parseDateParam(" 2026-03-15 ")
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *parsed)

	parsed, err = parseDateParam("")
	require.NoError(t, err)
	assert.Nil(t, parsed)

	_, err = parseDateParam("15/03/2026")
	assert.Error(t, err)
}

func TestParseIntParam(t *testing.T) {
	value, err := parseIntParam("12", 0)
	require.NoError(t, err)
	assert.Equal(t, 12, value)

	value, err = parseIntParam("", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, value)

	_, err = parseIntParam("abc", 0)
	assert.Error(t, err)

	_, err = parseIntParam("-3", 0)
	assert.Error(t, err)
}

func TestParseBoolParam(t *testing.T) {
	parsed, err := parseBoolParam("true")
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.True(t, *parsed)

	parsed, err = parseBoolParam("")
	require.NoError(t, err)
	assert.Nil(t, parsed)

	_, err = parseBoolParam("maybe")
	assert.Error(t, err)
}

func TestParseYearMonth(t *testing.T) {
	req := httptest.NewRequest("GET", "/analytics/overview?year=2026&month=3", nil)
	year, month, err := parseYearMonth(req)
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 3, month)

	req = httptest.NewRequest("GET", "/analytics/overview", nil)
	year, month, err = parseYearMonth(req)
	require.NoError(t, err)
	assert.Zero(t, year)
	assert.Zero(t, month)

	req = httptest.NewRequest("GET", "/analytics/overview?month=abc", nil)
	_, _, err = parseYearMonth(req)
	assert.Error(t, err)
}
