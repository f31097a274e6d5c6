package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AcceptedFormats(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-03-05", "05/03/2024", "2024-03-05T13:45:00", "2024-03-05 08:00:00", "2024-03-05T13:45:00Z"} {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(want), "%s -> %v", in, got)
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("03-05-2024")
	require.Error(t, err)
	_, err = Parse("")
	require.Error(t, err)
}

func TestRange_InclusiveAcrossMonth(t *testing.T) {
	got, err := Range("2024-02-27", "2024-03-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}, got)
}

func TestRange_SingleDayAndReversed(t *testing.T) {
	got, err := Range("2024-01-01", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01"}, got)

	got, err = Range("2024-01-02", "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRange_BadInput(t *testing.T) {
	_, err := Range("2024/01/01", "2024-01-02")
	require.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 3, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(a, b))
	assert.Equal(t, -2, DaysBetween(b, a))
}
