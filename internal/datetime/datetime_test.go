package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToISO(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"canonical", "2025-03-04T09:30:00", "2025-03-04T09:30:00"},
		{"space separated", "2025-03-04 09:30", "2025-03-04T09:30:00"},
		{"several spaces", "2025-03-04   09:30", "2025-03-04T09:30:00"},
		{"missing seconds", "2025-03-04T09:30", "2025-03-04T09:30:00"},
		{"date only", "2025-03-04", "2025-03-04T00:00:00"},
		{"single digit month and day", "2025-3-4", "2025-03-04T00:00:00"},
		{"single digit day", "2025-12-4", "2025-12-04T00:00:00"},
		{"single digit month", "2025-3-14", "2025-03-14T00:00:00"},
		{"surrounding whitespace", "  2025-03-04 09:30\n", "2025-03-04T09:30:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToISO(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToISO_CanonicalIsFixedPoint(t *testing.T) {
	for _, s := range []string{"2025-03-04T09:30:00", "1999-12-31T23:59:59", "2030-01-01T00:00:00"} {
		got, err := ToISO(s)
		require.NoError(t, err)
		assert.Equal(t, s, got)

		again, err := ToISO(got)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}
}

func TestToISO_EquivalentSpellings(t *testing.T) {
	a, err := ToISO("2025-03-04 09:30")
	require.NoError(t, err)
	b, err := ToISO("2025-03-04T09:30")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-04T09:30:00", a)
	assert.Equal(t, a, b)
}

func TestToISO_Rejects(t *testing.T) {
	for _, in := range []string{
		"04/03/2025",
		"",
		"   ",
		"2025-03-04T09",
		"2025-3-4T09:30",
		"2025-03-04T09:30:00Z",
		"tomorrow",
		"25-03-04",
	} {
		t.Run(in, func(t *testing.T) {
			got, err := ToISO(in)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.ErrorIs(t, err, ErrFormat)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Contains(t, err.Error(), Expected)
		})
	}
}

func TestToISO_ErrorNamesInput(t *testing.T) {
	_, err := ToISO(" 04/03/2025 ")
	require.EqualError(t, err, "Invalid datetime format: 04/03/2025. Expected: YYYY-MM-DD HH:MM")
}

func TestFormat(t *testing.T) {
	date := time.Date(2025, time.March, 4, 23, 59, 0, 0, time.UTC)
	clock := time.Date(1, 1, 1, 9, 5, 42, 0, time.UTC)

	assert.Equal(t, "2025-03-04T09:05:00", Format(date, clock))

	iso, err := ToISO(Format(date, clock))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04T09:05:00", iso)
}

func TestParse(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	got, err := Parse("2025-03-04T09:30:00", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 4, 9, 30, 0, 0, loc)))

	got, err = Parse("2025-03-04T08:30:00Z", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 4, 9, 30, 0, 0, loc)))

	_, err = Parse("soon", loc)
	assert.ErrorIs(t, err, ErrFormat)
}
