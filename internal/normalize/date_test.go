package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		assumedYear int
		want        time.Time
		wantErr     bool
	}{
		{"full year", "05/01/2025", 2024, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), false},
		{"no leading zeros", "1/3/2025", 2024, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), false},
		{"two digit year 2000s", "05/01/25", 1999, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), false},
		{"two digit year 1900s", "05/01/99", 2024, time.Date(1999, 5, 1, 0, 0, 0, 0, time.UTC), false},
		{"pivot boundary 50", "01/01/50", 2024, time.Date(2050, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"pivot boundary 51", "01/01/51", 2024, time.Date(1951, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"bare month day", "05/01", 2023, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), false},
		{"leap day valid", "02/29/2024", 2024, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), false},
		{"leap day invalid", "02/29/2025", 2024, time.Time{}, true},
		{"impossible day", "02/30/2025", 2024, time.Time{}, true},
		{"month thirteen", "13/01/2025", 2024, time.Time{}, true},
		{"day zero", "05/00/2025", 2024, time.Time{}, true},
		{"not a date", "hello", 2024, time.Time{}, true},
		{"iso format rejected", "2025-05-01", 2024, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Date(tt.token, tt.assumedYear)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestDateLeadingZeroEquivalence(t *testing.T) {
	a, err := Date("1/3/2025", 2024)
	require.NoError(t, err)
	b, err := Date("01/03/2025", 2024)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestAssumedYear(t *testing.T) {
	assert.Equal(t, 2023, AssumedYear("Statement Period 01/01/2023 - 01/31/2023"))
	assert.Equal(t, 1998, AssumedYear("archived statement 1998"))

	// No year anywhere falls back to the current calendar year.
	assert.Equal(t, time.Now().Year(), AssumedYear("05/01 STARBUCKS -6.50"))
}
