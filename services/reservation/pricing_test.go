package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestComputeStay(t *testing.T) {
	tests := []struct {
		name      string
		checkIn   string
		checkOut  string
		rate      float64
		wantNil   bool
		wantNoche int
		wantTotal float64
	}{
		{
			name:      "two nights",
			checkIn:   "2025-03-10",
			checkOut:  "2025-03-12",
			rate:      1000,
			wantNoche: 2,
			wantTotal: 2000,
		},
		{
			name:      "single night",
			checkIn:   "2025-03-10",
			checkOut:  "2025-03-11",
			rate:      1500,
			wantNoche: 1,
			wantTotal: 1500,
		},
		{
			name:      "week long stay",
			checkIn:   "2025-07-01",
			checkOut:  "2025-07-08",
			rate:      850.5,
			wantNoche: 7,
			wantTotal: 5953.5,
		},
		{
			name:     "same day checkout yields no quote",
			checkIn:  "2025-03-10",
			checkOut: "2025-03-10",
			rate:     1000,
			wantNil:  true,
		},
		{
			name:     "checkout before checkin yields no quote",
			checkIn:  "2025-03-12",
			checkOut: "2025-03-10",
			rate:     1000,
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStay(mustDate(t, tt.checkIn), mustDate(t, tt.checkOut), tt.rate)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantNoche, got.Noches)
			assert.Equal(t, tt.wantTotal, got.Total)
		})
	}
}

func TestComputeStayDeterministic(t *testing.T) {
	in := mustDate(t, "2025-05-01")
	out := mustDate(t, "2025-05-04")

	first := ComputeStay(in, out, 1200)
	second := ComputeStay(in, out, 1200)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}

func TestParseInterval(t *testing.T) {
	t.Run("valid interval", func(t *testing.T) {
		in, out, err := parseInterval("2025-03-10", "2025-03-12")
		require.NoError(t, err)
		assert.True(t, out.After(in))
	})

	t.Run("rejects equal dates", func(t *testing.T) {
		_, _, err := parseInterval("2025-03-10", "2025-03-10")
		require.Error(t, err)
		assert.Equal(t, CodeValidation, CodeOf(err))
	})

	t.Run("rejects inverted interval", func(t *testing.T) {
		_, _, err := parseInterval("2025-03-12", "2025-03-10")
		require.Error(t, err)
		assert.Equal(t, CodeValidation, CodeOf(err))
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		_, _, err := parseInterval("10/03/2025", "2025-03-12")
		require.Error(t, err)
		assert.Equal(t, CodeValidation, CodeOf(err))
	})
}
