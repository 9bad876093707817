package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{
			name:     "Zero",
			d:        0,
			expected: "0 secs",
		},
		{
			name:     "Seconds only",
			d:        42 * time.Second,
			expected: "42 secs",
		},
		{
			name:     "Minutes and seconds",
			d:        90 * time.Second,
			expected: "1 mins & 30 secs",
		},
		{
			name:     "Whole hour",
			d:        time.Hour,
			expected: "1 hrs",
		},
		{
			name:     "All components",
			d:        time.Hour + 2*time.Minute + 5*time.Second,
			expected: "1 hrs & 2 mins & 5 secs",
		},
		{
			name:     "Hour and seconds, no minutes",
			d:        time.Hour + 9*time.Second,
			expected: "1 hrs & 9 secs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.d))
		})
	}
}

func TestFormatLateness(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{
			name:     "Minutes only",
			d:        15 * time.Minute,
			expected: "15 mins",
		},
		{
			name:     "Hours and minutes",
			d:        75 * time.Minute,
			expected: "1 hrs & 15 mins",
		},
		{
			name:     "Whole hours",
			d:        2 * time.Hour,
			expected: "2 hrs",
		},
		{
			name:     "Under a minute",
			d:        30 * time.Second,
			expected: "0 mins",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatLateness(tt.d))
		})
	}
}

func TestElapsed(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected time.Duration
		wantErr  bool
	}{
		{
			name:     "Same day",
			start:    "08:00:00",
			end:      "17:30:00",
			expected: 9*time.Hour + 30*time.Minute,
		},
		{
			name:     "Crosses midnight",
			start:    "23:50:00",
			end:      "00:10:00",
			expected: 20 * time.Minute,
		},
		{
			name:     "Exact zero",
			start:    "12:00:00",
			end:      "12:00:00",
			expected: 0,
		},
		{
			name:    "Malformed start",
			start:   "junk",
			end:     "12:00:00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Elapsed(tt.start, tt.end)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestOverage(t *testing.T) {
	tests := []struct {
		name         string
		d            time.Duration
		limitMinutes int
		over         bool
		excess       string
	}{
		{
			name:         "Within limit",
			d:            20 * time.Minute,
			limitMinutes: 30,
			over:         false,
			excess:       "",
		},
		{
			name:         "Exactly at limit",
			d:            30 * time.Minute,
			limitMinutes: 30,
			over:         false,
			excess:       "",
		},
		{
			name:         "Over limit",
			d:            45 * time.Minute,
			limitMinutes: 30,
			over:         true,
			excess:       "15 mins",
		},
		{
			name:         "Far over limit",
			d:            2*time.Hour + 5*time.Minute + 30*time.Second,
			limitMinutes: 45,
			over:         true,
			excess:       "1 hrs & 20 mins & 30 secs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			over, excess := Overage(tt.d, tt.limitMinutes)
			assert.Equal(t, tt.over, over)
			assert.Equal(t, tt.excess, excess)
		})
	}
}
