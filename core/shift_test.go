package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy(t *testing.T) *ShiftPolicy {
	t.Helper()
	policy, err := NewShiftPolicy("08:00", "20:00", map[string]GroupShift{
		"mqm":        {AM: "08:45", PM: "20:45"},
		"office boy": {AM: "09:00", PM: "21:00"},
		"admin":      {AM: "11:00", PM: "23:00"},
	})
	require.NoError(t, err)
	return policy
}

func instant(day string, hhmmss string) time.Time {
	t, err := time.Parse(DateLayout+" "+ClockLayout, day+" "+hhmmss)
	if err != nil {
		panic(err)
	}
	return t
}

func TestExpectedCheckIn(t *testing.T) {
	policy := testPolicy(t)

	tests := []struct {
		name     string
		group    string
		now      time.Time
		expected *time.Time
		label    string
	}{
		{
			name:     "Default group AM window",
			group:    "assembler",
			now:      instant("2024-03-11", "07:30:00"),
			expected: ptr(instant("2024-03-11", "08:00:00")),
			label:    LabelAM,
		},
		{
			name:     "Default group PM window",
			group:    "assembler",
			now:      instant("2024-03-11", "19:45:00"),
			expected: ptr(instant("2024-03-11", "20:00:00")),
			label:    LabelPM,
		},
		{
			name:     "Group override AM",
			group:    "mqm",
			now:      instant("2024-03-11", "08:30:00"),
			expected: ptr(instant("2024-03-11", "08:45:00")),
			label:    LabelAM,
		},
		{
			name:     "Group override is case-insensitive",
			group:    "Office Boy",
			now:      instant("2024-03-11", "09:30:00"),
			expected: ptr(instant("2024-03-11", "09:00:00")),
			label:    LabelAM,
		},
		{
			name:     "After midnight anchors to previous evening",
			group:    "assembler",
			now:      instant("2024-03-11", "02:00:00"),
			expected: ptr(instant("2024-03-10", "20:00:00")),
			label:    LabelPMAfterMidnight,
		},
		{
			name:     "Afternoon gap has no expectation",
			group:    "assembler",
			now:      instant("2024-03-11", "13:00:00"),
			expected: nil,
			label:    LabelUnknown,
		},
		{
			name:     "HR morning window",
			group:    "hr",
			now:      instant("2024-03-11", "07:00:00"),
			expected: ptr(instant("2024-03-11", "08:00:00")),
			label:    LabelAM,
		},
		{
			name:     "HR midday window",
			group:    "HR",
			now:      instant("2024-03-11", "10:30:00"),
			expected: ptr(instant("2024-03-11", "12:00:00")),
			label:    LabelMidday,
		},
		{
			name:     "HR evening has no PM shift",
			group:    "hr",
			now:      instant("2024-03-11", "19:00:00"),
			expected: nil,
			label:    LabelNoPM,
		},
		{
			name:     "HR before dawn has no previous-evening anchor",
			group:    "hr",
			now:      instant("2024-03-11", "03:00:00"),
			expected: nil,
			label:    LabelNoPM,
		},
		{
			name:     "Admin late PM expectation",
			group:    "admin",
			now:      instant("2024-03-11", "22:00:00"),
			expected: ptr(instant("2024-03-11", "23:00:00")),
			label:    LabelPM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected, label := policy.ExpectedCheckIn(tt.group, tt.now)
			assert.Equal(t, tt.label, label)
			if tt.expected == nil {
				assert.Nil(t, expected)
				return
			}
			require.NotNil(t, expected)
			assert.True(t, tt.expected.Equal(*expected), "expected %v, got %v", tt.expected, expected)
		})
	}
}

func TestNewShiftPolicyRejectsBadTimes(t *testing.T) {
	_, err := NewShiftPolicy("8 o'clock", "20:00", nil)
	assert.Error(t, err)

	_, err = NewShiftPolicy("08:00", "20:00", map[string]GroupShift{"mqm": {AM: "25:00"}})
	assert.Error(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
