package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar-day format used as the ledger's day-of-record.
	DateLayout = "2006-01-02"
	// ClockLayout is the time-of-day format stored on ledger rows.
	ClockLayout = "15:04:05"
)

// FormatDuration renders d as its non-zero hours/minutes/seconds components
// joined with " & ". An exact zero renders as "0 secs".
func FormatDuration(d time.Duration) string {
	parts := durationParts(d)
	if len(parts) == 0 {
		return "0 secs"
	}
	return strings.Join(parts, " & ")
}

func durationParts(d time.Duration) []string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := total % 3600 / 60
	secs := total % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hrs", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d mins", minutes))
	}
	if secs > 0 {
		parts = append(parts, fmt.Sprintf("%d secs", secs))
	}
	return parts
}

// FormatLateness renders a check-in delay at minute granularity. Unlike
// FormatDuration it always reports minutes, so a sub-minute delay reads
// "0 mins" rather than disappearing.
func FormatLateness(d time.Duration) string {
	minutes := int(d.Minutes())
	hours := minutes / 60
	minutes = minutes % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%d hrs & %d mins", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%d hrs", hours)
	default:
		return fmt.Sprintf("%d mins", minutes)
	}
}

// Elapsed subtracts two ClockLayout times of day. An end before the start is
// taken to fall on the next calendar day, so sessions that cross midnight
// still yield a positive duration.
func Elapsed(startTime, endTime string) (time.Duration, error) {
	start, err := time.Parse(ClockLayout, startTime)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", startTime, err)
	}
	end, err := time.Parse(ClockLayout, endTime)
	if err != nil {
		return 0, fmt.Errorf("invalid end time %q: %w", endTime, err)
	}
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	return end.Sub(start), nil
}

// Overage compares d against a limit given in minutes. When the limit is
// exceeded it returns true plus the formatted excess; otherwise false and an
// empty string.
func Overage(d time.Duration, limitMinutes int) (bool, string) {
	limit := time.Duration(limitMinutes) * time.Minute
	if d <= limit {
		return false, ""
	}
	return true, strings.Join(durationParts(d-limit), " & ")
}
