package util

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const providerDateLayout = "2006-01-02T15:04:05-0700"

// FormatDuration turns the transport API duration format (00d01:23:00) into
// a short human readable string such as "1h 23min"
func FormatDuration(duration string) (string, error) {
	days := 0
	clock := duration

	if dayPart, rest, found := strings.Cut(duration, "d"); found {
		if _, err := fmt.Sscanf(dayPart, "%d", &days); err != nil {
			return "", fmt.Errorf("invalid day marker in duration %q: %w", duration, err)
		}
		clock = rest
	}

	var hours, minutes, seconds int
	if _, err := fmt.Sscanf(clock, "%d:%d:%d", &hours, &minutes, &seconds); err != nil {
		return "", fmt.Errorf("invalid duration %q: %w", duration, err)
	}

	parts := []string{}
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dmin", minutes))
	}
	if seconds > 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}

	return strings.Join(parts, " "), nil
}

// FormatDate reformats a transport API timestamp to "2006-01-02 15:04"
func FormatDate(date string) (string, error) {
	parsed, err := time.Parse(providerDateLayout, date)
	if err != nil {
		return "", err
	}

	return parsed.Format("2006-01-02 15:04"), nil
}

func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(fraction*100)))
}
