package domain

import "time"

// Placeholder is shown for every absent optional field.
const Placeholder = "N/A"

// OrPlaceholder dereferences an optional field.
func OrPlaceholder(s *string) string {
	if s == nil || *s == "" {
		return Placeholder
	}
	return *s
}

// FormatDate renders an account timestamp in local time, or the
// placeholder when unknown.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Local().Format("Jan 2, 2006")
}
