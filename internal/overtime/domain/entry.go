package domain

import (
	"fmt"
	"time"
)

// Entry is a single recorded overtime period owned by one user. Ownership is
// immutable after creation; there is no edit path, only create and delete.
type Entry struct {
	ID          string
	UserID      string
	Date        time.Time // calendar day, time-of-day zeroed
	StartAt     time.Time
	EndAt       time.Time
	Description string
	CreatedAt   time.Time
}

// Duration is the recorded overtime span. Entries are validated on creation
// so this is always positive.
func (e Entry) Duration() time.Duration {
	return e.EndAt.Sub(e.StartAt)
}

// EntryWithOwner attaches owner identity for admin-facing listings.
type EntryWithOwner struct {
	Entry

	OwnerUsername string
	OwnerName     string
}

// EntryList is the result of listing one owner's entries, newest date first,
// together with the aggregate duration over all of them.
type EntryList struct {
	Entries []Entry
	Total   time.Duration
}

// Hours renders a duration as decimal hours with two-decimal precision,
// e.g. 9h45min -> "9.75".
func Hours(d time.Duration) string {
	return fmt.Sprintf("%.2f", d.Minutes()/60)
}

// FormatDuration renders a duration compactly as whole hours plus remainder
// minutes, e.g. "9h45min". Zero renders as "0h" and whole hours drop the
// minute part. Both this and Hours derive from the same duration value so the
// two displays can never drift apart.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0h"
	}
	minutes := int64(d / time.Minute)
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dmin", h, m)
}
