// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package task

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// calendarDay truncates t to midnight UTC.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDueDate accepts YYYY-MM-DD or RFC3339 and returns midnight UTC of the calendar day
// written in the value, an RFC3339 offset does not move the day.
// An empty value means no due date.
func ParseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(dateLayout, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q", value)
	}

	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day, nil
}

// DaysUntil returns the number of calendar days from now to due, negative when due is in the past.
func DaysUntil(due, now time.Time) int {
	return int(calendarDay(due).Sub(calendarDay(now)).Hours() / 24)
}

func IsOverdue(due *time.Time, now time.Time) bool {
	return due != nil && DaysUntil(*due, now) < 0
}

func IsDueToday(due *time.Time, now time.Time) bool {
	return due != nil && DaysUntil(*due, now) == 0
}

func IsDueTomorrow(due *time.Time, now time.Time) bool {
	return due != nil && DaysUntil(*due, now) == 1
}

// IsDueThisWeek is true for due dates between today and the next six days.
func IsDueThisWeek(due *time.Time, now time.Time) bool {
	if due == nil {
		return false
	}
	d := DaysUntil(*due, now)
	return d >= 0 && d < 7
}

// FormatDueDate renders a due date relative to now.
func FormatDueDate(due *time.Time, now time.Time) string {
	if due == nil {
		return ""
	}

	switch days := DaysUntil(*due, now); {
	case days < 0:
		if days == -1 {
			return "1 day overdue"
		}
		return fmt.Sprintf("%d days overdue", -days)
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due tomorrow"
	}

	return "Due " + due.UTC().Format("Jan 2")
}
