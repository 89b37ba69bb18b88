package domain

import (
	"testing"
	"time"
)

func localDate(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func TestIsOverdue_WithDueTime(t *testing.T) {
	task := Task{Title: "Call", DueDate: "2026-03-10", DueTime: "14:30"}

	if IsOverdue(task, localDate(2026, time.March, 10, 14, 29)) {
		t.Error("task should not be overdue before its due time")
	}
	if IsOverdue(task, localDate(2026, time.March, 10, 14, 30)) {
		t.Error("task due exactly now should not be overdue")
	}
	if !IsOverdue(task, localDate(2026, time.March, 10, 14, 31)) {
		t.Error("task should be overdue after its due time")
	}
}

func TestIsOverdue_DateOnlyDefaultsToEndOfDay(t *testing.T) {
	task := Task{Title: "Report", DueDate: "2026-03-10"}

	if IsOverdue(task, localDate(2026, time.March, 10, 23, 59)) {
		t.Error("date-only task should not be overdue before end of day")
	}
	if !IsOverdue(task, localDate(2026, time.March, 11, 0, 0)) {
		t.Error("date-only task should be overdue the next day")
	}
}

func TestIsOverdue_CompletedNeverOverdue(t *testing.T) {
	task := Task{Title: "Done", DueDate: "2000-01-01", Completed: true}
	if IsOverdue(task, localDate(2026, time.March, 10, 12, 0)) {
		t.Error("completed task must never be overdue")
	}
}

func TestIsOverdue_NoDueDate(t *testing.T) {
	if IsOverdue(Task{Title: "Someday"}, time.Now()) {
		t.Error("task without due date must never be overdue")
	}
	// Due time without a due date carries no meaning.
	if IsOverdue(Task{Title: "Odd", DueTime: "09:00"}, time.Now()) {
		t.Error("due time without due date must be ignored")
	}
}

func TestIsDueToday(t *testing.T) {
	now := localDate(2026, time.March, 10, 8, 0)

	if !IsDueToday(Task{DueDate: "2026-03-10"}, now) {
		t.Error("task dated today should be due today")
	}
	if !IsDueToday(Task{DueDate: "2026-03-10", Completed: true}, now) {
		t.Error("completion must not affect due-today")
	}
	if IsDueToday(Task{DueDate: "2026-03-11"}, now) {
		t.Error("task dated tomorrow is not due today")
	}
	if IsDueToday(Task{}, now) {
		t.Error("task without due date is not due today")
	}
}

func TestCompletionPercentage(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{3, 10, 30},
		{1, 2, 50},
		{5, 5, 100},
		{1, 3, 33},
		{2, 3, 67},
	}
	for _, c := range cases {
		if got := CompletionPercentage(c.completed, c.total); got != c.want {
			t.Errorf("CompletionPercentage(%d, %d) = %d, want %d", c.completed, c.total, got, c.want)
		}
	}
}

func TestParseDateIsLocal(t *testing.T) {
	day, ok := ParseDate("2026-03-10")
	if !ok {
		t.Fatal("expected date to parse")
	}
	if day.Location() != time.Local {
		t.Errorf("dates must be parsed in local time, got %v", day.Location())
	}
	if FormatDate(day) != "2026-03-10" {
		t.Errorf("round trip mismatch: %s", FormatDate(day))
	}
}
