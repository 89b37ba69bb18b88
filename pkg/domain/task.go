package domain

import "time"

// Task is the client-side shape of a todo item. The backend keys a task's
// category by name; the data layer resolves it to CategoryID before tasks
// reach this package, so CategoryID is "" when the task is uncategorized or
// the name matched no known category.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
	Important   bool   `json:"important"`
	DueDate     string `json:"dueDate,omitempty"`
	DueTime     string `json:"dueTime,omitempty"`
	CategoryID  string `json:"categoryId,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Category is the client-side category shape. TaskCount, CompletedCount and
// the completion percentage are derived from the task set, never stored.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string as a local calendar date. Due dates
// carry no time zone; parsing them as UTC shifts them a day near midnight,
// so every date comparison in the app goes through this one rule.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t as a YYYY-MM-DD string in local time.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// DueInstant computes the effective point in time the task is due. With a
// DueTime the instant is dueDate+dueTime local; without one the task is due
// at end of day. DueTime without DueDate is meaningless and ignored. The
// second return is false when the task has no due date.
func DueInstant(t Task) (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	day, ok := ParseDate(t.DueDate)
	if !ok {
		return time.Time{}, false
	}
	if t.DueTime != "" {
		if hm, err := time.Parse("15:04", t.DueTime); err == nil {
			return day.Add(time.Duration(hm.Hour())*time.Hour + time.Duration(hm.Minute())*time.Minute), true
		}
	}
	return day.Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond), true
}

// IsOverdue reports whether the task's effective due instant has passed.
// Completed tasks and tasks without a due date are never overdue. A task due
// exactly at now is not overdue.
func IsOverdue(t Task, now time.Time) bool {
	if t.Completed {
		return false
	}
	due, ok := DueInstant(t)
	if !ok {
		return false
	}
	return now.After(due)
}

// IsDueToday reports whether the task's due date equals now's local calendar
// date. Completion state and due time do not matter here.
func IsDueToday(t Task, now time.Time) bool {
	if t.DueDate == "" {
		return false
	}
	day, ok := ParseDate(t.DueDate)
	if !ok {
		return false
	}
	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// CompletionPercentage returns round(completed/total*100), half up, and 0
// when total is 0.
func CompletionPercentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int((float64(completed)/float64(total))*100 + 0.5)
}
