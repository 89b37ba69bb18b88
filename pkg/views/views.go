// Package views is the pure filtering core: given the full task set, the
// category set and a view-state snapshot it computes what each view shows,
// plus the sidebar counts. It holds no state and performs no I/O, so the
// same inputs always produce the same result.
package views

import (
	"strings"
	"time"

	"tasklight.app/tasklight/pkg/appstate"
	"tasklight.app/tasklight/pkg/domain"
)

// NavCounts are the sidebar badge numbers. They are computed from the whole
// task set, independent of whichever view is active.
type NavCounts struct {
	Today     int
	Important int
	Active    int
	All       int
}

// CategoryCount is one category's derived task statistics.
type CategoryCount struct {
	Category             domain.Category
	TaskCount            int
	CompletedCount       int
	CompletionPercentage int
}

// Result is everything a renderer needs for the active view.
type Result struct {
	// View is the state's current view; when Search is true the search
	// results replace whatever View would have shown.
	View   appstate.View
	Search bool

	// Title is the view's header label. For My Day it is date-relative:
	// "Today's Tasks", "Tomorrow's Tasks", "Yesterday's Tasks" or a
	// formatted weekday+date.
	Title string

	// Tasks is the visible set. Nil for the welcome splash and for the
	// category prompt state.
	Tasks []domain.Task

	// CategoryPrompt is set when the category view has no valid selection;
	// it is a distinct state from a category with zero tasks.
	CategoryPrompt bool

	// Category is the selected category when View is ViewCategory and the
	// selection resolves.
	Category *domain.Category

	Nav            NavCounts
	CategoryCounts []CategoryCount
}

// Compute runs the filter engine. Evaluation order: a non-empty trimmed
// search query overrides the current view entirely; otherwise the view's own
// filter applies. now anchors "today" for My Day and the nav badge.
func Compute(tasks []domain.Task, categories []domain.Category, state appstate.Snapshot, now time.Time) Result {
	res := Result{
		View:           state.CurrentView,
		Nav:            ComputeNavCounts(tasks, now),
		CategoryCounts: ComputeCategoryCounts(tasks, categories),
	}

	if query := strings.TrimSpace(state.SearchQuery); query != "" {
		res.Search = true
		res.Title = "Search Results"
		res.Tasks = filterSearch(tasks, query)
		return res
	}

	switch state.CurrentView {
	case appstate.ViewMyDay:
		target := state.SelectedDate
		if target == "" {
			target = domain.FormatDate(now)
		}
		res.Title = myDayTitle(target, now)
		res.Tasks = filterByDueDate(tasks, target)
	case appstate.ViewImportant:
		res.Title = "Important"
		res.Tasks = filterImportant(tasks)
	case appstate.ViewActive:
		res.Title = "Active"
		res.Tasks = filterActive(tasks)
	case appstate.ViewAll:
		res.Title = "All"
		res.Tasks = append([]domain.Task(nil), tasks...)
	case appstate.ViewCategory:
		cat := findCategory(categories, state.SelectedCategoryID)
		if cat == nil {
			// A missing or deleted selection renders a prompt, not an
			// empty task list.
			res.CategoryPrompt = true
			res.Title = "Please select a category"
			return res
		}
		res.Category = cat
		res.Title = cat.Name
		res.Tasks = filterByCategory(tasks, cat.ID)
	case appstate.ViewWelcome:
		res.Title = "Welcome"
	}
	return res
}

// ComputeNavCounts derives the sidebar badges from the entire task set.
func ComputeNavCounts(tasks []domain.Task, now time.Time) NavCounts {
	today := domain.FormatDate(now)
	counts := NavCounts{All: len(tasks)}
	for _, t := range tasks {
		if t.DueDate == today {
			counts.Today++
		}
		if t.Important {
			counts.Important++
		}
		if !t.Completed {
			counts.Active++
		}
	}
	return counts
}

// ComputeCategoryCounts derives per-category task statistics. A task whose
// CategoryID matches no category contributes to no count.
func ComputeCategoryCounts(tasks []domain.Task, categories []domain.Category) []CategoryCount {
	counts := make([]CategoryCount, 0, len(categories))
	for _, cat := range categories {
		cc := CategoryCount{Category: cat}
		for _, t := range tasks {
			if t.CategoryID != cat.ID {
				continue
			}
			cc.TaskCount++
			if t.Completed {
				cc.CompletedCount++
			}
		}
		cc.CompletionPercentage = domain.CompletionPercentage(cc.CompletedCount, cc.TaskCount)
		counts = append(counts, cc)
	}
	return counts
}

func filterSearch(tasks []domain.Task, query string) []domain.Task {
	q := strings.ToLower(query)
	out := make([]domain.Task, 0)
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) ||
			strings.Contains(strings.ToLower(t.CategoryID), q) {
			out = append(out, t)
		}
	}
	return out
}

func filterByDueDate(tasks []domain.Task, date string) []domain.Task {
	out := make([]domain.Task, 0)
	for _, t := range tasks {
		// A task must be explicitly scheduled for the day to appear in My
		// Day; no due date means never shown here.
		if t.DueDate != "" && t.DueDate == date {
			out = append(out, t)
		}
	}
	return out
}

func filterImportant(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, 0)
	for _, t := range tasks {
		if t.Important {
			out = append(out, t)
		}
	}
	return out
}

func filterActive(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, 0)
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

func filterByCategory(tasks []domain.Task, categoryID string) []domain.Task {
	out := make([]domain.Task, 0)
	for _, t := range tasks {
		if t.CategoryID == categoryID {
			out = append(out, t)
		}
	}
	return out
}

func findCategory(categories []domain.Category, id string) *domain.Category {
	if id == "" {
		return nil
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}

// myDayTitle labels the My Day header relative to the actual today, not the
// selected date.
func myDayTitle(target string, now time.Time) string {
	day, ok := domain.ParseDate(target)
	if !ok {
		return "My Day"
	}
	switch daysBetween(now, day) {
	case 0:
		return "Today's Tasks"
	case 1:
		return "Tomorrow's Tasks"
	case -1:
		return "Yesterday's Tasks"
	default:
		return day.Format("Monday, January 2")
	}
}

// daysBetween counts calendar days from from's date to to's date. Midnights
// are normalized to UTC so DST transitions cannot skew the division.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
