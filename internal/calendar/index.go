package calendar

import (
	"sort"
	"sync"

	"github.com/office-admin/dashboard/internal/storage/models"
)

// Categories in priority order. Birthday belongs to the personal calendar
// superset and ranks after the base set.
const (
	CategoryDailyTask = "Daily Task"
	CategoryMeeting   = "Meeting"
	CategoryReminder  = "Reminder"
	CategoryDeadline  = "Deadline"
	CategoryLeaves    = "Leaves"
	CategoryOther     = "Other"
	CategoryBirthday  = "Birthday"
)

// BaseCategories is the canonical enumeration shared by every calendar screen.
var BaseCategories = []string{
	CategoryDailyTask,
	CategoryMeeting,
	CategoryReminder,
	CategoryDeadline,
	CategoryLeaves,
	CategoryOther,
}

// PersonalCategories is the personal calendar's explicit superset.
var PersonalCategories = append(append([]string{}, BaseCategories...), CategoryBirthday)

var priority = func() map[string]int {
	m := make(map[string]int, len(PersonalCategories))
	for i, c := range PersonalCategories {
		m[c] = i
	}
	return m
}()

// Priority ranks a category; unknown categories rank after every known one.
func Priority(category string) int {
	if p, ok := priority[category]; ok {
		return p
	}
	return len(PersonalCategories)
}

// IsKnownCategory reports whether category is in the personal superset.
func IsKnownCategory(category string) bool {
	_, ok := priority[category]
	return ok
}

// CategoryCount is one (category, count) pair of a day's aggregate.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// SortByCategory orders events by category priority, keeping encounter
// order within a category.
func SortByCategory(events []models.CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return Priority(events[i].Category) < Priority(events[j].Category)
	})
}

// IndexByDate groups events by date key, preserving encounter order.
func IndexByDate(events []models.CalendarEvent) map[string][]models.CalendarEvent {
	byDate := make(map[string][]models.CalendarEvent)
	for _, ev := range events {
		byDate[ev.Date] = append(byDate[ev.Date], ev)
	}
	return byDate
}

// EventsOn returns the events on dateKey ordered by category priority.
func EventsOn(events []models.CalendarEvent, dateKey string) []models.CalendarEvent {
	out := []models.CalendarEvent{}
	for _, ev := range events {
		if ev.Date == dateKey {
			out = append(out, ev)
		}
	}
	SortByCategory(out)
	return out
}

// CategoryCounts groups the events on dateKey by category and orders the
// groups by priority. Unknown categories come last in encounter order.
func CategoryCounts(events []models.CalendarEvent, dateKey string) []CategoryCount {
	var counts []CategoryCount
	pos := make(map[string]int)
	for _, ev := range events {
		if ev.Date != dateKey {
			continue
		}
		if i, ok := pos[ev.Category]; ok {
			counts[i].Count++
			continue
		}
		pos[ev.Category] = len(counts)
		counts = append(counts, CategoryCount{Category: ev.Category, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return Priority(counts[i].Category) < Priority(counts[j].Category)
	})
	return counts
}

// TopCategories truncates an ordered aggregate to at most n badge names.
func TopCategories(counts []CategoryCount, n int) []string {
	if n > len(counts) {
		n = len(counts)
	}
	if n < 0 {
		n = 0
	}
	badges := make([]string, n)
	for i := 0; i < n; i++ {
		badges[i] = counts[i].Category
	}
	return badges
}

// Index keeps events bucketed by date and can be grown incrementally.
// Its answers are identical to a full recompute over the same events.
type Index struct {
	mu     sync.RWMutex
	byDate map[string][]models.CalendarEvent
	total  int
}

// NewIndex builds an index over events.
func NewIndex(events []models.CalendarEvent) *Index {
	idx := &Index{byDate: make(map[string][]models.CalendarEvent)}
	for _, ev := range events {
		idx.byDate[ev.Date] = append(idx.byDate[ev.Date], ev)
		idx.total++
	}
	return idx
}

// Add merges a newly created event.
func (idx *Index) Add(ev models.CalendarEvent) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.byDate[ev.Date] = append(idx.byDate[ev.Date], ev)
	idx.total++
}

// Len returns the number of indexed events.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.total
}

// On returns the events on dateKey ordered by category priority.
func (idx *Index) On(dateKey string) []models.CalendarEvent {
	idx.mu.RLock()
	day := idx.byDate[dateKey]
	out := make([]models.CalendarEvent, len(day))
	copy(out, day)
	idx.mu.RUnlock()

	SortByCategory(out)
	return out
}

// Counts returns the ordered category aggregate for dateKey.
func (idx *Index) Counts(dateKey string) []CategoryCount {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return CategoryCounts(idx.byDate[dateKey], dateKey)
}

// Badges returns the top-n category badges for dateKey.
func (idx *Index) Badges(dateKey string, n int) []string {
	return TopCategories(idx.Counts(dateKey), n)
}
