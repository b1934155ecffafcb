// Package timesheet filters, sorts, totals and exports the admin timesheet
// view.
package timesheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/office-admin/dashboard/internal/calendar"
	"github.com/office-admin/dashboard/internal/table"
)

// Row is one logged block of work as returned by the admin backend.
type Row struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Bucket    string `json:"bucket"`
	Task      string `json:"task"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  string `json:"duration"` // HH:MM
	Employee  string `json:"employee"`
	Position  string `json:"position"`
	Project   string `json:"project"`
}

// Query narrows, orders and pages the rows. Empty fields match everything.
type Query struct {
	Employee string
	Bucket   string
	Project  string
	From     string // inclusive date key
	To       string // inclusive date key
	Search   string
	Sort     string // column name, "-" prefix for descending
	Page     int
	PageSize int
}

// Result is a page of rows plus the total duration of every filtered row.
type Result struct {
	table.Page[Row]
	TotalDuration string `json:"total_duration"`
}

// Columns maps sortable column names to comparators.
var Columns = map[string]table.Less[Row]{
	"date":      func(a, b Row) bool { return a.Date < b.Date },
	"bucket":    func(a, b Row) bool { return a.Bucket < b.Bucket },
	"task":      func(a, b Row) bool { return a.Task < b.Task },
	"startTime": func(a, b Row) bool { return clockLess(a.StartTime, b.StartTime) },
	"endTime":   func(a, b Row) bool { return clockLess(a.EndTime, b.EndTime) },
	"duration":  func(a, b Row) bool { return Minutes(a.Duration) < Minutes(b.Duration) },
	"employee":  func(a, b Row) bool { return a.Employee < b.Employee },
	"position":  func(a, b Row) bool { return a.Position < b.Position },
	"project":   func(a, b Row) bool { return a.Project < b.Project },
}

// Matches reports whether r passes every filter in q.
func (q Query) Matches(r Row) bool {
	if q.Employee != "" && !strings.EqualFold(r.Employee, q.Employee) {
		return false
	}
	if q.Bucket != "" && !strings.EqualFold(r.Bucket, q.Bucket) {
		return false
	}
	if q.Project != "" && !strings.EqualFold(r.Project, q.Project) {
		return false
	}
	if q.From != "" && r.Date < q.From {
		return false
	}
	if q.To != "" && r.Date > q.To {
		return false
	}
	if q.Search != "" &&
		!table.ContainsFold(r.Task, q.Search) &&
		!table.ContainsFold(r.Employee, q.Search) &&
		!table.ContainsFold(r.Project, q.Search) {
		return false
	}
	return true
}

// Select filters and sorts rows without paging them. The input is not modified.
func Select(rows []Row, q Query) []Row {
	out := table.Filter(rows, q.Matches)
	col, desc := table.ParseOrder(q.Sort)
	table.SortBy(out, Columns, col, desc)
	return out
}

// Apply runs the whole pipeline and totals the filtered rows.
func Apply(rows []Row, q Query) Result {
	selected := Select(rows, q)
	return Result{
		Page:          table.Paginate(selected, q.Page, q.PageSize),
		TotalDuration: TotalDuration(selected),
	}
}

// Minutes parses an HH:MM duration. Malformed values count as zero.
func Minutes(d string) int {
	h, m, ok := strings.Cut(strings.TrimSpace(d), ":")
	if !ok {
		return 0
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 {
		return 0
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 {
		return 0
	}
	return hours*60 + mins
}

// clockLess orders times of day chronologically. Both "h:mm AM/PM" and
// 24-hour "HH:MM" are understood; anything else falls back to text order.
func clockLess(a, b string) bool {
	am, aok := clockMinutes(a)
	bm, bok := clockMinutes(b)
	if aok && bok {
		return am < bm
	}
	return a < b
}

func clockMinutes(s string) (int, bool) {
	if m, err := calendar.ParseClock(s); err == nil {
		return m, true
	}
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	mins, err := strconv.Atoi(m)
	if err != nil || len(m) != 2 || mins < 0 || mins > 59 {
		return 0, false
	}
	return hours*60 + mins, true
}

// FormatMinutes renders minutes as zero-padded HH:MM.
func FormatMinutes(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// TotalDuration sums the rows' durations.
func TotalDuration(rows []Row) string {
	total := 0
	for _, r := range rows {
		total += Minutes(r.Duration)
	}
	return FormatMinutes(total)
}

// ExportFilename names a download: Timesheet_<employee>_<range>.xlsx, where
// range is "<from>_to_<to>", a single date, or "All".
func ExportFilename(employee, from, to string) string {
	name := strings.Join(strings.Fields(employee), "_")
	if name == "" {
		name = "All"
	}

	var span string
	switch {
	case from != "" && to != "" && from != to:
		span = from + "_to_" + to
	case from != "":
		span = from
	case to != "":
		span = to
	default:
		span = "All"
	}
	return fmt.Sprintf("Timesheet_%s_%s.xlsx", name, span)
}
