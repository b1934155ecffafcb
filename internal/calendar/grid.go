package calendar

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateKeyLayout is the canonical YYYY-MM-DD layout used to bucket events by day.
const DateKeyLayout = "2006-01-02"

// Cell is one square of a 7-column month grid. Day is 1-based; zero marks a
// leading or trailing blank with no date key.
type Cell struct {
	Day        int    `json:"day"`
	DateKey    string `json:"dateKey,omitempty"`
	IsSunday   bool   `json:"isSunday"`
	IsToday    bool   `json:"isToday"`
	IsSelected bool   `json:"isSelected"`
	IsHovered  bool   `json:"isHovered"`
}

// IsBlank reports whether the cell is padding.
func (c Cell) IsBlank() bool {
	return c.Day == 0
}

// MarshalJSON renders blanks as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.IsBlank() {
		return []byte("null"), nil
	}
	type cell Cell
	return json.Marshal(cell(c))
}

// Grid is the ordered cell sequence for one month. Month is 0-based.
type Grid struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	FirstWeekday int    `json:"firstWeekday"`
	DaysInMonth  int    `json:"daysInMonth"`
	Cells        []Cell `json:"cells"`
}

// Ambient is the state a grid is decorated against.
type Ambient struct {
	Today    string
	Selected string
	Hovered  string
}

// Normalize rolls month over into the adjacent years the way date
// construction does: (2025, -1) is (2024, 11) and (2025, 12) is (2026, 0).
func Normalize(year, month int) (int, int) {
	t := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), int(t.Month()) - 1
}

// DaysInMonth is the day-number of day 0 of the following month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the 1st, 0 = Sunday.
func FirstWeekday(year, month int) int {
	return int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// BuildGrid produces whole weeks of cells for the month. It is total over
// all integer inputs because month is normalized first.
func BuildGrid(year, month int) Grid {
	year, month = Normalize(year, month)
	first := FirstWeekday(year, month)
	days := DaysInMonth(year, month)
	trailing := (7 - (first+days)%7) % 7

	cells := make([]Cell, 0, first+days+trailing)
	for i := 0; i < first; i++ {
		cells = append(cells, Cell{})
	}
	for d := 1; d <= days; d++ {
		t := time.Date(year, time.Month(month+1), d, 0, 0, 0, 0, time.UTC)
		cells = append(cells, Cell{
			Day:      d,
			DateKey:  t.Format(DateKeyLayout),
			IsSunday: t.Weekday() == time.Sunday,
		})
	}
	for i := 0; i < trailing; i++ {
		cells = append(cells, Cell{})
	}

	return Grid{
		Year:         year,
		Month:        month,
		FirstWeekday: first,
		DaysInMonth:  days,
		Cells:        cells,
	}
}

// BuildYear returns the twelve month grids of a year.
func BuildYear(year int) []Grid {
	grids := make([]Grid, 12)
	for m := 0; m < 12; m++ {
		grids[m] = BuildGrid(year, m)
	}
	return grids
}

// Prev returns the grid of the previous month.
func (g Grid) Prev() Grid {
	return BuildGrid(g.Year, g.Month-1)
}

// Next returns the grid of the following month.
func (g Grid) Next() Grid {
	return BuildGrid(g.Year, g.Month+1)
}

// Weeks splits the cells into rows of seven.
func (g Grid) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, len(g.Cells)/7)
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		weeks = append(weeks, g.Cells[i:i+7])
	}
	return weeks
}

// DateKeys returns the date keys of the real cells in order.
func (g Grid) DateKeys() []string {
	keys := make([]string, 0, g.DaysInMonth)
	for _, c := range g.Cells {
		if !c.IsBlank() {
			keys = append(keys, c.DateKey)
		}
	}
	return keys
}

// Decorate returns a copy of the grid with the ambient flags set.
func (g Grid) Decorate(a Ambient) Grid {
	out := g
	out.Cells = make([]Cell, len(g.Cells))
	for i, c := range g.Cells {
		if !c.IsBlank() {
			c.IsToday = c.DateKey == a.Today
			c.IsSelected = a.Selected != "" && c.DateKey == a.Selected
			c.IsHovered = a.Hovered != "" && c.DateKey == a.Hovered
		}
		out.Cells[i] = c
	}
	return out
}

// DateKey formats t as YYYY-MM-DD in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key as a UTC midnight.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// WeekOf returns the seven Sunday-first date keys of the week containing key.
func WeekOf(key string) ([]string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return nil, err
	}
	sunday := t.AddDate(0, 0, -int(t.Weekday()))
	week := make([]string, 7)
	for i := range week {
		week[i] = sunday.AddDate(0, 0, i).Format(DateKeyLayout)
	}
	return week, nil
}
