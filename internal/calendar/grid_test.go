package calendar

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestBuildGridWholeWeeks(t *testing.T) {
	for year := 1999; year <= 2031; year++ {
		for month := 0; month < 12; month++ {
			g := BuildGrid(year, month)

			if len(g.Cells)%7 != 0 {
				t.Fatalf("%d-%02d: %d cells is not whole weeks", year, month+1, len(g.Cells))
			}

			want := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
			if got := len(g.DateKeys()); got != want {
				t.Errorf("%d-%02d: expected %d real cells, got %d", year, month+1, want, got)
			}

			first := int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
			if g.Cells[first].Day != 1 {
				t.Errorf("%d-%02d: expected day 1 at position %d", year, month+1, first)
			}
			for i := 0; i < first; i++ {
				if !g.Cells[i].IsBlank() {
					t.Errorf("%d-%02d: expected blank at position %d", year, month+1, i)
				}
			}
		}
	}
}

func TestBuildGridLeapYears(t *testing.T) {
	tests := []struct {
		year, month int
		want        int
	}{
		{2024, 1, 29},
		{2025, 1, 28},
		{2000, 1, 29},
		{1900, 1, 28},
	}

	for _, tt := range tests {
		if got := len(BuildGrid(tt.year, tt.month).DateKeys()); got != tt.want {
			t.Errorf("February %d: expected %d days, got %d", tt.year, tt.want, got)
		}
	}
}

func TestBuildGridMay2025(t *testing.T) {
	g := BuildGrid(2025, 4)

	if g.FirstWeekday != 4 {
		t.Errorf("Expected May 2025 to start on Thursday (4), got %d", g.FirstWeekday)
	}
	if len(g.Cells) != 35 {
		t.Errorf("Expected 35 cells, got %d", len(g.Cells))
	}
	if g.Cells[4].DateKey != "2025-05-01" {
		t.Errorf("Expected 2025-05-01 at position 4, got %q", g.Cells[4].DateKey)
	}
	if !g.Cells[7].IsSunday || g.Cells[7].DateKey != "2025-05-04" {
		t.Errorf("Expected Sunday 2025-05-04 at position 7, got %+v", g.Cells[7])
	}
	if weeks := g.Weeks(); len(weeks) != 5 {
		t.Errorf("Expected 5 weeks, got %d", len(weeks))
	}
}

func TestNormalizeRollsOver(t *testing.T) {
	tests := []struct {
		year, month         int
		wantYear, wantMonth int
	}{
		{2025, -1, 2024, 11},
		{2025, 12, 2026, 0},
		{2025, 25, 2027, 1},
		{2025, -13, 2023, 11},
		{2025, 4, 2025, 4},
	}

	for _, tt := range tests {
		y, m := Normalize(tt.year, tt.month)
		if y != tt.wantYear || m != tt.wantMonth {
			t.Errorf("Normalize(%d, %d) = (%d, %d), want (%d, %d)",
				tt.year, tt.month, y, m, tt.wantYear, tt.wantMonth)
		}
	}

	if !reflect.DeepEqual(BuildGrid(2025, -1), BuildGrid(2024, 11)) {
		t.Error("Expected month -1 to build December of the previous year")
	}
}

func TestNavigationRestoresGrid(t *testing.T) {
	may := BuildGrid(2025, 4)

	june := may.Next()
	if june.Year != 2025 || june.Month != 5 {
		t.Fatalf("Expected June 2025, got %d-%d", june.Year, june.Month)
	}

	if back := june.Prev(); !reflect.DeepEqual(back, may) {
		t.Error("Expected May 2025 grid to be restored after navigating forward and back")
	}

	g := may
	for i := 0; i < 120; i++ {
		g = g.Next()
	}
	for i := 0; i < 120; i++ {
		g = g.Prev()
	}
	if !reflect.DeepEqual(g, may) {
		t.Error("Expected no drift after ten years of navigation")
	}

	dec := BuildGrid(2025, 11)
	if jan := dec.Next(); jan.Year != 2026 || jan.Month != 0 {
		t.Errorf("Expected January 2026 after December 2025, got %d-%d", jan.Year, jan.Month)
	}
}

func TestDecorate(t *testing.T) {
	g := BuildGrid(2025, 4).Decorate(Ambient{
		Today:    "2025-05-19",
		Selected: "2025-05-20",
		Hovered:  "2025-05-21",
	})

	flags := map[string]Cell{}
	for _, c := range g.Cells {
		if c.IsBlank() && (c.IsToday || c.IsSelected || c.IsHovered) {
			t.Errorf("Blank cell must not carry ambient flags: %+v", c)
		}
		flags[c.DateKey] = c
	}

	if !flags["2025-05-19"].IsToday {
		t.Error("Expected 2025-05-19 to be today")
	}
	if !flags["2025-05-20"].IsSelected {
		t.Error("Expected 2025-05-20 to be selected")
	}
	if !flags["2025-05-21"].IsHovered {
		t.Error("Expected 2025-05-21 to be hovered")
	}
	if flags["2025-05-22"].IsToday || flags["2025-05-22"].IsSelected || flags["2025-05-22"].IsHovered {
		t.Error("Expected 2025-05-22 to carry no flags")
	}
}

func TestBuildYear(t *testing.T) {
	grids := BuildYear(2024)
	if len(grids) != 12 {
		t.Fatalf("Expected 12 grids, got %d", len(grids))
	}
	total := 0
	for _, g := range grids {
		total += g.DaysInMonth
	}
	if total != 366 {
		t.Errorf("Expected 366 days in 2024, got %d", total)
	}
}

func TestWeekOf(t *testing.T) {
	week, err := WeekOf("2025-05-19")
	if err != nil {
		t.Fatalf("WeekOf failed: %v", err)
	}
	if week[0] != "2025-05-18" || week[6] != "2025-05-24" {
		t.Errorf("Expected week 2025-05-18..2025-05-24, got %v", week)
	}

	if _, err := WeekOf("19/05/2025"); err == nil {
		t.Error("Expected an error for a malformed date key")
	}
}

func TestCellJSON(t *testing.T) {
	g := BuildGrid(2025, 4)

	blank, err := json.Marshal(g.Cells[0])
	if err != nil || string(blank) != "null" {
		t.Errorf("Expected blank cell as null, got %s (%v)", blank, err)
	}

	day, err := json.Marshal(g.Cells[4])
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded Cell
	if err := json.Unmarshal(day, &decoded); err != nil || decoded.DateKey != "2025-05-01" || decoded.Day != 1 {
		t.Errorf("Unexpected round trip %s -> %+v", day, decoded)
	}
}
