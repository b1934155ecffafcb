package timesheet

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

var sample = []Row{
	{Date: "2025-05-19", Bucket: "Development", Task: "API", StartTime: "9:00 AM", EndTime: "10:30 AM", Duration: "01:30", Employee: "Asha Rao", Position: "Engineer", Project: "Portal"},
	{Date: "2025-05-20", Bucket: "Meetings", Task: "Planning", StartTime: "11:00 AM", EndTime: "1:15 PM", Duration: "02:15", Employee: "Asha Rao", Position: "Engineer", Project: "Portal"},
	{Date: "2025-05-21", Bucket: "Development", Task: "Reports", StartTime: "2:00 PM", EndTime: "3:00 PM", Duration: "01:00", Employee: "Ravi Kumar", Position: "Analyst", Project: "Payroll"},
	{Date: "2025-05-22", Bucket: "Support", Task: "Tickets", Duration: "bad", Employee: "Ravi Kumar", Project: "Payroll"},
}

func TestTotalDuration(t *testing.T) {
	if got := TotalDuration(sample[:2]); got != "03:45" {
		t.Errorf("Expected 03:45, got %s", got)
	}
	if got := TotalDuration(sample); got != "04:45" {
		t.Errorf("Expected malformed durations to count as zero, got %s", got)
	}
	if got := TotalDuration(nil); got != "00:00" {
		t.Errorf("Expected 00:00, got %s", got)
	}
	if got := FormatMinutes(125 * 60); got != "125:00" {
		t.Errorf("Expected 125:00, got %s", got)
	}
}

func TestApply(t *testing.T) {
	res := Apply(sample, Query{Employee: "asha rao", From: "2025-05-19", To: "2025-05-20", Sort: "-date"})
	if res.TotalItems != 2 || res.TotalDuration != "03:45" {
		t.Fatalf("Unexpected result: %+v", res)
	}
	if res.Items[0].Date != "2025-05-20" {
		t.Errorf("Expected descending date order, got %s first", res.Items[0].Date)
	}

	res = Apply(sample, Query{Bucket: "Development", Sort: "duration"})
	var tasks []string
	for _, r := range res.Items {
		tasks = append(tasks, r.Task)
	}
	if !reflect.DeepEqual(tasks, []string{"Reports", "API"}) {
		t.Errorf("Unexpected development rows: %v", tasks)
	}

	res = Apply(sample, Query{Search: "payroll", PageSize: 1, Page: 2})
	if res.TotalItems != 2 || res.TotalPages != 2 || res.Items[0].Task != "Tickets" {
		t.Errorf("Unexpected search page: %+v", res)
	}
	if sample[0].Task != "API" {
		t.Error("Expected the input rows to be left untouched")
	}
}

func TestSortByClockColumns(t *testing.T) {
	rows := []Row{
		{Task: "late", StartTime: "2:00 PM", EndTime: "12:30 AM"},
		{Task: "early", StartTime: "9:00 AM", EndTime: "10:00 AM"},
		{Task: "mid", StartTime: "10:00 AM", EndTime: "11:45 AM"},
	}

	res := Apply(rows, Query{Sort: "startTime"})
	var got []string
	for _, r := range res.Items {
		got = append(got, r.StartTime)
	}
	if want := []string{"9:00 AM", "10:00 AM", "2:00 PM"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	res = Apply(rows, Query{Sort: "-endTime"})
	if res.Items[2].Task != "late" {
		t.Errorf("Expected 12:30 AM to sort as the earliest end, got %s last", res.Items[2].Task)
	}

	tests := []struct {
		a, b string
		want bool
	}{
		{"09:00", "13:30", true},
		{"13:30", "9:00 AM", false},
		{"12:00 PM", "12:00 AM", false},
		{"n/a", "tbd", true},
	}
	for _, tt := range tests {
		if got := clockLess(tt.a, tt.b); got != tt.want {
			t.Errorf("clockLess(%q, %q): expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		employee, from, to string
		want               string
	}{
		{"Asha Rao", "2025-05-19", "2025-05-20", "Timesheet_Asha_Rao_2025-05-19_to_2025-05-20.xlsx"},
		{"Asha Rao", "2025-05-19", "2025-05-19", "Timesheet_Asha_Rao_2025-05-19.xlsx"},
		{"Ravi", "", "2025-05-21", "Timesheet_Ravi_2025-05-21.xlsx"},
		{"", "", "", "Timesheet_All_All.xlsx"},
	}

	for _, tt := range tests {
		if got := ExportFilename(tt.employee, tt.from, tt.to); got != tt.want {
			t.Errorf("ExportFilename(%q, %q, %q) = %s, want %s", tt.employee, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, sample[:2]); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Reading workbook failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("Expected header, 2 rows and a total, got %d rows", len(rows))
	}
	if !reflect.DeepEqual(rows[0], Header) {
		t.Errorf("Unexpected header: %v", rows[0])
	}
	if rows[1][2] != "API" || rows[2][5] != "02:15" {
		t.Errorf("Unexpected data rows: %v", rows[1:3])
	}
	if rows[3][0] != "Total" || rows[3][5] != "03:45" {
		t.Errorf("Unexpected total row: %v", rows[3])
	}
}
