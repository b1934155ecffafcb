// Package bank backs the employee bank-detail verification table.
package bank

import (
	"strings"

	"github.com/office-admin/dashboard/internal/table"
	"github.com/office-admin/dashboard/internal/validate"
)

// Status filter values.
const (
	StatusAll        = "all"
	StatusVerified   = "verified"
	StatusUnverified = "unverified"
)

// Detail is one employee's bank record.
type Detail struct {
	EmployeeID    string `json:"employeeId"`
	EmployeeName  string `json:"employeeName"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifscCode"`
	Branch        string `json:"branch"`
	Verified      bool   `json:"verified"`

	// Issues is filled by Apply from Problems.
	Issues []string `json:"problems,omitempty"`
}

// Query narrows, orders and pages the table.
type Query struct {
	Search   string
	Status   string
	Sort     string
	Page     int
	PageSize int
}

// Columns maps sortable column names to comparators.
var Columns = map[string]table.Less[Detail]{
	"employeeId":   func(a, b Detail) bool { return a.EmployeeID < b.EmployeeID },
	"employeeName": func(a, b Detail) bool { return strings.ToLower(a.EmployeeName) < strings.ToLower(b.EmployeeName) },
	"bankName":     func(a, b Detail) bool { return a.BankName < b.BankName },
	"branch":       func(a, b Detail) bool { return a.Branch < b.Branch },
	"verified":     func(a, b Detail) bool { return !a.Verified && b.Verified },
}

// Matches reports whether d passes the search and status filters.
func (q Query) Matches(d Detail) bool {
	switch strings.ToLower(q.Status) {
	case StatusVerified:
		if !d.Verified {
			return false
		}
	case StatusUnverified:
		if d.Verified {
			return false
		}
	}

	if q.Search == "" {
		return true
	}
	return table.ContainsFold(d.EmployeeName, q.Search) ||
		table.ContainsFold(d.EmployeeID, q.Search) ||
		table.ContainsFold(d.BankName, q.Search) ||
		table.ContainsFold(d.IFSC, q.Search)
}

// Apply filters, sorts and pages details. Account numbers in the page are masked.
func Apply(details []Detail, q Query) table.Page[Detail] {
	out := table.Filter(details, q.Matches)
	col, desc := table.ParseOrder(q.Sort)
	table.SortBy(out, Columns, col, desc)

	page := table.Paginate(out, q.Page, q.PageSize)
	for i := range page.Items {
		page.Items[i].Issues = page.Items[i].Problems()
		page.Items[i].AccountNumber = MaskAccount(page.Items[i].AccountNumber)
	}
	return page
}

// MaskAccount hides all but the last four characters.
func MaskAccount(account string) string {
	account = strings.TrimSpace(account)
	if len(account) <= 4 {
		return account
	}
	return strings.Repeat("*", len(account)-4) + account[len(account)-4:]
}

// Problems lists what is wrong with a record before it can be verified.
func (d Detail) Problems() []string {
	var problems []string
	if !validate.Required(d.AccountNumber) {
		problems = append(problems, "missing account number")
	}
	if !validate.IFSC(d.IFSC) {
		problems = append(problems, "invalid IFSC code")
	}
	if !validate.Required(d.BankName) {
		problems = append(problems, "missing bank name")
	}
	return problems
}
