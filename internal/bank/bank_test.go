package bank

import (
	"testing"
)

var details = []Detail{
	{EmployeeID: "E002", EmployeeName: "ravi kumar", BankName: "HDFC Bank", AccountNumber: "50100012345678", IFSC: "HDFC0001234", Branch: "Pune", Verified: true},
	{EmployeeID: "E001", EmployeeName: "Asha Rao", BankName: "State Bank", AccountNumber: "123", IFSC: "SBIN0005678", Branch: "Mumbai"},
	{EmployeeID: "E003", EmployeeName: "Meera Iyer", BankName: "HDFC Bank", AccountNumber: "998877665544", IFSC: "bad", Branch: "Chennai"},
}

func TestApplyFiltersAndMasks(t *testing.T) {
	page := Apply(details, Query{Search: "hdfc", Status: StatusUnverified})
	if page.TotalItems != 1 || page.Items[0].EmployeeID != "E003" {
		t.Fatalf("Unexpected page: %+v", page)
	}
	if got := page.Items[0].AccountNumber; got != "********5544" {
		t.Errorf("Expected masked account, got %s", got)
	}
	if got := page.Items[0].Issues; len(got) != 1 || got[0] != "invalid IFSC code" {
		t.Errorf("Expected the IFSC problem on the row, got %v", got)
	}
	if details[2].AccountNumber != "998877665544" {
		t.Error("Expected the source records to stay unmasked")
	}

	page = Apply(details, Query{Sort: "employeeName"})
	if page.Items[0].EmployeeName != "Asha Rao" || page.Items[2].EmployeeName != "ravi kumar" {
		t.Errorf("Expected case-insensitive name order, got %+v", page.Items)
	}

	page = Apply(details, Query{Status: StatusVerified})
	if page.TotalItems != 1 || page.Items[0].EmployeeID != "E002" {
		t.Errorf("Unexpected verified page: %+v", page)
	}
	if page.Items[0].Issues != nil {
		t.Errorf("Expected no problems on a clean record, got %v", page.Items[0].Issues)
	}
}

func TestMaskAccount(t *testing.T) {
	for in, want := range map[string]string{
		"":               "",
		"1234":           "1234",
		"12345":          "*2345",
		" 50100012345 ": "*******2345",
	} {
		if got := MaskAccount(in); got != want {
			t.Errorf("MaskAccount(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProblems(t *testing.T) {
	if p := details[0].Problems(); len(p) != 0 {
		t.Errorf("Expected a clean record, got %v", p)
	}
	if p := details[2].Problems(); len(p) != 1 || p[0] != "invalid IFSC code" {
		t.Errorf("Expected an IFSC problem, got %v", p)
	}
}
