package company

import (
	"errors"
	"testing"
)

func validRegistration() Registration {
	return Registration{
		Company: Details{Name: "Acme Pvt Ltd", RegistrationNumber: "U12345MH2020PTC000001", Industry: "Software", Website: "https://acme.example"},
		Admin: Admin{
			FirstName: "Asha", LastName: "Rao", Email: "asha@acme.example", Phone: "+91 98765-43210",
			Password: "s3cretpass", ConfirmPassword: "s3cretpass",
		},
		Address: Address{Street: "1 MG Road", City: "Pune", State: "MH", PostalCode: "411001", Country: "India"},
	}
}

func TestValidateStep(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Registration)
		step   Step
		fields []string
	}{
		{"valid company", func(*Registration) {}, StepCompany, nil},
		{"missing company name", func(r *Registration) { r.Company.Name = " " }, StepCompany, []string{"companyName"}},
		{"bad website", func(r *Registration) { r.Company.Website = "acme.example" }, StepCompany, []string{"website"}},
		{"bad email and phone", func(r *Registration) {
			r.Admin.Email = "asha@"
			r.Admin.Phone = "12345"
		}, StepAdmin, []string{"email", "phone"}},
		{"short password", func(r *Registration) { r.Admin.Password = "short" }, StepAdmin, []string{"password"}},
		{"mismatched password", func(r *Registration) { r.Admin.ConfirmPassword = "different1" }, StepAdmin, []string{"confirmPassword"}},
		{"empty address", func(r *Registration) { r.Address = Address{} }, StepAddress, []string{"street", "city", "state", "postalCode", "country"}},
		{"unknown step", func(*Registration) {}, Step(7), []string{"step"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(&r)

			err := r.ValidateStep(tt.step)
			if tt.fields == nil {
				if err != nil {
					t.Fatalf("Expected step to pass, got %v", err)
				}
				return
			}

			var errs Errors
			if !errors.As(err, &errs) {
				t.Fatalf("Expected Errors, got %v", err)
			}
			if len(errs) != len(tt.fields) {
				t.Fatalf("Expected %d errors, got %v", len(tt.fields), errs)
			}
			for i, f := range tt.fields {
				if errs[i].Field != f || errs[i].Step != tt.step {
					t.Errorf("Error %d: expected %s on step %d, got %+v", i, f, tt.step, errs[i])
				}
			}
		})
	}
}

func TestValidateStopsAtFirstIncompleteStep(t *testing.T) {
	r := validRegistration()
	if err := r.Validate(); err != nil {
		t.Fatalf("Expected a complete registration, got %v", err)
	}

	r.Admin.Email = ""
	r.Address.City = ""
	var errs Errors
	if err := r.Validate(); !errors.As(err, &errs) || errs[0].Step != StepAdmin || len(errs) != 1 {
		t.Errorf("Expected only the admin page to be reported, got %v", err)
	}

	if p := validRegistration().Payload(); p.Admin.ConfirmPassword != "" {
		t.Error("Expected the confirmation field to be stripped")
	}
}
