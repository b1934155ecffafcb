// Package company validates the three-step company registration wizard.
package company

import (
	"fmt"
	"strings"

	"github.com/office-admin/dashboard/internal/validate"
)

// Step is a 1-based wizard page.
type Step int

const (
	StepCompany Step = iota + 1
	StepAdmin
	StepAddress
)

// Steps lists the wizard pages in order.
var Steps = []Step{StepCompany, StepAdmin, StepAddress}

func (s Step) String() string {
	switch s {
	case StepCompany:
		return "company"
	case StepAdmin:
		return "admin"
	case StepAddress:
		return "address"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// MinPasswordLength is the shortest admin password accepted.
const MinPasswordLength = 8

// Details is the company page.
type Details struct {
	Name               string `json:"companyName"`
	RegistrationNumber string `json:"registrationNumber"`
	Industry           string `json:"industry"`
	Size               string `json:"companySize"`
	Website            string `json:"website,omitempty"`
}

// Admin is the administrator contact page.
type Admin struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// Address is the registered office page.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Registration is the whole wizard as submitted to the backend.
type Registration struct {
	Company Details `json:"company"`
	Admin   Admin   `json:"admin"`
	Address Address `json:"address"`
}

// FieldError names one rejected field.
type FieldError struct {
	Step    Step   `json:"step"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is every problem found on one or more pages.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "no errors"
	}
	if len(e) == 1 {
		return e[0].Message
	}
	return fmt.Sprintf("%s (and %d more)", e[0].Message, len(e)-1)
}

// ValidateStep checks one page. It returns nil when the page is complete.
func (r Registration) ValidateStep(step Step) error {
	var errs Errors
	add := func(field, msg string) {
		errs = append(errs, FieldError{Step: step, Field: field, Message: msg})
	}

	switch step {
	case StepCompany:
		if !validate.Required(r.Company.Name) {
			add("companyName", "Company name is required")
		}
		if !validate.Required(r.Company.RegistrationNumber) {
			add("registrationNumber", "Registration number is required")
		}
		if !validate.Required(r.Company.Industry) {
			add("industry", "Please select an industry")
		}
		if w := strings.TrimSpace(r.Company.Website); w != "" &&
			!strings.HasPrefix(w, "http://") && !strings.HasPrefix(w, "https://") {
			add("website", "Website must start with http:// or https://")
		}

	case StepAdmin:
		if !validate.Required(r.Admin.FirstName) {
			add("firstName", "First name is required")
		}
		if !validate.Required(r.Admin.LastName) {
			add("lastName", "Last name is required")
		}
		if !validate.Email(r.Admin.Email) {
			add("email", "Please enter a valid email address")
		}
		if !validate.Phone(r.Admin.Phone) {
			add("phone", "Please enter a valid phone number")
		}
		if len(r.Admin.Password) < MinPasswordLength {
			add("password", fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
		} else if r.Admin.ConfirmPassword != "" && r.Admin.ConfirmPassword != r.Admin.Password {
			add("confirmPassword", "Passwords do not match")
		}

	case StepAddress:
		if !validate.Required(r.Address.Street) {
			add("street", "Street address is required")
		}
		if !validate.Required(r.Address.City) {
			add("city", "City is required")
		}
		if !validate.Required(r.Address.State) {
			add("state", "State is required")
		}
		if !validate.Required(r.Address.PostalCode) {
			add("postalCode", "Postal code is required")
		}
		if !validate.Required(r.Address.Country) {
			add("country", "Country is required")
		}

	default:
		add("step", fmt.Sprintf("Unknown step %d", int(step)))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks every page, stopping at the first incomplete one so the
// wizard can return the user there.
func (r Registration) Validate() error {
	for _, step := range Steps {
		if err := r.ValidateStep(step); err != nil {
			return err
		}
	}
	return nil
}

// Payload is the registration with confirmation fields stripped.
func (r Registration) Payload() Registration {
	out := r
	out.Admin.ConfirmPassword = ""
	out.Admin.Email = strings.TrimSpace(out.Admin.Email)
	return out
}
