package employee

import (
	"regexp"
	"strings"

	"github.com/syrilster/school-leave-console/internal/model"
	"github.com/syrilster/school-leave-console/internal/validation"
)

var phonePattern = regexp.MustCompile(`^\+234\d{10}$`)

func normalize(e model.Employee) model.Employee {
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)
	e.Email = strings.TrimSpace(e.Email)
	e.Phone = strings.TrimSpace(e.Phone)
	e.Department = strings.TrimSpace(e.Department)
	e.Position = strings.TrimSpace(e.Position)
	e.HireDate = strings.TrimSpace(e.HireDate)
	if e.Status == "" {
		e.Status = model.EmployeeActive
	}
	return e
}

// Validate checks an employee form before it is sent to the backend.
func Validate(e model.Employee) error {
	errs := validation.Errors{}

	if errs.Required("firstName", e.FirstName, "First name is required") {
		errs.MinLength("firstName", e.FirstName, 2, "First name must be at least 2 characters")
	}
	if errs.Required("lastName", e.LastName, "Last name is required") {
		errs.MinLength("lastName", e.LastName, 2, "Last name must be at least 2 characters")
	}
	if errs.Required("email", e.Email, "Email is required") {
		errs.Email("email", e.Email)
	}
	if errs.Required("phone", e.Phone, "Phone number is required") && !phonePattern.MatchString(e.Phone) {
		errs.Add("phone", "Phone number must be in format +234XXXXXXXXXX")
	}
	if errs.Required("department", e.Department, "Department is required") && !model.Contains(model.Departments, e.Department) {
		errs.Add("department", "Unknown department")
	}
	if errs.Required("position", e.Position, "Position is required") && !model.Contains(model.Positions, e.Position) {
		errs.Add("position", "Unknown position")
	}
	if e.Salary < 0 {
		errs.Add("salary", "Salary must be positive")
	}
	if errs.Required("hireDate", e.HireDate, "Hire date is required") {
		errs.Date("hireDate", e.HireDate, model.DateLayout, "Hire date must be a valid date")
	}
	if !e.Status.Valid() {
		errs.Add("status", "Status must be active or inactive")
	}

	return errs.Err()
}
