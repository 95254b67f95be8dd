package auth

import (
	"github.com/syrilster/school-leave-console/internal/model"
	"github.com/syrilster/school-leave-console/internal/validation"
)

const minPasswordLength = 6

func validateCredentials(c model.Credentials) error {
	errs := validation.Errors{}
	errs.Required("email", c.Email, "Email is required")
	errs.Required("password", c.Password, "Password is required")
	return errs.Err()
}

func validateRegistration(r model.Registration) error {
	errs := validation.Errors{}
	if errs.Required("name", r.Name, "Name is required") {
		errs.MinLength("name", r.Name, 2, "Name must be at least 2 characters")
	}
	if errs.Required("email", r.Email, "Email is required") {
		errs.Email("email", r.Email)
	}
	if errs.Required("password", r.Password, "Password is required") {
		errs.MinLength("password", r.Password, minPasswordLength, "Password must be at least 6 characters")
	}
	return errs.Err()
}

func validateEmail(email string) error {
	errs := validation.Errors{}
	if errs.Required("email", email, "Email is required") {
		errs.Email("email", email)
	}
	return errs.Err()
}
