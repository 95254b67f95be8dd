package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorsCollectsFirstMessagePerField(t *testing.T) {
	errs := Errors{}
	errs.Required("firstName", " ", "First name is required")
	errs.MinLength("firstName", "", 2, "First name must be at least 2 characters")
	errs.Email("email", "not-an-email")

	err := errs.Err()
	require.Error(t, err)
	require.True(t, IsValidationError(err))
	require.True(t, IsValidationError(fmt.Errorf("wrapped: %w", err)))
	require.Equal(t, "validation failed: email: Invalid email address; firstName: First name is required", err.Error())
}

func TestErrorsEmpty(t *testing.T) {
	errs := Errors{}
	errs.MinLength("lastName", "Okoro", 2, "too short")
	errs.Email("email", "chinwe.okoro@school.edu.ng")
	_, ok := errs.Date("hireDate", "2023-09-01", "2006-01-02", "bad date")
	require.True(t, ok)
	require.NoError(t, errs.Err())
}

func TestMinLengthCountsRunes(t *testing.T) {
	errs := Errors{}
	errs.MinLength("name", "Ọ", 2, "too short")
	require.Error(t, errs.Err())
}
