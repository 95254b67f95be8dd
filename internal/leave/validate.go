package leave

import (
	"strings"
	"time"

	"github.com/syrilster/school-leave-console/internal/model"
	"github.com/syrilster/school-leave-console/internal/validation"
)

// Application is what an employee submits from the leave form.
type Application struct {
	LeaveType string `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

func (a Application) normalize() Application {
	a.LeaveType = strings.TrimSpace(a.LeaveType)
	a.StartDate = strings.TrimSpace(a.StartDate)
	a.EndDate = strings.TrimSpace(a.EndDate)
	a.Reason = strings.TrimSpace(a.Reason)
	return a
}

// Validate checks an application against the calendar day of now. A start
// date of today is accepted.
func Validate(a Application, now time.Time) error {
	errs := validation.Errors{}

	if errs.Required("leaveType", a.LeaveType, "Leave type is required") && !model.Contains(model.LeaveTypes, a.LeaveType) {
		errs.Add("leaveType", "Unknown leave type")
	}

	var start time.Time
	startOK := false
	if errs.Required("startDate", a.StartDate, "Start date is required") {
		start, startOK = errs.Date("startDate", a.StartDate, model.DateLayout, "Start date must be a valid date")
		if startOK && start.Before(today(now)) {
			errs.Add("startDate", "Start date cannot be in the past")
		}
	}

	if errs.Required("endDate", a.EndDate, "End date is required") {
		end, ok := errs.Date("endDate", a.EndDate, model.DateLayout, "End date must be a valid date")
		if ok && startOK && end.Before(start) {
			errs.Add("endDate", "End date must be after start date")
		}
	}

	if errs.Required("reason", a.Reason, "Reason is required") {
		errs.MinLength("reason", a.Reason, 10, "Reason must be at least 10 characters")
	}

	return errs.Err()
}

// today is midnight UTC of now's local calendar day, comparable with parsed dates.
func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
