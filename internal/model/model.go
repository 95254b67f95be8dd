package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates (hire date, leave dates).
const DateLayout = "2006-01-02"

// ID is a backend identifier. The backend may send it as a JSON number or a string.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

func (s EmployeeStatus) Valid() bool {
	return s == EmployeeActive || s == EmployeeInactive
}

type Employee struct {
	ID         ID             `json:"id,omitempty"`
	FirstName  string         `json:"firstName"`
	LastName   string         `json:"lastName"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone"`
	Department string         `json:"department"`
	Position   string         `json:"position"`
	Salary     float64        `json:"salary"`
	HireDate   string         `json:"hireDate"`
	Status     EmployeeStatus `json:"status"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// SearchFields are the fields matched by the employee list search box.
func (e Employee) SearchFields() []string {
	return []string{e.FullName(), e.FirstName, e.LastName, e.Email, e.Position}
}

// Facet is the value matched by the department filter.
func (e Employee) Facet() string {
	return e.Department
}

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

func (s LeaveStatus) Valid() bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected:
		return true
	}
	return false
}

type LeaveRequest struct {
	ID           ID          `json:"id,omitempty"`
	EmployeeID   ID          `json:"employeeId"`
	EmployeeName string      `json:"employeeName"`
	LeaveType    string      `json:"leaveType"`
	StartDate    string      `json:"startDate"`
	EndDate      string      `json:"endDate"`
	Reason       string      `json:"reason"`
	Status       LeaveStatus `json:"status"`
	AppliedAt    time.Time   `json:"appliedAt"`
}

// UnmarshalJSON tolerates a missing or malformed appliedAt, which decodes as
// the zero time, so one bad record cannot fail a whole list.
func (l *LeaveRequest) UnmarshalJSON(b []byte) error {
	type plain LeaveRequest
	aux := struct {
		*plain
		AppliedAt json.RawMessage `json:"appliedAt"`
	}{plain: (*plain)(l)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	l.AppliedAt = parseTimestamp(aux.AppliedAt)
	return nil
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", DateLayout}

func parseTimestamp(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SearchFields are the fields matched by the leave list search box.
func (l LeaveRequest) SearchFields() []string {
	return []string{l.EmployeeName, l.LeaveType, l.Reason}
}

// Facet is the value matched by the status filter.
func (l LeaveRequest) Facet() string {
	return string(l.Status)
}
