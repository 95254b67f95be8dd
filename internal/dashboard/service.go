// Package dashboard summarises staff and leave figures for the landing page.
package dashboard

import (
	"context"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal/model"
)

const recentLimit = 5

type EmployeeLister interface {
	ListEmployees(ctx context.Context) ([]model.Employee, error)
}

type LeaveLister interface {
	ListLeaveRequests(ctx context.Context) ([]model.LeaveRequest, error)
}

type Session interface {
	Identity() (model.Identity, bool)
}

type Stats struct {
	TotalEmployees       int `json:"totalEmployees"`
	ActiveEmployees      int `json:"activeEmployees"`
	TotalLeaveRequests   int `json:"totalLeaveRequests"`
	PendingLeaveRequests int `json:"pendingLeaveRequests"`
}

type View struct {
	User  model.Identity `json:"user"`
	Stats Stats          `json:"stats"`
	// Recent is only filled for admins.
	Recent   []model.LeaveRequest `json:"recentLeaveRequests,omitempty"`
	Degraded bool                 `json:"degraded,omitempty"`
}

type Service struct {
	employees EmployeeLister
	leaves    LeaveLister
	session   Session
}

func NewService(employees EmployeeLister, leaves LeaveLister, s Session) *Service {
	return &Service{employees: employees, leaves: leaves, session: s}
}

// Summary never fails; a collection that cannot be read counts as empty.
func (service Service) Summary(ctx context.Context) View {
	contextLogger := log.WithContext(ctx)
	identity, _ := service.session.Identity()
	view := View{User: identity}

	employees, err := service.employees.ListEmployees(ctx)
	if err != nil {
		contextLogger.WithError(err).Warn("could not load employees for dashboard")
		view.Degraded = true
	}
	requests, err := service.leaves.ListLeaveRequests(ctx)
	if err != nil {
		contextLogger.WithError(err).Warn("could not load leave requests for dashboard")
		view.Degraded = true
	}

	view.Stats.TotalEmployees = len(employees)
	for _, e := range employees {
		if e.Status == model.EmployeeActive {
			view.Stats.ActiveEmployees++
		}
	}
	view.Stats.TotalLeaveRequests = len(requests)
	for _, r := range requests {
		if r.Status == model.LeavePending {
			view.Stats.PendingLeaveRequests++
		}
	}

	if identity.IsAdmin() {
		view.Recent = Recent(requests, recentLimit)
	}
	return view
}

// Recent returns up to n requests, newest applied first. Ties keep their
// backend order and the input is not modified.
func Recent(requests []model.LeaveRequest, n int) []model.LeaveRequest {
	sorted := make([]model.LeaveRequest, len(requests))
	copy(sorted, requests)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AppliedAt.After(sorted[j].AppliedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
