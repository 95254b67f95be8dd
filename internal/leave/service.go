// Package leave implements the leave request views: list, apply, review,
// delete and export.
package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	ctxutil "github.com/syrilster/school-leave-console/internal/context"
	"github.com/syrilster/school-leave-console/internal/model"
	"github.com/syrilster/school-leave-console/internal/notify"
	"github.com/syrilster/school-leave-console/internal/query"
	"github.com/syrilster/school-leave-console/internal/report"
	"github.com/syrilster/school-leave-console/internal/session"
)

const DefaultPageSize = 10

// Gateway is the leave request side of the REST backend.
type Gateway interface {
	ListLeaveRequests(ctx context.Context) ([]model.LeaveRequest, error)
	GetLeaveRequest(ctx context.Context, id model.ID) (*model.LeaveRequest, error)
	CreateLeaveRequest(ctx context.Context, r model.LeaveRequest) (*model.LeaveRequest, error)
	UpdateLeaveRequest(ctx context.Context, id model.ID, r model.LeaveRequest) (*model.LeaveRequest, error)
	DeleteLeaveRequest(ctx context.Context, id model.ID) error
}

// Session gives the identity of the signed-in user.
type Session interface {
	Identity() (model.Identity, bool)
}

var Statuses = []model.LeaveStatus{model.LeavePending, model.LeaveApproved, model.LeaveRejected}

type ListView struct {
	query.Page[model.LeaveRequest]
	Query    query.Query         `json:"query"`
	Statuses []model.LeaveStatus `json:"statuses"`
	// Degraded is set when the backend could not be read and the list is shown empty.
	Degraded bool `json:"degraded,omitempty"`
}

type FormView struct {
	LeaveTypes []string `json:"leaveTypes"`
	MinDate    string   `json:"minDate"`
}

type Service struct {
	gateway   Gateway
	session   Session
	mailer    notify.Mailer
	approvers []string
	pageSize  int
	now       func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, e.g. for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithNotifications emails approvers when a request is submitted.
func WithNotifications(m notify.Mailer, approvers []string) Option {
	return func(s *Service) {
		s.mailer = m
		s.approvers = approvers
	}
}

func NewService(g Gateway, s Session, pageSize int, opts ...Option) *Service {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	service := &Service{
		gateway:  g,
		session:  s,
		mailer:   notify.LogMailer{},
		pageSize: pageSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// List shows admins every request and other users only their own. A backend
// error is logged and an empty list is shown.
func (service Service) List(ctx context.Context, q query.Query) ListView {
	requests, err := service.visible(ctx)
	if err != nil {
		log.WithContext(ctx).WithError(err).Warn("could not load leave requests, showing empty list")
		return service.view(nil, q, true)
	}
	return service.view(requests, q, false)
}

func (service Service) visible(ctx context.Context) ([]model.LeaveRequest, error) {
	identity, ok := service.session.Identity()
	if !ok {
		return nil, session.ErrAuth
	}

	requests, err := service.gateway.ListLeaveRequests(ctx)
	if err != nil {
		return nil, err
	}
	if identity.IsAdmin() {
		return requests, nil
	}

	own := make([]model.LeaveRequest, 0, len(requests))
	for _, r := range requests {
		if r.EmployeeID == identity.ID {
			own = append(own, r)
		}
	}
	return own, nil
}

func (service Service) view(requests []model.LeaveRequest, q query.Query, degraded bool) ListView {
	page := query.Apply(requests, q, service.pageSize)
	q.Page = page.Page
	return ListView{
		Page:     page,
		Query:    q,
		Statuses: Statuses,
		Degraded: degraded,
	}
}

func (service Service) Form() FormView {
	return FormView{
		LeaveTypes: model.LeaveTypes,
		MinDate:    service.now().Format(model.DateLayout),
	}
}

// Create submits a pending request on behalf of the signed-in user and
// refetches the list.
func (service Service) Create(ctx context.Context, a Application, q query.Query) (ListView, error) {
	contextLogger := log.WithContext(ctx)

	identity, ok := service.session.Identity()
	if !ok {
		return ListView{}, fmt.Errorf("create leave request: %w", session.ErrAuth)
	}

	a = a.normalize()
	now := service.now()
	if err := Validate(a, now); err != nil {
		return ListView{}, err
	}

	submitted := model.LeaveRequest{
		EmployeeID:   identity.ID,
		EmployeeName: identity.Name,
		LeaveType:    a.LeaveType,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		Reason:       a.Reason,
		Status:       model.LeavePending,
		AppliedAt:    now.UTC(),
	}
	created, err := service.gateway.CreateLeaveRequest(ctx, submitted)
	if err != nil {
		return ListView{}, fmt.Errorf("create leave request: %w", err)
	}
	// the backend may echo back only the new id
	if created != nil && created.ID != "" {
		submitted.ID = created.ID
	}
	contextLogger.WithFields(log.Fields{"id": submitted.ID, "employeeId": identity.ID}).Info("leave request submitted")

	go service.notifyApprovers(ctxutil.Detach(ctx), submitted)

	return service.List(ctx, q), nil
}

func (service Service) notifyApprovers(ctx context.Context, r model.LeaveRequest) {
	if len(service.approvers) == 0 {
		return
	}

	var body strings.Builder
	fmt.Fprintf(&body, "%s applied for %s from %s to %s.\n\n", r.EmployeeName, r.LeaveType, r.StartDate, r.EndDate)
	fmt.Fprintf(&body, "Reason: %s\n", r.Reason)

	msg := notify.Message{
		To:      service.approvers,
		Subject: fmt.Sprintf("Leave request from %s", r.EmployeeName),
		Body:    body.String(),
	}
	if buf, err := report.LeaveRequests([]model.LeaveRequest{r}); err == nil {
		msg.Attachments = []notify.Attachment{{Name: "leave-request.xlsx", Data: buf.Bytes()}}
	} else {
		log.WithContext(ctx).WithError(err).Warn("sending leave notification without workbook")
	}

	err := service.mailer.Send(ctx, msg)
	if err != nil {
		log.WithContext(ctx).WithError(err).Error("failed to notify approvers of leave request")
	}
}

// Review approves or rejects a pending request and refetches the list.
func (service Service) Review(ctx context.Context, id model.ID, status model.LeaveStatus, q query.Query) (ListView, error) {
	if status != model.LeaveApproved && status != model.LeaveRejected {
		return ListView{}, fmt.Errorf("review leave request %s: unsupported status %q", id, status)
	}

	current, err := service.gateway.GetLeaveRequest(ctx, id)
	if err != nil {
		return ListView{}, fmt.Errorf("review leave request %s: %w", id, err)
	}
	if current.Status != model.LeavePending {
		return ListView{}, fmt.Errorf("review leave request %s: %w", id, model.ErrAlreadyReviewed)
	}

	updated := *current
	updated.Status = status
	if _, err := service.gateway.UpdateLeaveRequest(ctx, id, updated); err != nil {
		return ListView{}, fmt.Errorf("review leave request %s: %w", id, err)
	}
	log.WithContext(ctx).WithFields(log.Fields{"id": id, "status": status}).Info("leave request reviewed")
	return service.List(ctx, q), nil
}

// Delete issues no backend call unless the user confirmed.
func (service Service) Delete(ctx context.Context, id model.ID, confirmed bool, q query.Query) (ListView, error) {
	if !confirmed {
		return ListView{}, model.ErrNotConfirmed
	}
	if err := service.gateway.DeleteLeaveRequest(ctx, id); err != nil {
		return ListView{}, fmt.Errorf("delete leave request %s: %w", id, err)
	}
	log.WithContext(ctx).WithField("id", id).Info("leave request deleted")
	return service.List(ctx, q), nil
}

// Export returns every visible request matching q, across all pages.
func (service Service) Export(ctx context.Context, q query.Query) ([]model.LeaveRequest, error) {
	requests, err := service.visible(ctx)
	if err != nil {
		return nil, fmt.Errorf("export leave requests: %w", err)
	}
	return query.Filter(requests, q), nil
}
