// Package employee implements the admin employee views: list, form, create,
// update, delete, export and bulk import.
package employee

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal/model"
	"github.com/syrilster/school-leave-console/internal/query"
)

const DefaultPageSize = 5

// Gateway is the employee side of the REST backend.
type Gateway interface {
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	GetEmployee(ctx context.Context, id model.ID) (*model.Employee, error)
	CreateEmployee(ctx context.Context, e model.Employee) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, id model.ID, e model.Employee) (*model.Employee, error)
	DeleteEmployee(ctx context.Context, id model.ID) error
}

// ListView is what the employee list renders.
type ListView struct {
	query.Page[model.Employee]
	Query       query.Query `json:"query"`
	Departments []string    `json:"departments"`
	// Degraded is set when the backend could not be read and the list is shown empty.
	Degraded bool `json:"degraded,omitempty"`
}

// FormView carries the choices of the employee form.
type FormView struct {
	Departments []string               `json:"departments"`
	Positions   []string               `json:"positions"`
	Statuses    []model.EmployeeStatus `json:"statuses"`
}

type Service struct {
	gateway  Gateway
	pageSize int
}

func NewService(g Gateway, pageSize int) *Service {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Service{gateway: g, pageSize: pageSize}
}

// List never fails: a backend error is logged and an empty list is shown.
func (service Service) List(ctx context.Context, q query.Query) ListView {
	employees, err := service.gateway.ListEmployees(ctx)
	if err != nil {
		log.WithContext(ctx).WithError(err).Warn("could not load employees, showing empty list")
		return service.view(nil, q, true)
	}
	return service.view(employees, q, false)
}

func (service Service) view(employees []model.Employee, q query.Query, degraded bool) ListView {
	page := query.Apply(employees, q, service.pageSize)
	q.Page = page.Page
	return ListView{
		Page:        page,
		Query:       q,
		Departments: model.Departments,
		Degraded:    degraded,
	}
}

func (service Service) Form() FormView {
	return FormView{
		Departments: model.Departments,
		Positions:   model.Positions,
		Statuses:    []model.EmployeeStatus{model.EmployeeActive, model.EmployeeInactive},
	}
}

func (service Service) Get(ctx context.Context, id model.ID) (*model.Employee, error) {
	return service.gateway.GetEmployee(ctx, id)
}

// Create validates, sends one create call and refetches the list.
func (service Service) Create(ctx context.Context, e model.Employee, q query.Query) (ListView, error) {
	e = normalize(e)
	if err := Validate(e); err != nil {
		return ListView{}, err
	}
	created, err := service.gateway.CreateEmployee(ctx, e)
	if err != nil {
		return ListView{}, fmt.Errorf("create employee: %w", err)
	}
	log.WithContext(ctx).WithField("id", created.ID).Info("employee created")
	return service.List(ctx, q), nil
}

func (service Service) Update(ctx context.Context, id model.ID, e model.Employee, q query.Query) (ListView, error) {
	e = normalize(e)
	if err := Validate(e); err != nil {
		return ListView{}, err
	}
	if _, err := service.gateway.UpdateEmployee(ctx, id, e); err != nil {
		return ListView{}, fmt.Errorf("update employee %s: %w", id, err)
	}
	log.WithContext(ctx).WithField("id", id).Info("employee updated")
	return service.List(ctx, q), nil
}

// Delete issues no backend call unless the user confirmed.
func (service Service) Delete(ctx context.Context, id model.ID, confirmed bool, q query.Query) (ListView, error) {
	if !confirmed {
		return ListView{}, model.ErrNotConfirmed
	}
	if err := service.gateway.DeleteEmployee(ctx, id); err != nil {
		return ListView{}, fmt.Errorf("delete employee %s: %w", id, err)
	}
	log.WithContext(ctx).WithField("id", id).Info("employee deleted")
	return service.List(ctx, q), nil
}

// Export returns every employee matching q, across all pages.
func (service Service) Export(ctx context.Context, q query.Query) ([]model.Employee, error) {
	employees, err := service.gateway.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("export employees: %w", err)
	}
	return query.Filter(employees, q), nil
}
