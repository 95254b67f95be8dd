package gateway

import (
	"context"
	"net/http"
	"net/url"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal/model"
)

func (c *client) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	log.WithContext(ctx).Debug("Fetching all employees")
	var employees []model.Employee
	if err := c.call(ctx, "ListEmployees", http.MethodGet, c.buildEmployeesEndpoint(), nil, &employees); err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []model.Employee{}
	}
	return employees, nil
}

func (c *client) GetEmployee(ctx context.Context, id model.ID) (*model.Employee, error) {
	employee := &model.Employee{}
	if err := c.call(ctx, "GetEmployee", http.MethodGet, c.buildEmployeeEndpoint(id), nil, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (c *client) CreateEmployee(ctx context.Context, e model.Employee) (*model.Employee, error) {
	e.ID = ""
	created := &model.Employee{}
	if err := c.call(ctx, "CreateEmployee", http.MethodPost, c.buildEmployeesEndpoint(), e, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *client) UpdateEmployee(ctx context.Context, id model.ID, e model.Employee) (*model.Employee, error) {
	e.ID = id
	updated := &model.Employee{}
	if err := c.call(ctx, "UpdateEmployee", http.MethodPut, c.buildEmployeeEndpoint(id), e, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *client) DeleteEmployee(ctx context.Context, id model.ID) error {
	return c.call(ctx, "DeleteEmployee", http.MethodDelete, c.buildEmployeeEndpoint(id), nil, nil)
}

func (c *client) buildEmployeesEndpoint() string {
	return c.EmployeeURL + "/employees"
}

func (c *client) buildEmployeeEndpoint(id model.ID) string {
	return c.EmployeeURL + "/employees/" + url.PathEscape(id.String())
}
