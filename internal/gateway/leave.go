package gateway

import (
	"context"
	"net/http"
	"net/url"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal/model"
)

func (c *client) ListLeaveRequests(ctx context.Context) ([]model.LeaveRequest, error) {
	log.WithContext(ctx).Debug("Fetching all leave requests")
	var requests []model.LeaveRequest
	if err := c.call(ctx, "ListLeaveRequests", http.MethodGet, c.buildLeaveRequestsEndpoint(), nil, &requests); err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []model.LeaveRequest{}
	}
	return requests, nil
}

func (c *client) GetLeaveRequest(ctx context.Context, id model.ID) (*model.LeaveRequest, error) {
	request := &model.LeaveRequest{}
	if err := c.call(ctx, "GetLeaveRequest", http.MethodGet, c.buildLeaveRequestEndpoint(id), nil, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (c *client) CreateLeaveRequest(ctx context.Context, r model.LeaveRequest) (*model.LeaveRequest, error) {
	r.ID = ""
	created := &model.LeaveRequest{}
	if err := c.call(ctx, "CreateLeaveRequest", http.MethodPost, c.buildLeaveRequestsEndpoint(), r, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *client) UpdateLeaveRequest(ctx context.Context, id model.ID, r model.LeaveRequest) (*model.LeaveRequest, error) {
	r.ID = id
	updated := &model.LeaveRequest{}
	if err := c.call(ctx, "UpdateLeaveRequest", http.MethodPut, c.buildLeaveRequestEndpoint(id), r, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *client) DeleteLeaveRequest(ctx context.Context, id model.ID) error {
	return c.call(ctx, "DeleteLeaveRequest", http.MethodDelete, c.buildLeaveRequestEndpoint(id), nil, nil)
}

func (c *client) buildLeaveRequestsEndpoint() string {
	return c.LeaveURL + "/leaveRequests"
}

func (c *client) buildLeaveRequestEndpoint(id model.ID) string {
	return c.LeaveURL + "/leaveRequests/" + url.PathEscape(id.String())
}
