package leave

import (
	"net/http"

	"github.com/syrilster/school-leave-console/internal/config"
	"github.com/syrilster/school-leave-console/internal/guard"
	"github.com/syrilster/school-leave-console/internal/model"
)

func Routes(api API) []config.Route {
	return []config.Route{
		{Path: "/leave-requests", Method: http.MethodGet, Access: guard.Authenticated, Handler: listHandler(api)},
		{Path: "/leave-requests", Method: http.MethodPost, Access: guard.Authenticated, Handler: createHandler(api)},
		{Path: "/leave-requests/new", Method: http.MethodGet, Access: guard.Authenticated, Handler: formHandler(api)},
		{Path: "/leave-requests/export", Method: http.MethodGet, Access: guard.AdminOnly, Handler: exportHandler(api)},
		{Path: "/leave-requests/{id}/approve", Method: http.MethodPost, Access: guard.AdminOnly, Handler: reviewHandler(api, model.LeaveApproved)},
		{Path: "/leave-requests/{id}/reject", Method: http.MethodPost, Access: guard.AdminOnly, Handler: reviewHandler(api, model.LeaveRejected)},
		{Path: "/leave-requests/{id}", Method: http.MethodDelete, Access: guard.AdminOnly, Handler: deleteHandler(api)},
	}
}
