package employee

import (
	"net/http"

	"github.com/syrilster/school-leave-console/internal/config"
	"github.com/syrilster/school-leave-console/internal/guard"
)

// Routes are registered in order; the fixed paths come before /employees/{id}.
func Routes(api API) []config.Route {
	return []config.Route{
		{Path: "/employees", Method: http.MethodGet, Access: guard.AdminOnly, Handler: listHandler(api)},
		{Path: "/employees", Method: http.MethodPost, Access: guard.AdminOnly, Handler: createHandler(api)},
		{Path: "/employees/new", Method: http.MethodGet, Access: guard.AdminOnly, Handler: formHandler(api)},
		{Path: "/employees/export", Method: http.MethodGet, Access: guard.AdminOnly, Handler: exportHandler(api)},
		{Path: "/employees/import", Method: http.MethodPost, Access: guard.AdminOnly, Handler: importHandler(api)},
		{Path: "/employees/{id}", Method: http.MethodGet, Access: guard.AdminOnly, Handler: getHandler(api)},
		{Path: "/employees/{id}", Method: http.MethodPut, Access: guard.AdminOnly, Handler: updateHandler(api)},
		{Path: "/employees/{id}", Method: http.MethodDelete, Access: guard.AdminOnly, Handler: deleteHandler(api)},
	}
}
