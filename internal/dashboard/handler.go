package dashboard

import (
	"context"
	"net/http"

	"github.com/syrilster/school-leave-console/internal/config"
	"github.com/syrilster/school-leave-console/internal/guard"
	"github.com/syrilster/school-leave-console/internal/util"
)

type API interface {
	Summary(ctx context.Context) View
}

func Handler(api API) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		view := api.Summary(ctx)
		if util.Abandoned(ctx) {
			return
		}
		util.WithBodyAndStatus(view, http.StatusOK, res)
	}
}

func Route(api API) config.Route {
	return config.Route{
		Path:    guard.DashboardPath,
		Method:  http.MethodGet,
		Access:  guard.Authenticated,
		Handler: Handler(api),
	}
}
