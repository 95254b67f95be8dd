package leave

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal/model"
	"github.com/syrilster/school-leave-console/internal/query"
	"github.com/syrilster/school-leave-console/internal/report"
	"github.com/syrilster/school-leave-console/internal/util"
)

const filterKey = "status"

type API interface {
	List(ctx context.Context, q query.Query) ListView
	Form() FormView
	Create(ctx context.Context, a Application, q query.Query) (ListView, error)
	Review(ctx context.Context, id model.ID, status model.LeaveStatus, q query.Query) (ListView, error)
	Delete(ctx context.Context, id model.ID, confirmed bool, q query.Query) (ListView, error)
	Export(ctx context.Context, q query.Query) ([]model.LeaveRequest, error)
}

func listHandler(api API) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		view := api.List(ctx, query.FromValues(req.URL.Query(), filterKey))
		if util.Abandoned(ctx) {
			return
		}
		util.WithBodyAndStatus(view, http.StatusOK, res)
	}
}

func formHandler(api API) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		util.WithBodyAndStatus(api.Form(), http.StatusOK, res)
	}
}

func createHandler(api API) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		var a Application
		if !util.DecodeJSON(res, req, &a) {
			return
		}

		view, err := api.Create(ctx, a, query.FromValues(req.URL.Query(), filterKey))
		if util.Abandoned(ctx) {
			return
		}
		if err != nil {
			util.WithError(ctx, err, "Failed to submit leave request.", res)
			return
		}
		util.WithBodyAndStatus(view, http.StatusCreated, res)
	}
}

func reviewHandler(api API, status model.LeaveStatus) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		id := model.ID(mux.Vars(req)["id"])

		view, err := api.Review(ctx, id, status, query.FromValues(req.URL.Query(), filterKey))
		if util.Abandoned(ctx) {
			return
		}
		if err != nil {
			util.WithError(ctx, err, "Failed to update leave request.", res)
			return
		}
		util.WithBodyAndStatus(view, http.StatusOK, res)
	}
}

func deleteHandler(api API) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		params := req.URL.Query()
		confirmed, _ := strconv.ParseBool(params.Get("confirm"))

		view, err := api.Delete(ctx, model.ID(mux.Vars(req)["id"]), confirmed, query.FromValues(params, filterKey))
		if util.Abandoned(ctx) {
			return
		}
		if err != nil {
			util.WithError(ctx, err, "Failed to delete leave request.", res)
			return
		}
		util.WithBodyAndStatus(view, http.StatusOK, res)
	}
}

func exportHandler(api API) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		requests, err := api.Export(ctx, query.FromValues(req.URL.Query(), filterKey))
		if util.Abandoned(ctx) {
			return
		}
		if err != nil {
			util.WithError(ctx, err, "Failed to export leave requests.", res)
			return
		}

		buf, err := report.LeaveRequests(requests)
		if err != nil {
			contextLogger.WithError(err).Error("Failed to write leave request workbook")
			util.WithError(ctx, err, "Failed to export leave requests.", res)
			return
		}

		filename := fmt.Sprintf("leave-requests-%s.xlsx", time.Now().Format(model.DateLayout))
		res.Header().Set("Content-Type", report.ContentType)
		res.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		res.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(res); err != nil {
			contextLogger.WithError(err).Error("Failed to write workbook to response")
		}
	}
}
