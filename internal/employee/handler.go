package employee

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal/model"
	"github.com/syrilster/school-leave-console/internal/query"
	"github.com/syrilster/school-leave-console/internal/report"
	"github.com/syrilster/school-leave-console/internal/util"
)

const (
	supportedFileFormat = ".xlsx"
	filterKey           = "department"
	maxUploadSize       = 32 << 20
)

// API is what the employee handlers need from the service.
type API interface {
	List(ctx context.Context, q query.Query) ListView
	Form() FormView
	Get(ctx context.Context, id model.ID) (*model.Employee, error)
	Create(ctx context.Context, e model.Employee, q query.Query) (ListView, error)
	Update(ctx context.Context, id model.ID, e model.Employee, q query.Query) (ListView, error)
	Delete(ctx context.Context, id model.ID, confirmed bool, q query.Query) (ListView, error)
	Export(ctx context.Context, q query.Query) ([]model.Employee, error)
	Import(ctx context.Context, data []byte, q query.Query) (ImportResult, error)
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

func getHandler(api API) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		e, err := api.Get(ctx, model.ID(mux.Vars(req)["id"]))
		if util.Abandoned(ctx) {
			return
		}
		if err != nil {
			util.WithError(ctx, err, "Failed to load employee.", res)
			return
		}
		util.WithBodyAndStatus(e, http.StatusOK, res)
	}
}

func createHandler(api API) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		var e model.Employee
		if !util.DecodeJSON(res, req, &e) {
			return
		}

		view, err := api.Create(ctx, e, query.FromValues(req.URL.Query(), filterKey))
		if util.Abandoned(ctx) {
			return
		}
		if err != nil {
			util.WithError(ctx, err, "Failed to save employee.", res)
			return
		}
		util.WithBodyAndStatus(view, http.StatusCreated, res)
	}
}

func updateHandler(api API) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		var e model.Employee
		if !util.DecodeJSON(res, req, &e) {
			return
		}

		id := model.ID(mux.Vars(req)["id"])
		view, err := api.Update(ctx, id, e, query.FromValues(req.URL.Query(), filterKey))
		if util.Abandoned(ctx) {
			return
		}
		if err != nil {
			util.WithError(ctx, err, "Failed to save employee.", res)
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
			util.WithError(ctx, err, "Failed to delete employee.", res)
			return
		}
		util.WithBodyAndStatus(view, http.StatusOK, res)
	}
}

func exportHandler(api API) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		employees, err := api.Export(ctx, query.FromValues(req.URL.Query(), filterKey))
		if util.Abandoned(ctx) {
			return
		}
		if err != nil {
			util.WithError(ctx, err, "Failed to export employees.", res)
			return
		}

		buf, err := report.Employees(employees)
		if err != nil {
			contextLogger.WithError(err).Error("Failed to write employee workbook")
			util.WithError(ctx, err, "Failed to export employees.", res)
			return
		}

		filename := fmt.Sprintf("employees-%s.xlsx", time.Now().Format(model.DateLayout))
		res.Header().Set("Content-Type", report.ContentType)
		res.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		res.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(res); err != nil {
			contextLogger.WithError(err).Error("Failed to write workbook to response")
		}
	}
}

func importHandler(api API) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		if err := req.ParseMultipartForm(maxUploadSize); err != nil {
			contextLogger.WithError(err).Error("Failed to parse request body")
			util.WithBodyAndStatus(util.ErrorBody{Error: "Please upload an .xlsx file"}, http.StatusBadRequest, res)
			return
		}

		file, fileHeader, err := req.FormFile("file")
		if err != nil {
			contextLogger.WithError(err).Error("Failed to get the file from request")
			util.WithBodyAndStatus(util.ErrorBody{Error: "Please upload an .xlsx file"}, http.StatusBadRequest, res)
			return
		}
		defer file.Close()

		if filepath.Ext(fileHeader.Filename) != supportedFileFormat {
			contextLogger.WithField("filename", fileHeader.Filename).Error("Unable to open the uploaded file. Please confirm the file is in .xlsx format.")
			util.WithBodyAndStatus(util.ErrorBody{Error: "Please upload an .xlsx file"}, http.StatusBadRequest, res)
			return
		}

		buf := bytes.NewBuffer(nil)
		if _, err := io.Copy(buf, file); err != nil {
			contextLogger.WithError(err).Error("Failed to copy file contents to buffer")
			util.WithBodyAndStatus(util.ErrorBody{Error: "Could not read the uploaded file"}, http.StatusBadRequest, res)
			return
		}

		result, err := api.Import(ctx, buf.Bytes(), query.FromValues(req.URL.Query(), filterKey))
		if util.Abandoned(ctx) {
			return
		}
		if err != nil {
			util.WithBodyAndStatus(util.ErrorBody{Error: "The uploaded workbook could not be read"}, http.StatusBadRequest, res)
			return
		}
		util.WithBodyAndStatus(result, http.StatusOK, res)
	}
}
