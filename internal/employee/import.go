package employee

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"github.com/syrilster/school-leave-console/internal/model"
	"github.com/syrilster/school-leave-console/internal/query"
	"github.com/syrilster/school-leave-console/internal/validation"
)

// Import columns follow the export layout; the ID column is ignored.
const (
	colFirstName = iota + 1
	colLastName
	colEmail
	colPhone
	colDepartment
	colPosition
	colSalary
	colHireDate
	colStatus
)

var ErrEmptyWorkbook = errors.New("employee: workbook has no sheets")

type RowError struct {
	Row    int               `json:"row"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type ImportResult struct {
	Created int        `json:"created"`
	Errors  []RowError `json:"errors"`
	View    ListView   `json:"view"`
}

// Import creates one employee per valid row of the first sheet. Invalid rows
// and failed creates are reported per row; they do not stop the import.
func (service Service) Import(ctx context.Context, data []byte, q query.Query) (ImportResult, error) {
	ctxLogger := log.WithContext(ctx)

	file, err := xlsx.OpenBinary(data)
	if err != nil {
		ctxLogger.WithError(err).Error("Failed to convert bytes to excel file")
		return ImportResult{}, fmt.Errorf("employee: open workbook: %w", err)
	}
	if len(file.Sheets) == 0 {
		return ImportResult{}, ErrEmptyWorkbook
	}

	result := ImportResult{Errors: []RowError{}}
	for index, row := range file.Sheets[0].Rows {
		// This is to skip the header row of the excel sheet
		if index == 0 || row == nil || isBlank(row) {
			continue
		}
		rowNum := index + 1

		e, err := employeeFromRow(row)
		if err == nil {
			e = normalize(e)
			err = Validate(e)
		}
		if err != nil {
			result.Errors = append(result.Errors, rowError(rowNum, err))
			continue
		}

		if _, err := service.gateway.CreateEmployee(ctx, e); err != nil {
			ctxLogger.WithError(err).Errorf("failed to create employee from row %d", rowNum)
			result.Errors = append(result.Errors, rowError(rowNum, err))
			continue
		}
		result.Created++
	}

	ctxLogger.WithFields(log.Fields{"created": result.Created, "failed": len(result.Errors)}).Info("employee import finished")
	result.View = service.List(ctx, q)
	return result, nil
}

func rowError(row int, err error) RowError {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return RowError{Row: row, Error: "invalid row", Fields: verr.Fields}
	}
	return RowError{Row: row, Error: err.Error()}
}

func cellValue(row *xlsx.Row, col int) string {
	if col >= len(row.Cells) || row.Cells[col] == nil {
		return ""
	}
	return strings.TrimSpace(row.Cells[col].Value)
}

func isBlank(row *xlsx.Row) bool {
	for i := range row.Cells {
		if cellValue(row, i) != "" {
			return false
		}
	}
	return true
}

func employeeFromRow(row *xlsx.Row) (model.Employee, error) {
	e := model.Employee{
		FirstName:  cellValue(row, colFirstName),
		LastName:   cellValue(row, colLastName),
		Email:      cellValue(row, colEmail),
		Phone:      cellValue(row, colPhone),
		Department: cellValue(row, colDepartment),
		Position:   cellValue(row, colPosition),
		HireDate:   hireDate(cellValue(row, colHireDate)),
		Status:     model.EmployeeStatus(strings.ToLower(cellValue(row, colStatus))),
	}

	if raw := cellValue(row, colSalary); raw != "" {
		salary, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return e, &validation.Error{Fields: map[string]string{"salary": fmt.Sprintf("Invalid salary: %v", raw)}}
		}
		e.Salary = salary
	}
	return e, nil
}

// hireDate accepts either YYYY-MM-DD text or an Excel date serial.
func hireDate(raw string) string {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return raw
	}
	return t.Format(model.DateLayout)
}
