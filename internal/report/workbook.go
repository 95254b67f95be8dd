// Package report renders list views as xlsx workbooks.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/syrilster/school-leave-console/internal/model"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheet       = "Sheet1"
)

var EmployeeColumns = []string{"ID", "First Name", "Last Name", "Email", "Phone", "Department", "Position", "Salary", "Hire Date", "Status"}

var LeaveRequestColumns = []string{"ID", "Employee ID", "Employee Name", "Leave Type", "Start Date", "End Date", "Reason", "Status", "Applied At"}

func Employees(employees []model.Employee) (*bytes.Buffer, error) {
	rows := make([][]interface{}, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []interface{}{
			e.ID.String(), e.FirstName, e.LastName, e.Email, e.Phone,
			e.Department, e.Position, e.Salary, e.HireDate, string(e.Status),
		})
	}
	return write(EmployeeColumns, rows)
}

func LeaveRequests(requests []model.LeaveRequest) (*bytes.Buffer, error) {
	rows := make([][]interface{}, 0, len(requests))
	for _, r := range requests {
		applied := ""
		if !r.AppliedAt.IsZero() {
			applied = r.AppliedAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, []interface{}{
			r.ID.String(), r.EmployeeID.String(), r.EmployeeName, r.LeaveType,
			r.StartDate, r.EndDate, r.Reason, string(r.Status), applied,
		})
	}
	return write(LeaveRequestColumns, rows)
}

func write(header []string, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return nil, err
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("report: write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("report: write row %d: %w", i+2, err)
		}
	}

	return f.WriteToBuffer()
}
