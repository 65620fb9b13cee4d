// Package export builds the downloadable xlsx reports.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"crm-management-api/internal/model"
	"crm-management-api/internal/report"
)

// LeadsWorkbook lists every lead plus the pipeline totals at the bottom.
func LeadsWorkbook(leads []model.Lead) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Leads"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Name", "Email", "Phone", "Status", "Value", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, l := range leads {
		row := i + 2
		values := []any{l.Name, l.Email, l.Phone, string(l.Status), l.Value, l.CreatedAt.Format("2006-01-02")}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	totalsRow := len(leads) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalsRow), "Total value")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", totalsRow), report.TotalLeadValue(leads))
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalsRow+1), "Converted value")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", totalsRow+1), report.ConvertedLeadValue(leads))
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalsRow+2), "Conversion rate")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", totalsRow+2), report.ConversionRate(leads))

	return f, nil
}

// AttendanceWorkbook has one row per user with present/absent/leave counts.
func AttendanceWorkbook(users []model.User) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Attendance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Name", "Type", "Days Recorded", "Present", "Absent", "Leave"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, u := range users {
		absent, leave := 0, 0
		for _, r := range u.Attendance {
			switch r.Status {
			case model.AttendanceAbsent:
				absent++
			case model.AttendanceLeave:
				leave++
			}
		}
		row := i + 2
		values := []any{u.Name, string(u.UserType), len(u.Attendance),
			report.AttendancePresentCount(u), absent, leave}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
