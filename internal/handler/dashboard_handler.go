package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"crm-management-api/internal/export"
	"crm-management-api/internal/report"
)

func (h *Handler) DashboardSummary(c *fiber.Ctx) error {
	users, err := h.store.ListUsers(c.Context())
	if err != nil {
		return storeError(err)
	}
	tasks, err := h.store.ListTasks(c.Context())
	if err != nil {
		return storeError(err)
	}
	leads, err := h.store.ListLeads(c.Context())
	if err != nil {
		return storeError(err)
	}
	return c.JSON(report.Summarize(users, tasks, leads))
}

func (h *Handler) ExportLeads(c *fiber.Ctx) error {
	leads, err := h.store.ListLeads(c.Context())
	if err != nil {
		return storeError(err)
	}
	f, err := export.LeadsWorkbook(leads)
	if err != nil {
		return err
	}
	return sendWorkbook(c, f, "leads.xlsx")
}

func (h *Handler) ExportAttendance(c *fiber.Ctx) error {
	users, err := h.store.ListUsers(c.Context())
	if err != nil {
		return storeError(err)
	}
	f, err := export.AttendanceWorkbook(users)
	if err != nil {
		return err
	}
	return sendWorkbook(c, f, "attendance.xlsx")
}

func sendWorkbook(c *fiber.Ctx, f *excelize.File, name string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(buf.Bytes())
}
