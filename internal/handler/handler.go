package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"crm-management-api/internal/chat"
	"crm-management-api/internal/store"
	"crm-management-api/internal/workflow"
)

type Handler struct {
	store    store.Store
	chat     *chat.Session
	validate *validator.Validate
}

func New(st store.Store, cs *chat.Session) *Handler {
	return &Handler{store: st, chat: cs, validate: validator.New()}
}

func (h *Handler) Register(api fiber.Router) {
	api.Post("/users", h.CreateUser)
	api.Get("/users", h.ListUsers)
	api.Get("/users/:id", h.GetUser)
	api.Put("/users/:id", h.UpdateUser)
	api.Delete("/users/:id", h.DeleteUser)
	api.Post("/users/:id/attendance", h.AddAttendance)
	api.Get("/users/:id/tasks", h.UserTasks)

	api.Post("/tasks", h.CreateTask)
	api.Get("/tasks", h.ListTasks)
	api.Get("/tasks/:id", h.GetTask)
	api.Put("/tasks/:id", h.UpdateTask)
	api.Delete("/tasks/:id", h.DeleteTask)
	api.Post("/tasks/:id/reassign", h.ReassignTask)
	api.Post("/tasks/:id/reuse", h.MoveTaskToReuse)
	api.Post("/tasks/:id/reactivate", h.ReactivateTask)

	api.Post("/leads", h.CreateLead)
	api.Get("/leads", h.ListLeads)
	api.Get("/leads/:id", h.GetLead)
	api.Put("/leads/:id", h.UpdateLead)

	api.Get("/dashboard/summary", h.DashboardSummary)
	api.Get("/reports/leads.xlsx", h.ExportLeads)
	api.Get("/reports/attendance.xlsx", h.ExportAttendance)

	api.Get("/chat/messages", h.ListMessages)
	api.Post("/chat/messages", h.SendMessage)
}

// storeError maps store and workflow failures onto HTTP statuses. Anything
// unrecognized falls through to the app error handler as a 500.
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "not found")
	case errors.Is(err, store.ErrUnknownAssignee):
		return fiber.NewError(fiber.StatusBadRequest, "assignedTo references a user that does not exist")
	case errors.Is(err, store.ErrDuplicate):
		return fiber.NewError(fiber.StatusConflict, "attendance already recorded for that date")
	case errors.Is(err, workflow.ErrInvalidTransition):
		return fiber.NewError(fiber.StatusConflict, "transition not allowed from current status")
	default:
		return err
	}
}

// body decodes and validates a request payload. Validation failures never
// reach the store.
func (h *Handler) body(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
