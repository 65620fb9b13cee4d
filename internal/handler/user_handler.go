package handler

import (
	"github.com/gofiber/fiber/v2"

	"crm-management-api/internal/model"
	"crm-management-api/internal/report"
)

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Age      int    `json:"age" validate:"required,gte=18,lte=100"`
	Phone1   string `json:"phone1" validate:"required"`
	Phone2   string `json:"phone2"`
	Location string `json:"location" validate:"required"`
	UserType string `json:"userType" validate:"required,oneof=employee driver"`
}

type updateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Age      *int    `json:"age" validate:"omitempty,gte=18,lte=100"`
	Phone1   *string `json:"phone1" validate:"omitempty,min=1"`
	Phone2   *string `json:"phone2"`
	Location *string `json:"location" validate:"omitempty,min=1"`
	UserType *string `json:"userType" validate:"omitempty,oneof=employee driver"`
}

type addAttendanceRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Status string `json:"status" validate:"required,oneof=present absent leave"`
}

func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := h.body(c, &req); err != nil {
		return err
	}

	u := &model.User{
		Name:     req.Name,
		Age:      req.Age,
		Phone1:   req.Phone1,
		Phone2:   req.Phone2,
		Location: req.Location,
		UserType: model.UserType(req.UserType),
	}
	if err := h.store.CreateUser(c.Context(), u); err != nil {
		return storeError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := h.store.ListUsers(c.Context())
	if err != nil {
		return storeError(err)
	}

	switch c.Query("type") {
	case "":
	case string(model.UserTypeEmployee):
		users = report.Employees(users)
	case string(model.UserTypeDriver):
		users = report.Drivers(users)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unknown user type")
	}

	if users == nil {
		users = []model.User{}
	}
	return c.JSON(users)
}

func (h *Handler) GetUser(c *fiber.Ctx) error {
	u, err := h.store.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(u)
}

func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	var req updateUserRequest
	if err := h.body(c, &req); err != nil {
		return err
	}

	patch := model.UserPatch{
		Name:     req.Name,
		Age:      req.Age,
		Phone1:   req.Phone1,
		Phone2:   req.Phone2,
		Location: req.Location,
	}
	if req.UserType != nil {
		t := model.UserType(*req.UserType)
		patch.UserType = &t
	}

	u, err := h.store.UpdateUser(c.Context(), c.Params("id"), patch)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(u)
}

func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	if err := h.store.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return storeError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) AddAttendance(c *fiber.Ctx) error {
	var req addAttendanceRequest
	if err := h.body(c, &req); err != nil {
		return err
	}

	rec := model.AttendanceRecord{Date: req.Date, Status: model.AttendanceStatus(req.Status)}
	if err := h.store.AddAttendance(c.Context(), c.Params("id"), rec); err != nil {
		return storeError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// UserTasks returns the tasks whose assignment set contains the user.
func (h *Handler) UserTasks(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.store.GetUser(c.Context(), id); err != nil {
		return storeError(err)
	}
	tasks, err := h.store.ListTasks(c.Context())
	if err != nil {
		return storeError(err)
	}
	assigned := report.TasksAssignedTo(id, tasks)
	if assigned == nil {
		assigned = []model.Task{}
	}
	return c.JSON(assigned)
}
