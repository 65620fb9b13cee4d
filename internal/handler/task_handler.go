package handler

import (
	"github.com/gofiber/fiber/v2"

	"crm-management-api/internal/model"
	"crm-management-api/internal/workflow"
)

type createTaskRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	AssignedTo  []string `json:"assignedTo"`
	Status      string   `json:"status" validate:"omitempty,oneof=main reassigned reuse"`
	DueDate     string   `json:"dueDate" validate:"required,datetime=2006-01-02"`
}

type updateTaskRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1"`
	Description *string   `json:"description"`
	AssignedTo  *[]string `json:"assignedTo"`
	Status      *string   `json:"status" validate:"omitempty,oneof=main reassigned reuse"`
	DueDate     *string   `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

func (h *Handler) CreateTask(c *fiber.Ctx) error {
	var req createTaskRequest
	if err := h.body(c, &req); err != nil {
		return err
	}

	t := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      model.TaskStatus(req.Status),
		DueDate:     req.DueDate,
	}
	if err := h.store.CreateTask(c.Context(), t); err != nil {
		return storeError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

func (h *Handler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.store.ListTasks(c.Context())
	if err != nil {
		return storeError(err)
	}

	if q := c.Query("status"); q != "" {
		if !model.TaskStatus(q).Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "unknown task status")
		}
		filtered := []model.Task{}
		for _, t := range tasks {
			if t.Status == model.TaskStatus(q) {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return c.JSON(tasks)
}

func (h *Handler) GetTask(c *fiber.Ctx) error {
	t, err := h.store.GetTask(c.Context(), c.Params("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(t)
}

// UpdateTask is the direct field edit. It can set any valid status, which is
// the correction escape hatch around the guided workflow.
func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	var req updateTaskRequest
	if err := h.body(c, &req); err != nil {
		return err
	}

	patch := model.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		st := model.TaskStatus(*req.Status)
		patch.Status = &st
	}

	t, err := h.store.UpdateTask(c.Context(), c.Params("id"), patch)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(t)
}

func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	if err := h.store.DeleteTask(c.Context(), c.Params("id")); err != nil {
		return storeError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ReassignTask(c *fiber.Ctx) error {
	return h.transition(c, workflow.Reassign)
}

func (h *Handler) MoveTaskToReuse(c *fiber.Ctx) error {
	return h.transition(c, workflow.MoveToReuse)
}

func (h *Handler) ReactivateTask(c *fiber.Ctx) error {
	return h.transition(c, workflow.Reactivate)
}

func (h *Handler) transition(c *fiber.Ctx, apply func(model.TaskStatus) (model.TaskStatus, error)) error {
	id := c.Params("id")
	t, err := h.store.GetTask(c.Context(), id)
	if err != nil {
		return storeError(err)
	}
	next, err := apply(t.Status)
	if err != nil {
		return storeError(err)
	}
	updated, err := h.store.UpdateTask(c.Context(), id, model.TaskPatch{Status: &next})
	if err != nil {
		return storeError(err)
	}
	return c.JSON(updated)
}
