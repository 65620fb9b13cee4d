package handler

import (
	"github.com/gofiber/fiber/v2"

	"crm-management-api/internal/model"
)

type createLeadRequest struct {
	Name   string  `json:"name" validate:"required"`
	Email  string  `json:"email" validate:"omitempty,email"`
	Phone  string  `json:"phone"`
	Status string  `json:"status" validate:"omitempty,oneof=new contacted qualified converted lost"`
	Value  float64 `json:"value" validate:"gte=0"`
}

type updateLeadRequest struct {
	Name   *string  `json:"name" validate:"omitempty,min=1"`
	Email  *string  `json:"email" validate:"omitempty,email"`
	Phone  *string  `json:"phone"`
	Status *string  `json:"status" validate:"omitempty,oneof=new contacted qualified converted lost"`
	Value  *float64 `json:"value" validate:"omitempty,gte=0"`
}

func (h *Handler) CreateLead(c *fiber.Ctx) error {
	var req createLeadRequest
	if err := h.body(c, &req); err != nil {
		return err
	}

	l := &model.Lead{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: model.LeadStatus(req.Status),
		Value:  req.Value,
	}
	if err := h.store.CreateLead(c.Context(), l); err != nil {
		return storeError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(l)
}

func (h *Handler) ListLeads(c *fiber.Ctx) error {
	leads, err := h.store.ListLeads(c.Context())
	if err != nil {
		return storeError(err)
	}

	if q := c.Query("status"); q != "" {
		if !model.LeadStatus(q).Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "unknown lead status")
		}
		filtered := []model.Lead{}
		for _, l := range leads {
			if l.Status == model.LeadStatus(q) {
				filtered = append(filtered, l)
			}
		}
		leads = filtered
	}
	if leads == nil {
		leads = []model.Lead{}
	}
	return c.JSON(leads)
}

func (h *Handler) GetLead(c *fiber.Ctx) error {
	l, err := h.store.GetLead(c.Context(), c.Params("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(l)
}

// UpdateLead accepts any status value from the enum; lead transitions are
// an unconstrained policy choice.
func (h *Handler) UpdateLead(c *fiber.Ctx) error {
	var req updateLeadRequest
	if err := h.body(c, &req); err != nil {
		return err
	}

	patch := model.LeadPatch{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Value: req.Value,
	}
	if req.Status != nil {
		st := model.LeadStatus(*req.Status)
		patch.Status = &st
	}

	l, err := h.store.UpdateLead(c.Context(), c.Params("id"), patch)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(l)
}
