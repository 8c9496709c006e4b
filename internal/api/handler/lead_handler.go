package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/ports"
)

// LeadHandler handles contact-form intake and back-office lead management.
type LeadHandler struct {
	service ports.LeadService
}

func NewLeadHandler(service ports.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

type createLeadRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"required"`
	Message string `json:"message" validate:"required"`
}

type updateLeadStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type listLeadsResponse struct {
	Data []domain.Lead `json:"data"`
}

// Create captures a contact-form enquiry.
//
// @Summary      Submit a contact enquiry
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body      createLeadRequest  true  "Enquiry"
// @Success      201   {object}  domain.Lead
// @Failure      400   {object}  map[string]string
// @Router       /leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	var req createLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lead, err := h.service.Create(c.Request().Context(), req.Name, req.Email, req.Phone, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, lead)
}

// List returns all leads, newest first.
//
// @Summary      List leads
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listLeadsResponse
// @Router       /admin/leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	leads, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listLeadsResponse{Data: leads})
}

// UpdateStatus mutates a lead's status.
//
// @Summary      Update a lead status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Lead ID"
// @Param        body  body      updateLeadStatusRequest  true  "New status"
// @Success      200   {object}  statusResponse
// @Failure      404   {object}  map[string]string
// @Router       /admin/leads/{id}/status [put]
func (h *LeadHandler) UpdateStatus(c echo.Context) error {
	var req updateLeadStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "updated"})
}
