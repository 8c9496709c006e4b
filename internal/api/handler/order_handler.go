package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/ports"
)

// OrderHandler handles the public tracking lookup and the back-office order
// mutations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type updateOrderPaymentRequest struct {
	PaymentMethod    string `json:"payment_method"    validate:"required"`
	PaymentReference string `json:"payment_reference" validate:"required"`
}

type listOrdersResponse struct {
	Data []domain.RemittanceOrder `json:"data"`
}

// Track resolves an order by its tracking token.
//
// @Summary      Track an order
// @Tags         tracking
// @Produce      json
// @Param        token  path      string  true  "Tracking token"
// @Success      200    {object}  domain.RemittanceOrder
// @Failure      404    {object}  map[string]string
// @Router       /tracking/{token} [get]
func (h *OrderHandler) Track(c echo.Context) error {
	order, err := h.service.Track(c.Request().Context(), c.Param("token"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// List returns all orders, newest first.
//
// @Summary      List orders
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listOrdersResponse
// @Router       /admin/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listOrdersResponse{Data: orders})
}

// UpdateStatus mutates an order's status.
//
// @Summary      Update an order status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Order ID"
// @Param        body  body      updateOrderStatusRequest  true  "New status"
// @Success      200   {object}  statusResponse
// @Failure      404   {object}  map[string]string
// @Router       /admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
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

// UpdatePayment records how the sender paid.
//
// @Summary      Update an order's payment details
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Order ID"
// @Param        body  body      updateOrderPaymentRequest  true  "Payment details"
// @Success      200   {object}  statusResponse
// @Failure      404   {object}  map[string]string
// @Router       /admin/orders/{id}/payment [put]
func (h *OrderHandler) UpdatePayment(c echo.Context) error {
	var req updateOrderPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.UpdatePayment(c.Request().Context(), c.Param("id"), req.PaymentMethod, req.PaymentReference); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "updated"})
}
