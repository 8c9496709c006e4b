package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/ports"
)

// CheckoutHandler handles the three-step order intake flow.
type CheckoutHandler struct {
	service ports.CheckoutService
}

func NewCheckoutHandler(service ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// Start opens a checkout session for a published tier or a custom amount.
//
// @Summary      Start a checkout session
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      startCheckoutRequest  true  "Offer selection"
// @Success      201   {object}  checkoutSessionResponse
// @Failure      422   {object}  map[string]string
// @Router       /checkout [post]
func (h *CheckoutHandler) Start(c echo.Context) error {
	var req startCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.Start(c.Request().Context(), ports.StartCheckoutInput{
		Tier:      req.Tier,
		CustomUSD: req.CustomAmountUSD,
	})
	if err != nil {
		return err
	}
	return h.render(c, http.StatusCreated, session)
}

// Get returns the current session state.
//
// @Summary      Get a checkout session
// @Tags         checkout
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  checkoutSessionResponse
// @Failure      404  {object}  map[string]string
// @Router       /checkout/{id} [get]
func (h *CheckoutHandler) Get(c echo.Context) error {
	session, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, session)
}

// SetSender records step 1 fields.
//
// @Summary      Record sender details
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Session ID"
// @Param        body  body      senderStepRequest  true  "Sender details"
// @Success      200   {object}  checkoutSessionResponse
// @Router       /checkout/{id}/sender [put]
func (h *CheckoutHandler) SetSender(c echo.Context) error {
	var req senderStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.SetSender(c.Request().Context(), c.Param("id"), domain.SenderDetails{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Country: req.Country,
	})
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, session)
}

// SetReceiver records step 2 fields. Changing the province clears the
// municipality and collection choice; the response carries the refreshed
// availability flags.
//
// @Summary      Record receiver details
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Session ID"
// @Param        body  body      receiverStepRequest  true  "Receiver details"
// @Success      200   {object}  checkoutSessionResponse
// @Router       /checkout/{id}/receiver [put]
func (h *CheckoutHandler) SetReceiver(c echo.Context) error {
	var req receiverStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.SetReceiver(c.Request().Context(), c.Param("id"), domain.ReceiverDetails{
		Name:         req.Name,
		NationalID:   req.NationalID,
		Contact:      req.Contact,
		Province:     req.Province,
		Municipality: req.Municipality,
		Address:      req.Address,
		Notes:        req.Notes,
	})
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, session)
}

// SetCollection records step 3 fields.
//
// @Summary      Record collection method and currency
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Session ID"
// @Param        body  body      collectionStepRequest  true  "Collection details"
// @Success      200   {object}  checkoutSessionResponse
// @Failure      422   {object}  map[string]string
// @Router       /checkout/{id}/collection [put]
func (h *CheckoutHandler) SetCollection(c echo.Context) error {
	var req collectionStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.SetCollection(c.Request().Context(), c.Param("id"), domain.CollectionDetails{
		Method:   req.Method,
		Currency: req.Currency,
		BankCard: req.BankCard,
	})
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, session)
}

// Advance moves the session forward one step if the current step validates.
//
// @Summary      Advance to the next checkout step
// @Tags         checkout
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  checkoutSessionResponse
// @Failure      422  {object}  map[string]string
// @Router       /checkout/{id}/advance [post]
func (h *CheckoutHandler) Advance(c echo.Context) error {
	session, err := h.service.Advance(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, session)
}

// Back moves the session one step backwards.
//
// @Summary      Return to the previous checkout step
// @Tags         checkout
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  checkoutSessionResponse
// @Router       /checkout/{id}/back [post]
func (h *CheckoutHandler) Back(c echo.Context) error {
	session, err := h.service.Back(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, session)
}

// CurrencyOptions lists the selectable method/currency pairs for step 3.
//
// @Summary      List currency options for a session
// @Tags         checkout
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  currencyOptionsResponse
// @Router       /checkout/{id}/currencies [get]
func (h *CheckoutHandler) CurrencyOptions(c echo.Context) error {
	options, err := h.service.CurrencyOptions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, currencyOptionsResponse{Options: options})
}

// Submit persists the order and returns its tracking token.
//
// @Summary      Submit the checkout
// @Tags         checkout
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      201  {object}  submitResponse
// @Failure      422  {object}  map[string]string
// @Router       /checkout/{id}/submit [post]
func (h *CheckoutHandler) Submit(c echo.Context) error {
	result, err := h.service.Submit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, submitResponse{
		TrackingToken: result.TrackingToken,
		Status:        result.Order.Status,
		AmountUSD:     result.Order.AmountUSD,
		Payout:        result.Order.Payout,
		Currency:      result.Order.Currency,
		CreatedAt:     result.Order.CreatedAt,
	})
}

func (h *CheckoutHandler) render(c echo.Context, status int, session *domain.CheckoutSession) error {
	resp, err := toSessionResponse(session)
	if err != nil {
		return err
	}
	return c.JSON(status, resp)
}
