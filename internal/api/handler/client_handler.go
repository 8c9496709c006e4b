package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/ports"
)

// ClientHandler handles customer registration, login, and email verification.
type ClientHandler struct {
	clientService ports.ClientService
}

func NewClientHandler(clientService ports.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type registerClientRequest struct {
	FullName string `json:"fullname" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Contact  string `json:"contact"  validate:"required"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type clientAuthResponse struct {
	Token  string         `json:"token,omitempty"`
	Client *domain.Client `json:"client"`
}

type resendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// Register creates an unverified customer account and dispatches the
// verification email.
//
// @Summary      Register a new client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      registerClientRequest  true  "Registration details"
// @Success      201   {object}  clientAuthResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /clients/register [post]
func (h *ClientHandler) Register(c echo.Context) error {
	var req registerClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.clientService.Register(c.Request().Context(), ports.RegisterClientInput{
		FullName: req.FullName,
		Email:    req.Email,
		Contact:  req.Contact,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, clientAuthResponse{Client: client})
}

// Login authenticates a client. Unverified accounts get a 403 distinct from
// the 401 for bad credentials so the UI can offer the resend flow.
//
// @Summary      Client login
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  clientAuthResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /clients/login [post]
func (h *ClientHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, client, err := h.clientService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, clientAuthResponse{Token: token, Client: client})
}

// VerifyEmail consumes a verification token.
//
// @Summary      Verify a client email
// @Tags         clients
// @Produce      json
// @Param        token  query     string  true  "Verification token"
// @Success      200    {object}  statusResponse
// @Failure      410    {object}  map[string]string
// @Failure      422    {object}  map[string]string
// @Router       /clients/verify [get]
func (h *ClientHandler) VerifyEmail(c echo.Context) error {
	if err := h.clientService.VerifyEmail(c.Request().Context(), c.QueryParam("token")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "verified"})
}

// ResendVerification regenerates the token and sends a fresh email.
//
// @Summary      Resend the verification email
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      resendRequest  true  "Account email"
// @Success      200   {object}  statusResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /clients/verify/resend [post]
func (h *ClientHandler) ResendVerification(c echo.Context) error {
	var req resendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.clientService.ResendVerification(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "sent"})
}
