package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/ports"
)

// CatalogHandler serves offers, quotes, and the reference data the checkout
// depends on. Reference reads carry no use-case logic, so the handler binds
// the repository port directly.
type CatalogHandler struct {
	catalog ports.CatalogRepository
}

func NewCatalogHandler(catalog ports.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type offersResponse struct {
	Offers []domain.Offer `json:"offers"`
}

type quoteRequest struct {
	AmountUSD float64 `json:"amount_usd" validate:"required,gt=0"`
}

type availabilityResponse struct {
	Municipality string `json:"municipality"`
	Cash         bool   `json:"cash"`
	Transfer     bool   `json:"transfer"`
}

// Offers returns the three published tiers.
//
// @Summary      List published offers
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  offersResponse
// @Router       /offers [get]
func (h *CatalogHandler) Offers(c echo.Context) error {
	return c.JSON(http.StatusOK, offersResponse{Offers: domain.FixedOffers()})
}

// Quote prices a custom USD amount. The same calculation backs submission,
// so the preview always matches the persisted order.
//
// @Summary      Quote a custom amount
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      quoteRequest  true  "Amount in USD"
// @Success      200   {object}  quoteResponse
// @Failure      422   {object}  map[string]string
// @Router       /offers/quote [post]
func (h *CatalogHandler) Quote(c echo.Context) error {
	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	offer, err := domain.CustomQuote(req.AmountUSD)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quoteResponse{Offer: offer, Display: formatOffer(offer)})
}

type quoteResponse struct {
	Offer   domain.Offer      `json:"offer"`
	Display map[string]string `json:"display"`
}

// Provinces lists all provinces sorted by name.
//
// @Summary      List provinces
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Province
// @Router       /provinces [get]
func (h *CatalogHandler) Provinces(c echo.Context) error {
	provinces, err := h.catalog.Provinces(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, provinces)
}

// Municipalities lists a province's municipalities sorted by name.
//
// @Summary      List municipalities of a province
// @Tags         catalog
// @Produce      json
// @Param        name  path    string  true  "Province name"
// @Success      200   {array}  domain.Municipality
// @Router       /provinces/{name}/municipalities [get]
func (h *CatalogHandler) Municipalities(c echo.Context) error {
	municipalities, err := h.catalog.MunicipalitiesByProvince(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, municipalities)
}

// Availability reports which collection methods a municipality offers.
// Municipalities without an explicit record offer both.
//
// @Summary      Collection availability for a municipality
// @Tags         catalog
// @Produce      json
// @Param        name  path      string  true  "Municipality name"
// @Success      200   {object}  availabilityResponse
// @Router       /municipalities/{name}/availability [get]
func (h *CatalogHandler) Availability(c echo.Context) error {
	name := c.Param("name")
	availability, err := h.catalog.Availability(c.Request().Context(), name)
	if err != nil {
		return err
	}

	flags := domain.AllServices()
	if availability != nil {
		flags = availability.Flags()
	}
	return c.JSON(http.StatusOK, availabilityResponse{
		Municipality: name,
		Cash:         flags.Cash,
		Transfer:     flags.Transfer,
	})
}

// PaymentMethods lists the active sender payment methods.
//
// @Summary      List payment methods
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.PaymentMethod
// @Router       /payment-methods [get]
func (h *CatalogHandler) PaymentMethods(c echo.Context) error {
	methods, err := h.catalog.PaymentMethods(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, methods)
}

// formatOffer is kept for display parity with the marketing site: large CUP
// figures are grouped ("81,000").
func formatOffer(o domain.Offer) map[string]string {
	return map[string]string{
		"send_usd":     strconv.FormatFloat(o.SendUSD, 'f', -1, 64),
		"cash_cup":     domain.FormatAmount(o.Cash.CUP),
		"transfer_cup": domain.FormatAmount(o.Transfer.CUP),
	}
}
