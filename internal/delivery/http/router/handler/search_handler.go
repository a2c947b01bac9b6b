package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SearchHandlerParams holds dependencies for SearchHandler, injected by Fx.
type SearchHandlerParams struct {
	fx.In

	SearchUC usecase.SearchUsecase
	Logger   *slog.Logger
}

// SearchHandler holds dependencies for public marketplace search handlers.
type SearchHandler struct {
	searchUC usecase.SearchUsecase
	logger   *slog.Logger
}

// NewSearchHandler is the constructor for SearchHandler
func NewSearchHandler(params SearchHandlerParams) *SearchHandler {
	return &SearchHandler{
		searchUC: params.SearchUC,
		logger:   params.Logger,
	}
}

// SearchVendors lists storefronts matching text, category, city and an
// optional lat/lng/radius_km point filter.
func (h *SearchHandler) SearchVendors(c echo.Context) error {
	input := &usecase.SearchVendorsInput{
		Query:     c.QueryParam("q"),
		Category:  c.QueryParam("category"),
		City:      c.QueryParam("city"),
		Latitude:  floatQueryParam(c, "lat"),
		Longitude: floatQueryParam(c, "lng"),
		Limit:     intQueryParam(c, "limit"),
		Offset:    intQueryParam(c, "offset"),
	}
	if radius := floatQueryParam(c, "radius_km"); radius != nil {
		input.RadiusKm = *radius
	}

	output, err := h.searchUC.SearchVendors(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output, "Vendors retrieved")
}

// SearchProducts lists active products matching text, category and a price
// range in paise.
func (h *SearchHandler) SearchProducts(c echo.Context) error {
	output, err := h.searchUC.SearchProducts(c.Request().Context(), &usecase.SearchProductsInput{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		MinPrice: int64QueryParam(c, "min_price"),
		MaxPrice: int64QueryParam(c, "max_price"),
		Limit:    intQueryParam(c, "limit"),
		Offset:   intQueryParam(c, "offset"),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output, "Products retrieved")
}
