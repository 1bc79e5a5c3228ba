package provider

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/providerlookup/providerlookup/pkg/pagination"
)

const defaultCityLimit = 50

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/search/", h.Search)
	e.POST("/api/search/", h.Search)
	e.GET("/api/quick-search/", h.QuickSearch)
	e.GET("/api/advanced-search/", h.AdvancedSearch)
	e.GET("/api/provider/:npi/", h.Detail)
	e.GET("/api/health/", h.Health)
	e.GET("/api/states/", h.States)
	e.GET("/api/cities/", h.Cities)
}

// Search handles both GET (query params) and POST (JSON body) searches,
// flat or grouped by specialty.
func (h *Handler) Search(c echo.Context) error {
	var params SearchParams
	if c.Request().Method == http.MethodPost {
		body, err := io.ReadAll(c.Request().Body)
		if err == nil {
			params, err = ParamsFromJSON(body)
		}
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		}
	} else {
		params = ParamsFromQuery(c.QueryParams())
	}

	ctx := c.Request().Context()

	if params.GroupBySpecialty {
		res, err := h.svc.SearchGrouped(ctx, params)
		if errors.Is(err, ErrTooManyResults) {
			return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, res)
	}

	pg := pagination.FromStrings(params.Page, params.PageSize, pagination.DefaultPageSize)
	res, err := h.svc.SearchPage(ctx, params, pg)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) QuickSearch(c echo.Context) error {
	suggestions, err := h.svc.QuickSearch(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}

func (h *Handler) AdvancedSearch(c echo.Context) error {
	params := ParamsFromQuery(c.QueryParams())
	pg := pagination.FromStrings(params.Page, params.PageSize, pagination.AdvancedPageSize)

	res, err := h.svc.AdvancedSearch(c.Request().Context(), params, pg)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Detail(c echo.Context) error {
	detail, err := h.svc.Detail(c.Request().Context(), c.Param("npi"))
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Individual provider not found"})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, detail)
}

// Health reports registry statistics; a datastore failure becomes a
// structured 500, not a crash.
func (h *Handler) Health(c echo.Context) error {
	health, err := h.svc.HealthCheck(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, health)
}

func (h *Handler) States(c echo.Context) error {
	states, err := h.svc.States(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if states == nil {
		states = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"states": states})
}

func (h *Handler) Cities(c echo.Context) error {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = defaultCityLimit
	}
	cities, err := h.svc.Cities(c.Request().Context(), c.QueryParam("state"), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if cities == nil {
		cities = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"cities": cities})
}
