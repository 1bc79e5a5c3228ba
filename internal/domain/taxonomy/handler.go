package taxonomy

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const defaultSuggestionLimit = 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/taxonomies/", h.Taxonomies)
	e.GET("/api/specialty-groups/", h.SpecialtyGroups)
	e.GET("/api/specialty-classifications/", h.SpecialtyClassifications)
}

func (h *Handler) Taxonomies(c echo.Context) error {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = defaultSuggestionLimit
	}
	suggestions, err := h.svc.Suggest(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"taxonomies": suggestions})
}

func (h *Handler) SpecialtyGroups(c echo.Context) error {
	groups, err := h.svc.Groups(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if groups == nil {
		groups = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"specialty_groups": groups})
}

func (h *Handler) SpecialtyClassifications(c echo.Context) error {
	classifications, err := h.svc.Classifications(c.Request().Context(), c.QueryParam("group"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if classifications == nil {
		classifications = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"classifications": classifications})
}
