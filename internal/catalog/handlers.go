package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handlers provides HTTP handlers for catalog operations.
type Handlers struct {
	service *Service
}

// NewHandlers creates new catalog handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/anime", h.ListAnime)
	g.GET("/anime/:id", h.GetAnime)
	g.GET("/search", h.Search)
}

// ListAnime lists anime by optional genre and sort order.
// GET /api/v1/catalog/anime?genre=&sort=&page=
func (h *Handlers) ListAnime(c echo.Context) error {
	var genreID int
	if genreStr := c.QueryParam("genre"); genreStr != "" {
		g, err := strconv.Atoi(genreStr)
		if err != nil || g < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid genre")
		}
		genreID = g
	}

	sort := SortType(c.QueryParam("sort"))
	if sort != "" && !sort.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, err := h.service.ListByGenre(c.Request().Context(), genreID, sort, pageParam(c))
	if err != nil {
		return remoteFetchHTTPError(err)
	}

	return c.JSON(http.StatusOK, items)
}

// Search runs a text search against the catalog.
// GET /api/v1/catalog/search?query=&page=
func (h *Handlers) Search(c echo.Context) error {
	items, err := h.service.Search(c.Request().Context(), c.QueryParam("query"), pageParam(c))
	if err != nil {
		return remoteFetchHTTPError(err)
	}

	return c.JSON(http.StatusOK, items)
}

// GetAnime returns the detailed record for a single title.
// GET /api/v1/catalog/anime/:id
func (h *Handlers) GetAnime(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	detail, err := h.service.GetDetails(c.Request().Context(), id)
	if err != nil {
		return remoteFetchHTTPError(err)
	}

	return c.JSON(http.StatusOK, detail)
}

// pageParam parses the page query parameter, defaulting to 1.
func pageParam(c echo.Context) int {
	if pageStr := c.QueryParam("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p >= 1 {
			return p
		}
	}
	return 1
}

// remoteFetchHTTPError maps service errors to HTTP responses.
func remoteFetchHTTPError(err error) error {
	if errors.Is(err, ErrRemoteFetch) {
		return echo.NewHTTPError(http.StatusBadGateway, "upstream catalog unavailable")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
