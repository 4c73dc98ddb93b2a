package library

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/aniview/aniview/internal/catalog"
)

// Handlers provides HTTP handlers for the user's library.
type Handlers struct {
	service *Service
	userRef string
}

// NewHandlers creates new library handlers. userRef identifies the local
// user on rating records.
func NewHandlers(service *Service, userRef string) *Handlers {
	return &Handlers{service: service, userRef: userRef}
}

// RegisterRoutes registers the library routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/watchlist", h.GetWatchlist)
	g.POST("/watchlist", h.AddToWatchlist)
	g.DELETE("/watchlist/:id", h.RemoveFromWatchlist)

	g.GET("/watched", h.GetWatchedList)
	g.POST("/watched", h.AddToWatchedList)
	g.DELETE("/watched/:id", h.RemoveFromWatchedList)

	g.GET("/ratings", h.GetRatings)
	g.GET("/ratings/criteria", h.GetCriteria)
	g.GET("/ratings/:id", h.GetRating)
	g.PUT("/ratings/:id", h.PutRating)
}

// GetWatchlist returns the watchlist in insertion order.
// GET /api/v1/library/watchlist
func (h *Handlers) GetWatchlist(c echo.Context) error {
	entries, err := h.service.Watchlist(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

// AddToWatchlist appends an item to the watchlist.
// POST /api/v1/library/watchlist
func (h *Handlers) AddToWatchlist(c echo.Context) error {
	item, err := bindItem(c)
	if err != nil {
		return err
	}
	if err := h.service.AddToWatchlist(c.Request().Context(), *item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveFromWatchlist removes an item from the watchlist.
// DELETE /api/v1/library/watchlist/:id
func (h *Handlers) RemoveFromWatchlist(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.service.RemoveFromWatchlist(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetWatchedList returns the watched list in insertion order.
// GET /api/v1/library/watched
func (h *Handlers) GetWatchedList(c echo.Context) error {
	entries, err := h.service.WatchedList(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

// AddToWatchedList appends an item to the watched list, removing it from
// the watchlist if present.
// POST /api/v1/library/watched
func (h *Handlers) AddToWatchedList(c echo.Context) error {
	item, err := bindItem(c)
	if err != nil {
		return err
	}
	if err := h.service.AddToWatchedList(c.Request().Context(), *item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveFromWatchedList removes an item from the watched list.
// DELETE /api/v1/library/watched/:id
func (h *Handlers) RemoveFromWatchedList(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.service.RemoveFromWatchedList(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetRatings returns all stored ratings, newest first.
// GET /api/v1/library/ratings
func (h *Handlers) GetRatings(c echo.Context) error {
	ratings, err := h.service.Ratings(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ratings)
}

// GetCriteria returns the rating criteria definitions.
// GET /api/v1/library/ratings/criteria
func (h *Handlers) GetCriteria(c echo.Context) error {
	return c.JSON(http.StatusOK, Criteria)
}

// GetRating returns the rating for one title, 404 when absent.
// GET /api/v1/library/ratings/:id
func (h *Handlers) GetRating(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	rating, err := h.service.GetRating(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if rating == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no rating for this title")
	}
	return c.JSON(http.StatusOK, rating)
}

// PutRating stores a rating, replacing any existing one for the title.
// PUT /api/v1/library/ratings/:id
func (h *Handlers) PutRating(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var input RatingInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rating payload")
	}
	input.MalID = id

	rating, err := h.service.AddRating(c.Request().Context(), h.userRef, input)
	if err != nil {
		if errors.Is(err, ErrScoreOutOfRange) || errors.Is(err, ErrEmptyRating) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rating)
}

func bindItem(c echo.Context) (*catalog.Anime, error) {
	var item catalog.Anime
	if err := c.Bind(&item); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid item payload")
	}
	if item.MalID <= 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "missing catalog identifier")
	}
	return &item, nil
}

func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
