package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawhaven/adoption-api/internal/api/metrics"
	"github.com/pawhaven/adoption-api/internal/api/middleware"
	"github.com/pawhaven/adoption-api/internal/core/domain"
	"github.com/pawhaven/adoption-api/internal/core/ports"
)

// FavoriteHandler serves the customer-gated favorites routes. Every route
// runs behind Authenticate(tokens, RoleCustomer), so a principal is
// always present by the time these methods run.
type FavoriteHandler struct {
	favorites ports.FavoriteService
}

func NewFavoriteHandler(favorites ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

type animalsResponse struct {
	OK      bool            `json:"ok"`
	Animals []domain.Animal `json:"animals"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// List returns the authenticated customer's favorite animals, newest
// first.
//
// @Summary      List favorite animals
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  animalsResponse
// @Failure      401  {object}  map[string]any
// @Router       /api/favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	p, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	animals, err := h.favorites.ListAnimals(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	metrics.FavoriteOpsTotal.WithLabelValues("list").Inc()

	return c.JSON(http.StatusOK, animalsResponse{OK: true, Animals: animals})
}

// Add favorites an animal for the authenticated customer. Idempotent.
//
// @Summary      Favorite an animal
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        animalId  path  string  true  "Animal id"
// @Success      201  {object}  okResponse
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /api/favorites/{animalId} [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	p, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	if err := h.favorites.Add(c.Request().Context(), p.ID, c.Param("animalId")); err != nil {
		return err
	}
	metrics.FavoriteOpsTotal.WithLabelValues("add").Inc()

	return c.JSON(http.StatusCreated, okResponse{OK: true})
}

// Remove unfavorites an animal. Removing an absent pair succeeds.
//
// @Summary      Unfavorite an animal
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        animalId  path  string  true  "Animal id"
// @Success      200  {object}  okResponse
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /api/favorites/{animalId} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	p, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	if err := h.favorites.Remove(c.Request().Context(), p.ID, c.Param("animalId")); err != nil {
		return err
	}
	metrics.FavoriteOpsTotal.WithLabelValues("remove").Inc()

	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// requirePrincipal fetches the principal set by the auth middleware.
// Its absence means a route was wired without Authenticate; reject rather
// than act on a zero identity.
func requirePrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.ID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
	}
	return p, nil
}
