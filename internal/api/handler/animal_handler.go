package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawhaven/adoption-api/internal/core/domain"
	"github.com/pawhaven/adoption-api/internal/core/ports"
)

// AnimalHandler serves the public animal listing and the admin-gated CRUD.
type AnimalHandler struct {
	animals ports.AnimalService
}

func NewAnimalHandler(animals ports.AnimalService) *AnimalHandler {
	return &AnimalHandler{animals: animals}
}

type animalRequest struct {
	Name        string           `json:"name"`
	Breed       string           `json:"breed"`
	Sex         string           `json:"sex"`
	AgeWeeks    *int             `json:"age_weeks"`
	RescueType  string           `json:"rescue_type"`
	Status      string           `json:"status"`
	Description string           `json:"description"`
	Location    *locationRequest `json:"location"`
}

type animalPatchRequest struct {
	Name        *string          `json:"name"`
	Breed       *string          `json:"breed"`
	Sex         *string          `json:"sex"`
	AgeWeeks    *int             `json:"age_weeks"`
	RescueType  *string          `json:"rescue_type"`
	Status      *string          `json:"status"`
	Description *string          `json:"description"`
	Location    *locationRequest `json:"location"`
}

// locationRequest carries GeoJSON Point coordinates, [longitude, latitude].
type locationRequest struct {
	Coordinates []float64 `json:"coordinates"`
}

// geoPoint drops malformed locations instead of failing the request,
// matching the lenient intake of record imports.
func (l *locationRequest) geoPoint() *domain.GeoPoint {
	if l == nil || len(l.Coordinates) != 2 {
		return nil
	}
	return domain.NewGeoPoint(l.Coordinates[0], l.Coordinates[1])
}

type animalResponse struct {
	OK     bool           `json:"ok"`
	Animal *domain.Animal `json:"animal"`
}

// List returns all animals, newest first. Public.
//
// @Summary      List animals
// @Tags         animals
// @Produce      json
// @Success      200  {object}  animalsResponse
// @Router       /api/animals [get]
func (h *AnimalHandler) List(c echo.Context) error {
	animals, err := h.animals.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, animalsResponse{OK: true, Animals: animals})
}

// Get returns a single animal. Public.
//
// @Summary      Get an animal
// @Tags         animals
// @Produce      json
// @Param        id  path  string  true  "Animal id"
// @Success      200  {object}  animalResponse
// @Failure      404  {object}  map[string]any
// @Router       /api/animals/{id} [get]
func (h *AnimalHandler) Get(c echo.Context) error {
	animal, err := h.animals.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, animalResponse{OK: true, Animal: animal})
}

// Create inserts a new animal record. Admin only.
//
// @Summary      Create an animal
// @Tags         animals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      animalRequest  true  "Animal record"
// @Success      201   {object}  animalResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/animals [post]
func (h *AnimalHandler) Create(c echo.Context) error {
	var req animalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	animal := &domain.Animal{
		Name:        req.Name,
		Breed:       req.Breed,
		Sex:         req.Sex,
		AgeWeeks:    req.AgeWeeks,
		RescueType:  req.RescueType,
		Status:      req.Status,
		Description: req.Description,
		Location:    req.Location.geoPoint(),
	}

	created, err := h.animals.Create(c.Request().Context(), animal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, animalResponse{OK: true, Animal: created})
}

// Update patches an animal record. Admin only.
//
// @Summary      Update an animal
// @Tags         animals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Animal id"
// @Param        body  body      animalPatchRequest  true  "Fields to update"
// @Success      200   {object}  animalResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/animals/{id} [put]
func (h *AnimalHandler) Update(c echo.Context) error {
	var req animalPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	patch := &domain.AnimalPatch{
		Name:        req.Name,
		Breed:       req.Breed,
		Sex:         req.Sex,
		AgeWeeks:    req.AgeWeeks,
		RescueType:  req.RescueType,
		Status:      req.Status,
		Description: req.Description,
		Location:    req.Location.geoPoint(),
	}

	updated, err := h.animals.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, animalResponse{OK: true, Animal: updated})
}

// Delete removes an animal and its favorite rows. Admin only.
//
// @Summary      Delete an animal
// @Tags         animals
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Animal id"
// @Success      200  {object}  okResponse
// @Failure      404  {object}  map[string]any
// @Router       /api/animals/{id} [delete]
func (h *AnimalHandler) Delete(c echo.Context) error {
	if err := h.animals.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}
