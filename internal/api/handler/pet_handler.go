package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawmarket/petstore-api/internal/core/ports"
)

// PetHandler handles HTTP requests for pet listings.
type PetHandler struct {
	service ports.PetService
}

func NewPetHandler(service ports.PetService) *PetHandler {
	return &PetHandler{service: service}
}

type petRequest struct {
	Name        string  `json:"name"    validate:"required"`
	Species     string  `json:"species" validate:"required"`
	Breed       string  `json:"breed"`
	Age         int     `json:"age"     validate:"gte=0"`
	Price       float64 `json:"price"   validate:"required,gt=0"`
	Description string  `json:"description"`
}

func (r petRequest) toInput() ports.PetInput {
	return ports.PetInput{
		Name:        r.Name,
		Species:     r.Species,
		Breed:       r.Breed,
		Age:         r.Age,
		Price:       r.Price,
		Description: r.Description,
	}
}

// List handles GET /v1/pets; public catalog.
//
// @Summary      List pets
// @Tags         pets
// @Produce      json
// @Success      200  {array}   domain.Pet
// @Failure      500  {object}  errorResponse
// @Router       /v1/pets [get]
func (h *PetHandler) List(c echo.Context) error {
	pets, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pets)
}

// Get handles GET /v1/pets/:id; public.
//
// @Summary      Get a pet
// @Tags         pets
// @Produce      json
// @Param        id   path      string  true  "Pet ID"
// @Success      200  {object}  domain.Pet
// @Failure      404  {object}  errorResponse
// @Router       /v1/pets/{id} [get]
func (h *PetHandler) Get(c echo.Context) error {
	pet, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pet)
}

// Create handles POST /v1/pets; sellers and staff.
//
// @Summary      Create a pet listing
// @Tags         pets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      petRequest  true  "Pet details"
// @Success      201   {object}  domain.Pet
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/pets [post]
func (h *PetHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req petRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pet, err := h.service.Create(c.Request().Context(), caller, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, pet)
}

// Update handles PUT /v1/pets/:id; listing seller or staff.
//
// @Summary      Update a pet listing
// @Tags         pets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string      true  "Pet ID"
// @Param        body  body      petRequest  true  "Pet details"
// @Success      200   {object}  domain.Pet
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/pets/{id} [put]
func (h *PetHandler) Update(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req petRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pet, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pet)
}

// Delete handles DELETE /v1/pets/:id; listing seller or staff. A pet held
// by an open order is rejected with 409.
//
// @Summary      Delete a pet listing
// @Tags         pets
// @Security     BearerAuth
// @Param        id  path  string  true  "Pet ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/pets/{id} [delete]
func (h *PetHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
