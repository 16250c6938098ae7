package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"artmuseum/internal/log"
	"artmuseum/internal/model"
	"artmuseum/internal/repository"
)

// CollectionHandler serves the collection routes of one backend.
type CollectionHandler struct {
	repo   repository.CollectionRepository
	prefix string
	logger log.Logger
}

// NewCollectionHandler creates a handler whose Location headers start with
// prefix, e.g. "/api/neo4j/Collections".
func NewCollectionHandler(repo repository.CollectionRepository, prefix string, logger log.Logger) *CollectionHandler {
	return &CollectionHandler{repo: repo, prefix: prefix, logger: logger}
}

// CollectionRequest is the create payload.
type CollectionRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=255"`
	Description *string `json:"description"`
	Owner       *int64  `json:"owner"`
}

func location[K any](prefix string, id K) string {
	return fmt.Sprintf("%s/%v", prefix, id)
}

// List godoc
// @Summary List collections
// @Tags collections
// @Produce json
// @Param backend path string true "mysql, mongo or neo4j"
// @Success 200 {array} model.Collection
// @Router /{backend}/Collections [get]
func (h *CollectionHandler) List(c echo.Context) error {
	collections, err := h.repo.List(c.Request().Context())
	if err != nil {
		return fail(c, h.logger, err)
	}
	if collections == nil {
		collections = []model.Collection{}
	}
	return c.JSON(http.StatusOK, collections)
}

// Get godoc
// @Summary Get collection by id
// @Tags collections
// @Produce json
// @Param backend path string true "mysql, mongo or neo4j"
// @Param id path int true "Collection ID"
// @Success 200 {object} model.Collection
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /{backend}/Collections/{id} [get]
func (h *CollectionHandler) Get(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return fail(c, h.logger, err)
	}
	collection, err := h.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, collection)
}

// Create godoc
// @Summary Create collection
// @Tags collections
// @Accept json
// @Produce json
// @Param backend path string true "mysql, mongo or neo4j"
// @Param request body CollectionRequest true "Collection payload"
// @Success 201 {object} model.Collection
// @Failure 400 {object} errors.ErrorResponse
// @Router /{backend}/Collections [post]
func (h *CollectionHandler) Create(c echo.Context) error {
	var req CollectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	collection := &model.Collection{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.Owner,
	}
	if err := h.repo.Create(c.Request().Context(), collection); err != nil {
		return fail(c, h.logger, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, location(h.prefix, collection.ID))
	return c.JSON(http.StatusCreated, collection)
}

// UpdateOwner godoc
// @Summary Change the owner of a collection
// @Tags collections
// @Produce json
// @Param backend path string true "mysql, mongo or neo4j"
// @Param id path int true "Collection ID"
// @Param ownerId path int true "Owner ID"
// @Success 200 {object} model.Collection
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /{backend}/Collections/{id}/owner/{ownerId} [put]
func (h *CollectionHandler) UpdateOwner(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return fail(c, h.logger, err)
	}
	ownerID, err := int64Param(c, "ownerId")
	if err != nil {
		return fail(c, h.logger, err)
	}
	collection, err := h.repo.UpdateOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, collection)
}

// Delete godoc
// @Summary Delete collection
// @Tags collections
// @Security BearerAuth
// @Param backend path string true "mysql, mongo or neo4j"
// @Param id path int true "Collection ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /{backend}/Collections/{id} [delete]
func (h *CollectionHandler) Delete(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return fail(c, h.logger, err)
	}
	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return fail(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}
