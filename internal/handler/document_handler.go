package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"artmuseum/internal/document"
	"artmuseum/internal/log"
	"artmuseum/internal/repository"
)

// DocumentHandler serves CRUD for one document collection addressed by
// ObjectID hex.
type DocumentHandler[T any, PT document.Pointer[T]] struct {
	repo   repository.DocumentRepository[T]
	prefix string
	logger log.Logger
}

// NewDocumentHandler creates a handler whose Location headers start with
// prefix, e.g. "/api/mongo/Artworks".
func NewDocumentHandler[T any, PT document.Pointer[T]](repo repository.DocumentRepository[T], prefix string, logger log.Logger) *DocumentHandler[T, PT] {
	return &DocumentHandler[T, PT]{repo: repo, prefix: prefix, logger: logger}
}

// List godoc
// @Summary List documents
// @Tags documents
// @Produce json
// @Param collection path string true "Artists, Artworks, Exhibitions or Locations"
// @Success 200 {array} object
// @Failure 503 {object} errors.ErrorResponse
// @Router /mongo/{collection} [get]
func (h *DocumentHandler[T, PT]) List(c echo.Context) error {
	docs, err := h.repo.List(c.Request().Context())
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, docs)
}

// Get godoc
// @Summary Get a document by ObjectID
// @Tags documents
// @Produce json
// @Param collection path string true "Artists, Artworks, Exhibitions or Locations"
// @Param id path string true "ObjectID hex"
// @Success 200 {object} object
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /mongo/{collection}/{id} [get]
func (h *DocumentHandler[T, PT]) Get(c echo.Context) error {
	doc, err := h.repo.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, doc)
}

// Create godoc
// @Summary Create a document
// @Tags documents
// @Accept json
// @Produce json
// @Param collection path string true "Artists, Artworks, Exhibitions or Locations"
// @Param request body object true "Document"
// @Success 201 {object} object
// @Failure 400 {object} errors.ErrorResponse
// @Router /mongo/{collection} [post]
func (h *DocumentHandler[T, PT]) Create(c echo.Context) error {
	doc := new(T)
	if err := bindAndValidate(c, doc); err != nil {
		return err
	}
	if err := h.repo.Create(c.Request().Context(), doc); err != nil {
		return fail(c, h.logger, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, location(h.prefix, PT(doc).GetObjectID().Hex()))
	return c.JSON(http.StatusCreated, doc)
}

// Replace godoc
// @Summary Replace a document
// @Description Swaps the whole stored document; fields missing from the body are cleared.
// @Tags documents
// @Accept json
// @Produce json
// @Param collection path string true "Artists, Artworks, Exhibitions or Locations"
// @Param id path string true "ObjectID hex"
// @Param request body object true "Document"
// @Success 200 {object} object
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /mongo/{collection}/{id} [put]
func (h *DocumentHandler[T, PT]) Replace(c echo.Context) error {
	doc := new(T)
	if err := bindAndValidate(c, doc); err != nil {
		return err
	}
	if err := h.repo.Replace(c.Request().Context(), c.Param("id"), doc); err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, doc)
}

// Delete godoc
// @Summary Delete a document
// @Tags documents
// @Security BearerAuth
// @Param collection path string true "Artists, Artworks, Exhibitions or Locations"
// @Param id path string true "ObjectID hex"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /mongo/{collection}/{id} [delete]
func (h *DocumentHandler[T, PT]) Delete(c echo.Context) error {
	if err := h.repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}
