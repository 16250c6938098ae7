package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"artmuseum/internal/document"
	"artmuseum/internal/log"
	"artmuseum/internal/repository"
)

// ArtistHandler serves the artist documents. Besides the plain document
// routes it can look artists up by the relational key they were copied with.
type ArtistHandler struct {
	*DocumentHandler[document.Artist, *document.Artist]
	artists repository.ArtistRepository
}

// NewArtistHandler creates an artist handler rooted at prefix.
func NewArtistHandler(repo repository.ArtistRepository, prefix string, logger log.Logger) *ArtistHandler {
	return &ArtistHandler{
		DocumentHandler: NewDocumentHandler[document.Artist](repo, prefix, logger),
		artists:         repo,
	}
}

// ByArtistID godoc
// @Summary Find artists by relational artist id
// @Tags artists
// @Produce json
// @Param artistId path int true "Relational artist id"
// @Success 200 {array} document.Artist
// @Failure 400 {object} errors.ErrorResponse
// @Router /mongo/Artists/by-artistid/{artistId} [get]
func (h *ArtistHandler) ByArtistID(c echo.Context) error {
	artistID, err := int64Param(c, "artistId")
	if err != nil {
		return fail(c, h.logger, err)
	}
	artists, err := h.artists.FindByArtistID(c.Request().Context(), artistID)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, artists)
}
