package http

import (
	"errors"
	"log/slog"
	"net/http"

	"virtual_gallery/internal/lib/logger/sl"
	"virtual_gallery/internal/storage"
	"virtual_gallery/internal/transport/http/dto"
	"virtual_gallery/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// GetArtists godoc
// @Summary Список художников
// @Description Художники по алфавиту, у каждого список картин.
// @Tags artists
// @Produce json
// @Success 200 {array} dto.ArtistWithPicturesResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/artists [get]
func (r *Routers) GetArtists(c echo.Context) error {
	artists, err := r.ArtistService.GetArtists(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
	}

	return c.JSON(http.StatusOK, artists)
}

// GetArtist godoc
// @Summary Художник по ID
// @Description Художник с картинами, от новых к старым.
// @Tags artists
// @Produce json
// @Param id path int true "ID художника"
// @Success 200 {object} dto.ArtistWithPicturesResponse
// @Failure 404 {object} response.ErrorResponse "Художник не найден"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/artists/{id} [get]
func (r *Routers) GetArtist(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrArtistNotFound)
	}

	artist, err := r.ArtistService.GetArtist(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrArtistNotFound)
		}
		return c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
	}

	return c.JSON(http.StatusOK, artist)
}

// GetArtistPictures godoc
// @Summary Картины художника
// @Tags artists
// @Produce json
// @Param id path int true "ID художника"
// @Success 200 {array} dto.PictureResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/artists/{id}/pictures [get]
func (r *Routers) GetArtistPictures(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		// No artist can have this id, so no picture references it either.
		return c.JSON(http.StatusOK, []dto.PictureResponse{})
	}

	pictures, err := r.PictureService.GetPicturesByArtist(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
	}

	return c.JSON(http.StatusOK, pictures)
}

// CreateArtist godoc
// @Summary Создание художника
// @Tags artists
// @Accept json
// @Produce json
// @Param request body dto.CreateArtistRequest true "Данные художника"
// @Success 201 {object} dto.ArtistResponse
// @Failure 400 {object} response.ErrorResponse "Обязательное поле: name"
// @Failure 409 {object} response.ErrorResponse "Художник с таким именем уже существует"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/artists [post]
func (r *Routers) CreateArtist(c echo.Context) error {
	const op = "http.routers.CreateArtist"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateArtistRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		if missingRequired(err) {
			return c.JSON(http.StatusBadRequest, response.ErrArtistRequiredFields)
		}
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	artist, err := r.ArtistService.CreateArtist(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, storage.ErrArtistExists) {
			return c.JSON(http.StatusConflict, response.ErrArtistAlreadyExists)
		}
		return c.JSON(http.StatusInternalServerError, response.WithPrefix(response.PrefixCreate, err))
	}

	return c.JSON(http.StatusCreated, artist)
}

// UpdateArtist godoc
// @Summary Обновление художника
// @Description Частичное обновление. Переименование не меняет текстовое поле artist у картин.
// @Tags artists
// @Accept json
// @Produce json
// @Param id path int true "ID художника"
// @Param request body dto.UpdateArtistRequest true "Изменяемые поля"
// @Success 200 {object} dto.ArtistResponse
// @Failure 404 {object} response.ErrorResponse "Художник не найден"
// @Failure 409 {object} response.ErrorResponse "Художник с таким именем уже существует"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/artists/{id} [put]
func (r *Routers) UpdateArtist(c echo.Context) error {
	const op = "http.routers.UpdateArtist"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrArtistNotFound)
	}

	var req dto.UpdateArtistRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	artist, err := r.ArtistService.UpdateArtist(c.Request().Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrArtistNotFound):
			return c.JSON(http.StatusNotFound, response.ErrArtistNotFound)
		case errors.Is(err, storage.ErrArtistExists):
			return c.JSON(http.StatusConflict, response.ErrArtistAlreadyExists)
		}
		return c.JSON(http.StatusInternalServerError, response.WithPrefix(response.PrefixUpdate, err))
	}

	return c.JSON(http.StatusOK, artist)
}

// DeleteArtist godoc
// @Summary Удаление художника
// @Description Картины художника остаются, связь с ним обнуляется.
// @Tags artists
// @Produce json
// @Param id path int true "ID художника"
// @Success 200 {object} dto.DeleteArtistResponse
// @Failure 404 {object} response.ErrorResponse "Художник не найден"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/artists/{id} [delete]
func (r *Routers) DeleteArtist(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrArtistNotFound)
	}

	resp, err := r.ArtistService.DeleteArtist(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrArtistNotFound)
		}
		return c.JSON(http.StatusInternalServerError, response.WithPrefix(response.PrefixDelete, err))
	}

	return c.JSON(http.StatusOK, resp)
}
