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

// GetPictures godoc
// @Summary Список картин
// @Description Все картины с краткой информацией о художнике, новые первыми.
// @Tags pictures
// @Produce json
// @Success 200 {array} dto.PictureResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/pictures [get]
func (r *Routers) GetPictures(c echo.Context) error {
	pictures, err := r.PictureService.GetPictures(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
	}

	return c.JSON(http.StatusOK, pictures)
}

// CreatePicture godoc
// @Summary Создание картины
// @Description Создает картину и связывает ее с художником по имени. Если художника нет, он создается.
// @Tags pictures
// @Accept json
// @Produce json
// @Param request body dto.CreatePictureRequest true "Данные картины"
// @Success 200 {object} dto.PictureResponse
// @Failure 400 {object} response.ErrorResponse "Обязательные поля: title, artist, imageUrl"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/pictures [post]
func (r *Routers) CreatePicture(c echo.Context) error {
	const op = "http.routers.CreatePicture"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreatePictureRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		if missingRequired(err) {
			return c.JSON(http.StatusBadRequest, response.ErrPictureRequiredFields)
		}
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	picture, err := r.PictureService.CreatePicture(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.WithPrefix(response.PrefixCreate, err))
	}

	return c.JSON(http.StatusOK, picture)
}

// GetPicture godoc
// @Summary Картина по ID
// @Tags pictures
// @Produce json
// @Param id path int true "ID картины"
// @Success 200 {object} dto.PictureDetailResponse
// @Failure 404 {object} response.ErrorResponse "Картина не найдена"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/pictures/{id} [get]
func (r *Routers) GetPicture(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrPictureNotFound)
	}

	picture, err := r.PictureService.GetPicture(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrPictureNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrPictureNotFound)
		}
		return c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
	}

	return c.JSON(http.StatusOK, picture)
}

// UpdatePicture godoc
// @Summary Обновление картины
// @Description Частичное обновление. При смене художника связь пересчитывается.
// @Tags pictures
// @Accept json
// @Produce json
// @Param id path int true "ID картины"
// @Param request body dto.UpdatePictureRequest true "Изменяемые поля"
// @Success 200 {object} dto.PictureResponse
// @Failure 404 {object} response.ErrorResponse "Картина не найдена"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/pictures/{id} [put]
func (r *Routers) UpdatePicture(c echo.Context) error {
	const op = "http.routers.UpdatePicture"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrPictureNotFound)
	}

	var req dto.UpdatePictureRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	picture, err := r.PictureService.UpdatePicture(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, storage.ErrPictureNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrPictureNotFound)
		}
		return c.JSON(http.StatusInternalServerError, response.WithPrefix(response.PrefixUpdate, err))
	}

	return c.JSON(http.StatusOK, picture)
}

// DeletePicture godoc
// @Summary Удаление картины
// @Tags pictures
// @Produce json
// @Param id path int true "ID картины"
// @Success 200 {object} dto.DeletePictureResponse
// @Failure 404 {object} response.ErrorResponse "Картина не найдена"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/pictures/{id} [delete]
func (r *Routers) DeletePicture(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrPictureNotFound)
	}

	resp, err := r.PictureService.DeletePicture(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrPictureNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrPictureNotFound)
		}
		return c.JSON(http.StatusInternalServerError, response.WithPrefix(response.PrefixDelete, err))
	}

	return c.JSON(http.StatusOK, resp)
}

// GetPictureExhibitions godoc
// @Summary Выставки картины
// @Tags pictures
// @Produce json
// @Param id path int true "ID картины"
// @Success 200 {array} dto.ExhibitionResponse
// @Failure 404 {object} response.ErrorResponse "Картина не найдена"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/pictures/{id}/exhibitions [get]
func (r *Routers) GetPictureExhibitions(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrPictureNotFound)
	}

	exhibitions, err := r.ExhibitionService.GetPictureExhibitions(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrPictureNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrPictureNotFound)
		}
		return c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
	}

	return c.JSON(http.StatusOK, exhibitions)
}
