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

// GetExhibitions godoc
// @Summary Список выставок
// @Description Выставки по дате начала.
// @Tags exhibitions
// @Produce json
// @Success 200 {array} dto.ExhibitionResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/exhibitions [get]
func (r *Routers) GetExhibitions(c echo.Context) error {
	exhibitions, err := r.ExhibitionService.GetExhibitions(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
	}

	return c.JSON(http.StatusOK, exhibitions)
}

// CreateExhibition godoc
// @Summary Создание выставки
// @Tags exhibitions
// @Accept json
// @Produce json
// @Param request body dto.CreateExhibitionRequest true "Данные выставки"
// @Success 201 {object} dto.ExhibitionResponse
// @Failure 400 {object} response.ErrorResponse "Обязательные поля: title, startDate, endDate"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/exhibitions [post]
func (r *Routers) CreateExhibition(c echo.Context) error {
	const op = "http.routers.CreateExhibition"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateExhibitionRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		if missingRequired(err) {
			return c.JSON(http.StatusBadRequest, response.ErrExhibitionRequiredFields)
		}
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	exhibition, err := r.ExhibitionService.CreateExhibition(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.WithPrefix(response.PrefixCreate, err))
	}

	return c.JSON(http.StatusCreated, exhibition)
}

// GetExhibition godoc
// @Summary Выставка по ID
// @Description Выставка с картинами в порядке показа.
// @Tags exhibitions
// @Produce json
// @Param id path int true "ID выставки"
// @Success 200 {object} dto.ExhibitionDetailResponse
// @Failure 404 {object} response.ErrorResponse "Выставка не найдена"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/exhibitions/{id} [get]
func (r *Routers) GetExhibition(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrExhibitionNotFound)
	}

	exhibition, err := r.ExhibitionService.GetExhibition(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrExhibitionNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrExhibitionNotFound)
		}
		return c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
	}

	return c.JSON(http.StatusOK, exhibition)
}

// DeleteExhibition godoc
// @Summary Удаление выставки
// @Tags exhibitions
// @Produce json
// @Param id path int true "ID выставки"
// @Success 200 {object} dto.DeleteExhibitionResponse
// @Failure 404 {object} response.ErrorResponse "Выставка не найдена"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/exhibitions/{id} [delete]
func (r *Routers) DeleteExhibition(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrExhibitionNotFound)
	}

	resp, err := r.ExhibitionService.DeleteExhibition(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrExhibitionNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrExhibitionNotFound)
		}
		return c.JSON(http.StatusInternalServerError, response.WithPrefix(response.PrefixDelete, err))
	}

	return c.JSON(http.StatusOK, resp)
}

// AddExhibitionPicture godoc
// @Summary Добавление картины на выставку
// @Tags exhibitions
// @Accept json
// @Produce json
// @Param id path int true "ID выставки"
// @Param request body dto.AddExhibitionPictureRequest true "Картина и порядок показа"
// @Success 201 {object} dto.ExhibitionPictureResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Выставка или картина не найдена"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/exhibitions/{id}/pictures [post]
func (r *Routers) AddExhibitionPicture(c echo.Context) error {
	const op = "http.routers.AddExhibitionPicture"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrExhibitionNotFound)
	}

	var req dto.AddExhibitionPictureRequest

	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	link, err := r.ExhibitionService.AddPicture(c.Request().Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrExhibitionNotFound):
			return c.JSON(http.StatusNotFound, response.ErrExhibitionNotFound)
		case errors.Is(err, storage.ErrPictureNotFound):
			return c.JSON(http.StatusNotFound, response.ErrPictureNotFound)
		}
		return c.JSON(http.StatusInternalServerError, response.WithPrefix(response.PrefixCreate, err))
	}

	return c.JSON(http.StatusCreated, link)
}

// RemoveExhibitionPicture godoc
// @Summary Удаление картины с выставки
// @Tags exhibitions
// @Param id path int true "ID выставки"
// @Param pictureId path int true "ID картины"
// @Success 204
// @Failure 404 {object} response.ErrorResponse "Картина не найдена на выставке"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/exhibitions/{id}/pictures/{pictureId} [delete]
func (r *Routers) RemoveExhibitionPicture(c echo.Context) error {
	exhibitionID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrExhibitionPictureNotFound)
	}

	pictureID, ok := pathID(c, "pictureId")
	if !ok {
		return c.JSON(http.StatusNotFound, response.ErrExhibitionPictureNotFound)
	}

	err := r.ExhibitionService.RemovePicture(c.Request().Context(), exhibitionID, pictureID)
	if err != nil {
		if errors.Is(err, storage.ErrExhibitionPictureNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrExhibitionPictureNotFound)
		}
		return c.JSON(http.StatusInternalServerError, response.WithPrefix(response.PrefixDelete, err))
	}

	return c.NoContent(http.StatusNoContent)
}
