package http

import (
	"net/http"
	"time"

	"virtual_gallery/internal/lib/logger/sl"
	"virtual_gallery/internal/transport/http/dto"

	"github.com/labstack/echo/v4"
)

// Health godoc
// @Summary Состояние сервиса
// @Description Всегда 200; поле database показывает доступность базы.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/health [get]
func (r *Routers) Health(c echo.Context) error {
	resp := dto.HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC(),
		Database:  "Connected",
	}

	if err := r.DB.HealthCheck(c.Request().Context()); err != nil {
		r.log.Warn("database ping failed", sl.Err(err))
		resp.Database = "Disconnected"
	}

	return c.JSON(http.StatusOK, resp)
}
