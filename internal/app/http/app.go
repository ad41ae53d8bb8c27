package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	custommw "virtual_gallery/internal/middleware"
	httprouters "virtual_gallery/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	log             *slog.Logger
	e               *echo.Echo
	routers         *httprouters.Routers
	listener        net.Listener
	staticDir       string
	shutdownTimeout time.Duration
}

// New builds the echo server on an already bound listener.
func New(log *slog.Logger, listener net.Listener, staticDir string, shutdownTimeout time.Duration, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}
	e.HTTPErrorHandler = routers.HTTPErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORS())
	e.Use(custommw.PrometheusMetrics)
	e.Use(middleware.Recover())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote ip", v.RemoteIP),
				slog.String("request_id", v.RequestID),
			)

			return nil
		},
	}))

	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &Server{
		log:             log,
		e:               e,
		routers:         routers,
		listener:        listener,
		staticDir:       staticDir,
		shutdownTimeout: shutdownTimeout,
	}
}

func (s *Server) BuildRouters() {
	s.e.GET("/metrics", echoprometheus.NewHandler())
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := s.e.Group("/api")
	{
		api.GET("/health", s.routers.Health)

		pictures := api.Group("/pictures")
		{
			pictures.GET("", s.routers.GetPictures)
			pictures.POST("", s.routers.CreatePicture)
			pictures.GET("/:id", s.routers.GetPicture)
			pictures.PUT("/:id", s.routers.UpdatePicture)
			pictures.DELETE("/:id", s.routers.DeletePicture)
			pictures.GET("/:id/exhibitions", s.routers.GetPictureExhibitions)
		}

		artists := api.Group("/artists")
		{
			artists.GET("", s.routers.GetArtists)
			artists.POST("", s.routers.CreateArtist)
			artists.GET("/:id", s.routers.GetArtist)
			artists.PUT("/:id", s.routers.UpdateArtist)
			artists.DELETE("/:id", s.routers.DeleteArtist)
			artists.GET("/:id/pictures", s.routers.GetArtistPictures)
		}

		exhibitions := api.Group("/exhibitions")
		{
			exhibitions.GET("", s.routers.GetExhibitions)
			exhibitions.POST("", s.routers.CreateExhibition)
			exhibitions.GET("/:id", s.routers.GetExhibition)
			exhibitions.DELETE("/:id", s.routers.DeleteExhibition)
			exhibitions.POST("/:id/pictures", s.routers.AddExhibitionPicture)
			exhibitions.DELETE("/:id/pictures/:pictureId", s.routers.RemoveExhibitionPicture)
		}

		api.Any("", s.routers.APINotFound)
		api.Any("/*", s.routers.APINotFound)
	}

	if s.staticDir != "" {
		s.e.Static("/", s.staticDir)
	}
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("addr", s.listener.Addr().String()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	s.e.Listener = s.listener

	if err := s.e.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}
