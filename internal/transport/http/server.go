package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"virtual_gallery/internal/lib/logger/sl"
	"virtual_gallery/internal/transport/http/dto"
	"virtual_gallery/internal/transport/http/dto/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	_ "virtual_gallery/docs"
)

type PictureService interface {
	CreatePicture(ctx context.Context, req dto.CreatePictureRequest) (*dto.PictureResponse, error)
	GetPictures(ctx context.Context) ([]dto.PictureResponse, error)
	GetPicture(ctx context.Context, pictureID int64) (*dto.PictureDetailResponse, error)
	GetPicturesByArtist(ctx context.Context, artistID int64) ([]dto.PictureResponse, error)
	UpdatePicture(ctx context.Context, pictureID int64, req dto.UpdatePictureRequest) (*dto.PictureResponse, error)
	DeletePicture(ctx context.Context, pictureID int64) (*dto.DeletePictureResponse, error)
}

type ArtistService interface {
	CreateArtist(ctx context.Context, req dto.CreateArtistRequest) (*dto.ArtistResponse, error)
	GetArtists(ctx context.Context) ([]dto.ArtistWithPicturesResponse, error)
	GetArtist(ctx context.Context, artistID int64) (*dto.ArtistWithPicturesResponse, error)
	UpdateArtist(ctx context.Context, artistID int64, req dto.UpdateArtistRequest) (*dto.ArtistResponse, error)
	DeleteArtist(ctx context.Context, artistID int64) (*dto.DeleteArtistResponse, error)
}

type ExhibitionService interface {
	CreateExhibition(ctx context.Context, req dto.CreateExhibitionRequest) (*dto.ExhibitionResponse, error)
	GetExhibitions(ctx context.Context) ([]dto.ExhibitionResponse, error)
	GetExhibition(ctx context.Context, exhibitionID int64) (*dto.ExhibitionDetailResponse, error)
	DeleteExhibition(ctx context.Context, exhibitionID int64) (*dto.DeleteExhibitionResponse, error)
	AddPicture(ctx context.Context, exhibitionID int64, req dto.AddExhibitionPictureRequest) (*dto.ExhibitionPictureResponse, error)
	RemovePicture(ctx context.Context, exhibitionID, pictureID int64) error
	GetPictureExhibitions(ctx context.Context, pictureID int64) ([]dto.ExhibitionResponse, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Routers struct {
	log               *slog.Logger
	PictureService    PictureService
	ArtistService     ArtistService
	ExhibitionService ExhibitionService
	DB                HealthChecker
}

func NewRouter(
	log *slog.Logger,
	pictureService PictureService,
	artistService ArtistService,
	exhibitionService ExhibitionService,
	db HealthChecker,
) *Routers {
	return &Routers{
		log:               log,
		PictureService:    pictureService,
		ArtistService:     artistService,
		ExhibitionService: exhibitionService,
		DB:                db,
	}
}

// pathID parses a numeric path parameter. A malformed id cannot match any
// row, so callers answer it with their not-found response.
func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// missingRequired reports whether validation failed on a "required" rule.
func missingRequired(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return true
		}
	}
	return false
}

// APINotFound answers every /api request that no route matched.
func (r *Routers) APINotFound(c echo.Context) error {
	r.log.Warn("api route not found",
		slog.String("method", c.Request().Method),
		slog.String("path", c.Request().RequestURI),
	)

	return c.JSON(http.StatusNotFound, response.ErrAPIRouteNotFound(c.Request().RequestURI))
}

// HTTPErrorHandler renders errors that escaped the handlers. Unknown /api
// routes (including a known path with an unsupported method) get the API
// not-found body; anything that is not an echo.HTTPError is a 500.
func (r *Routers) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		r.log.Error("unhandled error",
			slog.String("path", c.Request().RequestURI),
			sl.Err(err),
		)
		r.writeError(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	isAPI := strings.HasPrefix(c.Request().URL.Path, "/api/") || c.Request().URL.Path == "/api"
	if isAPI && (he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed) {
		if err := r.APINotFound(c); err != nil {
			r.log.Error("failed to write response", sl.Err(err))
		}
		return
	}

	if he.Code >= http.StatusInternalServerError {
		if he.Internal != nil {
			r.log.Error("internal error", sl.Err(he.Internal))
		}
		r.writeError(c, he.Code, response.ErrInternal)
		return
	}

	msg, ok := he.Message.(string)
	if !ok {
		msg = http.StatusText(he.Code)
	}
	r.writeError(c, he.Code, response.Error(msg))
}

func (r *Routers) writeError(c echo.Context, code int, body response.ErrorResponse) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		r.log.Error("failed to write error response", sl.Err(err))
	}
}
