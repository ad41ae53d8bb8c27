package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"virtual_gallery/internal/domain/models"
	"virtual_gallery/internal/lib/logger/sl"
	"virtual_gallery/internal/repository"
	"virtual_gallery/internal/storage"
	"virtual_gallery/internal/transport/http/dto"
	"virtual_gallery/internal/transport/http/dto/response"
)

// ArtistResolver finds or creates the artist for a free-text name.
type ArtistResolver interface {
	ResolveArtist(ctx context.Context, name string) (int64, error)
}

type PictureService struct {
	log     *slog.Logger
	repo    repository.PictureRepository
	artists ArtistResolver
}

func NewPictureService(log *slog.Logger, repo repository.PictureRepository, artists ArtistResolver) *PictureService {
	return &PictureService{log: log, repo: repo, artists: artists}
}

// CreatePicture links the picture to the artist named in req.Artist, creating
// that artist first if needed, and returns the stored picture with its artist.
func (s *PictureService) CreatePicture(ctx context.Context, req dto.CreatePictureRequest) (*dto.PictureResponse, error) {
	const op = "picture_service.CreatePicture"
	log := s.log.With(
		slog.String("op", op),
		slog.String("artist", req.Artist),
	)

	log.Info("creating picture", slog.String("title", req.Title))

	artistID, err := s.artists.ResolveArtist(ctx, req.Artist)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreatePicture(ctx, models.Picture{
		Title:       req.Title,
		Artist:      req.Artist,
		ArtistID:    &artistID,
		Year:        req.Year,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Style:       req.Style,
		Price:       req.Price,
		Size:        req.Size,
	})
	if err != nil {
		log.Error("failed to create picture", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	picture, err := s.repo.GetPictureByID(ctx, id)
	if err != nil {
		log.Error("failed to load created picture", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("picture created", slog.Int64("picture_id", id), slog.Int64("artist_id", artistID))

	resp := dto.NewPictureResponse(picture)
	return &resp, nil
}

func (s *PictureService) GetPictures(ctx context.Context) ([]dto.PictureResponse, error) {
	const op = "picture_service.GetPictures"

	pictures, err := s.repo.GetPictures(ctx)
	if err != nil {
		s.log.Error("failed to list pictures", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return dto.NewPictureResponses(pictures), nil
}

func (s *PictureService) GetPicture(ctx context.Context, pictureID int64) (*dto.PictureDetailResponse, error) {
	const op = "picture_service.GetPicture"

	picture, err := s.repo.GetPictureByID(ctx, pictureID)
	if err != nil {
		if !errors.Is(err, storage.ErrPictureNotFound) {
			s.log.Error("failed to get picture", slog.String("op", op), sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := dto.NewPictureDetailResponse(picture)
	return &resp, nil
}

func (s *PictureService) GetPicturesByArtist(ctx context.Context, artistID int64) ([]dto.PictureResponse, error) {
	const op = "picture_service.GetPicturesByArtist"

	pictures, err := s.repo.GetPicturesByArtist(ctx, artistID)
	if err != nil {
		s.log.Error("failed to list artist pictures",
			slog.String("op", op),
			slog.Int64("artist_id", artistID),
			sl.Err(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return dto.NewPictureResponses(pictures), nil
}

// UpdatePicture applies a partial update. Empty strings for the required text
// fields are ignored, optional fields sent as null are reset to NULL. When the artist text changes, the artist is resolved
// again and both artist and artist_id are rewritten.
func (s *PictureService) UpdatePicture(ctx context.Context, pictureID int64, req dto.UpdatePictureRequest) (*dto.PictureResponse, error) {
	const op = "picture_service.UpdatePicture"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("picture_id", pictureID),
	)

	existing, err := s.repo.GetPictureByID(ctx, pictureID)
	if err != nil {
		if !errors.Is(err, storage.ErrPictureNotFound) {
			log.Error("failed to get picture", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{})

	if req.Title != nil && *req.Title != "" {
		updates["title"] = *req.Title
	}
	if req.ImageURL != nil && *req.ImageURL != "" {
		updates["image_url"] = *req.ImageURL
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Style != nil {
		updates["style"] = *req.Style
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Size != nil {
		updates["size"] = *req.Size
	}
	for _, field := range req.Cleared {
		updates[field] = nil
	}

	if req.Artist != nil && *req.Artist != "" && *req.Artist != existing.Artist {
		artistID, err := s.artists.ResolveArtist(ctx, *req.Artist)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		log.Info("picture artist changed",
			slog.String("from", existing.Artist),
			slog.String("to", *req.Artist),
			slog.Int64("artist_id", artistID),
		)

		updates["artist"] = *req.Artist
		updates["artist_id"] = artistID
	}

	if len(updates) > 0 {
		if err := s.repo.UpdatePictureFields(ctx, pictureID, updates); err != nil {
			if !errors.Is(err, storage.ErrPictureNotFound) {
				log.Error("failed to update picture", sl.Err(err))
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	updated, err := s.repo.GetPictureByID(ctx, pictureID)
	if err != nil {
		log.Error("failed to load updated picture", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := dto.NewPictureResponse(updated)
	return &resp, nil
}

func (s *PictureService) DeletePicture(ctx context.Context, pictureID int64) (*dto.DeletePictureResponse, error) {
	const op = "picture_service.DeletePicture"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("picture_id", pictureID),
	)

	// RETURNING on delete carries no artist join
	picture, err := s.repo.GetPictureByID(ctx, pictureID)
	if err != nil {
		if !errors.Is(err, storage.ErrPictureNotFound) {
			log.Error("failed to get picture", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.repo.DeletePicture(ctx, pictureID); err != nil {
		if !errors.Is(err, storage.ErrPictureNotFound) {
			log.Error("failed to delete picture", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("picture deleted", slog.String("title", picture.Title))

	return &dto.DeletePictureResponse{
		Message:        response.MsgPictureDeleted,
		DeletedPicture: dto.NewPictureResponse(picture),
	}, nil
}
