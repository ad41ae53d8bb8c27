package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"virtual_gallery/internal/domain/models"
	"virtual_gallery/internal/lib/logger/sl"
	"virtual_gallery/internal/metrics"
	"virtual_gallery/internal/repository"
	"virtual_gallery/internal/storage"
	"virtual_gallery/internal/transport/http/dto"
	"virtual_gallery/internal/transport/http/dto/response"
)

type ArtistService struct {
	log  *slog.Logger
	repo repository.ArtistRepository
}

func NewArtistService(log *slog.Logger, repo repository.ArtistRepository) *ArtistService {
	return &ArtistService{log: log, repo: repo}
}

// ResolveArtist returns the id of the artist named exactly name, creating a
// name-only artist when none exists. Matching is case-sensitive and the name
// is used as given.
func (s *ArtistService) ResolveArtist(ctx context.Context, name string) (int64, error) {
	const op = "artist_service.ResolveArtist"
	log := s.log.With(
		slog.String("op", op),
		slog.String("artist", name),
	)

	artist, err := s.repo.GetArtistByName(ctx, name)
	if err == nil {
		return artist.ID, nil
	}
	if !errors.Is(err, storage.ErrArtistNotFound) {
		log.Error("failed to look up artist", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, created, err := s.repo.UpsertArtistByName(ctx, name)
	if err != nil {
		log.Error("failed to create artist", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if created {
		metrics.ArtistsAutoCreated.Inc()
		log.Info("artist created from picture", slog.Int64("artist_id", id))
	}

	return id, nil
}

func (s *ArtistService) CreateArtist(ctx context.Context, req dto.CreateArtistRequest) (*dto.ArtistResponse, error) {
	const op = "artist_service.CreateArtist"
	log := s.log.With(slog.String("op", op))

	log.Info("creating artist", slog.String("name", req.Name))

	artist, err := s.repo.CreateArtist(ctx, models.Artist{
		Name:        req.Name,
		Bio:         req.Bio,
		BirthDate:   req.BirthDate.TimePtr(),
		DeathDate:   req.DeathDate.TimePtr(),
		Nationality: req.Nationality,
	})
	if err != nil {
		if errors.Is(err, storage.ErrArtistExists) {
			log.Warn("artist already exists")
		} else {
			log.Error("failed to create artist", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := dto.NewArtistResponse(artist)
	return &resp, nil
}

func (s *ArtistService) GetArtists(ctx context.Context) ([]dto.ArtistWithPicturesResponse, error) {
	const op = "artist_service.GetArtists"

	artists, err := s.repo.GetArtists(ctx)
	if err != nil {
		s.log.Error("failed to list artists", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.ArtistWithPicturesResponse, 0, len(artists))
	for _, a := range artists {
		out = append(out, dto.NewArtistWithPicturesResponse(a))
	}

	return out, nil
}

func (s *ArtistService) GetArtist(ctx context.Context, artistID int64) (*dto.ArtistWithPicturesResponse, error) {
	const op = "artist_service.GetArtist"

	artist, err := s.repo.GetArtistByID(ctx, artistID)
	if err != nil {
		if !errors.Is(err, storage.ErrArtistNotFound) {
			s.log.Error("failed to get artist", slog.String("op", op), sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := dto.NewArtistWithPicturesResponse(artist)
	return &resp, nil
}

// UpdateArtist applies a partial update. Pictures keep their stored artist text
// after a rename.
func (s *ArtistService) UpdateArtist(ctx context.Context, artistID int64, req dto.UpdateArtistRequest) (*dto.ArtistResponse, error) {
	const op = "artist_service.UpdateArtist"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("artist_id", artistID),
	)

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.BirthDate != nil {
		updates["birth_date"] = req.BirthDate.Time
	}
	if req.DeathDate != nil {
		updates["death_date"] = req.DeathDate.Time
	}
	if req.Nationality != nil {
		updates["nationality"] = *req.Nationality
	}

	artist, err := s.repo.UpdateArtistFields(ctx, artistID, updates)
	if err != nil {
		if !errors.Is(err, storage.ErrArtistNotFound) && !errors.Is(err, storage.ErrArtistExists) {
			log.Error("failed to update artist", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("artist updated")

	resp := dto.NewArtistResponse(artist)
	return &resp, nil
}

func (s *ArtistService) DeleteArtist(ctx context.Context, artistID int64) (*dto.DeleteArtistResponse, error) {
	const op = "artist_service.DeleteArtist"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("artist_id", artistID),
	)

	artist, err := s.repo.DeleteArtist(ctx, artistID)
	if err != nil {
		if !errors.Is(err, storage.ErrArtistNotFound) {
			log.Error("failed to delete artist", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("artist deleted", slog.String("name", artist.Name))

	return &dto.DeleteArtistResponse{
		Message:       response.MsgArtistDeleted,
		DeletedArtist: dto.NewArtistResponse(artist),
	}, nil
}
