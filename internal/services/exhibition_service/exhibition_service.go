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

type ExhibitionService struct {
	log      *slog.Logger
	repo     repository.ExhibitionRepository
	pictures repository.PictureRepository
}

func NewExhibitionService(log *slog.Logger, repo repository.ExhibitionRepository, pictures repository.PictureRepository) *ExhibitionService {
	return &ExhibitionService{log: log, repo: repo, pictures: pictures}
}

// CreateExhibition stores the exhibition as given; end before start is accepted.
func (s *ExhibitionService) CreateExhibition(ctx context.Context, req dto.CreateExhibitionRequest) (*dto.ExhibitionResponse, error) {
	const op = "exhibition_service.CreateExhibition"
	log := s.log.With(slog.String("op", op))

	if req.StartDate == nil || req.EndDate == nil {
		return nil, fmt.Errorf("%s: start and end dates are required", op)
	}

	exhibition, err := s.repo.CreateExhibition(ctx, models.Exhibition{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
		Location:    req.Location,
	})
	if err != nil {
		log.Error("failed to create exhibition", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("exhibition created", slog.Int64("exhibition_id", exhibition.ID))

	resp := dto.NewExhibitionResponse(exhibition)
	return &resp, nil
}

func (s *ExhibitionService) GetExhibitions(ctx context.Context) ([]dto.ExhibitionResponse, error) {
	const op = "exhibition_service.GetExhibitions"

	exhibitions, err := s.repo.GetExhibitions(ctx)
	if err != nil {
		s.log.Error("failed to list exhibitions", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return dto.NewExhibitionResponses(exhibitions), nil
}

func (s *ExhibitionService) GetExhibition(ctx context.Context, exhibitionID int64) (*dto.ExhibitionDetailResponse, error) {
	const op = "exhibition_service.GetExhibition"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("exhibition_id", exhibitionID),
	)

	exhibition, err := s.repo.GetExhibitionByID(ctx, exhibitionID)
	if err != nil {
		if !errors.Is(err, storage.ErrExhibitionNotFound) {
			log.Error("failed to get exhibition", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pictures, err := s.repo.GetExhibitionPictures(ctx, exhibitionID)
	if err != nil {
		log.Error("failed to get exhibition pictures", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := dto.NewExhibitionDetailResponse(exhibition, pictures)
	return &resp, nil
}

func (s *ExhibitionService) DeleteExhibition(ctx context.Context, exhibitionID int64) (*dto.DeleteExhibitionResponse, error) {
	const op = "exhibition_service.DeleteExhibition"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("exhibition_id", exhibitionID),
	)

	exhibition, err := s.repo.DeleteExhibition(ctx, exhibitionID)
	if err != nil {
		if !errors.Is(err, storage.ErrExhibitionNotFound) {
			log.Error("failed to delete exhibition", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("exhibition deleted")

	return &dto.DeleteExhibitionResponse{
		Message:           response.MsgExhibitionDeleted,
		DeletedExhibition: dto.NewExhibitionResponse(exhibition),
	}, nil
}

func (s *ExhibitionService) AddPicture(ctx context.Context, exhibitionID int64, req dto.AddExhibitionPictureRequest) (*dto.ExhibitionPictureResponse, error) {
	const op = "exhibition_service.AddPicture"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("exhibition_id", exhibitionID),
		slog.Int64("picture_id", req.PictureID),
	)

	link, err := s.repo.AddPicture(ctx, exhibitionID, req.PictureID, req.DisplayOrder)
	if err != nil {
		if !errors.Is(err, storage.ErrExhibitionNotFound) && !errors.Is(err, storage.ErrPictureNotFound) {
			log.Error("failed to add picture to exhibition", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("picture added to exhibition")

	resp := dto.NewExhibitionPictureResponse(link)
	return &resp, nil
}

func (s *ExhibitionService) RemovePicture(ctx context.Context, exhibitionID, pictureID int64) error {
	const op = "exhibition_service.RemovePicture"

	if err := s.repo.RemovePicture(ctx, exhibitionID, pictureID); err != nil {
		if !errors.Is(err, storage.ErrExhibitionPictureNotFound) {
			s.log.Error("failed to remove picture from exhibition", slog.String("op", op), sl.Err(err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetPictureExhibitions lists exhibitions showing the picture. An unknown
// picture is reported as not found rather than as an empty list.
func (s *ExhibitionService) GetPictureExhibitions(ctx context.Context, pictureID int64) ([]dto.ExhibitionResponse, error) {
	const op = "exhibition_service.GetPictureExhibitions"

	if _, err := s.pictures.GetPictureByID(ctx, pictureID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exhibitions, err := s.repo.GetExhibitionsByPicture(ctx, pictureID)
	if err != nil {
		s.log.Error("failed to list picture exhibitions", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return dto.NewExhibitionResponses(exhibitions), nil
}
