package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"virtual_gallery/internal/domain/models"
	"virtual_gallery/internal/lib/logger/sl"
	"virtual_gallery/internal/metrics"
	"virtual_gallery/internal/repository"
	"virtual_gallery/internal/storage"
)

type SeedService struct {
	log      *slog.Logger
	artists  repository.ArtistRepository
	pictures repository.PictureRepository
}

func NewSeedService(log *slog.Logger, artists repository.ArtistRepository, pictures repository.PictureRepository) *SeedService {
	return &SeedService{log: log, artists: artists, pictures: pictures}
}

type seedPicture struct {
	picture    models.Picture
	artistName string
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func ptr[T any](v T) *T { return &v }

var seedArtists = []models.Artist{
	{
		Name:        "Винсент Ван Гог",
		Bio:         ptr("Нидерландский художник-постимпрессионист"),
		BirthDate:   date(1853, time.March, 30),
		DeathDate:   date(1890, time.July, 29),
		Nationality: ptr("Голландец"),
	},
	{
		Name:        "Леонардо да Винчи",
		Bio:         ptr("Итальянский художник, ученый, изобретатель"),
		BirthDate:   date(1452, time.April, 15),
		DeathDate:   date(1519, time.May, 2),
		Nationality: ptr("Итальянец"),
	},
	{
		Name:        "Пабло Пикассо",
		Bio:         ptr("Испанский художник, основоположник кубизма"),
		BirthDate:   date(1881, time.October, 25),
		DeathDate:   date(1973, time.April, 8),
		Nationality: ptr("Испанец"),
	},
}

var seedPictures = []seedPicture{
	{
		artistName: "Винсент Ван Гог",
		picture: models.Picture{
			Title:       "Звездная ночь",
			Year:        ptr(1889),
			Description: ptr("Одна из самых известных картин Ван Гога"),
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/e/ea/Van_Gogh_-_Starry_Night_-_Google_Art_Project.jpg/800px-Van_Gogh_-_Starry_Night_-_Google_Art_Project.jpg",
			Style:       ptr("Постимпрессионизм"),
			Price:       ptr(1000000.00),
			Size:        ptr("73.7 × 92.1 см"),
		},
	},
	{
		artistName: "Леонардо да Винчи",
		picture: models.Picture{
			Title:       "Мона Лиза",
			Year:        ptr(1503),
			Description: ptr("Портрет Лизы дель Джокондо"),
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/e/ec/Mona_Lisa%2C_by_Leonardo_da_Vinci%2C_from_C2RMF_retouched.jpg/800px-Mona_Lisa%2C_by_Leonardo_da_Vinci%2C_from_C2RMF_retouched.jpg",
			Style:       ptr("Ренессанс"),
			Price:       ptr(8600000.00),
			Size:        ptr("77 × 53 см"),
		},
	},
	{
		artistName: "Пабло Пикассо",
		picture: models.Picture{
			Title:       "Авиньонские девицы",
			Year:        ptr(1907),
			Description: ptr("Картина, положившая начало кубизму"),
			ImageURL:    "https://upload.wikimedia.org/wikipedia/en/thumb/4/4c/Les_Demoiselles_d%27Avignon.jpg/800px-Les_Demoiselles_d%27Avignon.jpg",
			Style:       ptr("Кубизм"),
			Price:       ptr(1200000.00),
			Size:        ptr("243.9 × 233.7 см"),
		},
	},
}

// Seed fills an empty gallery with a few well-known artists and pictures.
// It does nothing when at least one picture exists.
func (s *SeedService) Seed(ctx context.Context) error {
	const op = "seed_service.Seed"
	log := s.log.With(slog.String("op", op))

	count, err := s.pictures.CountPictures(ctx)
	if err != nil {
		metrics.SeedRuns.WithLabelValues("failed").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}

	if count > 0 {
		log.Info("gallery already has pictures, skipping seed", slog.Int("pictures", count))
		metrics.SeedRuns.WithLabelValues("skipped").Inc()
		return nil
	}

	artistIDs := make(map[string]int64, len(seedArtists))
	for _, a := range seedArtists {
		id, err := s.ensureArtist(ctx, a)
		if err != nil {
			metrics.SeedRuns.WithLabelValues("failed").Inc()
			return fmt.Errorf("%s: %w", op, err)
		}
		artistIDs[a.Name] = id
	}

	for _, sp := range seedPictures {
		artistID := artistIDs[sp.artistName]

		p := sp.picture
		p.Artist = sp.artistName
		p.ArtistID = &artistID

		if _, err := s.pictures.CreatePicture(ctx, p); err != nil {
			metrics.SeedRuns.WithLabelValues("failed").Inc()
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	metrics.SeedRuns.WithLabelValues("seeded").Inc()
	log.Info("initial data seeded",
		slog.Int("artists", len(seedArtists)),
		slog.Int("pictures", len(seedPictures)),
	)

	return nil
}

// SeedAndLog runs Seed and only logs a failure; startup continues either way.
func (s *SeedService) SeedAndLog(ctx context.Context) {
	if err := s.Seed(ctx); err != nil {
		s.log.Error("failed to seed initial data", sl.Err(err))
	}
}

// ensureArtist reuses an artist that an earlier picture-less run or a user already created.
func (s *SeedService) ensureArtist(ctx context.Context, a models.Artist) (int64, error) {
	created, err := s.artists.CreateArtist(ctx, a)
	if err == nil {
		return created.ID, nil
	}
	if !errors.Is(err, storage.ErrArtistExists) {
		return 0, err
	}

	existing, err := s.artists.GetArtistByName(ctx, a.Name)
	if err != nil {
		return 0, err
	}

	return existing.ID, nil
}
