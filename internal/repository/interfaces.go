package repository

import (
	"context"

	"virtual_gallery/internal/domain/models"
)

type ArtistRepository interface {
	CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error)
	// UpsertArtistByName returns the id of the artist with exactly this name,
	// inserting a name-only row when there is none.
	UpsertArtistByName(ctx context.Context, name string) (id int64, created bool, err error)
	GetArtistByName(ctx context.Context, name string) (models.Artist, error)
	GetArtistByID(ctx context.Context, artistID int64) (models.Artist, error)
	GetArtists(ctx context.Context) ([]models.Artist, error)
	UpdateArtistFields(ctx context.Context, artistID int64, updates map[string]interface{}) (models.Artist, error)
	DeleteArtist(ctx context.Context, artistID int64) (models.Artist, error)
}

type PictureRepository interface {
	CreatePicture(ctx context.Context, picture models.Picture) (int64, error)
	GetPictureByID(ctx context.Context, pictureID int64) (models.Picture, error)
	GetPictures(ctx context.Context) ([]models.Picture, error)
	GetPicturesByArtist(ctx context.Context, artistID int64) ([]models.Picture, error)
	UpdatePictureFields(ctx context.Context, pictureID int64, updates map[string]interface{}) error
	DeletePicture(ctx context.Context, pictureID int64) (models.Picture, error)
	CountPictures(ctx context.Context) (int, error)
}

type ExhibitionRepository interface {
	CreateExhibition(ctx context.Context, exhibition models.Exhibition) (models.Exhibition, error)
	GetExhibitionByID(ctx context.Context, exhibitionID int64) (models.Exhibition, error)
	GetExhibitions(ctx context.Context) ([]models.Exhibition, error)
	GetExhibitionPictures(ctx context.Context, exhibitionID int64) ([]models.ExhibitedPicture, error)
	GetExhibitionsByPicture(ctx context.Context, pictureID int64) ([]models.Exhibition, error)
	DeleteExhibition(ctx context.Context, exhibitionID int64) (models.Exhibition, error)
	AddPicture(ctx context.Context, exhibitionID, pictureID int64, displayOrder *int) (models.ExhibitionPicture, error)
	RemovePicture(ctx context.Context, exhibitionID, pictureID int64) error
}
