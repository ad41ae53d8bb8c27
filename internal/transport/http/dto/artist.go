package dto

import (
	"time"

	"virtual_gallery/internal/domain/models"
)

type CreateArtistRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Bio         *string `json:"bio,omitempty"`
	BirthDate   *Date   `json:"birthDate,omitempty" swaggertype:"string" format:"date"`
	DeathDate   *Date   `json:"deathDate,omitempty" swaggertype:"string" format:"date"`
	Nationality *string `json:"nationality,omitempty" validate:"omitempty,max=255"`
}

type UpdateArtistRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Bio         *string `json:"bio,omitempty"`
	BirthDate   *Date   `json:"birthDate,omitempty" swaggertype:"string" format:"date"`
	DeathDate   *Date   `json:"deathDate,omitempty" swaggertype:"string" format:"date"`
	Nationality *string `json:"nationality,omitempty" validate:"omitempty,max=255"`
}

type ArtistResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Bio         *string    `json:"bio"`
	BirthDate   *time.Time `json:"birthDate"`
	DeathDate   *time.Time `json:"deathDate"`
	Nationality *string    `json:"nationality"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ArtistPicture is the picture summary nested into artist responses.
type ArtistPicture struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Year     *int     `json:"year"`
	ImageURL string   `json:"imageUrl"`
	Style    *string  `json:"style"`
	Price    *float64 `json:"price"`
}

type ArtistWithPicturesResponse struct {
	ArtistResponse
	Pictures []ArtistPicture `json:"Pictures"`
}

type DeleteArtistResponse struct {
	Message       string         `json:"message"`
	DeletedArtist ArtistResponse `json:"deletedArtist"`
}

func NewArtistResponse(a models.Artist) ArtistResponse {
	return ArtistResponse{
		ID:          a.ID,
		Name:        a.Name,
		Bio:         a.Bio,
		BirthDate:   a.BirthDate,
		DeathDate:   a.DeathDate,
		Nationality: a.Nationality,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func NewArtistWithPicturesResponse(a models.Artist) ArtistWithPicturesResponse {
	pictures := make([]ArtistPicture, 0, len(a.Pictures))
	for _, p := range a.Pictures {
		pictures = append(pictures, ArtistPicture{
			ID:       p.ID,
			Title:    p.Title,
			Year:     p.Year,
			ImageURL: p.ImageURL,
			Style:    p.Style,
			Price:    p.Price,
		})
	}

	return ArtistWithPicturesResponse{
		ArtistResponse: NewArtistResponse(a),
		Pictures:       pictures,
	}
}
