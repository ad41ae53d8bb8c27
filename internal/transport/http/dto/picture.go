package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"virtual_gallery/internal/domain/models"
)

type CreatePictureRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Artist      string   `json:"artist" validate:"required,max=255"`
	ImageURL    string   `json:"imageUrl" validate:"required"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Style       *string  `json:"style,omitempty" validate:"omitempty,max=255"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0,lt=100000000"`
	Size        *string  `json:"size,omitempty" validate:"omitempty,max=255"`
}

// UpdatePictureRequest is a partial update: absent fields are left as they are.
// Optional fields sent as an explicit null are listed in Cleared.
type UpdatePictureRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,max=255"`
	Artist      *string  `json:"artist,omitempty" validate:"omitempty,max=255"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty"`
	Style       *string  `json:"style,omitempty" validate:"omitempty,max=255"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0,lt=100000000"`
	Size        *string  `json:"size,omitempty" validate:"omitempty,max=255"`

	Cleared []string `json:"-"`
}

// nullablePictureFields are the optional keys a PUT may reset to null.
var nullablePictureFields = []string{"year", "description", "style", "price", "size"}

func (r *UpdatePictureRequest) UnmarshalJSON(data []byte) error {
	type plain UpdatePictureRequest

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Cleared = nil
	for _, key := range nullablePictureFields {
		if v, ok := raw[key]; ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			p.Cleared = append(p.Cleared, key)
		}
	}

	*r = UpdatePictureRequest(p)
	return nil
}

// PictureArtist is the artist summary nested into picture listings.
type PictureArtist struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Nationality *string `json:"nationality"`
}

// PictureArtistDetail is the artist nested into a single picture.
type PictureArtistDetail struct {
	PictureArtist
	Bio *string `json:"bio"`
}

type PictureFields struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	ArtistID    *int64    `json:"artistId"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Style       *string   `json:"style"`
	Price       *float64  `json:"price"`
	Size        *string   `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PictureResponse struct {
	PictureFields
	ArtistRef *PictureArtist `json:"Artist"`
}

type PictureDetailResponse struct {
	PictureFields
	ArtistRef *PictureArtistDetail `json:"Artist"`
}

type DeletePictureResponse struct {
	Message        string          `json:"message"`
	DeletedPicture PictureResponse `json:"deletedPicture"`
}

func NewPictureFields(p models.Picture) PictureFields {
	return PictureFields{
		ID:          p.ID,
		Title:       p.Title,
		Artist:      p.Artist,
		ArtistID:    p.ArtistID,
		Year:        p.Year,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Style:       p.Style,
		Price:       p.Price,
		Size:        p.Size,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewPictureResponse(p models.Picture) PictureResponse {
	resp := PictureResponse{PictureFields: NewPictureFields(p)}
	if p.ArtistRef != nil {
		resp.ArtistRef = &PictureArtist{
			ID:          p.ArtistRef.ID,
			Name:        p.ArtistRef.Name,
			Nationality: p.ArtistRef.Nationality,
		}
	}
	return resp
}

func NewPictureDetailResponse(p models.Picture) PictureDetailResponse {
	resp := PictureDetailResponse{PictureFields: NewPictureFields(p)}
	if p.ArtistRef != nil {
		resp.ArtistRef = &PictureArtistDetail{
			PictureArtist: PictureArtist{
				ID:          p.ArtistRef.ID,
				Name:        p.ArtistRef.Name,
				Nationality: p.ArtistRef.Nationality,
			},
			Bio: p.ArtistRef.Bio,
		}
	}
	return resp
}

func NewPictureResponses(pictures []models.Picture) []PictureResponse {
	out := make([]PictureResponse, 0, len(pictures))
	for _, p := range pictures {
		out = append(out, NewPictureResponse(p))
	}
	return out
}
