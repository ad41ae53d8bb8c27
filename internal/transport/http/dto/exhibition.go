package dto

import (
	"time"

	"virtual_gallery/internal/domain/models"
)

type CreateExhibitionRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
	StartDate   *Date   `json:"startDate" validate:"required" swaggertype:"string" format:"date"`
	EndDate     *Date   `json:"endDate" validate:"required" swaggertype:"string" format:"date"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=255"`
}

type AddExhibitionPictureRequest struct {
	PictureID    int64 `json:"pictureId" validate:"required,gt=0"`
	DisplayOrder *int  `json:"displayOrder,omitempty"`
}

type ExhibitionResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Location    *string   `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ExhibitedPictureResponse struct {
	PictureResponse
	DisplayOrder *int `json:"displayOrder"`
}

type ExhibitionDetailResponse struct {
	ExhibitionResponse
	Pictures []ExhibitedPictureResponse `json:"Pictures"`
}

type ExhibitionPictureResponse struct {
	ID           int64     `json:"id"`
	ExhibitionID int64     `json:"exhibitionId"`
	PictureID    int64     `json:"pictureId"`
	DisplayOrder *int      `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type DeleteExhibitionResponse struct {
	Message           string             `json:"message"`
	DeletedExhibition ExhibitionResponse `json:"deletedExhibition"`
}

func NewExhibitionResponse(e models.Exhibition) ExhibitionResponse {
	return ExhibitionResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Location:    e.Location,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func NewExhibitionResponses(exhibitions []models.Exhibition) []ExhibitionResponse {
	out := make([]ExhibitionResponse, 0, len(exhibitions))
	for _, e := range exhibitions {
		out = append(out, NewExhibitionResponse(e))
	}
	return out
}

func NewExhibitionDetailResponse(e models.Exhibition, pictures []models.ExhibitedPicture) ExhibitionDetailResponse {
	items := make([]ExhibitedPictureResponse, 0, len(pictures))
	for _, p := range pictures {
		items = append(items, ExhibitedPictureResponse{
			PictureResponse: NewPictureResponse(p.Picture),
			DisplayOrder:    p.DisplayOrder,
		})
	}

	return ExhibitionDetailResponse{
		ExhibitionResponse: NewExhibitionResponse(e),
		Pictures:           items,
	}
}

func NewExhibitionPictureResponse(link models.ExhibitionPicture) ExhibitionPictureResponse {
	return ExhibitionPictureResponse{
		ID:           link.ID,
		ExhibitionID: link.ExhibitionID,
		PictureID:    link.PictureID,
		DisplayOrder: link.DisplayOrder,
		CreatedAt:    link.CreatedAt,
		UpdatedAt:    link.UpdatedAt,
	}
}
