package models

import "time"

type Exhibition struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	StartDate   time.Time `db:"start_date" json:"startDate"`
	EndDate     time.Time `db:"end_date" json:"endDate"`
	Location    *string   `db:"location" json:"location"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ExhibitionPicture links a picture to an exhibition (many-to-many join row).
type ExhibitionPicture struct {
	ID           int64     `db:"id" json:"id"`
	ExhibitionID int64     `db:"exhibition_id" json:"exhibitionId"`
	PictureID    int64     `db:"picture_id" json:"pictureId"`
	DisplayOrder *int      `db:"display_order" json:"displayOrder"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// ExhibitedPicture is a picture as shown in a particular exhibition.
type ExhibitedPicture struct {
	Picture
	DisplayOrder *int
}
