package models

import "time"

// Picture keeps the artist name as free text next to ArtistID. The two are
// aligned on create/update but renaming an Artist does not rewrite Artist here.
type Picture struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Artist      string    `db:"artist" json:"artist"`
	ArtistID    *int64    `db:"artist_id" json:"artistId"`
	Year        *int      `db:"year" json:"year"`
	Description *string   `db:"description" json:"description"`
	ImageURL    string    `db:"image_url" json:"imageUrl"`
	Style       *string   `db:"style" json:"style"`
	Price       *float64  `db:"price" json:"price"`
	Size        *string   `db:"size" json:"size"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	// ArtistRef is filled when the picture was loaded together with its artist.
	ArtistRef *Artist `json:"-"`
}
