package models

import "time"

// Artist is a painter known to the gallery. Only Name is required; rows created
// while reconciling a picture's free-text artist carry nothing else.
type Artist struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Bio         *string    `db:"bio" json:"bio"`
	BirthDate   *time.Time `db:"birth_date" json:"birthDate"`
	DeathDate   *time.Time `db:"death_date" json:"deathDate"`
	Nationality *string    `db:"nationality" json:"nationality"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
	Pictures    []Picture  `json:"pictures,omitempty"`
}
