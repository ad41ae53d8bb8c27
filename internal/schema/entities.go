// Package schema holds the static description of the gallery tables and the
// relationships between them. Repositories build their column lists and joins
// from here instead of repeating table and column names.
package schema

import "github.com/lib/pq"

// Entity is a table known to the association layer.
type Entity interface {
	TableName() string
	PrimaryKey() string
	Columns() []string
}

type ArtistTable struct {
	Table       string
	ID          string
	Name        string
	Bio         string
	BirthDate   string
	DeathDate   string
	Nationality string
	CreatedAt   string
	UpdatedAt   string
}

var Artists = ArtistTable{
	Table:       "artists",
	ID:          "id",
	Name:        "name",
	Bio:         "bio",
	BirthDate:   "birth_date",
	DeathDate:   "death_date",
	Nationality: "nationality",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t ArtistTable) TableName() string  { return t.Table }
func (t ArtistTable) PrimaryKey() string { return t.ID }
func (t ArtistTable) Col(name string) string {
	return Qualify(t.Table, name)
}

func (t ArtistTable) Columns() []string {
	return []string{t.ID, t.Name, t.Bio, t.BirthDate, t.DeathDate, t.Nationality, t.CreatedAt, t.UpdatedAt}
}

type PictureTable struct {
	Table       string
	ID          string
	Title       string
	Artist      string
	ArtistID    string
	Year        string
	Description string
	ImageURL    string
	Style       string
	Price       string
	Size        string
	CreatedAt   string
	UpdatedAt   string
}

var Pictures = PictureTable{
	Table:       "pictures",
	ID:          "id",
	Title:       "title",
	Artist:      "artist",
	ArtistID:    "artist_id",
	Year:        "year",
	Description: "description",
	ImageURL:    "image_url",
	Style:       "style",
	Price:       "price",
	Size:        "size",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t PictureTable) TableName() string  { return t.Table }
func (t PictureTable) PrimaryKey() string { return t.ID }
func (t PictureTable) Col(name string) string {
	return Qualify(t.Table, name)
}

func (t PictureTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Artist, t.ArtistID, t.Year, t.Description,
		t.ImageURL, t.Style, t.Price, t.Size, t.CreatedAt, t.UpdatedAt,
	}
}

type ExhibitionTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	StartDate   string
	EndDate     string
	Location    string
	CreatedAt   string
	UpdatedAt   string
}

var Exhibitions = ExhibitionTable{
	Table:       "exhibitions",
	ID:          "id",
	Title:       "title",
	Description: "description",
	StartDate:   "start_date",
	EndDate:     "end_date",
	Location:    "location",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t ExhibitionTable) TableName() string  { return t.Table }
func (t ExhibitionTable) PrimaryKey() string { return t.ID }
func (t ExhibitionTable) Col(name string) string {
	return Qualify(t.Table, name)
}

func (t ExhibitionTable) Columns() []string {
	return []string{t.ID, t.Title, t.Description, t.StartDate, t.EndDate, t.Location, t.CreatedAt, t.UpdatedAt}
}

type ExhibitionPictureTable struct {
	Table        string
	ID           string
	ExhibitionID string
	PictureID    string
	DisplayOrder string
	CreatedAt    string
	UpdatedAt    string
}

var ExhibitionPictures = ExhibitionPictureTable{
	Table:        "exhibition_pictures",
	ID:           "id",
	ExhibitionID: "exhibition_id",
	PictureID:    "picture_id",
	DisplayOrder: "display_order",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

func (t ExhibitionPictureTable) TableName() string  { return t.Table }
func (t ExhibitionPictureTable) PrimaryKey() string { return t.ID }
func (t ExhibitionPictureTable) Col(name string) string {
	return Qualify(t.Table, name)
}

func (t ExhibitionPictureTable) Columns() []string {
	return []string{t.ID, t.ExhibitionID, t.PictureID, t.DisplayOrder, t.CreatedAt, t.UpdatedAt}
}

// Entities lists every table the service owns.
var Entities = []Entity{
	Artists,
	Pictures,
	Exhibitions,
	ExhibitionPictures,
}

// Qualify renders "table"."column" with both identifiers quoted.
func Qualify(table, column string) string {
	return pq.QuoteIdentifier(table) + "." + pq.QuoteIdentifier(column)
}
