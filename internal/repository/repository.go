package repository

import (
	"errors"
	"time"

	"virtual_gallery/internal/domain/models"
	"virtual_gallery/internal/schema"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type Repository struct {
	Artists     ArtistRepository
	Pictures    PictureRepository
	Exhibitions ExhibitionRepository
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{
		Artists:     NewArtistRepository(db),
		Pictures:    NewPictureRepository(db),
		Exhibitions: NewExhibitionRepository(db),
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func qualified(e schema.Entity) []string {
	cols := e.Columns()
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, schema.Qualify(e.TableName(), c))
	}
	return out
}

func pgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// Column order follows schema.Artists.Columns().
func artistDest(a *models.Artist) []interface{} {
	return []interface{}{
		&a.ID, &a.Name, &a.Bio, &a.BirthDate, &a.DeathDate, &a.Nationality, &a.CreatedAt, &a.UpdatedAt,
	}
}

// Column order follows schema.Pictures.Columns().
func pictureDest(p *models.Picture) []interface{} {
	return []interface{}{
		&p.ID, &p.Title, &p.Artist, &p.ArtistID, &p.Year, &p.Description,
		&p.ImageURL, &p.Style, &p.Price, &p.Size, &p.CreatedAt, &p.UpdatedAt,
	}
}

// Column order follows schema.Exhibitions.Columns().
func exhibitionDest(e *models.Exhibition) []interface{} {
	return []interface{}{
		&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.Location, &e.CreatedAt, &e.UpdatedAt,
	}
}

// nullArtist receives the artist side of a LEFT JOIN.
type nullArtist struct {
	ID          *int64
	Name        *string
	Bio         *string
	BirthDate   *time.Time
	DeathDate   *time.Time
	Nationality *string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

func (n *nullArtist) dest() []interface{} {
	return []interface{}{
		&n.ID, &n.Name, &n.Bio, &n.BirthDate, &n.DeathDate, &n.Nationality, &n.CreatedAt, &n.UpdatedAt,
	}
}

func (n *nullArtist) artist() *models.Artist {
	if n.ID == nil {
		return nil
	}

	a := &models.Artist{
		ID:          *n.ID,
		Bio:         n.Bio,
		BirthDate:   n.BirthDate,
		DeathDate:   n.DeathDate,
		Nationality: n.Nationality,
	}
	if n.Name != nil {
		a.Name = *n.Name
	}
	if n.CreatedAt != nil {
		a.CreatedAt = *n.CreatedAt
	}
	if n.UpdatedAt != nil {
		a.UpdatedAt = *n.UpdatedAt
	}
	return a
}

// nullPicture receives the picture side of a LEFT JOIN.
type nullPicture struct {
	ID          *int64
	Title       *string
	Artist      *string
	ArtistID    *int64
	Year        *int
	Description *string
	ImageURL    *string
	Style       *string
	Price       *float64
	Size        *string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

func (n *nullPicture) dest() []interface{} {
	return []interface{}{
		&n.ID, &n.Title, &n.Artist, &n.ArtistID, &n.Year, &n.Description,
		&n.ImageURL, &n.Style, &n.Price, &n.Size, &n.CreatedAt, &n.UpdatedAt,
	}
}

func (n *nullPicture) picture() (models.Picture, bool) {
	if n.ID == nil {
		return models.Picture{}, false
	}

	p := models.Picture{
		ID:          *n.ID,
		ArtistID:    n.ArtistID,
		Year:        n.Year,
		Description: n.Description,
		Style:       n.Style,
		Price:       n.Price,
		Size:        n.Size,
	}
	if n.Title != nil {
		p.Title = *n.Title
	}
	if n.Artist != nil {
		p.Artist = *n.Artist
	}
	if n.ImageURL != nil {
		p.ImageURL = *n.ImageURL
	}
	if n.CreatedAt != nil {
		p.CreatedAt = *n.CreatedAt
	}
	if n.UpdatedAt != nil {
		p.UpdatedAt = *n.UpdatedAt
	}
	return p, true
}
