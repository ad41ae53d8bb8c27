package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"virtual_gallery/internal/domain/models"
	"virtual_gallery/internal/schema"
	"virtual_gallery/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PictureRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPictureRepository(db *pgxpool.Pool) *PictureRepo {
	return &PictureRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PictureRepo) CreatePicture(ctx context.Context, picture models.Picture) (int64, error) {
	const op = "repository.picture_repository.CreatePicture"

	query, args, err := r.sb.Insert(schema.Pictures.Table).
		Columns(
			schema.Pictures.Title,
			schema.Pictures.Artist,
			schema.Pictures.ArtistID,
			schema.Pictures.Year,
			schema.Pictures.Description,
			schema.Pictures.ImageURL,
			schema.Pictures.Style,
			schema.Pictures.Price,
			schema.Pictures.Size,
		).
		Values(
			picture.Title,
			picture.Artist,
			picture.ArtistID,
			picture.Year,
			picture.Description,
			picture.ImageURL,
			picture.Style,
			picture.Price,
			picture.Size,
		).
		Suffix("RETURNING " + schema.Pictures.ID).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetPictureByID loads the picture with its linked artist, if any.
func (r *PictureRepo) GetPictureByID(ctx context.Context, pictureID int64) (models.Picture, error) {
	const op = "repository.picture_repository.GetPictureByID"

	query, args, err := r.withArtist().
		Where(sq.Eq{schema.Pictures.Col(schema.Pictures.ID): pictureID}).
		ToSql()
	if err != nil {
		return models.Picture{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	picture, err := scanPictureWithArtist(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Picture{}, fmt.Errorf("%s: %w", op, storage.ErrPictureNotFound)
		}
		return models.Picture{}, fmt.Errorf("%s: %w", op, err)
	}

	return picture, nil
}

// GetPictures lists all pictures, most recently created first.
func (r *PictureRepo) GetPictures(ctx context.Context) ([]models.Picture, error) {
	const op = "repository.picture_repository.GetPictures"

	query, args, err := r.withArtist().
		OrderBy(
			schema.Pictures.Col(schema.Pictures.CreatedAt)+" DESC",
			schema.Pictures.Col(schema.Pictures.ID)+" DESC",
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	pictures, err := r.queryPictures(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pictures, nil
}

// GetPicturesByArtist matches on artist_id only; pictures whose link was
// cleared by an artist delete are not returned even if the text name matches.
func (r *PictureRepo) GetPicturesByArtist(ctx context.Context, artistID int64) ([]models.Picture, error) {
	const op = "repository.picture_repository.GetPicturesByArtist"

	query, args, err := r.withArtist().
		Where(sq.Eq{schema.Pictures.Col(schema.Pictures.ArtistID): artistID}).
		OrderBy(
			schema.Pictures.Col(schema.Pictures.Year)+" DESC",
			schema.Pictures.Col(schema.Pictures.ID),
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	pictures, err := r.queryPictures(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pictures, nil
}

func (r *PictureRepo) UpdatePictureFields(ctx context.Context, pictureID int64, updates map[string]interface{}) error {
	const op = "repository.picture_repository.UpdatePictureFields"

	allowedFields := map[string]bool{
		schema.Pictures.Title:       true,
		schema.Pictures.Artist:      true,
		schema.Pictures.ArtistID:    true,
		schema.Pictures.Year:        true,
		schema.Pictures.Description: true,
		schema.Pictures.ImageURL:    true,
		schema.Pictures.Style:       true,
		schema.Pictures.Price:       true,
		schema.Pictures.Size:        true,
	}

	if len(updates) == 0 {
		return fmt.Errorf("%s: no fields to update", op)
	}

	updateBuilder := r.sb.Update(schema.Pictures.Table).
		Set(schema.Pictures.UpdatedAt, sq.Expr("NOW()"))

	for field, value := range updates {
		if !allowedFields[field] {
			return fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}

		updateBuilder = updateBuilder.Set(field, value)
	}

	query, args, err := updateBuilder.
		Where(sq.Eq{schema.Pictures.ID: pictureID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPictureNotFound)
	}

	return nil
}

// DeletePicture removes the picture and returns the deleted row. Exhibition
// links go with it through ON DELETE CASCADE.
func (r *PictureRepo) DeletePicture(ctx context.Context, pictureID int64) (models.Picture, error) {
	const op = "repository.picture_repository.DeletePicture"

	query, args, err := r.sb.Delete(schema.Pictures.Table).
		Where(sq.Eq{schema.Pictures.ID: pictureID}).
		Suffix("RETURNING " + strings.Join(schema.Pictures.Columns(), ", ")).
		ToSql()
	if err != nil {
		return models.Picture{}, fmt.Errorf("%s: %w", op, err)
	}

	var picture models.Picture
	err = r.db.QueryRow(ctx, query, args...).Scan(pictureDest(&picture)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Picture{}, fmt.Errorf("%s: %w", op, storage.ErrPictureNotFound)
		}
		return models.Picture{}, fmt.Errorf("%s: %w", op, err)
	}

	return picture, nil
}

func (r *PictureRepo) CountPictures(ctx context.Context) (int, error) {
	const op = "repository.picture_repository.CountPictures"

	query, args, err := r.sb.Select("COUNT(*)").From(schema.Pictures.Table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

func (r *PictureRepo) withArtist() sq.SelectBuilder {
	return selectPicturesWithArtist(r.sb).
		From(schema.Pictures.Table).
		LeftJoin(schema.JoinOn(schema.PictureArtist))
}

func (r *PictureRepo) queryPictures(ctx context.Context, query string, args []interface{}) ([]models.Picture, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pictures := make([]models.Picture, 0)
	for rows.Next() {
		picture, err := scanPictureWithArtist(rows)
		if err != nil {
			return nil, err
		}
		pictures = append(pictures, picture)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pictures, nil
}

// selectPicturesWithArtist selects picture columns followed by the artist
// columns of the Picture.Artist relation. The caller picks FROM and joins the
// artist table via schema.PictureArtist.
func selectPicturesWithArtist(sb sq.StatementBuilderType, extra ...string) sq.SelectBuilder {
	columns := append(qualified(schema.Pictures), qualified(schema.Artists)...)
	columns = append(columns, extra...)

	return sb.Select(columns...)
}

func scanPictureWithArtist(row scanner, extra ...interface{}) (models.Picture, error) {
	var (
		picture models.Picture
		artist  nullArtist
	)

	dest := append(pictureDest(&picture), artist.dest()...)
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.Picture{}, err
	}

	picture.ArtistRef = artist.artist()
	return picture, nil
}
