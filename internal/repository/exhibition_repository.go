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

// Postgres default names for the exhibition_pictures foreign keys.
const (
	fkExhibitionPicturesExhibition = "exhibition_pictures_exhibition_id_fkey"
	fkExhibitionPicturesPicture    = "exhibition_pictures_picture_id_fkey"
)

type ExhibitionRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewExhibitionRepository(db *pgxpool.Pool) *ExhibitionRepo {
	return &ExhibitionRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ExhibitionRepo) CreateExhibition(ctx context.Context, exhibition models.Exhibition) (models.Exhibition, error) {
	const op = "repository.exhibition_repository.CreateExhibition"

	query, args, err := r.sb.Insert(schema.Exhibitions.Table).
		Columns(
			schema.Exhibitions.Title,
			schema.Exhibitions.Description,
			schema.Exhibitions.StartDate,
			schema.Exhibitions.EndDate,
			schema.Exhibitions.Location,
		).
		Values(
			exhibition.Title,
			exhibition.Description,
			exhibition.StartDate,
			exhibition.EndDate,
			exhibition.Location,
		).
		Suffix("RETURNING " + strings.Join(schema.Exhibitions.Columns(), ", ")).
		ToSql()
	if err != nil {
		return models.Exhibition{}, fmt.Errorf("%s: %w", op, err)
	}

	var created models.Exhibition
	if err := r.db.QueryRow(ctx, query, args...).Scan(exhibitionDest(&created)...); err != nil {
		return models.Exhibition{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *ExhibitionRepo) GetExhibitionByID(ctx context.Context, exhibitionID int64) (models.Exhibition, error) {
	const op = "repository.exhibition_repository.GetExhibitionByID"

	query, args, err := r.sb.Select(schema.Exhibitions.Columns()...).
		From(schema.Exhibitions.Table).
		Where(sq.Eq{schema.Exhibitions.ID: exhibitionID}).
		ToSql()
	if err != nil {
		return models.Exhibition{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var exhibition models.Exhibition
	err = r.db.QueryRow(ctx, query, args...).Scan(exhibitionDest(&exhibition)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Exhibition{}, fmt.Errorf("%s: %w", op, storage.ErrExhibitionNotFound)
		}
		return models.Exhibition{}, fmt.Errorf("%s: %w", op, err)
	}

	return exhibition, nil
}

func (r *ExhibitionRepo) GetExhibitions(ctx context.Context) ([]models.Exhibition, error) {
	const op = "repository.exhibition_repository.GetExhibitions"

	query, args, err := r.sb.Select(schema.Exhibitions.Columns()...).
		From(schema.Exhibitions.Table).
		OrderBy(schema.Exhibitions.StartDate+" ASC", schema.Exhibitions.ID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	exhibitions, err := r.queryExhibitions(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return exhibitions, nil
}

// GetExhibitionPictures walks Exhibition.Pictures through the join table.
// Links without a display order come last, ties keep insertion order.
func (r *ExhibitionRepo) GetExhibitionPictures(ctx context.Context, exhibitionID int64) ([]models.ExhibitedPicture, error) {
	const op = "repository.exhibition_repository.GetExhibitionPictures"

	through, target := schema.JoinThrough(schema.ExhibitionPicturesList)
	displayOrder := schema.ExhibitionPictures.Col(schema.ExhibitionPictures.DisplayOrder)

	query, args, err := selectPicturesWithArtist(r.sb, displayOrder).
		From(schema.Exhibitions.Table).
		Join(through).
		Join(target).
		LeftJoin(schema.JoinOn(schema.PictureArtist)).
		Where(sq.Eq{schema.Exhibitions.Col(schema.Exhibitions.ID): exhibitionID}).
		OrderBy(
			displayOrder+" ASC NULLS LAST",
			schema.ExhibitionPictures.Col(schema.ExhibitionPictures.ID)+" ASC",
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	pictures := make([]models.ExhibitedPicture, 0)
	for rows.Next() {
		var order *int

		picture, err := scanPictureWithArtist(rows, &order)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		pictures = append(pictures, models.ExhibitedPicture{Picture: picture, DisplayOrder: order})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pictures, nil
}

// GetExhibitionsByPicture walks Picture.Exhibitions, ordered by start date.
func (r *ExhibitionRepo) GetExhibitionsByPicture(ctx context.Context, pictureID int64) ([]models.Exhibition, error) {
	const op = "repository.exhibition_repository.GetExhibitionsByPicture"

	through, target := schema.JoinThrough(schema.PictureExhibitions)

	query, args, err := r.sb.Select(qualified(schema.Exhibitions)...).
		Distinct().
		From(schema.Pictures.Table).
		Join(through).
		Join(target).
		Where(sq.Eq{schema.Pictures.Col(schema.Pictures.ID): pictureID}).
		OrderBy(
			schema.Exhibitions.Col(schema.Exhibitions.StartDate)+" ASC",
			schema.Exhibitions.Col(schema.Exhibitions.ID),
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	exhibitions, err := r.queryExhibitions(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return exhibitions, nil
}

// DeleteExhibition removes the exhibition; its picture links cascade.
func (r *ExhibitionRepo) DeleteExhibition(ctx context.Context, exhibitionID int64) (models.Exhibition, error) {
	const op = "repository.exhibition_repository.DeleteExhibition"

	query, args, err := r.sb.Delete(schema.Exhibitions.Table).
		Where(sq.Eq{schema.Exhibitions.ID: exhibitionID}).
		Suffix("RETURNING " + strings.Join(schema.Exhibitions.Columns(), ", ")).
		ToSql()
	if err != nil {
		return models.Exhibition{}, fmt.Errorf("%s: %w", op, err)
	}

	var exhibition models.Exhibition
	err = r.db.QueryRow(ctx, query, args...).Scan(exhibitionDest(&exhibition)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Exhibition{}, fmt.Errorf("%s: %w", op, storage.ErrExhibitionNotFound)
		}
		return models.Exhibition{}, fmt.Errorf("%s: %w", op, err)
	}

	return exhibition, nil
}

// AddPicture links a picture to an exhibition. The same picture may be linked
// more than once; display orders are not required to be unique.
func (r *ExhibitionRepo) AddPicture(ctx context.Context, exhibitionID, pictureID int64, displayOrder *int) (models.ExhibitionPicture, error) {
	const op = "repository.exhibition_repository.AddPicture"

	query, args, err := r.sb.Insert(schema.ExhibitionPictures.Table).
		Columns(
			schema.ExhibitionPictures.ExhibitionID,
			schema.ExhibitionPictures.PictureID,
			schema.ExhibitionPictures.DisplayOrder,
		).
		Values(exhibitionID, pictureID, displayOrder).
		Suffix("RETURNING " + strings.Join(schema.ExhibitionPictures.Columns(), ", ")).
		ToSql()
	if err != nil {
		return models.ExhibitionPicture{}, fmt.Errorf("%s: %w", op, err)
	}

	var link models.ExhibitionPicture
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&link.ID,
		&link.ExhibitionID,
		&link.PictureID,
		&link.DisplayOrder,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgForeignKeyViolation {
			switch constraint {
			case fkExhibitionPicturesExhibition:
				return models.ExhibitionPicture{}, fmt.Errorf("%s: %w", op, storage.ErrExhibitionNotFound)
			case fkExhibitionPicturesPicture:
				return models.ExhibitionPicture{}, fmt.Errorf("%s: %w", op, storage.ErrPictureNotFound)
			}
		}
		return models.ExhibitionPicture{}, fmt.Errorf("%s: %w", op, err)
	}

	return link, nil
}

// RemovePicture drops every link between the exhibition and the picture.
func (r *ExhibitionRepo) RemovePicture(ctx context.Context, exhibitionID, pictureID int64) error {
	const op = "repository.exhibition_repository.RemovePicture"

	query, args, err := r.sb.Delete(schema.ExhibitionPictures.Table).
		Where(sq.Eq{
			schema.ExhibitionPictures.ExhibitionID: exhibitionID,
			schema.ExhibitionPictures.PictureID:    pictureID,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrExhibitionPictureNotFound)
	}

	return nil
}

func (r *ExhibitionRepo) queryExhibitions(ctx context.Context, query string, args []interface{}) ([]models.Exhibition, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exhibitions := make([]models.Exhibition, 0)
	for rows.Next() {
		var exhibition models.Exhibition
		if err := rows.Scan(exhibitionDest(&exhibition)...); err != nil {
			return nil, err
		}
		exhibitions = append(exhibitions, exhibition)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exhibitions, nil
}
