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

type ArtistRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewArtistRepository(db *pgxpool.Pool) *ArtistRepo {
	return &ArtistRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ArtistRepo) CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error) {
	const op = "repository.artist_repository.CreateArtist"

	query, args, err := r.sb.Insert(schema.Artists.Table).
		Columns(
			schema.Artists.Name,
			schema.Artists.Bio,
			schema.Artists.BirthDate,
			schema.Artists.DeathDate,
			schema.Artists.Nationality,
		).
		Values(
			artist.Name,
			artist.Bio,
			artist.BirthDate,
			artist.DeathDate,
			artist.Nationality,
		).
		Suffix("RETURNING " + strings.Join(schema.Artists.Columns(), ", ")).
		ToSql()
	if err != nil {
		return models.Artist{}, fmt.Errorf("%s: %w", op, err)
	}

	var created models.Artist
	err = r.db.QueryRow(ctx, query, args...).Scan(artistDest(&created)...)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return models.Artist{}, fmt.Errorf("%s: %w", op, storage.ErrArtistExists)
		}
		return models.Artist{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// UpsertArtistByName relies on the UNIQUE constraint on artists.name, so two
// requests introducing the same new name end up with one row. The no-op
// DO UPDATE makes RETURNING yield the id of an existing row too; xmax = 0 only
// for a freshly inserted tuple.
func (r *ArtistRepo) UpsertArtistByName(ctx context.Context, name string) (int64, bool, error) {
	const op = "repository.artist_repository.UpsertArtistByName"

	query, args, err := r.sb.Insert(schema.Artists.Table).
		Columns(schema.Artists.Name).
		Values(name).
		Suffix(fmt.Sprintf(
			"ON CONFLICT (%[1]s) DO UPDATE SET %[1]s = EXCLUDED.%[1]s RETURNING %[2]s, (xmax = 0) AS inserted",
			schema.Artists.Name, schema.Artists.ID,
		)).
		ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}

	var (
		id       int64
		inserted bool
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id, &inserted); err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}

	return id, inserted, nil
}

func (r *ArtistRepo) GetArtistByName(ctx context.Context, name string) (models.Artist, error) {
	const op = "repository.artist_repository.GetArtistByName"

	query, args, err := r.sb.Select(schema.Artists.Columns()...).
		From(schema.Artists.Table).
		Where(sq.Eq{schema.Artists.Name: name}).
		ToSql()
	if err != nil {
		return models.Artist{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var artist models.Artist
	err = r.db.QueryRow(ctx, query, args...).Scan(artistDest(&artist)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Artist{}, fmt.Errorf("%s: %w", op, storage.ErrArtistNotFound)
		}
		return models.Artist{}, fmt.Errorf("%s: %w", op, err)
	}

	return artist, nil
}

// GetArtistByID loads the artist with its pictures, newest year first.
func (r *ArtistRepo) GetArtistByID(ctx context.Context, artistID int64) (models.Artist, error) {
	const op = "repository.artist_repository.GetArtistByID"

	query, args, err := r.withPictures().
		Where(sq.Eq{schema.Artists.Col(schema.Artists.ID): artistID}).
		OrderBy(
			schema.Pictures.Col(schema.Pictures.Year)+" DESC",
			schema.Pictures.Col(schema.Pictures.ID),
		).
		ToSql()
	if err != nil {
		return models.Artist{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	artists, err := r.queryWithPictures(ctx, query, args)
	if err != nil {
		return models.Artist{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(artists) == 0 {
		return models.Artist{}, fmt.Errorf("%s: %w", op, storage.ErrArtistNotFound)
	}

	return artists[0], nil
}

// GetArtists returns every artist ordered by name, each with its pictures.
func (r *ArtistRepo) GetArtists(ctx context.Context) ([]models.Artist, error) {
	const op = "repository.artist_repository.GetArtists"

	query, args, err := r.withPictures().
		OrderBy(
			schema.Artists.Col(schema.Artists.Name)+" ASC",
			schema.Artists.Col(schema.Artists.ID),
			schema.Pictures.Col(schema.Pictures.ID),
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	artists, err := r.queryWithPictures(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return artists, nil
}

func (r *ArtistRepo) UpdateArtistFields(ctx context.Context, artistID int64, updates map[string]interface{}) (models.Artist, error) {
	const op = "repository.artist_repository.UpdateArtistFields"

	allowedFields := map[string]bool{
		schema.Artists.Name:        true,
		schema.Artists.Bio:         true,
		schema.Artists.BirthDate:   true,
		schema.Artists.DeathDate:   true,
		schema.Artists.Nationality: true,
	}

	updateBuilder := r.sb.Update(schema.Artists.Table).
		Set(schema.Artists.UpdatedAt, sq.Expr("NOW()"))

	for field, value := range updates {
		if !allowedFields[field] {
			return models.Artist{}, fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}

		updateBuilder = updateBuilder.Set(field, value)
	}

	query, args, err := updateBuilder.
		Where(sq.Eq{schema.Artists.ID: artistID}).
		Suffix("RETURNING " + strings.Join(schema.Artists.Columns(), ", ")).
		ToSql()
	if err != nil {
		return models.Artist{}, fmt.Errorf("%s: %w", op, err)
	}

	var artist models.Artist
	err = r.db.QueryRow(ctx, query, args...).Scan(artistDest(&artist)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Artist{}, fmt.Errorf("%s: %w", op, storage.ErrArtistNotFound)
		}
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return models.Artist{}, fmt.Errorf("%s: %w", op, storage.ErrArtistExists)
		}
		return models.Artist{}, fmt.Errorf("%s: %w", op, err)
	}

	return artist, nil
}

// DeleteArtist removes the artist row. Its pictures stay, with artist_id set to NULL by the FK.
func (r *ArtistRepo) DeleteArtist(ctx context.Context, artistID int64) (models.Artist, error) {
	const op = "repository.artist_repository.DeleteArtist"

	query, args, err := r.sb.Delete(schema.Artists.Table).
		Where(sq.Eq{schema.Artists.ID: artistID}).
		Suffix("RETURNING " + strings.Join(schema.Artists.Columns(), ", ")).
		ToSql()
	if err != nil {
		return models.Artist{}, fmt.Errorf("%s: %w", op, err)
	}

	var artist models.Artist
	err = r.db.QueryRow(ctx, query, args...).Scan(artistDest(&artist)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Artist{}, fmt.Errorf("%s: %w", op, storage.ErrArtistNotFound)
		}
		return models.Artist{}, fmt.Errorf("%s: %w", op, err)
	}

	return artist, nil
}

func (r *ArtistRepo) withPictures() sq.SelectBuilder {
	columns := append(qualified(schema.Artists), qualified(schema.Pictures)...)

	return r.sb.Select(columns...).
		From(schema.Artists.Table).
		LeftJoin(schema.JoinOn(schema.ArtistPictures))
}

// queryWithPictures folds joined artist/picture rows into artists, keeping row order.
func (r *ArtistRepo) queryWithPictures(ctx context.Context, query string, args []interface{}) ([]models.Artist, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artists := make([]models.Artist, 0)
	index := make(map[int64]int)

	for rows.Next() {
		var (
			artist  models.Artist
			picture nullPicture
		)

		dest := append(artistDest(&artist), picture.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		i, ok := index[artist.ID]
		if !ok {
			artist.Pictures = []models.Picture{}
			artists = append(artists, artist)
			i = len(artists) - 1
			index[artist.ID] = i
		}

		if p, ok := picture.picture(); ok {
			artists[i].Pictures = append(artists[i].Pictures, p)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return artists, nil
}
