package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"virtual_gallery/internal/domain/models"
	"virtual_gallery/internal/repository"
	"virtual_gallery/internal/storage"
	"virtual_gallery/internal/storage/postgresql"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testCtx = context.Background()
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	}

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	st, err := postgresql.New(ctx, connStr, postgresql.PoolOptions{MaxConns: 10})
	require.NoError(t, err)

	// Применяем миграции
	require.NoError(t, st.Migrate(ctx))

	t.Cleanup(func() {
		st.Stop()
		_ = pgContainer.Terminate(ctx)
	})

	return st.Pool()
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func mustCreatePicture(t *testing.T, repo *repository.Repository, title, artist string, year *int) models.Picture {
	t.Helper()

	artistID, _, err := repo.Artists.UpsertArtistByName(testCtx, artist)
	require.NoError(t, err)

	id, err := repo.Pictures.CreatePicture(testCtx, models.Picture{
		Title:    title,
		Artist:   artist,
		ArtistID: &artistID,
		Year:     year,
		ImageURL: gofakeit.URL(),
	})
	require.NoError(t, err)

	picture, err := repo.Pictures.GetPictureByID(testCtx, id)
	require.NoError(t, err)
	return picture
}

func TestArtistRepo_UpsertArtistByName(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewArtistRepository(db)

	name := gofakeit.Name()

	firstID, created, err := repo.UpsertArtistByName(testCtx, name)
	require.NoError(t, err)
	assert.True(t, created)

	secondID, created, err := repo.UpsertArtistByName(testCtx, name)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, firstID, secondID)

	t.Run("case sensitive", func(t *testing.T) {
		otherID, created, err := repo.UpsertArtistByName(testCtx, "x"+name)
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEqual(t, firstID, otherID)
	})

	t.Run("concurrent first creation yields one row", func(t *testing.T) {
		fresh := gofakeit.UUID()

		const workers = 8
		ids := make([]int64, workers)
		errs := make([]error, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ids[i], _, errs[i] = repo.UpsertArtistByName(testCtx, fresh)
			}(i)
		}
		wg.Wait()

		for i := 0; i < workers; i++ {
			require.NoError(t, errs[i])
			assert.Equal(t, ids[0], ids[i])
		}

		var count int
		err := db.QueryRow(testCtx, "SELECT COUNT(*) FROM artists WHERE name = $1", fresh).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestArtistRepo_CreateUpdateDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.New(db)

	born := time.Date(1853, 3, 30, 0, 0, 0, 0, time.UTC)
	artist, err := repo.Artists.CreateArtist(testCtx, models.Artist{
		Name:        "Винсент Ван Гог",
		BirthDate:   &born,
		Nationality: strPtr("Нидерланды"),
	})
	require.NoError(t, err)
	require.NotZero(t, artist.ID)
	require.NotNil(t, artist.BirthDate)
	assert.True(t, born.Equal(*artist.BirthDate))

	_, err = repo.Artists.CreateArtist(testCtx, models.Artist{Name: "Винсент Ван Гог"})
	require.ErrorIs(t, err, storage.ErrArtistExists)

	picture := mustCreatePicture(t, repo, "Звёздная ночь", artist.Name, intPtr(1889))
	require.NotNil(t, picture.ArtistID)
	assert.Equal(t, artist.ID, *picture.ArtistID)

	t.Run("rename keeps picture text", func(t *testing.T) {
		updated, err := repo.Artists.UpdateArtistFields(testCtx, artist.ID, map[string]interface{}{
			"name": "Ван Гог",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ван Гог", updated.Name)

		got, err := repo.Pictures.GetPictureByID(testCtx, picture.ID)
		require.NoError(t, err)
		assert.Equal(t, "Винсент Ван Гог", got.Artist)
		require.NotNil(t, got.ArtistRef)
		assert.Equal(t, "Ван Гог", got.ArtistRef.Name)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := repo.Artists.UpdateArtistFields(testCtx, artist.ID, map[string]interface{}{"id": 1})
		require.Error(t, err)
	})

	t.Run("update missing artist", func(t *testing.T) {
		_, err := repo.Artists.UpdateArtistFields(testCtx, artist.ID+1000, map[string]interface{}{"bio": "x"})
		require.ErrorIs(t, err, storage.ErrArtistNotFound)
	})

	t.Run("delete unlinks pictures", func(t *testing.T) {
		deleted, err := repo.Artists.DeleteArtist(testCtx, artist.ID)
		require.NoError(t, err)
		assert.Equal(t, artist.ID, deleted.ID)

		got, err := repo.Pictures.GetPictureByID(testCtx, picture.ID)
		require.NoError(t, err)
		assert.Nil(t, got.ArtistID)
		assert.Nil(t, got.ArtistRef)
		assert.Equal(t, "Винсент Ван Гог", got.Artist)

		_, err = repo.Artists.DeleteArtist(testCtx, artist.ID)
		require.ErrorIs(t, err, storage.ErrArtistNotFound)
	})
}

func TestArtistRepo_GetWithPictures(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.New(db)

	mustCreatePicture(t, repo, "Early", "Пикассо", intPtr(1901))
	mustCreatePicture(t, repo, "Late", "Пикассо", intPtr(1937))
	mustCreatePicture(t, repo, "Mona Lisa", "Леонардо да Винчи", intPtr(1503))
	_, _, err := repo.Artists.UpsertArtistByName(testCtx, "Аноним")
	require.NoError(t, err)

	artists, err := repo.Artists.GetArtists(testCtx)
	require.NoError(t, err)
	require.Len(t, artists, 3)

	// Сортировка по имени
	assert.Equal(t, "Аноним", artists[0].Name)
	assert.Empty(t, artists[0].Pictures)
	assert.Equal(t, "Леонардо да Винчи", artists[1].Name)
	assert.Len(t, artists[1].Pictures, 1)
	assert.Equal(t, "Пикассо", artists[2].Name)
	assert.Len(t, artists[2].Pictures, 2)

	picasso, err := repo.Artists.GetArtistByID(testCtx, artists[2].ID)
	require.NoError(t, err)
	require.Len(t, picasso.Pictures, 2)
	assert.Equal(t, "Late", picasso.Pictures[0].Title)
	assert.Equal(t, "Early", picasso.Pictures[1].Title)

	byArtist, err := repo.Pictures.GetPicturesByArtist(testCtx, picasso.ID)
	require.NoError(t, err)
	require.Len(t, byArtist, 2)
	assert.Equal(t, 1937, *byArtist[0].Year)
	require.NotNil(t, byArtist[0].ArtistRef)
	assert.Equal(t, "Пикассо", byArtist[0].ArtistRef.Name)

	_, err = repo.Artists.GetArtistByID(testCtx, picasso.ID+1000)
	require.ErrorIs(t, err, storage.ErrArtistNotFound)

	_, err = repo.Artists.GetArtistByName(testCtx, "пикассо")
	require.ErrorIs(t, err, storage.ErrArtistNotFound)
}

func TestPictureRepo_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.New(db)

	first := mustCreatePicture(t, repo, "First", gofakeit.Name(), nil)
	second := mustCreatePicture(t, repo, "Second", gofakeit.Name(), intPtr(2000))

	t.Run("list newest first", func(t *testing.T) {
		pictures, err := repo.Pictures.GetPictures(testCtx)
		require.NoError(t, err)
		require.Len(t, pictures, 2)
		assert.Equal(t, second.ID, pictures[0].ID)
		assert.Equal(t, first.ID, pictures[1].ID)
	})

	t.Run("price keeps two decimals", func(t *testing.T) {
		err := repo.Pictures.UpdatePictureFields(testCtx, first.ID, map[string]interface{}{
			"price": 1500.5,
			"style": "Импрессионизм",
		})
		require.NoError(t, err)

		got, err := repo.Pictures.GetPictureByID(testCtx, first.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Price)
		assert.InDelta(t, 1500.5, *got.Price, 0.001)
		assert.Equal(t, "Импрессионизм", *got.Style)
		assert.True(t, !got.UpdatedAt.Before(first.UpdatedAt))
	})

	t.Run("update missing picture", func(t *testing.T) {
		err := repo.Pictures.UpdatePictureFields(testCtx, second.ID+1000, map[string]interface{}{"title": "x"})
		require.ErrorIs(t, err, storage.ErrPictureNotFound)
	})

	t.Run("count and delete", func(t *testing.T) {
		count, err := repo.Pictures.CountPictures(testCtx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		deleted, err := repo.Pictures.DeletePicture(testCtx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "First", deleted.Title)

		_, err = repo.Pictures.GetPictureByID(testCtx, first.ID)
		require.ErrorIs(t, err, storage.ErrPictureNotFound)

		_, err = repo.Pictures.DeletePicture(testCtx, first.ID)
		require.ErrorIs(t, err, storage.ErrPictureNotFound)
	})
}

func TestExhibitionRepo_Pictures(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.New(db)

	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	exhibition, err := repo.Exhibitions.CreateExhibition(testCtx, models.Exhibition{
		Title:     "Импрессионисты",
		StartDate: start,
		EndDate:   start.AddDate(0, 2, 0),
		Location:  strPtr("Зал 1"),
	})
	require.NoError(t, err)

	earlier, err := repo.Exhibitions.CreateExhibition(testCtx, models.Exhibition{
		Title:     "Ранняя",
		StartDate: start.AddDate(-1, 0, 0),
		EndDate:   start.AddDate(-1, 1, 0),
	})
	require.NoError(t, err)

	a := mustCreatePicture(t, repo, "A", "Моне", nil)
	b := mustCreatePicture(t, repo, "B", "Моне", nil)
	c := mustCreatePicture(t, repo, "C", "Ренуар", nil)

	_, err = repo.Exhibitions.AddPicture(testCtx, exhibition.ID, a.ID, nil)
	require.NoError(t, err)
	_, err = repo.Exhibitions.AddPicture(testCtx, exhibition.ID, b.ID, intPtr(2))
	require.NoError(t, err)
	link, err := repo.Exhibitions.AddPicture(testCtx, exhibition.ID, c.ID, intPtr(1))
	require.NoError(t, err)
	assert.Equal(t, c.ID, link.PictureID)

	_, err = repo.Exhibitions.AddPicture(testCtx, earlier.ID, a.ID, nil)
	require.NoError(t, err)

	t.Run("ordered by display order, nulls last", func(t *testing.T) {
		pictures, err := repo.Exhibitions.GetExhibitionPictures(testCtx, exhibition.ID)
		require.NoError(t, err)
		require.Len(t, pictures, 3)
		assert.Equal(t, c.ID, pictures[0].ID)
		assert.Equal(t, b.ID, pictures[1].ID)
		assert.Equal(t, a.ID, pictures[2].ID)
		assert.Nil(t, pictures[2].DisplayOrder)
		require.NotNil(t, pictures[0].ArtistRef)
		assert.Equal(t, "Ренуар", pictures[0].ArtistRef.Name)
	})

	t.Run("exhibitions of a picture", func(t *testing.T) {
		exhibitions, err := repo.Exhibitions.GetExhibitionsByPicture(testCtx, a.ID)
		require.NoError(t, err)
		require.Len(t, exhibitions, 2)
		assert.Equal(t, earlier.ID, exhibitions[0].ID)
		assert.Equal(t, exhibition.ID, exhibitions[1].ID)
	})

	t.Run("unknown parents", func(t *testing.T) {
		_, err := repo.Exhibitions.AddPicture(testCtx, exhibition.ID+1000, a.ID, nil)
		require.ErrorIs(t, err, storage.ErrExhibitionNotFound)

		_, err = repo.Exhibitions.AddPicture(testCtx, exhibition.ID, c.ID+1000, nil)
		require.ErrorIs(t, err, storage.ErrPictureNotFound)
	})

	t.Run("remove link", func(t *testing.T) {
		require.NoError(t, repo.Exhibitions.RemovePicture(testCtx, exhibition.ID, b.ID))
		err := repo.Exhibitions.RemovePicture(testCtx, exhibition.ID, b.ID)
		require.ErrorIs(t, err, storage.ErrExhibitionPictureNotFound)
	})

	t.Run("picture delete cascades to links", func(t *testing.T) {
		_, err := repo.Pictures.DeletePicture(testCtx, c.ID)
		require.NoError(t, err)

		pictures, err := repo.Exhibitions.GetExhibitionPictures(testCtx, exhibition.ID)
		require.NoError(t, err)
		require.Len(t, pictures, 1)
		assert.Equal(t, a.ID, pictures[0].ID)
	})

	t.Run("list by start date and delete", func(t *testing.T) {
		exhibitions, err := repo.Exhibitions.GetExhibitions(testCtx)
		require.NoError(t, err)
		require.Len(t, exhibitions, 2)
		assert.Equal(t, earlier.ID, exhibitions[0].ID)

		deleted, err := repo.Exhibitions.DeleteExhibition(testCtx, exhibition.ID)
		require.NoError(t, err)
		assert.Equal(t, "Импрессионисты", deleted.Title)

		var links int
		err = db.QueryRow(testCtx,
			"SELECT COUNT(*) FROM exhibition_pictures WHERE exhibition_id = $1",
			exhibition.ID).Scan(&links)
		require.NoError(t, err)
		assert.Zero(t, links)

		_, err = repo.Exhibitions.GetExhibitionByID(testCtx, exhibition.ID)
		require.ErrorIs(t, err, storage.ErrExhibitionNotFound)
	})
}
