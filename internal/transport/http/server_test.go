package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapp "virtual_gallery/internal/app/http"
	"virtual_gallery/internal/lib/logger/handlers/slogdiscard"
	"virtual_gallery/internal/repository"
	artists "virtual_gallery/internal/services/artist_service"
	exhibitions "virtual_gallery/internal/services/exhibition_service"
	pictures "virtual_gallery/internal/services/picture_service"
	"virtual_gallery/internal/storage/postgresql"
	httprouters "virtual_gallery/internal/transport/http"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testCtx = context.Background()
)

type IntegrationTestSuite struct {
	suite.Suite
	storage *postgresql.Storage
	server  *httptest.Server
	client  *http.Client
}

func (s *IntegrationTestSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("needs docker")
	}

	log := slogdiscard.NewDiscardLogger()

	s.storage = setupTestDB(s.T())

	repo := repository.New(s.storage.Pool())

	artistService := artists.NewArtistService(log, repo.Artists)
	pictureService := pictures.NewPictureService(log, repo.Pictures, artistService)
	exhibitionService := exhibitions.NewExhibitionService(log, repo.Exhibitions, repo.Pictures)

	routers := httprouters.NewRouter(log, pictureService, artistService, exhibitionService, s.storage)

	srv := httpapp.New(log, nil, "", time.Second, routers)
	srv.BuildRouters()

	s.server = httptest.NewServer(srv.Handler())
	s.client = &http.Client{Timeout: 5 * time.Second}
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *IntegrationTestSuite) SetupTest() {
	// Каждый тест начинается с пустой базы
	_, err := s.storage.Pool().Exec(testCtx,
		`TRUNCATE exhibition_pictures, exhibitions, pictures, artists RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func setupTestDB(t *testing.T) *postgresql.Storage {
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

	pgContainer, err := testcontainers.GenericContainer(testCtx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := pgContainer.Host(testCtx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(testCtx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	storage, err := postgresql.New(testCtx, dsn, postgresql.PoolOptions{MaxConns: 4})
	require.NoError(t, err)

	require.NoError(t, storage.Migrate(testCtx))

	t.Cleanup(func() {
		storage.Stop()
		_ = pgContainer.Terminate(testCtx)
	})

	return storage
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) call(method, path string, body any, out any) int {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	if out != nil && len(data) > 0 {
		s.Require().NoError(json.Unmarshal(data, out), string(data))
	}

	return resp.StatusCode
}

type picture struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Artist   string   `json:"artist"`
	ArtistID *int64   `json:"artistId"`
	Price    *float64 `json:"price"`
	Ref      *struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"Artist"`
}

type artist struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Pictures []picture `json:"Pictures"`
}

func (s *IntegrationTestSuite) createPicture(artistName string) picture {
	var p picture
	code := s.call(http.MethodPost, "/api/pictures", map[string]any{
		"title":    gofakeit.Sentence(3),
		"artist":   artistName,
		"imageUrl": gofakeit.URL(),
		"year":     gofakeit.Number(1500, 2000),
		"price":    1500.5,
	}, &p)
	s.Require().Equal(http.StatusOK, code)
	return p
}

func (s *IntegrationTestSuite) TestHealth() {
	var body map[string]any
	code := s.call(http.MethodGet, "/api/health", nil, &body)

	s.Equal(http.StatusOK, code)
	s.Equal("Connected", body["database"])
}

func (s *IntegrationTestSuite) TestPictureCreatesArtistOnce() {
	name := gofakeit.Name()

	first := s.createPicture(name)
	second := s.createPicture(name)

	s.Require().NotNil(first.ArtistID)
	s.Require().NotNil(second.ArtistID)
	s.Equal(*first.ArtistID, *second.ArtistID)
	s.Require().NotNil(first.Ref)
	s.Equal(name, first.Ref.Name)
	s.Require().NotNil(first.Price)
	s.InDelta(1500.5, *first.Price, 0.001)

	var list []artist
	s.Equal(http.StatusOK, s.call(http.MethodGet, "/api/artists", nil, &list))
	s.Require().Len(list, 1)
	s.Equal(name, list[0].Name)
	s.Len(list[0].Pictures, 2)

	var byArtist []picture
	path := fmt.Sprintf("/api/artists/%d/pictures", *first.ArtistID)
	s.Equal(http.StatusOK, s.call(http.MethodGet, path, nil, &byArtist))
	s.Len(byArtist, 2)
}

func (s *IntegrationTestSuite) TestUpdatePictureMovesToNewArtist() {
	p := s.createPicture("Первый")

	var updated picture
	code := s.call(http.MethodPut, fmt.Sprintf("/api/pictures/%d", p.ID), map[string]any{
		"artist": "Второй",
	}, &updated)

	s.Require().Equal(http.StatusOK, code)
	s.Equal("Второй", updated.Artist)
	s.Require().NotNil(updated.ArtistID)
	s.NotEqual(*p.ArtistID, *updated.ArtistID)
	s.Equal(p.Title, updated.Title)
	s.Require().NotNil(updated.Price)

	var cleared picture
	code = s.call(http.MethodPut, fmt.Sprintf("/api/pictures/%d", p.ID), map[string]any{
		"price": nil,
	}, &cleared)

	s.Require().Equal(http.StatusOK, code)
	s.Nil(cleared.Price)
	s.Equal("Второй", cleared.Artist)
}

func (s *IntegrationTestSuite) TestDeleteArtistKeepsPictures() {
	p := s.createPicture(gofakeit.Name())

	var deleted map[string]any
	code := s.call(http.MethodDelete, fmt.Sprintf("/api/artists/%d", *p.ArtistID), nil, &deleted)
	s.Require().Equal(http.StatusOK, code)
	s.Equal("Художник успешно удален", deleted["message"])

	var got picture
	s.Equal(http.StatusOK, s.call(http.MethodGet, fmt.Sprintf("/api/pictures/%d", p.ID), nil, &got))
	s.Nil(got.ArtistID)
	s.Nil(got.Ref)
	s.Equal(p.Artist, got.Artist)
}

func (s *IntegrationTestSuite) TestExhibitionLifecycle() {
	a := s.createPicture(gofakeit.Name())
	b := s.createPicture(gofakeit.Name())

	var ex struct {
		ID int64 `json:"id"`
	}
	code := s.call(http.MethodPost, "/api/exhibitions", map[string]any{
		"title":     "Импрессионисты",
		"startDate": "2025-03-01",
		"endDate":   "2025-05-01",
	}, &ex)
	s.Require().Equal(http.StatusCreated, code)

	linkPath := fmt.Sprintf("/api/exhibitions/%d/pictures", ex.ID)
	s.Equal(http.StatusCreated, s.call(http.MethodPost, linkPath, map[string]any{"pictureId": a.ID, "displayOrder": 2}, nil))
	s.Equal(http.StatusCreated, s.call(http.MethodPost, linkPath, map[string]any{"pictureId": b.ID, "displayOrder": 1}, nil))
	s.Equal(http.StatusNotFound, s.call(http.MethodPost, linkPath, map[string]any{"pictureId": 9999}, nil))

	var detail struct {
		Pictures []struct {
			ID           int64 `json:"id"`
			DisplayOrder *int  `json:"displayOrder"`
		} `json:"Pictures"`
	}
	s.Require().Equal(http.StatusOK, s.call(http.MethodGet, fmt.Sprintf("/api/exhibitions/%d", ex.ID), nil, &detail))
	s.Require().Len(detail.Pictures, 2)
	s.Equal(b.ID, detail.Pictures[0].ID)
	s.Equal(a.ID, detail.Pictures[1].ID)

	var onShow []map[string]any
	s.Equal(http.StatusOK, s.call(http.MethodGet, fmt.Sprintf("/api/pictures/%d/exhibitions", a.ID), nil, &onShow))
	s.Len(onShow, 1)

	s.Equal(http.StatusNoContent, s.call(http.MethodDelete, fmt.Sprintf("%s/%d", linkPath, a.ID), nil, nil))
	s.Equal(http.StatusNotFound, s.call(http.MethodDelete, fmt.Sprintf("%s/%d", linkPath, a.ID), nil, nil))

	s.Equal(http.StatusOK, s.call(http.MethodDelete, fmt.Sprintf("/api/exhibitions/%d", ex.ID), nil, nil))
	s.Equal(http.StatusOK, s.call(http.MethodGet, fmt.Sprintf("/api/pictures/%d", b.ID), nil, nil))
}
