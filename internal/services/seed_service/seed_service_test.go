package services

import (
	"context"
	"errors"
	"testing"

	"virtual_gallery/internal/domain/models"
	"virtual_gallery/internal/lib/logger/handlers/slogdiscard"
	"virtual_gallery/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockArtistRepository struct {
	mock.Mock
}

func (m *MockArtistRepository) CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error) {
	args := m.Called(ctx, artist)
	return args.Get(0).(models.Artist), args.Error(1)
}

func (m *MockArtistRepository) UpsertArtistByName(ctx context.Context, name string) (int64, bool, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockArtistRepository) GetArtistByName(ctx context.Context, name string) (models.Artist, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.Artist), args.Error(1)
}

func (m *MockArtistRepository) GetArtistByID(ctx context.Context, artistID int64) (models.Artist, error) {
	args := m.Called(ctx, artistID)
	return args.Get(0).(models.Artist), args.Error(1)
}

func (m *MockArtistRepository) GetArtists(ctx context.Context) ([]models.Artist, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Artist), args.Error(1)
}

func (m *MockArtistRepository) UpdateArtistFields(ctx context.Context, artistID int64, updates map[string]interface{}) (models.Artist, error) {
	args := m.Called(ctx, artistID, updates)
	return args.Get(0).(models.Artist), args.Error(1)
}

func (m *MockArtistRepository) DeleteArtist(ctx context.Context, artistID int64) (models.Artist, error) {
	args := m.Called(ctx, artistID)
	return args.Get(0).(models.Artist), args.Error(1)
}

type MockPictureRepository struct {
	mock.Mock
}

func (m *MockPictureRepository) CreatePicture(ctx context.Context, picture models.Picture) (int64, error) {
	args := m.Called(ctx, picture)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPictureRepository) GetPictureByID(ctx context.Context, pictureID int64) (models.Picture, error) {
	args := m.Called(ctx, pictureID)
	return args.Get(0).(models.Picture), args.Error(1)
}

func (m *MockPictureRepository) GetPictures(ctx context.Context) ([]models.Picture, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Picture), args.Error(1)
}

func (m *MockPictureRepository) GetPicturesByArtist(ctx context.Context, artistID int64) ([]models.Picture, error) {
	args := m.Called(ctx, artistID)
	return args.Get(0).([]models.Picture), args.Error(1)
}

func (m *MockPictureRepository) UpdatePictureFields(ctx context.Context, pictureID int64, updates map[string]interface{}) error {
	args := m.Called(ctx, pictureID, updates)
	return args.Error(0)
}

func (m *MockPictureRepository) DeletePicture(ctx context.Context, pictureID int64) (models.Picture, error) {
	args := m.Called(ctx, pictureID)
	return args.Get(0).(models.Picture), args.Error(1)
}

func (m *MockPictureRepository) CountPictures(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestSeedService_SkipsWhenPicturesExist(t *testing.T) {
	ctx := context.Background()
	artists := new(MockArtistRepository)
	pictures := new(MockPictureRepository)
	service := NewSeedService(slogdiscard.NewDiscardLogger(), artists, pictures)

	pictures.On("CountPictures", ctx).Return(1, nil).Once()

	require.NoError(t, service.Seed(ctx))
	artists.AssertNotCalled(t, "CreateArtist", mock.Anything, mock.Anything)
	pictures.AssertNotCalled(t, "CreatePicture", mock.Anything, mock.Anything)
}

func TestSeedService_SeedsEmptyGallery(t *testing.T) {
	ctx := context.Background()
	artists := new(MockArtistRepository)
	pictures := new(MockPictureRepository)
	service := NewSeedService(slogdiscard.NewDiscardLogger(), artists, pictures)

	pictures.On("CountPictures", ctx).Return(0, nil).Once()

	ids := map[string]int64{
		"Винсент Ван Гог":   1,
		"Леонардо да Винчи": 2,
		"Пабло Пикассо":     3,
	}
	for name, id := range ids {
		artists.On("CreateArtist", ctx, mock.MatchedBy(func(a models.Artist) bool {
			return a.Name == name && a.Bio != nil && a.BirthDate != nil && a.Nationality != nil
		})).Return(models.Artist{ID: id, Name: name}, nil).Once()
	}

	var created []models.Picture
	pictures.On("CreatePicture", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(models.Picture))
		}).
		Return(int64(1), nil).Times(3)

	require.NoError(t, service.Seed(ctx))
	require.Len(t, created, 3)

	for _, p := range created {
		require.NotNil(t, p.ArtistID)
		assert.Equal(t, ids[p.Artist], *p.ArtistID)
		assert.NotEmpty(t, p.ImageURL)
	}

	artists.AssertExpectations(t)
	pictures.AssertExpectations(t)
}

func TestSeedService_ReusesExistingArtist(t *testing.T) {
	ctx := context.Background()
	artists := new(MockArtistRepository)
	pictures := new(MockPictureRepository)
	service := NewSeedService(slogdiscard.NewDiscardLogger(), artists, pictures)

	pictures.On("CountPictures", ctx).Return(0, nil).Once()
	artists.On("CreateArtist", ctx, mock.MatchedBy(func(a models.Artist) bool {
		return a.Name == "Винсент Ван Гог"
	})).Return(models.Artist{}, storage.ErrArtistExists).Once()
	artists.On("GetArtistByName", ctx, "Винсент Ван Гог").Return(models.Artist{ID: 40}, nil).Once()
	artists.On("CreateArtist", ctx, mock.Anything).Return(models.Artist{ID: 41}, nil).Twice()

	pictures.On("CreatePicture", ctx, mock.MatchedBy(func(p models.Picture) bool {
		return p.Artist == "Винсент Ван Гог"
	})).Return(int64(1), nil).Once()
	pictures.On("CreatePicture", ctx, mock.Anything).Return(int64(2), nil).Twice()

	require.NoError(t, service.Seed(ctx))

	pictures.AssertCalled(t, "CreatePicture", ctx, mock.MatchedBy(func(p models.Picture) bool {
		return p.Artist == "Винсент Ван Гог" && p.ArtistID != nil && *p.ArtistID == 40
	}))
}

func TestSeedService_FailureIsOnlyLogged(t *testing.T) {
	ctx := context.Background()
	artists := new(MockArtistRepository)
	pictures := new(MockPictureRepository)
	service := NewSeedService(slogdiscard.NewDiscardLogger(), artists, pictures)

	pictures.On("CountPictures", ctx).Return(0, errors.New("relation \"pictures\" does not exist")).Twice()

	require.Error(t, service.Seed(ctx))
	assert.NotPanics(t, func() { service.SeedAndLog(ctx) })
}
