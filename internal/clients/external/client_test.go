package external

import (
	"context"
	"errors"
	"testing"

	"github.com/fadedpez/dnd5e-api/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/KirkDiggler/babonus/internal/errors"
)

// mockCategoryAPI is a mock implementation of the category lookup for testing
type mockCategoryAPI struct {
	mock.Mock
}

func (m *mockCategoryAPI) GetEquipmentCategory(key string) (*entities.EquipmentCategory, error) {
	args := m.Called(key)
	return args.Get(0).(*entities.EquipmentCategory), args.Error(1)
}

func TestNew(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)
	assert.NotNil(t, c)

	cfg := &Config{}
	_, err = New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://www.dnd5eapi.co/api/2014/", cfg.BaseURL)

	_, err = New(&Config{HTTPTimeout: -1})
	assert.True(t, apperrors.IsInvalidArgument(err))
}

func TestListCategoryItems(t *testing.T) {
	t.Run("successful category listing", func(t *testing.T) {
		api := new(mockCategoryAPI)
		c := &client{api: api}

		api.On("GetEquipmentCategory", "martial-weapons").Return(&entities.EquipmentCategory{
			Index: "martial-weapons",
			Name:  "Martial Weapons",
			Equipment: []*entities.ReferenceItem{
				{Key: "longsword", Name: "Longsword"},
				nil,
				{Key: "", Name: "Broken"},
				{Key: "war-pick", Name: "War Pick"},
			},
		}, nil)

		keys, err := c.ListCategoryItems(context.Background(), "martial-weapons")

		require.NoError(t, err)
		assert.Equal(t, []string{"longsword", "war-pick"}, keys)
		api.AssertExpectations(t)
	})

	t.Run("category not found", func(t *testing.T) {
		api := new(mockCategoryAPI)
		c := &client{api: api}

		api.On("GetEquipmentCategory", "invalid-category").Return(
			(*entities.EquipmentCategory)(nil), errors.New("category not found"))

		keys, err := c.ListCategoryItems(context.Background(), "invalid-category")

		require.Error(t, err)
		assert.Nil(t, keys)
		assert.Equal(t, apperrors.CodeUnavailable, apperrors.GetCode(err))
		assert.Contains(t, err.Error(), "failed to get equipment category")
		api.AssertExpectations(t)
	})

	t.Run("nil category", func(t *testing.T) {
		api := new(mockCategoryAPI)
		c := &client{api: api}

		api.On("GetEquipmentCategory", "shields").Return((*entities.EquipmentCategory)(nil), nil)

		_, err := c.ListCategoryItems(context.Background(), "shields")
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("empty category", func(t *testing.T) {
		c := &client{api: new(mockCategoryAPI)}

		_, err := c.ListCategoryItems(context.Background(), "")
		assert.True(t, apperrors.IsInvalidArgument(err))
	})

	t.Run("canceled context", func(t *testing.T) {
		api := new(mockCategoryAPI)
		c := &client{api: api}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.ListCategoryItems(ctx, "shields")
		assert.Error(t, err)
		api.AssertNotCalled(t, "GetEquipmentCategory", "shields")
	})
}
