package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsnearme/pkg/domain"
)

func TestNewState(t *testing.T) {
	s := NewState(10)
	assert.Equal(t, 10, s.Limit)
	assert.Equal(t, domain.HealthUnknown, s.Health)
	assert.Nil(t, s.Location)
	assert.NotNil(t, s.Categories)
	assert.NotNil(t, s.News)
	assert.Nil(t, s.Response)
	assert.False(t, s.Loading())
	assert.False(t, s.ShowEmpty())

	assert.Equal(t, domain.DefaultNewsLimit, NewState(7).Limit, "invalid limit falls back to default")
}

func TestReduce(t *testing.T) {
	base := NewState(5)
	base.Categories = []domain.Category{{Value: "local"}, {Value: "sports"}}

	t.Run("request lifecycle", func(t *testing.T) {
		s, err := Reduce(base, Action{Type: ActRequestStarted, Service: domain.ServiceHealth})
		require.NoError(t, err)
		assert.Equal(t, 1, s.Pending)
		assert.True(t, s.Loading())
		assert.Equal(t, domain.ServiceHealth, s.ActiveService)

		s, err = Reduce(s, Action{Type: ActRequestStarted, Service: domain.ServiceLocation})
		require.NoError(t, err)
		assert.Equal(t, 2, s.Pending)
		assert.Equal(t, domain.ServiceLocation, s.ActiveService)

		s, err = Reduce(s, Action{Type: ActRequestFinished})
		require.NoError(t, err)
		assert.True(t, s.Loading(), "second request still in flight")

		s, err = Reduce(s, Action{Type: ActRequestFinished})
		require.NoError(t, err)
		assert.False(t, s.Loading())

		s, err = Reduce(s, Action{Type: ActRequestFinished})
		require.NoError(t, err)
		assert.Zero(t, s.Pending, "pending never goes negative")
	})

	t.Run("news replaced wholesale", func(t *testing.T) {
		s, err := Reduce(base, Action{Type: ActNewsLoaded, News: make([]domain.NewsItem, 5)})
		require.NoError(t, err)
		assert.Len(t, s.News, 5)

		s, err = Reduce(s, Action{Type: ActNewsLoaded, News: make([]domain.NewsItem, 3)})
		require.NoError(t, err)
		assert.Len(t, s.News, 3)

		s, err = Reduce(s, Action{Type: ActNewsLoaded})
		require.NoError(t, err)
		assert.NotNil(t, s.News)
		assert.Empty(t, s.News)
	})

	t.Run("input state is not modified", func(t *testing.T) {
		news := []domain.NewsItem{{Title: "a"}}
		s, err := Reduce(base, Action{Type: ActNewsLoaded, News: news})
		require.NoError(t, err)
		news[0].Title = "changed"
		assert.Equal(t, "a", s.News[0].Title)
		assert.Empty(t, base.News)
	})

	t.Run("location and health", func(t *testing.T) {
		s, err := Reduce(base, Action{Type: ActLocationLoaded, Location: domain.Location{City: "Quito"}})
		require.NoError(t, err)
		require.NotNil(t, s.Location)
		assert.Equal(t, "Quito", s.Location.City)

		s, err = Reduce(s, Action{Type: ActHealthSet, Health: domain.HealthOffline})
		require.NoError(t, err)
		assert.Equal(t, domain.HealthOffline, s.Health)
	})

	t.Run("categories reload resets missing selection", func(t *testing.T) {
		s := base
		s.Category = "sports"

		kept, err := Reduce(s, Action{Type: ActCategoriesLoaded,
			Categories: []domain.Category{{Value: "sports"}, {Value: "weather"}}})
		require.NoError(t, err)
		assert.Equal(t, "sports", kept.Category)

		reset, err := Reduce(s, Action{Type: ActCategoriesLoaded, Categories: []domain.Category{{Value: "weather"}}})
		require.NoError(t, err)
		assert.Empty(t, reset.Category)

		empty, err := Reduce(s, Action{Type: ActCategoriesLoaded})
		require.NoError(t, err)
		assert.NotNil(t, empty.Categories)
		assert.Empty(t, empty.Category)
	})

	t.Run("response set and dismissed", func(t *testing.T) {
		s, err := Reduce(base, Action{Type: ActResponseSet,
			Response: domain.OkResponse(domain.ServiceHealth, json.RawMessage(`{}`))})
		require.NoError(t, err)
		require.NotNil(t, s.Response)
		assert.Equal(t, domain.ServiceHealth, s.Response.Service)

		s, err = Reduce(s, Action{Type: ActResponseDismissed})
		require.NoError(t, err)
		assert.Nil(t, s.Response)
	})

	t.Run("limit", func(t *testing.T) {
		s, err := Reduce(base, Action{Type: ActLimitSelected, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, 20, s.Limit)

		_, err = Reduce(base, Action{Type: ActLimitSelected, Limit: 4})
		require.ErrorIs(t, err, ErrInvalidLimit)
	})

	t.Run("category select", func(t *testing.T) {
		s, err := Reduce(base, Action{Type: ActCategorySelected, Category: "local"})
		require.NoError(t, err)
		assert.Equal(t, "local", s.Category)

		s, err = Reduce(s, Action{Type: ActCategorySelected, Category: ""})
		require.NoError(t, err)
		assert.Empty(t, s.Category)

		_, err = Reduce(base, Action{Type: ActCategorySelected, Category: "politics"})
		require.ErrorIs(t, err, ErrUnknownCategory)
	})

	t.Run("category toggle", func(t *testing.T) {
		s, err := Reduce(base, Action{Type: ActCategoryToggled, Category: "local"})
		require.NoError(t, err)
		assert.Equal(t, "local", s.Category)

		s, err = Reduce(s, Action{Type: ActCategoryToggled, Category: "sports"})
		require.NoError(t, err)
		assert.Equal(t, "sports", s.Category)

		s, err = Reduce(s, Action{Type: ActCategoryToggled, Category: "sports"})
		require.NoError(t, err)
		assert.Empty(t, s.Category, "toggling the selected tag goes back to all categories")

		_, err = Reduce(s, Action{Type: ActCategoryToggled, Category: "politics"})
		require.ErrorIs(t, err, ErrUnknownCategory)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := Reduce(base, Action{Type: "bad"})
		require.Error(t, err)
	})
}

func TestState_ShowEmpty(t *testing.T) {
	s := NewState(5)
	assert.False(t, s.ShowEmpty(), "nothing searched yet")

	s.ActiveService = domain.ServiceNewsAuto
	assert.True(t, s.ShowEmpty())

	s.Pending = 1
	assert.False(t, s.ShowEmpty(), "hidden while loading")

	s.Pending = 0
	s.News = []domain.NewsItem{{Title: "x"}}
	assert.False(t, s.ShowEmpty())

	s.News = nil
	s.ActiveService = domain.ServiceHealth
	assert.False(t, s.ShowEmpty(), "last action was not a search")
}

func TestState_JSON(t *testing.T) {
	s := NewState(5)
	s.Health = domain.HealthOnline
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"health":true,"location":null,"categories":[],"news":[],"limit":5,"category":"",
		"response":null,"pending":0}`, string(data))
}
