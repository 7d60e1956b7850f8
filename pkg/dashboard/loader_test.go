package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsnearme/pkg/dashboard/mocks"
	"github.com/umputun/newsnearme/pkg/domain"
)

func healthyAPI() *mocks.APIMock {
	return &mocks.APIMock{
		HealthFunc: func(context.Context) (domain.HealthStatus, json.RawMessage, error) {
			return domain.HealthStatus{Status: "healthy"}, json.RawMessage(`{"status":"healthy"}`), nil
		},
		CategoriesFunc: func(context.Context) ([]domain.Category, json.RawMessage, error) {
			return []domain.Category{{Value: "local"}, {Value: "sports"}},
				json.RawMessage(`[{"value":"local"},{"value":"sports"}]`), nil
		},
		LocationFunc: func(context.Context) (domain.Location, json.RawMessage, error) {
			return domain.Location{City: "Lima", Region: "Lima", Country: "Peru", Timezone: "America/Lima"},
				json.RawMessage(`{"city":"Lima","region":"Lima","country":"Peru","timezone":"America/Lima"}`), nil
		},
		SearchFunc: func(context.Context, domain.NewsQuery) ([]domain.NewsItem, json.RawMessage, error) {
			return []domain.NewsItem{}, json.RawMessage(`{"news":[]}`), nil
		},
		SearchCustomFunc: func(context.Context, domain.NewsQuery) ([]domain.NewsItem, json.RawMessage, error) {
			return []domain.NewsItem{}, json.RawMessage(`{"news":[]}`), nil
		},
	}
}

func TestLoader_Bootstrap(t *testing.T) {
	api := healthyAPI()
	store := NewStore(NewState(5))

	st := NewLoader(api).Bootstrap(context.Background(), store)

	assert.Equal(t, domain.HealthOnline, st.Health)
	assert.Equal(t, []domain.Category{{Value: "local"}, {Value: "sports"}}, st.Categories)
	require.NotNil(t, st.Location)
	assert.Equal(t, "Lima", st.Location.City)
	assert.Nil(t, st.Response, "bootstrap doesn't touch the response panel")
	assert.False(t, st.Loading())
	assert.Equal(t, st, store.State())

	assert.Len(t, api.HealthCalls(), 1)
	assert.Len(t, api.CategoriesCalls(), 1)
	assert.Len(t, api.LocationCalls(), 1)
	assert.Empty(t, api.SearchCalls())
	assert.Empty(t, api.SearchCustomCalls())
}

func TestLoader_BootstrapFailures(t *testing.T) {
	t.Run("everything fails", func(t *testing.T) {
		fail := errors.New("connection refused")
		api := &mocks.APIMock{
			HealthFunc: func(context.Context) (domain.HealthStatus, json.RawMessage, error) {
				return domain.HealthStatus{}, nil, fail
			},
			CategoriesFunc: func(context.Context) ([]domain.Category, json.RawMessage, error) {
				return nil, nil, fail
			},
			LocationFunc: func(context.Context) (domain.Location, json.RawMessage, error) {
				return domain.Location{}, nil, fail
			},
		}

		st := NewLoader(api).Bootstrap(context.Background(), NewStore(NewState(5)))
		assert.Equal(t, domain.HealthOffline, st.Health)
		assert.Nil(t, st.Location)
		assert.NotNil(t, st.Categories)
		assert.Empty(t, st.Categories)
		assert.Nil(t, st.Response)
	})

	t.Run("not healthy status", func(t *testing.T) {
		api := healthyAPI()
		api.HealthFunc = func(context.Context) (domain.HealthStatus, json.RawMessage, error) {
			return domain.HealthStatus{Status: "degraded"}, json.RawMessage(`{"status":"degraded"}`), nil
		}
		st := NewLoader(api).Bootstrap(context.Background(), NewStore(NewState(5)))
		assert.Equal(t, domain.HealthOffline, st.Health)
		assert.NotNil(t, st.Location, "other slots are not affected")
	})

	t.Run("failed slot keeps previous value", func(t *testing.T) {
		initial := NewState(5)
		initial.Location = &domain.Location{City: "Oslo"}
		initial.Categories = []domain.Category{{Value: "weather"}}

		api := healthyAPI()
		api.LocationFunc = func(context.Context) (domain.Location, json.RawMessage, error) {
			return domain.Location{}, nil, errors.New("timeout")
		}
		api.CategoriesFunc = func(context.Context) ([]domain.Category, json.RawMessage, error) {
			return nil, nil, errors.New("timeout")
		}

		st := NewLoader(api).Bootstrap(context.Background(), NewStore(initial))
		assert.Equal(t, domain.HealthOnline, st.Health)
		require.NotNil(t, st.Location)
		assert.Equal(t, "Oslo", st.Location.City)
		assert.Equal(t, []domain.Category{{Value: "weather"}}, st.Categories)
	})
}
