package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRecipesDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes", r.URL.Path)
		assert.Equal(t, "Italian", r.URL.Query().Get("cuisine"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"recipes": [{"id": "abc", "title": "Carbonara", "average_rating": 4.5}],
			"pagination": {"currentPage": 2, "totalPages": 3, "totalRecipes": 30, "hasNextPage": true, "hasPrevPage": true}
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.SearchRecipes(context.Background(), Filters{Cuisine: "Italian", Page: 2})
	require.NoError(t, err)

	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Carbonara", resp.Recipes[0].Title)
	assert.Equal(t, 4.5, resp.Recipes[0].AverageRating)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)
	assert.True(t, resp.Pagination.HasNextPage)
}

func TestFiltersValuesOmitsDefaults(t *testing.T) {
	v := Filters{}.Values()
	assert.Empty(t, v)

	v = Filters{Cuisine: "all", Page: 1}.Values()
	assert.Empty(t, v)

	v = Filters{Search: "pasta", MaxPrepTime: 30, Page: 2}.Values()
	assert.Equal(t, "pasta", v.Get("search"))
	assert.Equal(t, "30", v.Get("maxPrepTime"))
	assert.Equal(t, "2", v.Get("page"))
}

func TestAPIErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "recipe not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Recipe(context.Background(), "missing-id")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "recipe not found", apiErr.Message)
}

func TestGetRetriesOnTransportError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			// Kill the first connection mid-response.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"suggestions": [{"type": "cuisine", "value": "Italian"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	suggestions, err := c.Suggestions(context.Background(), "ital")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Italian", suggestions[0].Value)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestRateRecipeSendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"averageRating": 4.5, "totalRatings": 2}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("session-token"))
	average, total, err := c.RateRecipe(context.Background(), "abc", 5)
	require.NoError(t, err)
	assert.Equal(t, 4.5, average)
	assert.Equal(t, 2, total)
}
