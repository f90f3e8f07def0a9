package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefuel/backend/internal/models"
)

// promoteToAdmin flips the admin flag directly in the database and issues a
// fresh token carrying it.
func (a *testAPI) promoteToAdmin(t *testing.T, email string) string {
	t.Helper()

	var user models.User
	require.NoError(t, a.db.Where("email = ?", email).First(&user).Error)
	require.NoError(t, a.db.Model(&user).Update("is_admin", true).Error)

	w := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	a := setupTestAPI(t)
	token, _ := a.register(t, "Pleb", "pleb@example.com")

	w := a.do(t, http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodGet, "/api/admin/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(t, http.MethodGet, "/api/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminUserManagement(t *testing.T) {
	a := setupTestAPI(t)
	a.register(t, "Admin", "root@example.com")
	adminToken := a.promoteToAdmin(t, "root@example.com")
	_, victimID := a.register(t, "Victim", "victim@example.com")

	w := a.do(t, http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Users []struct {
			Email string `json:"email"`
		} `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Users, 2)

	w = a.do(t, http.MethodDelete, "/api/admin/users/"+victimID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Users, 1)
}

func TestAdminStatsEndpoint(t *testing.T) {
	a := setupTestAPI(t)
	token, _ := a.register(t, "Admin", "stats-admin@example.com")
	a.createRecipe(t, token, "Counted Dish")
	adminToken := a.promoteToAdmin(t, "stats-admin@example.com")

	w := a.do(t, http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		TotalUsers   int `json:"totalUsers"`
		TotalRecipes int `json:"totalRecipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 1, stats.TotalRecipes)
}
