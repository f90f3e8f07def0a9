package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/platefuel/backend/internal/middleware"
	"github.com/platefuel/backend/internal/models"
	"github.com/platefuel/backend/internal/service"
)

// testAPI is a fully wired API over an in-memory database, minus Redis and
// image storage.
type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.RecipeRating{},
		&models.RecipeFavorite{},
		&models.Review{},
		&models.MealPlan{},
		&models.ShoppingList{},
	))

	authService := service.NewAuthService(db, "test-secret", nil)
	recipeService := service.NewRecipeService(db, nil, nil)
	reviewService := service.NewReviewService(db, nil)
	mealPlanService := service.NewMealPlanService(db, nil)
	shoppingService := service.NewShoppingListService(db, nil)
	adminService := service.NewAdminService(db, nil)

	authRequired := middleware.AuthMiddleware(authService)
	adminOnly := middleware.AdminRequired()
	writeLimit := middleware.NewWriteRateLimiter(nil).Middleware()

	router := gin.New()
	v1 := router.Group("/api")
	NewAuthHandler(authService, nil).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, nil, nil).RegisterRoutes(v1, authRequired, writeLimit)
	NewReviewHandler(reviewService, nil).RegisterRoutes(v1, authRequired, writeLimit)
	NewMealPlanHandler(mealPlanService, nil).RegisterRoutes(v1, authRequired)
	NewShoppingListHandler(shoppingService, nil).RegisterRoutes(v1, authRequired)
	NewAdminHandler(adminService, nil).RegisterRoutes(v1, authRequired, adminOnly)

	return &testAPI{router: router, db: db, auth: authService}
}

// do issues a request against the test router. A non-empty token is sent as
// a bearer token; a non-nil body is sent as JSON.
func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the public endpoint and returns the
// session token and user ID.
func (a *testAPI) register(t *testing.T, name, email string) (token string, userID string) {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":             name,
		"email":            email,
		"password":         "password123",
		"confirm_password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

// createRecipe posts a valid recipe and returns its ID.
func (a *testAPI) createRecipe(t *testing.T, token, title string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/recipes", token, gin.H{
		"title":       title,
		"ingredients": "1 cup flour\n2 eggs",
		"steps":       "Mix and bake.",
		"cuisine":     "Italian",
		"category":    "Dinner",
		"prep_time":   "10 minutes",
		"cook_time":   "20 minutes",
		"servings":    2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Recipe struct {
			ID string `json:"id"`
		} `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Recipe.ID)
	return resp.Recipe.ID
}
