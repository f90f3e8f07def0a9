package service

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/platefuel/backend/internal/models"
)

// DefaultPageSize is the fixed result-page size served to the recipe list.
const DefaultPageSize = 12

const suggestionCacheTTL = 5 * time.Minute

// SearchFilters is the full filter set for a recipe search. Categorical
// fields use "all" to mean unconstrained; MaxPrepTime/MaxCookTime use zero.
type SearchFilters struct {
	Search      string `json:"search"`
	Cuisine     string `json:"cuisine"`
	Difficulty  string `json:"difficulty"`
	Category    string `json:"category"`
	Vegetarian  string `json:"vegetarian"`
	MaxPrepTime int    `json:"maxPrepTime,omitempty"`
	MaxCookTime int    `json:"maxCookTime,omitempty"`
	Ingredients string `json:"ingredients"`
	SortBy      string `json:"sortBy"`
	SortOrder   string `json:"sortOrder"`
	Page        int    `json:"page"`
	Limit       int    `json:"limit"`
}

// ParseSearchFilters builds a SearchFilters from request query parameters.
// Malformed numeric values are treated as absent rather than rejected, so a
// bad maxPrepTime never fails the whole search.
func ParseSearchFilters(values url.Values) SearchFilters {
	f := SearchFilters{
		Search:      strings.TrimSpace(values.Get("search")),
		Cuisine:     values.Get("cuisine"),
		Difficulty:  values.Get("difficulty"),
		Category:    values.Get("category"),
		Vegetarian:  values.Get("vegetarian"),
		Ingredients: values.Get("ingredients"),
		SortBy:      values.Get("sortBy"),
		SortOrder:   values.Get("sortOrder"),
	}
	f.MaxPrepTime = parsePositiveInt(values.Get("maxPrepTime"))
	f.MaxCookTime = parsePositiveInt(values.Get("maxCookTime"))
	f.Page = parsePositiveInt(values.Get("page"))
	f.Limit = parsePositiveInt(values.Get("limit"))
	return f.normalized()
}

func parsePositiveInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// normalized fills defaults and clamps the page window. Pages below 1 are
// clamped rather than rejected, matching the fail-open policy of the
// numeric filters.
func (f SearchFilters) normalized() SearchFilters {
	if f.Cuisine == "" {
		f.Cuisine = "all"
	}
	if f.Difficulty == "" {
		f.Difficulty = "all"
	}
	if f.Category == "" {
		f.Category = "all"
	}
	if f.Vegetarian == "" {
		f.Vegetarian = "all"
	}
	if _, ok := sortColumns[f.SortBy]; !ok {
		f.SortBy = "createdAt"
	}
	if f.SortOrder != "asc" {
		f.SortOrder = "desc"
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	return f
}

// ingredientTerms splits the comma-separated include-list, dropping empty
// entries. Every returned term must appear in a matching recipe.
func (f SearchFilters) ingredientTerms() []string {
	if strings.TrimSpace(f.Ingredients) == "" {
		return nil
	}
	var terms []string
	for _, part := range strings.Split(f.Ingredients, ",") {
		if term := strings.TrimSpace(part); term != "" {
			terms = append(terms, strings.ToLower(term))
		}
	}
	return terms
}

// sortColumns maps API sort keys to database columns. Anything not listed
// falls back to creation time, which also keeps user input out of the
// ORDER BY clause.
var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"title":         "title",
	"cuisine":       "cuisine",
	"difficulty":    "difficulty",
	"servings":      "servings",
	"averageRating": "average_rating",
	"totalRatings":  "total_ratings",
	"prepTime":      "prep_time",
	"cookTime":      "cook_time",
}

// Pagination describes where a result page sits in the full result set.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecipes int64 `json:"totalRecipes"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// NewPagination derives page metadata from the total match count. A page
// past the end yields empty results but still-correct metadata.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalRecipes: total,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
	}
}

// Suggestion is one autocomplete candidate. ID is set only for recipe-type
// suggestions so the client can navigate straight to the recipe.
type Suggestion struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	ID    string `json:"id,omitempty"`
}

// SearchRecipes runs the full search pipeline: filter, rank, paginate.
func (s *RecipeService) SearchRecipes(ctx context.Context, filters SearchFilters) ([]models.Recipe, Pagination, error) {
	f := filters.normalized()

	query := s.buildSearchQuery(ctx, f)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	var recipes []models.Recipe
	err := query.
		Order(strings.Join(s.orderClauses(f), ", ")).
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&recipes).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	return recipes, NewPagination(f.Page, f.Limit, total), nil
}

// buildSearchQuery turns the filter set into a conjunctive GORM query. The
// free-text clause is an OR-group over title, ingredients, steps, tags and
// notes; everything else ANDs onto it.
func (s *RecipeService) buildSearchQuery(ctx context.Context, f SearchFilters) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(ingredients) LIKE ? OR LOWER(steps) LIKE ? OR LOWER(tags) LIKE ? OR LOWER(notes) LIKE ?",
			like, like, like, like, like,
		)
	}

	if f.Cuisine != "" && f.Cuisine != "all" {
		query = query.Where("LOWER(cuisine) LIKE ?", "%"+strings.ToLower(f.Cuisine)+"%")
	}
	if f.Difficulty != "" && f.Difficulty != "all" {
		query = query.Where("LOWER(difficulty) = ?", strings.ToLower(f.Difficulty))
	}
	if f.Category != "" && f.Category != "all" {
		query = query.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(f.Category)+"%")
	}
	if f.Vegetarian != "" && f.Vegetarian != "all" {
		query = query.Where("LOWER(vegetarian) = ?", strings.ToLower(f.Vegetarian))
	}

	for _, term := range f.ingredientTerms() {
		query = query.Where("LOWER(ingredients) LIKE ?", "%"+term+"%")
	}

	if f.MaxPrepTime > 0 {
		query = s.whereTimeAtMost(query, "prep_time", f.MaxPrepTime)
	}
	if f.MaxCookTime > 0 {
		query = s.whereTimeAtMost(query, "cook_time", f.MaxCookTime)
	}

	return query
}

// whereTimeAtMost filters a free-text time column ("30 mins") by its numeric
// prefix. Values that do not start with a number have no reliable ordering
// and are excluded. This is a documented approximation, not a precise range
// filter.
func (s *RecipeService) whereTimeAtMost(query *gorm.DB, column string, max int) *gorm.DB {
	if s.db.Dialector.Name() == "postgres" {
		expr := "COALESCE(NULLIF(substring(" + column + " from '^[0-9]+'), ''), '0')::int"
		return query.Where(expr+" BETWEEN 1 AND ?", max)
	}
	// SQLite's CAST reads the numeric prefix of a string and yields 0 when
	// there is none.
	return query.Where("CAST("+column+" AS INTEGER) BETWEEN 1 AND ?", max)
}

// orderClauses produces the deterministic sort order: the user's key first,
// then average rating, rating count and creation time as tiebreaks. A
// tiebreak is skipped when it is already the primary key, so no column is
// ordered twice.
func (s *RecipeService) orderClauses(f SearchFilters) []string {
	primary := sortColumns[f.SortBy]
	direction := "DESC"
	if f.SortOrder == "asc" {
		direction = "ASC"
	}

	clauses := []string{primary + " " + direction}
	for _, tiebreak := range []string{"average_rating", "total_ratings", "created_at"} {
		if tiebreak != primary {
			clauses = append(clauses, tiebreak+" DESC")
		}
	}
	return clauses
}

// SearchSuggestions returns autocomplete candidates for a partial query:
// up to 3 cuisines, 3 categories and 5 recipes, in that order. Queries
// shorter than 2 characters always yield an empty list; the client enforces
// the same minimum, but this is a public boundary.
func (s *RecipeService) SearchSuggestions(ctx context.Context, query string) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []Suggestion{}, nil
	}

	cacheKey := "suggestions:" + strings.ToLower(query)
	if cached := s.cachedSuggestions(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	like := "%" + strings.ToLower(query) + "%"
	suggestions := []Suggestion{}

	var cuisines []string
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Distinct("cuisine").
		Where("LOWER(cuisine) LIKE ? AND cuisine <> ''", like).
		Order("cuisine").
		Limit(3).
		Pluck("cuisine", &cuisines).Error
	if err != nil {
		return nil, err
	}
	for _, c := range cuisines {
		suggestions = append(suggestions, Suggestion{Type: "cuisine", Value: c})
	}

	var categories []string
	err = s.db.WithContext(ctx).Model(&models.Recipe{}).
		Distinct("category").
		Where("LOWER(category) LIKE ? AND category <> ''", like).
		Order("category").
		Limit(3).
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		suggestions = append(suggestions, Suggestion{Type: "category", Value: c})
	}

	var recipes []models.Recipe
	err = s.db.WithContext(ctx).Model(&models.Recipe{}).
		Select("id", "title").
		Where("LOWER(title) LIKE ? OR LOWER(ingredients) LIKE ?", like, like).
		Order("title").
		Limit(5).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	for _, r := range recipes {
		suggestions = append(suggestions, Suggestion{Type: "recipe", Value: r.Title, ID: r.ID.String()})
	}

	s.storeSuggestions(ctx, cacheKey, suggestions)
	return suggestions, nil
}

// cachedSuggestions reads the Redis suggestion cache. Any cache failure is
// treated as a miss.
func (s *RecipeService) cachedSuggestions(ctx context.Context, key string) []Suggestion {
	if s.redis == nil {
		return nil
	}
	payload, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var suggestions []Suggestion
	if err := json.Unmarshal(payload, &suggestions); err != nil {
		return nil
	}
	return suggestions
}

func (s *RecipeService) storeSuggestions(ctx context.Context, key string, suggestions []Suggestion) {
	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(suggestions)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, payload, suggestionCacheTTL).Err(); err != nil {
		s.logger.Warn("suggestion cache write failed", zap.Error(err))
	}
}
