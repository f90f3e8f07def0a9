// Package client is a Go client for the PlateFuel API. It wraps the HTTP
// surface and provides the search-box controller and results presenter
// used by frontends.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Recipe is the recipe payload as served by the API.
type Recipe struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	ImageURL      string  `json:"image_url"`
	Ingredients   string  `json:"ingredients"`
	Steps         string  `json:"steps"`
	Cuisine       string  `json:"cuisine"`
	PrepTime      string  `json:"prep_time"`
	CookTime      string  `json:"cook_time"`
	Servings      int     `json:"servings"`
	Difficulty    string  `json:"difficulty"`
	Tags          string  `json:"tags"`
	Category      string  `json:"category"`
	Vegetarian    string  `json:"vegetarian"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

// Pagination mirrors the server's page metadata.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecipes int64 `json:"totalRecipes"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Recipes    []Recipe   `json:"recipes"`
	Pagination Pagination `json:"pagination"`
}

// Suggestion is one autocomplete candidate. ID is set only when Type is
// "recipe".
type Suggestion struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	ID    string `json:"id,omitempty"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client talks to a PlateFuel API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent on authenticated requests.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken updates the bearer token, typically after login.
func (c *Client) SetToken(token string) { c.token = token }

// SearchRecipes fetches one page of search results.
func (c *Client) SearchRecipes(ctx context.Context, filters Filters) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.get(ctx, "/api/recipes?"+filters.Values().Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Suggestions fetches autocomplete candidates for a partial query.
func (c *Client) Suggestions(ctx context.Context, query string) ([]Suggestion, error) {
	var resp struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	q := url.Values{"query": {query}}
	if err := c.get(ctx, "/api/recipes/search/suggestions?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// Recipe fetches a single recipe by ID.
func (c *Client) Recipe(ctx context.Context, id string) (*Recipe, error) {
	var recipe Recipe
	if err := c.get(ctx, "/api/recipes/"+url.PathEscape(id), &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// RateRecipe submits a 1-5 rating and returns the updated aggregates.
func (c *Client) RateRecipe(ctx context.Context, id string, rating int) (average float64, total int, err error) {
	var resp struct {
		AverageRating float64 `json:"averageRating"`
		TotalRatings  int     `json:"totalRatings"`
	}
	body := map[string]int{"rating": rating}
	if err := c.post(ctx, "/api/recipes/"+url.PathEscape(id)+"/rate", body, &resp); err != nil {
		return 0, 0, err
	}
	return resp.AverageRating, resp.TotalRatings, nil
}

// UserRating fetches the caller's stored rating for a recipe. Returns nil
// when the user has not rated it.
func (c *Client) UserRating(ctx context.Context, recipeID, userID string) (*int, error) {
	var resp struct {
		Rating *int `json:"rating"`
	}
	path := "/api/recipes/" + url.PathEscape(recipeID) + "/rating/" + url.PathEscape(userID)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Rating, nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/api/auth/login", body, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// get issues a GET and decodes the JSON response. GETs are idempotent, so
// a transport-level failure is retried once.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	err := c.do(ctx, http.MethodGet, path, nil, out)
	if err == nil {
		return nil
	}
	if _, ok := err.(*APIError); ok {
		return err
	}
	if ctx.Err() != nil {
		return err
	}
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Filters is the client-side filter state for a search. The zero value
// means "no constraints, first page".
type Filters struct {
	Search      string
	Cuisine     string
	Difficulty  string
	Category    string
	Vegetarian  string
	MaxPrepTime int
	MaxCookTime int
	Ingredients string
	SortBy      string
	SortOrder   string
	Page        int
}

// Values encodes the filters as query parameters, omitting unset fields.
func (f Filters) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" && value != "all" {
			v.Set(key, value)
		}
	}
	set("search", f.Search)
	set("cuisine", f.Cuisine)
	set("difficulty", f.Difficulty)
	set("category", f.Category)
	set("vegetarian", f.Vegetarian)
	set("ingredients", f.Ingredients)
	set("sortBy", f.SortBy)
	set("sortOrder", f.SortOrder)
	if f.MaxPrepTime > 0 {
		v.Set("maxPrepTime", strconv.Itoa(f.MaxPrepTime))
	}
	if f.MaxCookTime > 0 {
		v.Set("maxCookTime", strconv.Itoa(f.MaxCookTime))
	}
	if f.Page > 1 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	return v
}
