package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/platefuel/backend/internal/models"
)

// ShoppingListService handles shopping lists, including generating one from
// the recipes in a span of meal plans.
type ShoppingListService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewShoppingListService(db *gorm.DB, logger *zap.Logger) *ShoppingListService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShoppingListService{db: db, logger: logger}
}

// ListShoppingLists returns the user's lists, newest first.
func (s *ShoppingListService) ListShoppingLists(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error
	return lists, err
}

// CreateShoppingList stores a new list.
func (s *ShoppingListService) CreateShoppingList(ctx context.Context, userID uuid.UUID, name string, items models.ShoppingItems) (*models.ShoppingList, error) {
	if name == "" {
		name = "My Shopping List"
	}
	if items == nil {
		items = models.ShoppingItems{}
	}
	list := models.ShoppingList{UserID: userID, Name: name, Items: items}
	if err := s.db.WithContext(ctx).Create(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateShoppingList replaces the name and items of one of the user's lists.
func (s *ShoppingListService) UpdateShoppingList(ctx context.Context, id, userID uuid.UUID, name string, items models.ShoppingItems) (*models.ShoppingList, error) {
	list, err := s.getOwnedList(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		list.Name = name
	}
	if items != nil {
		list.Items = items
	}
	if err := s.db.WithContext(ctx).Save(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteShoppingList removes one of the user's lists.
func (s *ShoppingListService) DeleteShoppingList(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.getOwnedList(ctx, id, userID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.ShoppingList{}, "id = ?", id).Error
}

func (s *ShoppingListService) getOwnedList(ctx context.Context, id, userID uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	if err := s.db.WithContext(ctx).First(&list, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if list.UserID != userID {
		return nil, ErrForbidden
	}
	return &list, nil
}

// GenerateFromMealPlans builds a shopping list from every recipe planned in
// the date range: free-text ingredients are parsed line by line, scaled by
// slot servings, merged across recipes and grouped into store aisles.
func (s *ShoppingListService) GenerateFromMealPlans(ctx context.Context, userID uuid.UUID, start, end time.Time, name string) (*models.ShoppingList, error) {
	var plans []models.MealPlan
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Find(&plans).Error
	if err != nil {
		return nil, err
	}

	type merged struct {
		item    models.ShoppingItem
		recipes []string
	}
	index := make(map[string]*merged)
	var order []string

	for _, plan := range plans {
		for _, slot := range []models.MealSlot{plan.Meals.Breakfast, plan.Meals.Lunch, plan.Meals.Dinner, plan.Meals.Snack} {
			if slot.RecipeID == uuid.Nil {
				continue
			}
			var recipe models.Recipe
			if err := s.db.WithContext(ctx).First(&recipe, "id = ?", slot.RecipeID).Error; err != nil {
				continue // planned recipe since deleted
			}
			servings := slot.Servings
			if servings < 1 {
				servings = 1
			}
			for _, ing := range ParseIngredients(recipe.Ingredients, servings) {
				key := strings.ToLower(ing.Ingredient)
				if existing, ok := index[key]; ok {
					existing.item.Quantity = combineQuantities(existing.item.Quantity, ing.Quantity)
					existing.recipes = append(existing.recipes, recipe.Title)
				} else {
					ing.Category = CategorizeIngredient(ing.Ingredient)
					index[key] = &merged{item: ing, recipes: []string{recipe.Title}}
					order = append(order, key)
				}
			}
		}
	}

	items := make(models.ShoppingItems, 0, len(order))
	for _, key := range order {
		m := index[key]
		m.item.RecipeName = strings.Join(dedupe(m.recipes), ", ")
		items = append(items, m.item)
	}

	if name == "" {
		name = fmt.Sprintf("Shopping List %s - %s", start.Format("Jan 2"), end.Format("Jan 2"))
	}
	list := models.ShoppingList{
		UserID:    userID,
		Name:      name,
		Items:     items,
		StartDate: &start,
		EndDate:   &end,
	}
	if err := s.db.WithContext(ctx).Create(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

var ingredientLine = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(\w+)?\s+(.+)$`)

// ParseIngredients splits a free-text ingredients field into items,
// best-effort extracting "<quantity> <unit> <name>" from each line and
// scaling quantities by servings. Lines without a leading quantity become
// single items.
func ParseIngredients(text string, servings int) []models.ShoppingItem {
	if servings < 1 {
		servings = 1
	}
	var items []models.ShoppingItem
	for _, raw := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == ',' }) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if m := ingredientLine.FindStringSubmatch(line); m != nil {
			qty, _ := strconv.ParseFloat(m[1], 64)
			unit := m[2]
			if unit == "" {
				unit = "item"
			}
			items = append(items, models.ShoppingItem{
				Ingredient: strings.TrimSpace(m[3]),
				Quantity:   formatQuantity(qty * float64(servings)),
				Unit:       unit,
			})
		} else {
			items = append(items, models.ShoppingItem{
				Ingredient: line,
				Quantity:   strconv.Itoa(servings),
				Unit:       "item",
			})
		}
	}
	return items
}

var aislePatterns = []struct {
	category string
	pattern  *regexp.Regexp
}{
	{"produce", regexp.MustCompile(`tomato|onion|garlic|carrot|potato|spinach|lettuce|cucumber|pepper|mushroom|broccoli|cauliflower`)},
	{"dairy", regexp.MustCompile(`milk|cheese|butter|yogurt|cream|egg`)},
	{"meat", regexp.MustCompile(`chicken|beef|pork|fish|turkey|lamb|bacon|sausage`)},
	{"bakery", regexp.MustCompile(`bread|bagel|muffin|cake|cookie`)},
	{"frozen", regexp.MustCompile(`frozen|ice`)},
	{"pantry", regexp.MustCompile(`flour|sugar|salt|oil|vinegar|sauce|spice|herb|rice|pasta`)},
}

// CategorizeIngredient assigns a store aisle by keyword match.
func CategorizeIngredient(ingredient string) string {
	name := strings.ToLower(ingredient)
	for _, aisle := range aislePatterns {
		if aisle.pattern.MatchString(name) {
			return aisle.category
		}
	}
	return "other"
}

func combineQuantities(a, b string) string {
	qa, _ := strconv.ParseFloat(a, 64)
	qb, _ := strconv.ParseFloat(b, 64)
	return formatQuantity(qa + qb)
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
