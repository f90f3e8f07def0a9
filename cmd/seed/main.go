package main

import (
	"log"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/platefuel/backend/config"
	"github.com/platefuel/backend/internal/database"
	"github.com/platefuel/backend/internal/models"
)

// Seeds a development database with a demo user and a handful of recipes
// covering the cuisines, categories and difficulties the search filters
// expose. Safe to re-run: existing rows are left alone.
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	user, err := seedUser(db)
	if err != nil {
		logger.Fatal("failed to seed user", zap.Error(err))
	}

	created := 0
	for _, recipe := range sampleRecipes() {
		var existing models.Recipe
		err := db.Where("title = ?", recipe.Title).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			logger.Fatal("failed to check recipe", zap.String("title", recipe.Title), zap.Error(err))
		}

		recipe.UserID = user.ID
		if err := db.Create(&recipe).Error; err != nil {
			logger.Fatal("failed to create recipe", zap.String("title", recipe.Title), zap.Error(err))
		}
		created++
	}

	logger.Info("seed complete", zap.Int("recipes_created", created))
}

func seedUser(db *gorm.DB) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", "demo@platefuel.dev").First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = models.User{
		Name:         "Demo Chef",
		Email:        "demo@platefuel.dev",
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func sampleRecipes() []models.Recipe {
	return []models.Recipe{
		{
			Title:       "Classic Margherita Pizza",
			Ingredients: "500g pizza dough\n200g tomato sauce\n250g fresh mozzarella\n1 bunch fresh basil\n2 tbsp olive oil",
			Steps:       "Preheat oven to 250C.\nStretch the dough into a round.\nSpread the sauce and tear over the mozzarella.\nBake 8-10 minutes, finish with basil and oil.",
			Cuisine:     "Italian",
			PrepTime:    "20 minutes",
			CookTime:    "10 minutes",
			Servings:    4,
			Difficulty:  "Easy",
			Tags:        "pizza, weeknight, vegetarian",
			Category:    "Dinner",
			Vegetarian:  "Yes",
		},
		{
			Title:       "Chicken Tikka Masala",
			Ingredients: "600g chicken thighs\n200g yogurt\n2 tbsp garam masala\n400g crushed tomatoes\n200ml cream\n1 onion\n3 cloves garlic",
			Steps:       "Marinate the chicken in yogurt and spices for an hour.\nChar the chicken under a grill.\nSimmer the sauce, add the chicken and finish with cream.",
			Cuisine:     "Indian",
			PrepTime:    "1 hour 15 minutes",
			CookTime:    "40 minutes",
			Servings:    4,
			Difficulty:  "Medium",
			Tags:        "curry, comfort food",
			Category:    "Dinner",
			Vegetarian:  "No",
		},
		{
			Title:       "Vegetable Fried Rice",
			Ingredients: "3 cups cooked rice\n2 eggs\n1 cup mixed vegetables\n3 tbsp soy sauce\n2 spring onions\n1 tbsp sesame oil",
			Steps:       "Scramble the eggs and set aside.\nStir-fry the vegetables over high heat.\nAdd the rice, soy sauce and eggs, toss until hot.",
			Cuisine:     "Chinese",
			PrepTime:    "10 minutes",
			CookTime:    "15 minutes",
			Servings:    2,
			Difficulty:  "Easy",
			Tags:        "rice, quick, leftovers",
			Category:    "Lunch",
			Vegetarian:  "Yes",
		},
		{
			Title:       "Beef Bourguignon",
			Ingredients: "1kg beef chuck\n750ml red wine\n200g bacon lardons\n300g pearl onions\n400g mushrooms\n2 carrots\nbeef stock",
			Steps:       "Brown the beef in batches.\nRender the bacon, soften the vegetables.\nDeglaze with wine, return the beef and braise 3 hours.",
			Cuisine:     "French",
			PrepTime:    "45 minutes",
			CookTime:    "3 hours",
			Servings:    6,
			Difficulty:  "Hard",
			Tags:        "braise, special occasion",
			Category:    "Dinner",
			Vegetarian:  "No",
		},
		{
			Title:       "Avocado Toast with Poached Eggs",
			Ingredients: "2 slices sourdough\n1 ripe avocado\n2 eggs\n1 tbsp vinegar\nchili flakes\nlemon juice",
			Steps:       "Toast the bread.\nMash the avocado with lemon and salt.\nPoach the eggs in barely simmering water with vinegar.\nAssemble and top with chili flakes.",
			Cuisine:     "American",
			PrepTime:    "5 minutes",
			CookTime:    "10 minutes",
			Servings:    1,
			Difficulty:  "Easy",
			Tags:        "breakfast, eggs, quick",
			Category:    "Breakfast",
			Vegetarian:  "Yes",
		},
		{
			Title:       "Miso Ramen",
			Ingredients: "4 portions ramen noodles\n4 tbsp miso paste\n1.5l chicken stock\n2 soft-boiled eggs\n200g chashu pork\nnori\nspring onions",
			Steps:       "Warm the stock and whisk in the miso.\nCook the noodles separately.\nAssemble bowls with noodles, broth and toppings.",
			Cuisine:     "Japanese",
			PrepTime:    "30 minutes",
			CookTime:    "20 minutes",
			Servings:    4,
			Difficulty:  "Medium",
			Tags:        "noodles, soup",
			Category:    "Dinner",
			Vegetarian:  "No",
		},
		{
			Title:       "Greek Salad",
			Ingredients: "4 tomatoes\n1 cucumber\n1 red onion\n200g feta\n100g kalamata olives\nolive oil\ndried oregano",
			Steps:       "Chop the vegetables into chunks.\nToss with olives and oil.\nTop with feta and oregano.",
			Cuisine:     "Greek",
			PrepTime:    "15 minutes",
			CookTime:    "0 minutes",
			Servings:    4,
			Difficulty:  "Easy",
			Tags:        "salad, fresh, no-cook",
			Category:    "Lunch",
			Vegetarian:  "Yes",
		},
		{
			Title:       "Chocolate Lava Cake",
			Ingredients: "200g dark chocolate\n100g butter\n3 eggs\n80g sugar\n40g flour\nbutter for the moulds",
			Steps:       "Melt the chocolate and butter.\nWhisk eggs and sugar until pale, fold everything together.\nBake in buttered moulds at 200C for 12 minutes.",
			Cuisine:     "French",
			PrepTime:    "20 minutes",
			CookTime:    "12 minutes",
			Servings:    4,
			Difficulty:  "Medium",
			Tags:        "dessert, chocolate",
			Category:    "Dessert",
			Vegetarian:  "Yes",
		},
	}
}
