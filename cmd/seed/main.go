package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/pageza/harvestplan/backend/config"
	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/database"
	"github.com/pageza/harvestplan/backend/internal/service"
	"github.com/pageza/harvestplan/backend/internal/types"
)

var sampleRecipes = []types.RecipeRequest{
	{Name: "Kale and White Bean Soup", Cuisine: "Italian", MealType: "dinner", IngredientLines: []string{
		"1 bunch kale, stemmed", "1 can white beans", "1 onion, diced", "2 cloves garlic", "4 cups stock",
	}},
	{Name: "Spinach Omelette", Cuisine: "French", MealType: "breakfast", IngredientLines: []string{
		"3 eggs", "1 handful spinach", "1 tbsp butter",
	}},
	{Name: "Green Curry", Cuisine: "Thai", MealType: "dinner", IngredientLines: []string{
		"1 can coconut milk", "2 tbsp green curry paste", "1 zucchini, sliced", "1 red bell pepper", "basil",
	}},
	{Name: "Roasted Vegetable Tacos", Cuisine: "Mexican", MealType: "dinner", IngredientLines: []string{
		"1 sweet potato, cubed", "1 red onion", "8 tortillas", "1 avocado", "cilantro", "1 lime",
	}},
	{Name: "Berry Yogurt Bowl", Cuisine: "American", MealType: "breakfast", IngredientLines: []string{
		"1 cup yogurt", "1 handful strawberries", "granola",
	}},
	{Name: "Caprese Sandwich", Cuisine: "Italian", MealType: "lunch", IngredientLines: []string{
		"2 tomatoes, sliced", "mozzarella", "basil", "1 baguette",
	}},
}

const sampleInventory = `kale, 1 bunch; 4
spinach, 200 g; 3
strawberries, 1 pint; 2
zucchini, 2; 6
tomatoes, 4; 5
basil, 1 bunch; 3
eggs, 12; 21
yogurt, 500 g; 10
sweet potato, 2; 21`

func main() {
	email := flag.String("email", "demo@harvestplan.local", "Household login to seed")
	password := flag.String("password", "harvest-demo", "Password for a newly created household")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	ctx := context.Background()
	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	user, _, err := auth.Register(ctx, &types.RegisterRequest{Name: "Demo Household", Email: *email, Password: *password})
	if errors.Is(err, apperr.ErrConflict) {
		log.Printf("Household %s already exists, logging in", *email)
		user, _, err = auth.Login(ctx, *email, *password)
	}
	if err != nil {
		log.Fatalf("failed to prepare household: %v", err)
	}

	recipes := service.NewRecipeService(db)
	for i := range sampleRecipes {
		if _, err := recipes.CreateRecipe(ctx, user.ID, &sampleRecipes[i]); err != nil {
			log.Fatalf("failed to create recipe %q: %v", sampleRecipes[i].Name, err)
		}
	}
	log.Printf("Created %d recipes", len(sampleRecipes))

	inventory := service.NewInventoryService(db, time.Now)
	res, err := inventory.BulkCreate(ctx, user.ID, &types.BulkInventoryRequest{Text: sampleInventory})
	if err != nil {
		log.Fatalf("failed to add inventory: %v", err)
	}
	log.Printf("Added %d inventory items (%d rejected)", len(res.Created), len(res.Rejected))

	events := service.NewEventService(db, time.Local)
	thanksgiving := nextThanksgiving(time.Now())
	if _, err := events.CreateEvent(ctx, user.ID, &types.EventRequest{
		Name:        "Thanksgiving",
		EventDate:   thanksgiving.Format("2006-01-02"),
		ServingTime: "17:00",
		Dishes: []types.DishRequest{
			{Name: "Turkey", Category: "main", PrepTimeMinutes: 30, CookTimeMinutes: 180},
			{Name: "Mashed Potatoes", Category: "side", PrepTimeMinutes: 20, CookTimeMinutes: 25},
			{Name: "Dinner Rolls", Category: "side", PrepTimeMinutes: 5, CookTimeMinutes: 20},
			{Name: "Pumpkin Pie", Category: "dessert", PrepTimeMinutes: 30, CookTimeMinutes: 60, CanMakeAhead: true, MakeAheadLeadDays: 1},
			{Name: "Cranberry Sauce", Category: "side", PrepTimeMinutes: 5, CookTimeMinutes: 15, CanMakeAhead: true, MakeAheadLeadDays: 3},
		},
	}); err != nil {
		log.Fatalf("failed to create event: %v", err)
	}
	log.Printf("Created Thanksgiving event on %s", thanksgiving.Format("Mon Jan 2"))
	log.Printf("Seed complete for %s", strings.ToLower(*email))
}

// nextThanksgiving returns the fourth Thursday of November on or after now.
func nextThanksgiving(now time.Time) time.Time {
	for year := now.Year(); ; year++ {
		d := time.Date(year, time.November, 1, 0, 0, 0, 0, now.Location())
		for d.Weekday() != time.Thursday {
			d = d.AddDate(0, 0, 1)
		}
		d = d.AddDate(0, 0, 21)
		if !d.Before(now.Truncate(24 * time.Hour)) {
			return d
		}
	}
}
