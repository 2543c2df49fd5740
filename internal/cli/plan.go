package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pageza/harvestplan/backend/internal/model"
	"github.com/pageza/harvestplan/backend/internal/planner"
)

func (a *app) planCmd() *cobra.Command {
	var (
		recipesPath, inventoryPath, start string
		days                              int
		meals, cuisines, disliked         []string
		balance, top                      bool
		seed                              int64
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a meal plan from a recipe file",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.ParseInLocation(dateLayout, start, time.Local)
			if err != nil {
				return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
			}
			scorer, err := a.scorer()
			if err != nil {
				return err
			}
			recipes, err := loadRecipes(recipesPath)
			if err != nil {
				return err
			}
			var inventory []model.InventoryItem
			if inventoryPath != "" {
				if inventory, err = loadInventory(inventoryPath, startDate); err != nil {
					return err
				}
			}

			var random planner.RandomSource = planner.TopPick{}
			if !top {
				if !cmd.Flags().Changed("seed") {
					seed = time.Now().UnixNano()
				}
				random = planner.NewSeededSource(seed)
			}

			mealTypes := make([]model.MealType, len(meals))
			for i, m := range meals {
				mealTypes[i] = model.MealType(m)
			}

			plan, err := planner.NewGenerator(scorer, random).Generate(planner.Request{
				StartDate:       startDate,
				Days:            days,
				MealTypes:       mealTypes,
				Candidates:      recipes,
				Cuisines:        cuisines,
				Disliked:        disliked,
				BalanceCuisines: balance,
				Inventory:       inventory,
				Now:             startDate,
			})
			if err != nil {
				return err
			}

			text, err := a.textOutput()
			if err != nil {
				return err
			}
			if !text {
				return writeJSON(a, plan)
			}
			return a.printPlan(plan)
		},
	}

	cmd.Flags().StringVar(&recipesPath, "recipes", "", "recipes JSON file")
	cmd.Flags().StringVar(&inventoryPath, "inventory", "", "inventory JSON file; prefers recipes using expiring produce")
	cmd.Flags().StringVar(&start, "start", "", "first day of the plan (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 7, "number of days to plan")
	cmd.Flags().StringSliceVar(&meals, "meals", []string{string(model.MealDinner)}, "meal types to plan")
	cmd.Flags().StringSliceVar(&cuisines, "cuisines", nil, "only plan recipes from these cuisines")
	cmd.Flags().StringSliceVar(&disliked, "disliked", nil, "recipe names or IDs to leave out")
	cmd.Flags().BoolVar(&balance, "balance", false, "spread cuisines across the plan")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible plans")
	cmd.Flags().BoolVar(&top, "top", false, "always take the first top-scoring recipe")
	_ = cmd.MarkFlagRequired("recipes")
	_ = cmd.MarkFlagRequired("start")
	cmd.MarkFlagsMutuallyExclusive("seed", "top")
	return cmd
}

func (a *app) printPlan(plan planner.Plan) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tMEAL\tRECIPE\tSCORE\tNOTE")
	for _, s := range plan.Slots {
		name := s.RecipeName
		if s.RecipeID == nil {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", s.Date.Format("Mon 2006-01-02"), s.MealType, name, s.Score, s.Reason)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if plan.Unfilled > 0 {
		fmt.Fprintf(a.out, "%d slot(s) could not be filled\n", plan.Unfilled)
	}
	return nil
}
