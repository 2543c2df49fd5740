package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pageza/harvestplan/backend/internal/produce"
)

type suggestOutput struct {
	Now         time.Time                  `json:"now"`
	Suggestions []produce.RankedSuggestion `json:"suggestions"`
	Skipped     []string                   `json:"skipped,omitempty"`
}

func (a *app) suggestCmd() *cobra.Command {
	var (
		inventoryPath, recipesPath, historyPath, nowFlag string
		limit                                             int
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Rank recipes by how well they use expiring produce",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if nowFlag != "" {
				t, err := parseInstant("now", nowFlag, time.Local)
				if err != nil {
					return err
				}
				now = t
			}

			scorer, err := a.scorer()
			if err != nil {
				return err
			}
			inventory, err := loadInventory(inventoryPath, now)
			if err != nil {
				return err
			}
			recipes, err := loadRecipes(recipesPath)
			if err != nil {
				return err
			}
			history, err := loadHistory(historyPath)
			if err != nil {
				return err
			}

			ranked, problems := scorer.Rank(recipes, inventory, history, now)
			if limit > 0 && len(ranked) > limit {
				ranked = ranked[:limit]
			}
			out := suggestOutput{Now: now, Suggestions: ranked}
			for _, p := range problems {
				out.Skipped = append(out.Skipped, p.Error())
			}

			text, err := a.textOutput()
			if err != nil {
				return err
			}
			if !text {
				return writeJSON(a, out)
			}
			return a.printSuggestions(out)
		},
	}

	cmd.Flags().StringVar(&inventoryPath, "inventory", "", "inventory JSON file")
	cmd.Flags().StringVar(&recipesPath, "recipes", "", "recipes JSON file")
	cmd.Flags().StringVar(&historyPath, "history", "", "recent suggestions JSON file, oldest first")
	cmd.Flags().StringVar(&nowFlag, "now", "", "evaluate as of this date or RFC3339 time")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum suggestions to print (0 for all)")
	_ = cmd.MarkFlagRequired("inventory")
	_ = cmd.MarkFlagRequired("recipes")
	return cmd
}

func (a *app) printSuggestions(out suggestOutput) error {
	if len(out.Suggestions) == 0 {
		fmt.Fprintln(a.out, "No recipes use anything in the inventory.")
	} else {
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tSCORE\tRECIPE\tEXPIRING\tMISSING")
		for i, s := range out.Suggestions {
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", i+1, s.TotalScore, s.RecipeName,
				strings.Join(s.ExpiringMatchedIngredients, ", "), strings.Join(s.MissingIngredients, ", "))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	for _, s := range out.Skipped {
		fmt.Fprintf(a.out, "skipped: %s\n", s)
	}
	return nil
}
