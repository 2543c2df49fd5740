package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pageza/harvestplan/backend/internal/timeline"
)

func (a *app) timelineCmd() *cobra.Command {
	var dishesPath, date, serve string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Schedule holiday dishes backward from serving time",
		RunE: func(cmd *cobra.Command, args []string) error {
			eventDate, err := time.ParseInLocation(dateLayout, date, time.Local)
			if err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}
			dishes, err := loadDishes(dishesPath)
			if err != nil {
				return err
			}
			tl, err := timeline.Build(dishes, eventDate, serve)
			if err != nil {
				return err
			}

			text, err := a.textOutput()
			if err != nil {
				return err
			}
			if !text {
				return writeJSON(a, tl)
			}
			return a.printTimeline(tl)
		},
	}

	cmd.Flags().StringVar(&dishesPath, "dishes", "", "dishes JSON file")
	cmd.Flags().StringVar(&date, "date", "", "event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&serve, "serve", "", "serving time (HH:MM, 24h)")
	_ = cmd.MarkFlagRequired("dishes")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("serve")
	return cmd
}

func (a *app) printTimeline(tl timeline.Timeline) error {
	if len(tl.MakeAhead) > 0 {
		fmt.Fprintln(a.out, "Make ahead:")
		for _, m := range tl.MakeAhead {
			fmt.Fprintf(a.out, "  %s  %s (%s)\n", m.DoByDate.Format("Mon Jan 2"), m.Name, m.When)
		}
	}
	fmt.Fprintf(a.out, "Day of, serving at %s:\n", tl.ServingTime)
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  START\tCOOK\tDONE\tDISH")
	for _, d := range tl.DayOf {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", d.StartTime, d.CookStartTime, d.EndTime, d.Name)
	}
	return w.Flush()
}
