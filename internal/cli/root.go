// Package cli implements mealctl, which runs the ranking, planning and
// timeline engines offline against JSON files.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pageza/harvestplan/backend/internal/produce"
)

const envPrefix = "MEALCTL"

type app struct {
	v       *viper.Viper
	cfgFile string
	out     io.Writer
}

// NewRootCmd builds the mealctl command tree writing results to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out}

	root := &cobra.Command{
		Use:   "mealctl",
		Short: "Rank, plan and schedule meals from local files",
		Long: `mealctl runs the harvest planner engines without a server. Inventory,
recipes and dishes are read from JSON files; results are printed as JSON or text.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.mealctl.yaml)")
	root.PersistentFlags().String("format", "json", "output format: json or text")
	root.PersistentFlags().Float64("weight-match", produce.DefaultWeights.Match, "weight of ingredient coverage")
	root.PersistentFlags().Float64("weight-urgency", produce.DefaultWeights.Urgency, "weight of expiring produce")
	root.PersistentFlags().Float64("weight-diversity", produce.DefaultWeights.Diversity, "weight of variety against history")
	root.PersistentFlags().Int("diversity-window", produce.DefaultDiversityWindow, "history entries the variety penalty considers")

	_ = a.v.BindPFlag("format", root.PersistentFlags().Lookup("format"))
	_ = a.v.BindPFlag("weights.match", root.PersistentFlags().Lookup("weight-match"))
	_ = a.v.BindPFlag("weights.urgency", root.PersistentFlags().Lookup("weight-urgency"))
	_ = a.v.BindPFlag("weights.diversity", root.PersistentFlags().Lookup("weight-diversity"))
	_ = a.v.BindPFlag("diversity_window", root.PersistentFlags().Lookup("diversity-window"))

	root.AddCommand(a.suggestCmd(), a.planCmd(), a.timelineCmd())
	return root
}

// Execute runs mealctl against os.Args.
func Execute() {
	if err := NewRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".mealctl")
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && a.cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", a.v.ConfigFileUsed())
	return nil
}

func (a *app) scorer() (*produce.Scorer, error) {
	w := produce.Weights{
		Match:     a.v.GetFloat64("weights.match"),
		Urgency:   a.v.GetFloat64("weights.urgency"),
		Diversity: a.v.GetFloat64("weights.diversity"),
	}
	if w.Match < 0 || w.Urgency < 0 || w.Diversity < 0 {
		return nil, fmt.Errorf("%w: weights must not be negative", produce.ErrInvalidInput)
	}
	return produce.NewScorer(produce.ScorerOptions{
		Weights:         w,
		DiversityWindow: a.v.GetInt("diversity_window"),
	}), nil
}

func (a *app) textOutput() (bool, error) {
	switch f := a.v.GetString("format"); f {
	case "json", "":
		return false, nil
	case "text":
		return true, nil
	default:
		return false, fmt.Errorf("unknown format %q", f)
	}
}
