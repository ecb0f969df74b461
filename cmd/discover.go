package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/pipeline"
)

var (
	discoverLocation string
	discoverCategory string
	discoverRegions  []string
	discoverHint     string
	discoverLimit    int
)

// hintNames maps the --hint flag to source hints.
var hintNames = map[string]model.SourceHint{
	"":           model.HintUnknown,
	"directory":  model.HintDirectoryProfile,
	"registry":   model.HintClinicalRegistry,
	"treatment":  model.HintTreatmentProgram,
	"diplomatic": model.HintDiplomaticMission,
	"youth":      model.HintYouthActivityOrg,
}

var discoverCmd = &cobra.Command{
	Use:   "discover <query>",
	Short: "Run one discovery batch",
	Long:  "Searches for the query, fetches each candidate page, extracts and scores prospect records, and persists new ones.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		hint, ok := hintNames[discoverHint]
		if !ok {
			return fmt.Errorf("unknown --hint %q (want directory, registry, treatment, diplomatic, or youth)", discoverHint)
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		limit := discoverLimit
		if limit <= 0 {
			limit = cfg.Search.DefaultLimit
		}

		report, err := env.Pipeline.Run(ctx, pipeline.DiscoverRequest{
			Query:         args[0],
			Location:      discoverLocation,
			Category:      discoverCategory,
			TargetRegions: discoverRegions,
			SourceHint:    hint,
			Limit:         limit,
		})
		if err != nil {
			return err
		}

		printReport(report)
		return nil
	},
}

func printReport(r *model.BatchReport) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Candidates", "Fetched", "Blocked", "Skipped", "Saved", "Duplicates"})
	t.AppendRow(table.Row{r.Candidates, r.Fetched, r.Blocked, r.SkippedInvalid, r.Saved, r.Duplicates})
	t.Render()
}

func init() {
	discoverCmd.Flags().StringVar(&discoverLocation, "location", "", "target location appended to the query and used for geo scoring")
	discoverCmd.Flags().StringVar(&discoverCategory, "category", "", "prospect category, e.g. therapist or consultant")
	discoverCmd.Flags().StringSliceVar(&discoverRegions, "region", nil, "target regions for geo scoring (defaults to --location)")
	discoverCmd.Flags().StringVar(&discoverHint, "hint", "", "source hint: directory, registry, treatment, diplomatic, youth")
	discoverCmd.Flags().IntVar(&discoverLimit, "limit", 0, "max candidate links to fetch (default from config)")
	rootCmd.AddCommand(discoverCmd)
}
