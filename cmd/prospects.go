package main

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/store"
)

var (
	listSourceType string
	listMinScore   int
	listLimit      int
)

var prospectsCmd = &cobra.Command{
	Use:   "prospects",
	Short: "Inspect persisted prospects",
}

var prospectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted prospects by fit score",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		prospects, err := st.ListProspects(ctx, store.ProspectFilter{
			SourceType: model.SourceType(listSourceType),
			MinScore:   listMinScore,
			Limit:      listLimit,
		})
		if err != nil {
			return err
		}
		if len(prospects) == 0 {
			zap.L().Info("no prospects found")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Score", "Name", "Title", "Organization", "Location", "Email", "Source"})
		for _, p := range prospects {
			t.AppendRow(table.Row{
				p.FitScore,
				p.Name,
				truncate(p.Title, 30),
				truncate(p.Organization, 30),
				truncate(p.Location, 24),
				p.Contact.Email,
				string(p.SourceType),
			})
		}
		t.Render()
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-1]) + "…"
}

func init() {
	prospectsListCmd.Flags().StringVar(&listSourceType, "source-type", "", "filter by source type")
	prospectsListCmd.Flags().IntVar(&listMinScore, "min-score", 0, "minimum fit score")
	prospectsListCmd.Flags().IntVar(&listLimit, "limit", 50, "max rows")
	prospectsCmd.AddCommand(prospectsListCmd)
	rootCmd.AddCommand(prospectsCmd)
}
