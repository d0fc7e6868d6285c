package cli

import (
	"github.com/spf13/cobra"

	"seo-content-go/pkg/serp"
)

var (
	serpResults int
	serpFormat  string
)

var serpCmd = &cobra.Command{
	Use:   "serp <keyword>",
	Short: "Show the top search results for a keyword and how their titles are written",
	Args:  cobra.ExactArgs(1),
	RunE:  runSerp,
}

func init() {
	serpCmd.Flags().IntVarP(&serpResults, "results", "n", 0, "number of results (default from config)")
	serpCmd.Flags().StringVarP(&serpFormat, "format", "f", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(serpCmd)
}

func runSerp(cmd *cobra.Command, args []string) error {
	if err := validateFormat(serpFormat); err != nil {
		return err
	}

	limit := serpResults
	if limit <= 0 {
		limit = cfg.Serp.ResultsPerKeyword
	}

	insights, err := serp.CompetitorInsights(cmd.Context(), newSearcher(newHTTPClient()), args[0], limit)
	if err != nil {
		return err
	}

	if serpFormat != formatText {
		return writeStructured(cmd.OutOrStdout(), serpFormat, insights)
	}
	cmd.Print(insights.Markdown())
	return nil
}
