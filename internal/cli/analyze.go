package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"seo-content-go/pkg/csvparse"
	"seo-content-go/pkg/keyword"
)

var (
	analyzeTop    int
	analyzeFormat string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <export.csv>",
	Short: "Parse a keyword export and rank and cluster its keywords",
	Long: `Parses a keyword export in any of the common encodings and delimiters, repairs
broken rows, then prints the priority ranking and the intent clusters.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeTop, "top", "n", 0, "number of top keywords (default from config)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(analyzeCmd)
}

type analyzeReport struct {
	File     string           `json:"file"`
	Report   csvparse.Report  `json:"report"`
	Analysis keyword.Analysis `json:"analysis"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := validateFormat(analyzeFormat); err != nil {
		return err
	}

	records, report, err := csvparse.NewParser().ParseFile(args[0])
	if err != nil {
		return err
	}

	top := analyzeTop
	if top <= 0 {
		top = cfg.Ranker.TopN
	}
	result := analyzeReport{
		File:     args[0],
		Report:   report,
		Analysis: keyword.Analyze(records, top),
	}

	if analyzeFormat != formatText {
		return writeStructured(cmd.OutOrStdout(), analyzeFormat, result)
	}
	printAnalysis(cmd.OutOrStdout(), result)
	return nil
}

func printAnalysis(w io.Writer, r analyzeReport) {
	fmt.Fprintf(w, "File: %s (%s, delimiter %q)\n", r.File, r.Report.Encoding, r.Report.Delimiter)
	fmt.Fprintf(w, "Rows: %d parsed, %d skipped\n", r.Report.Parsed, r.Report.Skipped)
	if r.Analysis.TotalKeywords == 0 {
		fmt.Fprintln(w, "No keywords found.")
		return
	}

	fmt.Fprintf(w, "Main keyword: %s\n", r.Analysis.MainKeyword)
	fmt.Fprintf(w, "Total volume: %d\n\n", r.Analysis.TotalVolume)

	fmt.Fprintln(w, "Top keywords:")
	for i, s := range r.Analysis.TopKeywords {
		fmt.Fprintf(w, "%3d. %-40s vol %-7d kd %-3d priority %.1f\n",
			i+1, s.Keyword, s.Volume, s.Difficulty, s.Priority)
	}

	fmt.Fprintln(w, "\nClusters:")
	for _, name := range keyword.ClusterOrder {
		members := r.Analysis.Clusters[name]
		if len(members) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-8s %s\n", name, strings.Join(keyword.Keywords(members), ", "))
	}
}
