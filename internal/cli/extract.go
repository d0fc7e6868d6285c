package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"seo-content-go/pkg/extractor"
)

var (
	extractKeywords []string
	extractFormat   string
)

var extractCmd = &cobra.Command{
	Use:   "extract [generated.md]",
	Short: "Extract meta fields, headings, FAQ and keywords from generated text",
	Long: `Reads generated markdown from a file, or from stdin when the file is "-" or
omitted, and prints the structured fields found in it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringSliceVarP(&extractKeywords, "keywords", "k", nil, "fallback keywords when the text has no keyword list")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if err := validateFormat(extractFormat); err != nil {
		return err
	}

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	raw, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	ext := extractor.NewExtractor()
	ext.SetFallbackCount(cfg.Extractor.FallbackKeywords)
	content := ext.Extract(raw, extractKeywords)

	if extractFormat != formatText {
		return writeStructured(cmd.OutOrStdout(), extractFormat, content)
	}
	printExtracted(cmd.OutOrStdout(), content)
	return nil
}

// readInput reads path, or stdin for "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func printExtracted(w io.Writer, c extractor.ExtractedContent) {
	fmt.Fprintf(w, "Meta title:       %s\n", c.MetaTitle)
	fmt.Fprintf(w, "Meta description: %s\n", c.MetaDescription)
	fmt.Fprintf(w, "H1:               %s\n", c.Heading)
	if len(c.Sections) > 0 {
		fmt.Fprintln(w, "Sections:")
		for _, s := range c.Sections {
			fmt.Fprintf(w, "  - %s\n", s.Heading)
		}
	}
	if len(c.FAQ) > 0 {
		fmt.Fprintln(w, "FAQ:")
		for _, f := range c.FAQ {
			fmt.Fprintf(w, "  Q: %s\n  A: %s\n", f.Question, f.Answer)
		}
	}
	fmt.Fprintf(w, "Keywords: %v\n", c.Keywords)
}
