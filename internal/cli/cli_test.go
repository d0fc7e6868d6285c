package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seo-content-go/pkg/csvparse"
)

const testExport = "Keyword;Volume;KD;KO\n" +
	"costumi da nuoto;12.000;35;80\n" +
	"prezzo costumi;900;20;50\n"

const testGenerated = `**Meta Title:** Costumi da Nuoto - Shop
**Meta Description:** Costumi per piscina e mare.

# Costumi da Nuoto

## Modelli

## FAQ

**Che taglia scelgo?**
Quella abituale.

**SEO Keywords:** costumi da nuoto, costumi piscina
`

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SEOCONTENT_LOGGER_LEVEL", "disabled")
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootRegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"analyze", "scrape", "serp", "extract", "run"} {
		assert.True(t, names[want], want)
	}
}

func TestAnalyzeText(t *testing.T) {
	out, err := execute(t, "", "analyze", writeFile(t, "kw.csv", testExport))
	require.NoError(t, err)
	assert.Contains(t, out, "Main keyword: costumi da nuoto")
	assert.Contains(t, out, "Total volume: 12900")
	assert.Contains(t, out, "price    prezzo costumi")
}

func TestAnalyzeJSON(t *testing.T) {
	out, err := execute(t, "", "analyze", writeFile(t, "kw.csv", testExport), "--format", "json", "-n", "1")
	require.NoError(t, err)

	var got struct {
		Report struct {
			Parsed    int    `json:"parsed"`
			Delimiter string `json:"delimiter"`
		} `json:"report"`
		Analysis struct {
			MainKeyword string            `json:"main_keyword"`
			TopKeywords []json.RawMessage `json:"top_keywords"`
		} `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Report.Parsed)
	assert.Equal(t, ";", got.Report.Delimiter)
	assert.Equal(t, "costumi da nuoto", got.Analysis.MainKeyword)
	assert.Len(t, got.Analysis.TopKeywords, 1)
}

func TestAnalyzeYAML(t *testing.T) {
	out, err := execute(t, "", "analyze", writeFile(t, "kw.csv", testExport), "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "report:")
	assert.Contains(t, out, "encoding: utf-8")
}

func TestAnalyzeErrors(t *testing.T) {
	_, err := execute(t, "", "analyze", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, csvparse.ErrFileNotFound)

	_, err = execute(t, "", "analyze", writeFile(t, "kw.csv", testExport), "-f", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	_, err = execute(t, "", "analyze")
	assert.ErrorContains(t, err, "accepts 1 arg(s)")
}

func TestExtractFromStdin(t *testing.T) {
	out, err := execute(t, testGenerated, "extract", "-f", "json")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Costumi da Nuoto - Shop", got["meta_title"])
	assert.Equal(t, "Costumi da Nuoto", got["heading"])
	assert.Len(t, got["faq"], 1)
}

func TestExtractFallbackKeywords(t *testing.T) {
	out, err := execute(t, "", "extract", writeFile(t, "gen.md", "# Solo titolo\n"), "-k", "pinne,maschere")
	require.NoError(t, err)
	assert.Contains(t, out, "H1:               Solo titolo")
	assert.Contains(t, out, "Keywords: [pinne maschere]")
}

func TestScrapeLocalMarkup(t *testing.T) {
	markup := `<html><body class="woocommerce">
<h2 class="woocommerce-loop-product__title">Costume Intero</h2>
<h2 class="woocommerce-loop-product__title">Bikini Fascia</h2>
<h2 class="woocommerce-loop-product__title">Costume Sportivo</h2>
</body></html>`
	out, err := execute(t, "", "scrape", "https://shop.example/costumi", "--html", writeFile(t, "page.html", markup))
	require.NoError(t, err)
	assert.Contains(t, out, "Platform: woocommerce")
	assert.Contains(t, out, "Selector: .woocommerce-loop-product__title")
	assert.Contains(t, out, "  2. Bikini Fascia")
}

func TestScrapeYAMLUsesJSONKeys(t *testing.T) {
	markup := `<html><body class="woocommerce">
<h2 class="woocommerce-loop-product__title">Costume Intero</h2>
<h2 class="woocommerce-loop-product__title">Bikini Fascia</h2>
<h2 class="woocommerce-loop-product__title">Costume Sportivo</h2>
</body></html>`
	out, err := execute(t, "", "scrape", "https://shop.example/costumi",
		"--html", writeFile(t, "page.html", markup), "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "platform_detected: woocommerce\n")
	assert.Contains(t, out, "selector_used: .woocommerce-loop-product__title\n")
	assert.Contains(t, out, "  - Bikini Fascia\n")
	assert.NotContains(t, out, "selectorused")
	assert.NotContains(t, out, "{")
}

func TestExtractYAMLUsesJSONKeys(t *testing.T) {
	out, err := execute(t, testGenerated, "extract", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "meta_title: Costumi da Nuoto - Shop\n")
	assert.NotContains(t, out, "metatitle")
}

func TestRunPromptOnly(t *testing.T) {
	out, err := execute(t, "", "run",
		"--csv", writeFile(t, "kw.csv", testExport),
		"--keyword", "costumi da nuoto",
		"--products", "Costume Intero,Bikini Fascia",
		"--no-serp", "--no-scrape", "--prompt-only")
	require.NoError(t, err)
	assert.Contains(t, out, "## REQUEST")
	assert.Contains(t, out, "- Bikini Fascia")
	assert.Contains(t, out, "| prezzo costumi | 900 |")
}

func TestRunWithGeneratedText(t *testing.T) {
	outputDir := t.TempDir()
	t.Setenv("SEOCONTENT_STORAGE_OUTPUT_DIR", outputDir)
	promptPath := filepath.Join(t.TempDir(), "prompt.md")

	out, err := execute(t, testGenerated, "run",
		"--csv", writeFile(t, "kw.csv", testExport),
		"--keyword", "costumi da nuoto",
		"--no-serp", "--no-scrape",
		"--generated", "-",
		"--prompt-out", promptPath,
		"--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Meta title:       Costumi da Nuoto - Shop")
	assert.Contains(t, out, "Saved as ")

	prompt, err := os.ReadFile(promptPath)
	require.NoError(t, err)
	assert.Contains(t, string(prompt), "**costumi da nuoto**")

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRunRequiresGeneratedOrPromptOnly(t *testing.T) {
	_, err := execute(t, "", "run", "--csv", "x.csv", "--keyword", "k")
	assert.ErrorContains(t, err, "--generated or --prompt-only")

	_, err = execute(t, "", "run", "--keyword", "k")
	assert.ErrorContains(t, err, `required flag(s) "csv" not set`)
}

func TestEnvFileOverridesConfig(t *testing.T) {
	t.Cleanup(func() { _ = os.Unsetenv("SEOCONTENT_STORAGE_DRIVER") })
	envPath := writeFile(t, "test.env", "SEOCONTENT_STORAGE_DRIVER=ftp\n")

	_, err := execute(t, "", "analyze", writeFile(t, "kw.csv", testExport), "--env-file", envPath)
	assert.ErrorContains(t, err, "storage.driver")
}

func TestMissingEnvFile(t *testing.T) {
	_, err := execute(t, "", "analyze", writeFile(t, "kw.csv", testExport),
		"--env-file", filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "failed to load env file")
}
