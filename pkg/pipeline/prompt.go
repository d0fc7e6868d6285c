package pipeline

import (
	"fmt"
	"strings"

	"seo-content-go/pkg/keyword"
	"seo-content-go/pkg/serp"
)

const (
	promptSerpItems       = 10
	promptSerpDescription = 100
	promptKeywordRows     = 30
)

// Brief is everything the generator is told about a category.
type Brief struct {
	Input    CategoryInput
	Analysis keyword.Analysis
	Records  []keyword.Record
	Products []string
	Serp     []serp.SerpResult
	Titles   serp.TitleAnalysis
}

// outputFormat is the markdown layout the extractor understands.
const outputFormat = `## OUTPUT FORMAT
Return markdown only, in this layout:

**Meta Title:** [max 60 characters, main keyword first]
**Meta Description:** [max 155 characters]

---

# [H1 with the main keyword]

[Intro of 60-80 words with the parent category link]

## [H2 for a keyword cluster]

[Section text]

---

## FAQ

**[Question from user queries]**
[Answer, max 40 words]

---

**SEO Keywords:** [comma separated keywords]
`

// BuildPrompt renders b as the generation request.
func BuildPrompt(b Brief) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## REQUEST\nWrite the SEO content for the category: **%s**\n", b.Input.Keyword)

	if b.Input.ParentURL != "" && b.Input.ParentName != "" {
		fmt.Fprintf(&sb, "\n## INTERNAL LINK\nPut this link in the first paragraph:\n`<a href=\"%s\">%s</a>`\n",
			b.Input.ParentURL, b.Input.ParentName)
	}

	sb.WriteString("\n## PRODUCTS ON THE PAGE (mention at least 3)\n")
	if len(b.Products) == 0 {
		sb.WriteString("No products provided\n")
	}
	for _, p := range b.Products {
		fmt.Fprintf(&sb, "- %s\n", p)
	}

	sb.WriteString("\n## TARGET QUERIES\n")
	if len(b.Records) == 0 {
		sb.WriteString("No queries provided\n")
	} else {
		rows := b.Records
		if len(rows) > promptKeywordRows {
			rows = rows[:promptKeywordRows]
		}
		sb.WriteString(keyword.FormatTable(rows))
		sb.WriteString("\n")
		writeClusters(&sb, b.Analysis)
	}

	fmt.Fprintf(&sb, "\n## SERP: TOP RESULTS FOR %q\n", b.Input.Keyword)
	if len(b.Serp) == 0 {
		sb.WriteString("No SERP data available\n")
	}
	for i, r := range b.Serp {
		if i == promptSerpItems {
			break
		}
		fmt.Fprintf(&sb, "%d. **%s**\n   URL: %s\n", i+1, r.Title, r.URL)
		if r.Description != "" {
			fmt.Fprintf(&sb, "   %s\n", serp.Truncate(r.Description, promptSerpDescription))
		}
	}
	if len(b.Titles.Patterns) > 0 {
		fmt.Fprintf(&sb, "Title patterns: %s\n", strings.Join(b.Titles.Patterns, "; "))
	}

	sb.WriteString("\n")
	sb.WriteString(outputFormat)
	return sb.String()
}

func writeClusters(sb *strings.Builder, a keyword.Analysis) {
	for _, name := range keyword.ClusterOrder {
		members := a.Clusters[name]
		if len(members) == 0 {
			continue
		}
		fmt.Fprintf(sb, "- %s: %s\n", name, strings.Join(keyword.Keywords(members), ", "))
	}
}
