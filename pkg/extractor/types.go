package extractor

// Section is a second-level heading of the generated page.
type Section struct {
	Heading string `json:"heading"`
}

// FAQItem is one question and answer pair of the FAQ block.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ExtractedContent is the structured view of one generated text. Content always holds
// the input verbatim; every other field is best effort and may be empty.
type ExtractedContent struct {
	Content         string    `json:"content"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	Heading         string    `json:"heading"`
	Sections        []Section `json:"sections"`
	FAQ             []FAQItem `json:"faq"`
	Keywords        []string  `json:"keywords"`
}

// Filter post-processes the keyword list found after the keywords marker.
type Filter interface {
	Apply(keywords []string) []string
	Name() string
}
