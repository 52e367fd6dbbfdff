package model

// SearchResult is a single hit returned by the meta-search layer,
// before the page behind it has been fetched.
type SearchResult struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Snippet   string `json:"snippet,omitempty"`        // engine-provided excerpt
	Engine    string `json:"engine,omitempty"`         // engine that produced the hit
	Published string `json:"published_date,omitempty"` // normalized to YYYY-MM when parseable
	Domain    string `json:"domain"`
}

// Document is a fetched page with its main content extracted.
// Score is the composite relevance assigned by the ranker; zero until
// ranking has run.
type Document struct {
	URL       string  `json:"url"`
	Title     string  `json:"title"`
	Text      string  `json:"text"`
	Published string  `json:"published_date,omitempty"` // date guessed from page metadata, search fallback
	Domain    string  `json:"domain"`
	WordCount int     `json:"word_count"`
	Score     float64 `json:"score"`
}
