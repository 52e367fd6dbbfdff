package model

// Source is a document cited by the final answer. IDs are 1-based and
// correspond to the [n] markers in the answer text.
type Source struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	URL    string   `json:"url"`
	Domain string   `json:"domain"`
	Date   string   `json:"published_date"`
	Quotes []string `json:"pull_quotes"` // at most four, each capped at 280 chars
}
