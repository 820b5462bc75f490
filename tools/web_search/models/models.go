package models

// Result is one raw hit from a search engine. Title may be empty when the
// engine does not supply one.
type Result struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}
