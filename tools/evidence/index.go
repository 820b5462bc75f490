package evidence

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve"

	"github.com/mohammad-safakhou/gazeta/models"
)

const (
	chunkApprox  = 1000
	chunkOverlap = 200
	snippetChars = 300
)

// DocChunk is one indexed slice of a collected source.
type DocChunk struct {
	DocID string `json:"doc_id"`
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Hit is one ranked result out of the evidence index.
type Hit struct {
	DocID   string  `json:"doc_id"`
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
	Rank    int     `json:"rank"`
}

// Index is an in-memory full-text index over collected sources. It is built
// per request from a NewsData record and thrown away afterwards.
type Index struct {
	bleve bleve.Index
	meta  map[string]DocChunk
	mu    sync.RWMutex
}

// NewIndex builds an index over every source in the given collection result.
func NewIndex(news models.NewsData) (*Index, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, err
	}
	idx := &Index{bleve: index, meta: make(map[string]DocChunk)}
	for i, src := range news.Sources {
		for j, text := range makeChunks(src.Content, chunkApprox, chunkOverlap) {
			if text == "" {
				continue
			}
			chunk := DocChunk{
				DocID: fmt.Sprintf("%s:%d:%d", news.ID, i, j),
				URL:   src.URL,
				Title: src.Title,
				Text:  text,
			}
			if err := idx.add(chunk); err != nil {
				return nil, err
			}
		}
	}
	return idx, nil
}

func (idx *Index) add(chunk DocChunk) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.meta[chunk.DocID] = chunk
	return idx.bleve.Index(chunk.DocID, chunk)
}

// Search runs a query-string query and returns at most k ranked hits.
func (idx *Index) Search(q string, k int) ([]Hit, error) {
	query := bleve.NewQueryStringQuery(q)
	searchReq := bleve.NewSearchRequestOptions(query, k*3, 0, false)
	res, err := idx.bleve.Search(searchReq)
	if err != nil {
		return nil, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()
	var out []Hit
	for i, hit := range res.Hits {
		doc := idx.meta[hit.ID]
		out = append(out, Hit{
			DocID: hit.ID, URL: doc.URL, Title: doc.Title,
			Snippet: snippet(doc.Text),
			Score:   hit.Score, Rank: i + 1,
		})
		if len(out) >= k {
			break
		}
	}
	return out, nil
}

func makeChunks(text string, approx, overlap int) []string {
	text = strings.TrimSpace(text)
	if len(text) <= approx {
		return []string{text}
	}
	var chunks []string
	for start := 0; start < len(text); {
		end := start + approx
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
		start = end - overlap
		if start < 0 {
			start = 0
		}
	}
	return chunks
}

func snippet(s string) string {
	if len(s) <= snippetChars {
		return s
	}
	return s[:snippetChars] + "…"
}
