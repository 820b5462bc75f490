package evidence

import (
	"strings"
	"testing"

	"github.com/mohammad-safakhou/gazeta/models"
)

func TestSearchRanksMatchingSource(t *testing.T) {
	news := models.NewsData{
		ID:      "n1",
		TopicID: "t1",
		Sources: []models.NewsSource{
			{URL: "https://example.com/fusion", Title: "Fusion", Content: "A breakthrough in fusion energy research was announced today."},
			{URL: "https://example.com/markets", Title: "Markets", Content: "Stock markets closed mixed after a quiet trading session."},
		},
	}
	idx, err := NewIndex(news)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	hits, err := idx.Search("fusion energy", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected at least one hit")
	}
	if hits[0].URL != "https://example.com/fusion" {
		t.Errorf("top hit = %s, want the fusion source", hits[0].URL)
	}
	if hits[0].Rank != 1 {
		t.Errorf("top hit rank = %d, want 1", hits[0].Rank)
	}
}

func TestSearchHonorsLimit(t *testing.T) {
	news := models.NewsData{ID: "n1", TopicID: "t1"}
	for i := 0; i < 5; i++ {
		news.Sources = append(news.Sources, models.NewsSource{
			URL:     "https://example.com/doc",
			Title:   "Doc",
			Content: "the same repeated keyword appears in every source document",
		})
	}
	idx, err := NewIndex(news)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	hits, err := idx.Search("keyword", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) > 2 {
		t.Errorf("got %d hits, want at most 2", len(hits))
	}
}

func TestMakeChunksOverlap(t *testing.T) {
	text := strings.Repeat("x", 2500)
	chunks := makeChunks(text, 1000, 200)
	if len(chunks) < 3 {
		t.Fatalf("got %d chunks, want at least 3", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 1000 {
			t.Errorf("chunk %d is %d chars, want <= 1000", i, len(c))
		}
	}
	// Short input comes back as a single chunk.
	if got := makeChunks("short", 1000, 200); len(got) != 1 || got[0] != "short" {
		t.Errorf("short input chunks = %v", got)
	}
}
