package web_search

import (
	"context"
	"fmt"

	"github.com/mohammad-safakhou/gazeta/tools/web_search/duckduckgo"
	"github.com/mohammad-safakhou/gazeta/tools/web_search/google"
	"github.com/mohammad-safakhou/gazeta/tools/web_search/models"
)

// Engine wraps one external search provider.
type Engine interface {
	Search(ctx context.Context, q string, k int) ([]models.Result, error)
}

type EngineName string

const (
	GoogleEngine     EngineName = "google"
	DuckDuckGoEngine EngineName = "duckduckgo"
)

func NewEngine(name EngineName, apiKey string) (Engine, error) {
	switch name {
	case GoogleEngine:
		return google.Search{ApiKey: apiKey}, nil
	case DuckDuckGoEngine:
		return duckduckgo.Search{}, nil
	default:
		return nil, fmt.Errorf("unsupported engine: %s", name)
	}
}
