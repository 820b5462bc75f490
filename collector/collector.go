// Package collector turns a topic into an ordered, attributable set of news
// sources. Two mutually exclusive strategies sit behind the same Collect
// contract: model-native browsing (the model searches and cites) and raw web
// search (search engines plus a headless page fetch per hit). Both always
// produce at least one source; data unavailability degrades into placeholder
// content instead of errors.
package collector

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/mohammad-safakhou/gazeta/models"
	"github.com/mohammad-safakhou/gazeta/provider"
	"github.com/mohammad-safakhou/gazeta/tools/web_fetch"
	"github.com/mohammad-safakhou/gazeta/tools/web_search"
)

// ErrInvalidTopic is the only failure Collect surfaces; everything else
// degrades into placeholder sources.
var ErrInvalidTopic = errors.New("invalid topic")

// unavailableMessage fills the single synthetic source when nothing could be
// retrieved at all.
const unavailableMessage = "No information about this topic could be retrieved. Try a different search mode."

type Mode string

const (
	ModeWeb    Mode = "web"
	ModeOpenAI Mode = "openai"
)

// Collector resolves a topic into a NewsData aggregate.
type Collector interface {
	Collect(ctx context.Context, topic models.Topic) (models.NewsData, error)
}

// New selects the collection strategy for the given mode. Unrecognized modes
// fall back to raw web search.
func New(mode Mode, prov provider.Provider, orch *web_search.Orchestrator, fetcher web_fetch.WebFetcher, maxResults int, logger *log.Logger) Collector {
	if logger == nil {
		logger = log.New(log.Writer(), "[COLLECTOR] ", log.LstdFlags)
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	if mode == ModeOpenAI {
		return &browsingCollector{provider: prov, logger: logger}
	}
	return &webSearchCollector{orchestrator: orch, fetcher: fetcher, maxResults: maxResults, logger: logger}
}

func validateTopic(topic models.Topic) error {
	if topic.ID == "" || strings.TrimSpace(topic.Title) == "" {
		return ErrInvalidTopic
	}
	return nil
}
