package collector

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/mohammad-safakhou/gazeta/internal/helpers"
	"github.com/mohammad-safakhou/gazeta/internal/telemetry"
	"github.com/mohammad-safakhou/gazeta/models"
	"github.com/mohammad-safakhou/gazeta/tools/web_fetch"
	"github.com/mohammad-safakhou/gazeta/tools/web_search"
)

// webSearchCollector resolves a topic through the search engine orchestrator
// and fetches the page text of every hit. Only hits with nonempty fetched
// content become sources.
type webSearchCollector struct {
	orchestrator *web_search.Orchestrator
	fetcher      web_fetch.WebFetcher
	maxResults   int
	logger       *log.Logger
}

func (w *webSearchCollector) Collect(ctx context.Context, topic models.Topic) (models.NewsData, error) {
	if err := validateTopic(topic); err != nil {
		return models.NewsData{}, err
	}
	t0 := time.Now()
	defer func() { telemetry.ObserveCollect(string(ModeWeb), time.Since(t0)) }()

	query := topic.Title
	if topic.Description != "" {
		query += " " + topic.Description
	}
	w.logger.Printf("searching the web for topic %q", topic.Title)

	var sources []models.NewsSource
	for _, hit := range w.orchestrator.Search(ctx, query, w.maxResults) {
		if hit.URL == "" {
			continue
		}
		content, err := w.fetcher.Fetch(ctx, hit.URL)
		if err != nil || strings.TrimSpace(content) == "" {
			continue
		}
		title := hit.Title
		if title == "" {
			title = helpers.TitleFromURL(hit.URL)
		}
		sources = append(sources, models.NewsSource{URL: hit.URL, Title: title, Content: content})
	}

	if len(sources) == 0 {
		w.logger.Printf("no usable sources found for topic %q", topic.Title)
		sources = []models.NewsSource{{Title: topic.Title, Content: unavailableMessage}}
	}

	w.logger.Printf("collected %d sources for topic %q", len(sources), topic.Title)
	return models.NewsData{TopicID: topic.ID, Sources: sources, CreatedAt: time.Now()}, nil
}
