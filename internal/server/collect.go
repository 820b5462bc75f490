package server

import (
	"context"
	"fmt"
	"log"

	"github.com/mohammad-safakhou/gazeta/collector"
	"github.com/mohammad-safakhou/gazeta/models"
	"github.com/mohammad-safakhou/gazeta/provider"
	"github.com/mohammad-safakhou/gazeta/repository"
	"github.com/mohammad-safakhou/gazeta/repository/rediscache"
	"github.com/mohammad-safakhou/gazeta/tools/web_fetch"
	"github.com/mohammad-safakhou/gazeta/tools/web_search"
)

// CollectService runs a collection for a topic and persists the result. It is
// shared by the HTTP collect endpoint and the scheduler.
type CollectService struct {
	Repo         repository.Repository
	Cache        *rediscache.Cache
	Provider     provider.Provider
	Orchestrator *web_search.Orchestrator
	Fetcher      web_fetch.WebFetcher
	DefaultMode  collector.Mode
	MaxResults   int
	Logger       *log.Logger
}

// Run collects sources for the topic in the given mode ("" means the
// configured default), stores the NewsData row and refreshes the cache.
func (s *CollectService) Run(ctx context.Context, topic models.Topic, mode collector.Mode) (models.NewsData, error) {
	if mode == "" {
		mode = s.DefaultMode
	}
	if mode == collector.ModeOpenAI && s.Provider == nil {
		return models.NewsData{}, fmt.Errorf("openai mode requires llm.api_key")
	}

	c := collector.New(mode, s.Provider, s.Orchestrator, s.Fetcher, s.MaxResults, s.Logger)
	news, err := c.Collect(ctx, topic)
	if err != nil {
		return models.NewsData{}, err
	}
	stored, err := s.Repo.CreateNews(ctx, news)
	if err != nil {
		return models.NewsData{}, err
	}
	if s.Cache != nil {
		if err := s.Cache.SetLatestNews(ctx, stored); err != nil {
			s.Logger.Printf("cache update failed for topic %s: %v", topic.ID, err)
		}
	}
	return stored, nil
}
