package provider

import (
	"context"
	"errors"

	"github.com/mohammad-safakhou/gazeta/config"
	"github.com/mohammad-safakhou/gazeta/models"
	openai_provider "github.com/mohammad-safakhou/gazeta/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI    Client = "openai"
	Anthropic Client = "anthropic"
)

// Citation is one model-emitted reference tying a URL and title to the
// generated text.
type Citation = openai_provider.Citation

// Provider is the interface all LLM implementations must satisfy.
type Provider interface {
	// Research runs a browsing-capable completion for the topic and returns
	// the response text plus any embedded url citations in emission order.
	Research(ctx context.Context, topic models.Topic) (string, []Citation, error)
	// CreateArticle drafts a markdown article from collected news data.
	CreateArticle(ctx context.Context, topic models.Topic, news models.NewsData) (models.Article, error)
	// ImproveArticle rewrites a draft into a higher-value version.
	ImproveArticle(ctx context.Context, article models.Article) (models.Article, error)
}

// NewProvider creates a new LLM client based on the provided configuration
func NewProvider(client Client, cfg config.LLMConfig) (Provider, error) {
	switch client {
	case OpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("llm.api_key not set")
		}
		return openai_provider.NewClient(cfg.APIKey, cfg.ResearchModel, cfg.ArticleModel, cfg.Temperature, cfg.MaxTokens, cfg.Timeout), nil
	case Anthropic:
		return nil, errors.New("anthropic client not implemented yet")
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
