package repository

import (
	"context"
	"fmt"

	"github.com/mohammad-safakhou/gazeta/models"
	"github.com/mohammad-safakhou/gazeta/repository/postgres"
)

// TopicRepository defines storage for topics
type TopicRepository interface {
	CreateTopic(ctx context.Context, topic models.Topic) (models.Topic, error)
	GetTopic(ctx context.Context, id string) (models.Topic, error)
	GetAllTopics(ctx context.Context) ([]models.Topic, error)
	DeleteTopic(ctx context.Context, id string) error
}

// NewsRepository defines storage for collected news data
type NewsRepository interface {
	CreateNews(ctx context.Context, news models.NewsData) (models.NewsData, error)
	GetNews(ctx context.Context, id string) (models.NewsData, error)
	GetLatestNews(ctx context.Context, topicID string) (models.NewsData, error)
}

// ArticleRepository defines storage for generated articles
type ArticleRepository interface {
	CreateArticle(ctx context.Context, article models.Article) (models.Article, error)
	GetArticle(ctx context.Context, id string) (models.Article, error)
	ListArticles(ctx context.Context, topicID string) ([]models.Article, error)
	UpdateArticle(ctx context.Context, article models.Article) (models.Article, error)
}

// UserRepository defines storage for API users
type UserRepository interface {
	CreateUser(ctx context.Context, email, passwordHash string) error
	GetUserByEmail(ctx context.Context, email string) (id string, passwordHash string, err error)
}

// Repository bundles all storage concerns behind one handle.
type Repository interface {
	TopicRepository
	NewsRepository
	ArticleRepository
	UserRepository
	Close() error
}

type RepoType string

const (
	RepoTypePostgres RepoType = "postgres"
)

func New(ctx context.Context, t RepoType, dsn string) (Repository, error) {
	switch t {
	case RepoTypePostgres:
		return postgres.New(ctx, dsn)
	}
	return nil, fmt.Errorf("invalid repository type: %s", t)
}
