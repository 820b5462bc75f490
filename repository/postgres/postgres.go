package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/mohammad-safakhou/gazeta/models"
)

// Store bundles all repositories over one Postgres connection pool.
type Store struct {
	DB *sql.DB
}

// New opens a connection pool and verifies connectivity.
func New(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error { return s.DB.Close() }

// ---- topics ----

func (s *Store) CreateTopic(ctx context.Context, topic models.Topic) (models.Topic, error) {
	topic.ID = uuid.NewString()
	now := time.Now().UTC()
	topic.CreatedAt, topic.UpdatedAt = now, now
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO topics (id, title, description, schedule_cron, created_at, updated_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		topic.ID, topic.Title, topic.Description, topic.ScheduleCron, topic.CreatedAt, topic.UpdatedAt)
	if err != nil {
		return models.Topic{}, fmt.Errorf("insert topic: %w", err)
	}
	return topic, nil
}

func (s *Store) GetTopic(ctx context.Context, id string) (models.Topic, error) {
	var t models.Topic
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, title, description, schedule_cron, created_at, updated_at FROM topics WHERE id = $1`, id).
		Scan(&t.ID, &t.Title, &t.Description, &t.ScheduleCron, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Topic{}, models.ErrTopicNotFound
	}
	if err != nil {
		return models.Topic{}, fmt.Errorf("select topic: %w", err)
	}
	return t, nil
}

func (s *Store) GetAllTopics(ctx context.Context) ([]models.Topic, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, title, description, schedule_cron, created_at, updated_at FROM topics ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select topics: %w", err)
	}
	defer rows.Close()

	var out []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.ScheduleCron, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) DeleteTopic(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrTopicNotFound
	}
	return nil
}

// ---- news data ----

// CreateNews persists a collection result. Sources are stored as jsonb so
// they round-trip losslessly (url, title, content, optional published_at).
func (s *Store) CreateNews(ctx context.Context, news models.NewsData) (models.NewsData, error) {
	news.ID = uuid.NewString()
	if news.CreatedAt.IsZero() {
		news.CreatedAt = time.Now().UTC()
	}
	sources, err := json.Marshal(news.Sources)
	if err != nil {
		return models.NewsData{}, fmt.Errorf("marshal sources: %w", err)
	}
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO news_data (id, topic_id, sources, created_at) VALUES ($1,$2,$3,$4)`,
		news.ID, news.TopicID, sources, news.CreatedAt)
	if err != nil {
		return models.NewsData{}, fmt.Errorf("insert news data: %w", err)
	}
	return news, nil
}

func (s *Store) GetNews(ctx context.Context, id string) (models.NewsData, error) {
	return s.scanNews(s.DB.QueryRowContext(ctx,
		`SELECT id, topic_id, sources, created_at FROM news_data WHERE id = $1`, id))
}

func (s *Store) GetLatestNews(ctx context.Context, topicID string) (models.NewsData, error) {
	return s.scanNews(s.DB.QueryRowContext(ctx,
		`SELECT id, topic_id, sources, created_at FROM news_data WHERE topic_id = $1 ORDER BY created_at DESC LIMIT 1`, topicID))
}

func (s *Store) scanNews(row *sql.Row) (models.NewsData, error) {
	var n models.NewsData
	var sources []byte
	err := row.Scan(&n.ID, &n.TopicID, &sources, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewsData{}, models.ErrNewsNotFound
	}
	if err != nil {
		return models.NewsData{}, fmt.Errorf("select news data: %w", err)
	}
	if err := json.Unmarshal(sources, &n.Sources); err != nil {
		return models.NewsData{}, fmt.Errorf("unmarshal sources: %w", err)
	}
	return n, nil
}

// ---- articles ----

func (s *Store) CreateArticle(ctx context.Context, article models.Article) (models.Article, error) {
	article.ID = uuid.NewString()
	now := time.Now().UTC()
	article.CreatedAt, article.UpdatedAt = now, now
	if article.Status == "" {
		article.Status = models.ArticleStatusDraft
	}
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO articles (id, topic_id, news_data_id, title, content, improved_content, status, created_at, updated_at, published_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		article.ID, article.TopicID, nullable(article.NewsDataID), article.Title, article.Content,
		article.ImprovedContent, article.Status, article.CreatedAt, article.UpdatedAt, article.PublishedAt)
	if err != nil {
		return models.Article{}, fmt.Errorf("insert article: %w", err)
	}
	return article, nil
}

func (s *Store) GetArticle(ctx context.Context, id string) (models.Article, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, topic_id, news_data_id, title, content, improved_content, status, created_at, updated_at, published_at
		 FROM articles WHERE id = $1`, id)
	return scanArticle(row.Scan)
}

func (s *Store) ListArticles(ctx context.Context, topicID string) ([]models.Article, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, topic_id, news_data_id, title, content, improved_content, status, created_at, updated_at, published_at
		 FROM articles WHERE topic_id = $1 ORDER BY created_at DESC`, topicID)
	if err != nil {
		return nil, fmt.Errorf("select articles: %w", err)
	}
	defer rows.Close()

	var out []models.Article
	for rows.Next() {
		a, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) UpdateArticle(ctx context.Context, article models.Article) (models.Article, error) {
	article.UpdatedAt = time.Now().UTC()
	res, err := s.DB.ExecContext(ctx,
		`UPDATE articles SET title=$2, content=$3, improved_content=$4, status=$5, updated_at=$6, published_at=$7 WHERE id=$1`,
		article.ID, article.Title, article.Content, article.ImprovedContent, article.Status, article.UpdatedAt, article.PublishedAt)
	if err != nil {
		return models.Article{}, fmt.Errorf("update article: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Article{}, models.ErrArticleNotFound
	}
	return article, nil
}

func scanArticle(scan func(dest ...any) error) (models.Article, error) {
	var a models.Article
	var newsDataID sql.NullString
	err := scan(&a.ID, &a.TopicID, &newsDataID, &a.Title, &a.Content, &a.ImprovedContent,
		&a.Status, &a.CreatedAt, &a.UpdatedAt, &a.PublishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Article{}, models.ErrArticleNotFound
	}
	if err != nil {
		return models.Article{}, fmt.Errorf("scan article: %w", err)
	}
	a.NewsDataID = newsDataID.String
	return a, nil
}

// ---- users ----

func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1,$2,$3,$4)`,
		uuid.NewString(), email, passwordHash, time.Now().UTC())
	return err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (string, string, error) {
	var id, hash string
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, password_hash FROM users WHERE email = $1`, email).Scan(&id, &hash)
	if err != nil {
		return "", "", err
	}
	return id, hash, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
