package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mohammad-safakhou/gazeta/models"
)

const latestNewsKeyPrefix = "news:latest:"

// Conn opens a Redis client and verifies connectivity with a ping.
func Conn(ctx context.Context, addr, pass string, db int, timeout time.Duration) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: timeout,
		Password:    pass,
		DB:          db,
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	if pong != "PONG" {
		return nil, fmt.Errorf("expected PONG, got %s", pong)
	}

	return client, nil
}

// Cache keeps the most recent collection result per topic so read-heavy
// endpoints don't hit Postgres on every request.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) SetLatestNews(ctx context.Context, news models.NewsData) error {
	data, err := json.Marshal(news)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, latestNewsKeyPrefix+news.TopicID, data, c.ttl).Err()
}

func (c *Cache) GetLatestNews(ctx context.Context, topicID string) (models.NewsData, error) {
	val, err := c.client.Get(ctx, latestNewsKeyPrefix+topicID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.NewsData{}, models.ErrNewsNotFound
		}
		return models.NewsData{}, err
	}

	var news models.NewsData
	if err := json.Unmarshal([]byte(val), &news); err != nil {
		return models.NewsData{}, err
	}
	return news, nil
}

func (c *Cache) InvalidateLatestNews(ctx context.Context, topicID string) error {
	return c.client.Del(ctx, latestNewsKeyPrefix+topicID).Err()
}
