package models

import (
	"errors"
	"time"
)

// ErrTopicNotFound is returned when a topic is not found
var ErrTopicNotFound = errors.New("topic not found")

// ErrArticleNotFound is returned when an article is not found
var ErrArticleNotFound = errors.New("article not found")

// ErrNewsNotFound is returned when no news data exists for a topic
var ErrNewsNotFound = errors.New("news data not found")

// Topic is a subject the system collects evidence about. Title is required;
// description is free text appended to search queries.
type Topic struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ScheduleCron string    `json:"schedule_cron,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewsSource is one attributed piece of evidence backing a topic. An empty URL
// means the content is a synthesized summary with no external link.
type NewsSource struct {
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// NewsData is the ordered set of sources collected for a topic in one run.
// Sources is never empty after a successful collection.
type NewsData struct {
	ID        string       `json:"id"`
	TopicID   string       `json:"topic_id"`
	Sources   []NewsSource `json:"sources"`
	CreatedAt time.Time    `json:"created_at"`
}

type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusImproved  ArticleStatus = "improved"
	ArticleStatusPublished ArticleStatus = "published"
)

// Article is a drafted write-up generated from a topic's news data.
type Article struct {
	ID              string        `json:"id"`
	TopicID         string        `json:"topic_id"`
	NewsDataID      string        `json:"news_data_id,omitempty"`
	Title           string        `json:"title"`
	Content         string        `json:"content"`
	ImprovedContent string        `json:"improved_content,omitempty"`
	Status          ArticleStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	PublishedAt     *time.Time    `json:"published_at,omitempty"`
}
