package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mohammad-safakhou/gazeta/models"
	"github.com/mohammad-safakhou/gazeta/repository/postgres"
)

func TestStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		tcPostgres.WithDatabase("gazeta"),
		tcPostgres.WithUsername("gazeta"),
		tcPostgres.WithPassword("gazeta"),
		testcontainers.WithWaitStrategy(wait.ForListeningPort("5432/tcp")),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	if err != nil {
		t.Fatalf("postgres host: %v", err)
	}
	port, err := pgC.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("postgres port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://gazeta:gazeta@%s:%s/gazeta?sslmode=disable", host, port.Port())

	st, err := postgres.New(ctx, dsn)
	if err != nil {
		t.Fatalf("store init: %v", err)
	}
	defer st.Close()

	schema, err := os.ReadFile("../../migrations/0001_init.up.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	if _, err := st.DB.ExecContext(ctx, string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	topic, err := st.CreateTopic(ctx, models.Topic{Title: "Integration Topic", Description: "round trip", ScheduleCron: "@daily"})
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	got, err := st.GetTopic(ctx, topic.ID)
	if err != nil {
		t.Fatalf("get topic: %v", err)
	}
	if got.Title != "Integration Topic" || got.ScheduleCron != "@daily" {
		t.Errorf("unexpected topic: %+v", got)
	}

	all, err := st.GetAllTopics(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("get all topics: %v (%d)", err, len(all))
	}

	news, err := st.CreateNews(ctx, models.NewsData{
		TopicID: topic.ID,
		Sources: []models.NewsSource{
			{URL: "https://example.com/a", Title: "A", Content: "first source"},
			{URL: "", Title: "Synth", Content: "synthesized summary"},
		},
	})
	if err != nil {
		t.Fatalf("create news: %v", err)
	}
	latest, err := st.GetLatestNews(ctx, topic.ID)
	if err != nil {
		t.Fatalf("latest news: %v", err)
	}
	if latest.ID != news.ID || len(latest.Sources) != 2 {
		t.Errorf("unexpected latest news: %+v", latest)
	}
	if latest.Sources[1].URL != "" || latest.Sources[1].Content != "synthesized summary" {
		t.Errorf("sources did not round-trip: %+v", latest.Sources)
	}

	article, err := st.CreateArticle(ctx, models.Article{
		TopicID:    topic.ID,
		NewsDataID: news.ID,
		Title:      "Draft",
		Content:    "# Draft\n\nbody",
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	if article.Status != models.ArticleStatusDraft {
		t.Errorf("status = %s, want draft", article.Status)
	}
	article.ImprovedContent = "improved body"
	article.Status = models.ArticleStatusImproved
	updated, err := st.UpdateArticle(ctx, article)
	if err != nil {
		t.Fatalf("update article: %v", err)
	}
	fetched, err := st.GetArticle(ctx, updated.ID)
	if err != nil {
		t.Fatalf("get article: %v", err)
	}
	if fetched.Status != models.ArticleStatusImproved || fetched.ImprovedContent != "improved body" {
		t.Errorf("unexpected article: %+v", fetched)
	}
	list, err := st.ListArticles(ctx, topic.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("list articles: %v (%d)", err, len(list))
	}

	if err := st.CreateUser(ctx, "it@example.com", "hash"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	id, hash, err := st.GetUserByEmail(ctx, "it@example.com")
	if err != nil || id == "" || hash != "hash" {
		t.Fatalf("get user: %v (%s, %s)", err, id, hash)
	}

	if err := st.DeleteTopic(ctx, topic.ID); err != nil {
		t.Fatalf("delete topic: %v", err)
	}
	if _, err := st.GetTopic(ctx, topic.ID); !errors.Is(err, models.ErrTopicNotFound) {
		t.Errorf("expected ErrTopicNotFound, got %v", err)
	}
	if _, err := st.GetLatestNews(ctx, topic.ID); !errors.Is(err, models.ErrNewsNotFound) {
		t.Errorf("news should cascade with topic, got %v", err)
	}
}
