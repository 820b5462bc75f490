package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/mohammad-safakhou/gazeta/models"
	"github.com/mohammad-safakhou/gazeta/provider"
)

type fakeProvider struct {
	text      string
	citations []provider.Citation
	err       error
}

func (f *fakeProvider) Research(ctx context.Context, topic models.Topic) (string, []provider.Citation, error) {
	return f.text, f.citations, f.err
}

func (f *fakeProvider) CreateArticle(ctx context.Context, topic models.Topic, news models.NewsData) (models.Article, error) {
	return models.Article{}, errors.New("not implemented")
}

func (f *fakeProvider) ImproveArticle(ctx context.Context, article models.Article) (models.Article, error) {
	return models.Article{}, errors.New("not implemented")
}

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func browsingOver(p provider.Provider) Collector {
	return New(ModeOpenAI, p, nil, nil, 10, testLogger())
}

func TestBrowsingCollectTwoCitations(t *testing.T) {
	text := "A first finding about the event. ([One](u1)) A second finding follows with considerably more detail. ([Two](u2)) Closing remarks."
	citations := []provider.Citation{{URL: "u1", Title: "One"}, {URL: "u2", Title: "Two"}}
	c := browsingOver(&fakeProvider{text: text, citations: citations})

	news, err := c.Collect(context.Background(), models.Topic{ID: "t1", Title: "Example Event"})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(news.Sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(news.Sources))
	}
	if news.Sources[0].URL != "u1" || news.Sources[1].URL != "u2" {
		t.Errorf("source order %s, %s; want u1, u2", news.Sources[0].URL, news.Sources[1].URL)
	}

	markers := []Marker{
		{URL: "u1", Title: "One", Text: "([One](u1))"},
		{URL: "u2", Title: "Two", Text: "([Two](u2))"},
	}
	spans := AttributeSpans(text, markers)
	for _, s := range news.Sources {
		if s.Content == "" {
			t.Errorf("source %s has empty content", s.URL)
		}
		if s.Content != spans[s.URL] {
			t.Errorf("source %s content = %q, want resolved span %q", s.URL, s.Content, spans[s.URL])
		}
	}
}

func TestBrowsingCollectNoCitations(t *testing.T) {
	c := browsingOver(&fakeProvider{text: "Just a summary with no citations at all."})

	news, err := c.Collect(context.Background(), models.Topic{ID: "t1", Title: "Example Event"})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(news.Sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(news.Sources))
	}
	s := news.Sources[0]
	if s.URL != "" || s.Title != "Example Event" || s.Content != "Just a summary with no citations at all." {
		t.Errorf("unexpected single source: %+v", s)
	}
}

func TestBrowsingCollectMarkersWithoutSpans(t *testing.T) {
	// Citations whose literal marker text never occurs in the response: no
	// spans resolve, so every marker's source carries the full response.
	text := "The model paraphrased its sources without inline markers."
	citations := []provider.Citation{{URL: "u1", Title: "One"}, {URL: "u2", Title: "Two"}}
	c := browsingOver(&fakeProvider{text: text, citations: citations})

	news, err := c.Collect(context.Background(), models.Topic{ID: "t1", Title: "Example Event"})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(news.Sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(news.Sources))
	}
	for _, s := range news.Sources {
		if s.Content != text {
			t.Errorf("source %s content = %q, want full response", s.URL, s.Content)
		}
	}
}

func TestBrowsingCollectPartialSpans(t *testing.T) {
	// One marker resolves, the other does not; the unresolved one gets a
	// clipped filler instead of dropping the source.
	filler := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 10)
	text := filler + "A cited claim stands here. ([One](u1)) And the text continues for a while longer afterwards."
	citations := []provider.Citation{{URL: "u1", Title: "One"}, {URL: "u2", Title: "Two"}}
	c := browsingOver(&fakeProvider{text: text, citations: citations})

	news, err := c.Collect(context.Background(), models.Topic{ID: "t1", Title: "Example Event"})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(news.Sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(news.Sources))
	}
	if news.Sources[0].Content == "" || news.Sources[0].Content == text {
		t.Errorf("resolved marker should carry its span, got %q", news.Sources[0].Content)
	}
	wantFiller := text[:fillerChars] + "..."
	if news.Sources[1].Content != wantFiller {
		t.Errorf("unresolved marker content = %q, want 300-char filler", news.Sources[1].Content)
	}
}

func TestBrowsingCollectProviderFailureDegrades(t *testing.T) {
	c := browsingOver(&fakeProvider{err: fmt.Errorf("model unavailable")})

	news, err := c.Collect(context.Background(), models.Topic{ID: "t1", Title: "Example Event"})
	if err != nil {
		t.Fatalf("Collect should not fail on provider errors: %v", err)
	}
	if len(news.Sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(news.Sources))
	}
	if news.Sources[0].URL != "" || news.Sources[0].Content != unavailableMessage {
		t.Errorf("unexpected placeholder source: %+v", news.Sources[0])
	}
}

func TestBrowsingCollectInvalidTopic(t *testing.T) {
	c := browsingOver(&fakeProvider{text: "anything"})
	if _, err := c.Collect(context.Background(), models.Topic{Title: "no id"}); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("expected ErrInvalidTopic, got %v", err)
	}
	if _, err := c.Collect(context.Background(), models.Topic{ID: "t1", Title: "  "}); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("expected ErrInvalidTopic for blank title, got %v", err)
	}
}
