package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mohammad-safakhou/gazeta/internal/helpers"
	"github.com/mohammad-safakhou/gazeta/internal/telemetry"
	"github.com/mohammad-safakhou/gazeta/models"
	"github.com/mohammad-safakhou/gazeta/provider"
)

// fillerChars bounds the response prefix used for sources whose citation span
// could not be resolved.
const fillerChars = 300

// browsingCollector asks a browsing-capable model to research the topic and
// splits the response into per-citation sources.
type browsingCollector struct {
	provider provider.Provider
	logger   *log.Logger
}

func (b *browsingCollector) Collect(ctx context.Context, topic models.Topic) (models.NewsData, error) {
	if err := validateTopic(topic); err != nil {
		return models.NewsData{}, err
	}
	t0 := time.Now()
	defer func() { telemetry.ObserveCollect(string(ModeOpenAI), time.Since(t0)) }()
	b.logger.Printf("researching topic %q via model browsing", topic.Title)

	text, citations, err := b.provider.Research(ctx, topic)
	if err != nil {
		b.logger.Printf("research for topic %q failed: %v", topic.Title, err)
		return models.NewsData{
			TopicID:   topic.ID,
			Sources:   []models.NewsSource{{Title: topic.Title, Content: unavailableMessage}},
			CreatedAt: time.Now(),
		}, nil
	}

	markers := make([]Marker, 0, len(citations))
	for _, c := range citations {
		markers = append(markers, Marker{
			URL:   c.URL,
			Title: c.Title,
			Text:  fmt.Sprintf("([%s](%s))", c.Title, c.URL),
		})
	}

	sources := splitIntoSources(text, markers, topic.Title)
	b.logger.Printf("collected %d sources for topic %q", len(sources), topic.Title)
	return models.NewsData{TopicID: topic.ID, Sources: sources, CreatedAt: time.Now()}, nil
}

// splitIntoSources is the three-way evidence-quality decision:
//
//	no markers            -> the whole response as a single source
//	markers, some spans   -> one source per marker, span or 300-char filler
//	markers, no spans     -> one source per marker, full response as filler
func splitIntoSources(text string, markers []Marker, topicTitle string) []models.NewsSource {
	if len(markers) == 0 {
		return []models.NewsSource{{Title: topicTitle, Content: text}}
	}

	spans := AttributeSpans(text, markers)
	anySpan := false
	for _, s := range spans {
		if s != "" {
			anySpan = true
			break
		}
	}

	sources := make([]models.NewsSource, 0, len(markers))
	if anySpan {
		for _, m := range markers {
			content := spans[m.URL]
			if content == "" {
				content = helpers.Clip(text, fillerChars) + "..."
			}
			sources = append(sources, models.NewsSource{URL: m.URL, Title: m.Title, Content: content})
		}
		return sources
	}

	for _, m := range markers {
		sources = append(sources, models.NewsSource{URL: m.URL, Title: m.Title, Content: text})
	}
	return sources
}
