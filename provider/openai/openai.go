package openai_provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mohammad-safakhou/gazeta/models"
)

const openaiAPIURL = "https://api.openai.com/v1/chat/completions"

// Citation is one url_citation annotation from a browsing-capable completion.
type Citation struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// client implements the provider interface using OpenAI's API
type client struct {
	apiKey        string
	researchModel string
	articleModel  string
	temperature   float64
	maxTokens     int
	httpClient    *http.Client
}

// Message represents a message in a conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type webSearchOptions struct {
	SearchContextSize string `json:"search_context_size,omitempty"`
}

type request struct {
	Model            string            `json:"model"`
	Messages         []Message         `json:"messages"`
	Temperature      *float64          `json:"temperature,omitempty"`
	MaxTokens        int               `json:"max_tokens,omitempty"`
	WebSearchOptions *webSearchOptions `json:"web_search_options,omitempty"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content     string `json:"content"`
			Annotations []struct {
				Type        string `json:"type"`
				URLCitation *struct {
					URL        string `json:"url"`
					Title      string `json:"title"`
					StartIndex int    `json:"start_index"`
					EndIndex   int    `json:"end_index"`
				} `json:"url_citation"`
			} `json:"annotations"`
		} `json:"message"`
	} `json:"choices"`
}

const researchSystemPrompt = `You are an excellent research tool. Gather information about the given topic.
The following elements are particularly important:
1. Overview - the basic facts of the topic
2. Key actors - the people and organizations involved
3. Timeline - what happened and when
4. Key disputes - points of contention and open debates
5. Impact and outlook - societal impact and likely future developments

Collect information as accurately as possible and cite a reliable source for each piece of information.`

const articleSystemPrompt = "You are an excellent business writer. You turn the given material into clear, engaging articles."

const articlePrompt = `# Instructions
- Write an article of roughly 2000-3000 words based on the provided news data.
- The article should be understandable by a teenager while remaining relevant to business readers.
- Reference the source link for each paragraph that draws on one.
- Include the sections "Overview", "Key actors", "Timeline", "Key disputes", "Impact and outlook" and "Summary".
- Lead with the overview and conclusions, then follow with detail.
- Use markdown formatting throughout.

# News data
%s`

const improveSystemPrompt = "You are an excellent business editor. You raise the quality of articles into high-value content."

const improvePrompt = `# Instructions
The current article is worth about 60 points as paid content. Improve the following aspects to make it a 100-point article:

1. Add expert analysis and deeper insight
2. Add data and concrete examples to strengthen the argument
3. Include practical perspectives and suggestions for business readers
4. Further improve readability and visual appeal
5. Optimize the structure and flow

The improved article should provide value beyond mere information. Provide the full article in Markdown.

# Article
%s`

// NewClient creates a new OpenAI client
func NewClient(apiKey, researchModel, articleModel string, temperature float64, maxTokens int, timeout time.Duration) *client {
	return &client{
		apiKey:        apiKey,
		researchModel: researchModel,
		articleModel:  articleModel,
		temperature:   temperature,
		maxTokens:     maxTokens,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

// Research submits the topic to a browsing-capable completion and returns the
// response text plus embedded url citations in emission order.
func (c *client) Research(ctx context.Context, topic models.Topic) (string, []Citation, error) {
	user := fmt.Sprintf("Research %q and provide detailed information. %s", topic.Title, topic.Description)
	// Search-preview models reject the temperature parameter.
	req := request{
		Model:            c.researchModel,
		WebSearchOptions: &webSearchOptions{SearchContextSize: "high"},
		Messages: []Message{
			{Role: "system", Content: researchSystemPrompt},
			{Role: "user", Content: strings.TrimSpace(user)},
		},
	}
	resp, err := c.complete(ctx, req)
	if err != nil {
		return "", nil, err
	}
	if len(resp.Choices) == 0 {
		return "", nil, fmt.Errorf("empty completion response")
	}

	msg := resp.Choices[0].Message
	var citations []Citation
	for _, a := range msg.Annotations {
		if a.URLCitation == nil {
			continue
		}
		citations = append(citations, Citation{URL: a.URLCitation.URL, Title: a.URLCitation.Title})
	}
	return msg.Content, citations, nil
}

// CreateArticle drafts a markdown article from the collected news data. The
// article title is taken from the first "# " heading, falling back to the
// topic title.
func (c *client) CreateArticle(ctx context.Context, topic models.Topic, news models.NewsData) (models.Article, error) {
	var b strings.Builder
	for i, source := range news.Sources {
		fmt.Fprintf(&b, "Source %d:\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", source.Title)
		fmt.Fprintf(&b, "URL: %s\n", source.URL)
		fmt.Fprintf(&b, "Content: %s\n\n", source.Content)
	}

	content, err := c.chat(ctx, articleSystemPrompt, fmt.Sprintf(articlePrompt, b.String()))
	if err != nil {
		return models.Article{}, err
	}

	title := topic.Title
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			title = strings.TrimSpace(line[2:])
			break
		}
	}

	return models.Article{
		TopicID:    topic.ID,
		NewsDataID: news.ID,
		Title:      title,
		Content:    content,
		Status:     models.ArticleStatusDraft,
	}, nil
}

// ImproveArticle rewrites the draft and marks the article improved.
func (c *client) ImproveArticle(ctx context.Context, article models.Article) (models.Article, error) {
	improved, err := c.chat(ctx, improveSystemPrompt, fmt.Sprintf(improvePrompt, article.Content))
	if err != nil {
		return models.Article{}, err
	}
	article.ImprovedContent = improved
	article.Status = models.ArticleStatusImproved
	return article, nil
}

func (c *client) chat(ctx context.Context, system, user string) (string, error) {
	temp := c.temperature
	req := request{
		Model:       c.articleModel,
		Temperature: &temp,
		MaxTokens:   c.maxTokens,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	resp, err := c.complete(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *client) complete(ctx context.Context, reqBody request) (*response, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openaiAPIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status: %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &out, nil
}
