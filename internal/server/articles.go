package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/gazeta/models"
	"github.com/mohammad-safakhou/gazeta/provider"
	"github.com/mohammad-safakhou/gazeta/repository"
)

type ArticlesHandler struct {
	Repo repository.Repository
	LLM  provider.Provider
}

func (h *ArticlesHandler) Register(api *echo.Group, secret []byte) {
	topics := api.Group("/topics")
	topics.Use(func(next echo.HandlerFunc) echo.HandlerFunc { return withAuth(next, secret) })
	topics.POST("/:id/articles", h.generate)
	topics.GET("/:id/articles", h.list)

	articles := api.Group("/articles")
	articles.Use(func(next echo.HandlerFunc) echo.HandlerFunc { return withAuth(next, secret) })
	articles.GET("/:id", h.get)
	articles.POST("/:id/improve", h.improve)
	articles.POST("/:id/publish", h.publish)
}

// generate drafts an article from the topic's latest collected news.
func (h *ArticlesHandler) generate(c echo.Context) error {
	if h.LLM == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "llm not configured")
	}
	ctx := c.Request().Context()
	topic, err := h.Repo.GetTopic(ctx, c.Param("id"))
	if errors.Is(err, models.ErrTopicNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "topic not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	news, err := h.Repo.GetLatestNews(ctx, topic.ID)
	if errors.Is(err, models.ErrNewsNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "no news collected for topic")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	article, err := h.LLM.CreateArticle(ctx, topic, news)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	article.TopicID = topic.ID
	article.NewsDataID = news.ID
	stored, err := h.Repo.CreateArticle(ctx, article)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, stored)
}

func (h *ArticlesHandler) list(c echo.Context) error {
	items, err := h.Repo.ListArticles(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ArticlesHandler) get(c echo.Context) error {
	article, err := h.Repo.GetArticle(c.Request().Context(), c.Param("id"))
	if errors.Is(err, models.ErrArticleNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "article not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, article)
}

func (h *ArticlesHandler) improve(c echo.Context) error {
	if h.LLM == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "llm not configured")
	}
	ctx := c.Request().Context()
	article, err := h.Repo.GetArticle(ctx, c.Param("id"))
	if errors.Is(err, models.ErrArticleNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "article not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	improved, err := h.LLM.ImproveArticle(ctx, article)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	improved.Status = models.ArticleStatusImproved
	stored, err := h.Repo.UpdateArticle(ctx, improved)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stored)
}

func (h *ArticlesHandler) publish(c echo.Context) error {
	ctx := c.Request().Context()
	article, err := h.Repo.GetArticle(ctx, c.Param("id"))
	if errors.Is(err, models.ErrArticleNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "article not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := time.Now().UTC()
	article.Status = models.ArticleStatusPublished
	article.PublishedAt = &now
	stored, err := h.Repo.UpdateArticle(ctx, article)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stored)
}
