package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorhill/cronexpr"
	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/gazeta/collector"
	"github.com/mohammad-safakhou/gazeta/models"
	"github.com/mohammad-safakhou/gazeta/repository"
	"github.com/mohammad-safakhou/gazeta/repository/rediscache"
	"github.com/mohammad-safakhou/gazeta/tools/evidence"
)

type TopicsHandler struct {
	Repo    repository.Repository
	Cache   *rediscache.Cache
	Collect *CollectService
}

func (h *TopicsHandler) Register(g *echo.Group, secret []byte) {
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc { return withAuth(next, secret) })
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.delete)
	g.POST("/:id/collect", h.collect)
	g.GET("/:id/news/latest", h.latestNews)
	g.GET("/:id/evidence", h.searchEvidence)
}

func (h *TopicsHandler) list(c echo.Context) error {
	items, err := h.Repo.GetAllTopics(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *TopicsHandler) create(c echo.Context) error {
	var req CreateTopicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title required")
	}
	if req.ScheduleCron != "" && req.ScheduleCron != "@daily" && req.ScheduleCron != "@hourly" {
		if _, err := cronexpr.Parse(req.ScheduleCron); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid schedule_cron")
		}
	}
	topic, err := h.Repo.CreateTopic(c.Request().Context(), models.Topic{
		Title:        req.Title,
		Description:  req.Description,
		ScheduleCron: req.ScheduleCron,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, topic)
}

func (h *TopicsHandler) get(c echo.Context) error {
	topic, err := h.Repo.GetTopic(c.Request().Context(), c.Param("id"))
	if errors.Is(err, models.ErrTopicNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "topic not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, topic)
}

func (h *TopicsHandler) delete(c echo.Context) error {
	id := c.Param("id")
	err := h.Repo.DeleteTopic(c.Request().Context(), id)
	if errors.Is(err, models.ErrTopicNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "topic not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if h.Cache != nil {
		_ = h.Cache.InvalidateLatestNews(c.Request().Context(), id)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TopicsHandler) collect(c echo.Context) error {
	topic, err := h.Repo.GetTopic(c.Request().Context(), c.Param("id"))
	if errors.Is(err, models.ErrTopicNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "topic not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var req CollectRequest
	_ = c.Bind(&req)

	news, err := h.Collect.Run(c.Request().Context(), topic, collector.Mode(req.Mode))
	if errors.Is(err, collector.ErrInvalidTopic) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, news)
}

func (h *TopicsHandler) latestNews(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()
	if h.Cache != nil {
		if news, err := h.Cache.GetLatestNews(ctx, id); err == nil {
			return c.JSON(http.StatusOK, news)
		}
	}
	news, err := h.Repo.GetLatestNews(ctx, id)
	if errors.Is(err, models.ErrNewsNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "no news collected for topic")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if h.Cache != nil {
		_ = h.Cache.SetLatestNews(ctx, news)
	}
	return c.JSON(http.StatusOK, news)
}

// searchEvidence runs a full-text query over the topic's latest collected
// sources. The index is built per request; collections are small.
func (h *TopicsHandler) searchEvidence(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q required")
	}
	k := 10
	if raw := c.QueryParam("k"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			k = n
		}
	}

	news, err := h.Repo.GetLatestNews(c.Request().Context(), c.Param("id"))
	if errors.Is(err, models.ErrNewsNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "no news collected for topic")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	idx, err := evidence.NewIndex(news)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	hits, err := idx.Search(q, k)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, hits)
}
