package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/mohammad-safakhou/gazeta/collector"
	"github.com/mohammad-safakhou/gazeta/config"
	"github.com/mohammad-safakhou/gazeta/provider"
	"github.com/mohammad-safakhou/gazeta/repository"
	"github.com/mohammad-safakhou/gazeta/repository/rediscache"
	"github.com/mohammad-safakhou/gazeta/tools/web_fetch"
	"github.com/mohammad-safakhou/gazeta/tools/web_search"
)

// Run wires every dependency and serves the API until the listener fails.
func Run(cfg *config.Config, addr string) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, HTTPError{Error: msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie", "Authorization"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ctx := context.Background()

	dsn, err := cfg.Storage.Postgres.DSN()
	if err != nil {
		return err
	}
	if err := Migrate("file://migrations", dsn, "up", 0); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	repo, err := repository.New(ctx, repository.RepoTypePostgres, dsn)
	if err != nil {
		return err
	}

	var cache *rediscache.Cache
	var rdb *redis.Client
	if cfg.Storage.Redis.Host != "" {
		rdb, err = rediscache.Conn(ctx, cfg.Storage.Redis.Addr(), cfg.Storage.Redis.Password, cfg.Storage.Redis.DB, 0)
		if err != nil {
			return fmt.Errorf("redis connection failed (%s): %w", cfg.Storage.Redis.Addr(), err)
		}
		cache = rediscache.New(rdb, cfg.Storage.Redis.CacheTTL)
	}

	var llm provider.Provider
	if cfg.LLM.APIKey != "" {
		llm, err = provider.NewProvider(provider.OpenAI, cfg.LLM)
		if err != nil {
			return err
		}
	}
	mode := collector.Mode(cfg.Search.Mode)
	if mode == collector.ModeOpenAI && llm == nil {
		return fmt.Errorf("search.mode is openai but llm.api_key is not set")
	}

	engines := map[web_search.EngineName]web_search.Engine{}
	if cfg.Search.SerperAPIKey != "" {
		g, err := web_search.NewEngine(web_search.GoogleEngine, cfg.Search.SerperAPIKey)
		if err != nil {
			return err
		}
		engines[web_search.GoogleEngine] = g
	}
	ddg, err := web_search.NewEngine(web_search.DuckDuckGoEngine, "")
	if err != nil {
		return err
	}
	engines[web_search.DuckDuckGoEngine] = ddg

	searchLogger := log.New(log.Writer(), "[SEARCH] ", log.LstdFlags)
	orch := web_search.NewOrchestrator(engines, web_search.EngineName(cfg.Search.PreferredEngine), searchLogger)

	fetcher, err := web_fetch.NewWebFetcher(web_fetch.FetcherType(cfg.Fetch.Type), cfg.Fetch.Timeout, cfg.Fetch.MaxChars)
	if err != nil {
		return err
	}

	collectSvc := &CollectService{
		Repo:         repo,
		Cache:        cache,
		Provider:     llm,
		Orchestrator: orch,
		Fetcher:      fetcher,
		DefaultMode:  mode,
		MaxResults:   cfg.Search.MaxResults,
		Logger:       log.New(log.Writer(), "[COLLECTOR] ", log.LstdFlags),
	}

	secret := cfg.Server.JWTSecret
	if secret == "" {
		return fmt.Errorf("jwt secret not configured (server.jwt_secret)")
	}

	api := e.Group("/api")
	auth := &AuthHandler{Repo: repo, Secret: []byte(secret)}
	auth.Register(api.Group("/auth"))

	th := &TopicsHandler{Repo: repo, Cache: cache, Collect: collectSvc}
	th.Register(api.Group("/topics"), auth.Secret)

	ah := &ArticlesHandler{Repo: repo, LLM: llm}
	ah.Register(api, auth.Secret)

	sched := &Scheduler{Repo: repo, Collect: collectSvc, Rdb: rdb, Stop: make(chan struct{})}
	sched.Start()

	if addr == "" {
		addr = cfg.Server.Address
		if addr == "" {
			addr = ":10002"
		}
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}
