package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/gazeta/collector"
	"github.com/mohammad-safakhou/gazeta/config"
	"github.com/mohammad-safakhou/gazeta/models"
	"github.com/mohammad-safakhou/gazeta/provider"
	"github.com/mohammad-safakhou/gazeta/tools/web_fetch"
	"github.com/mohammad-safakhou/gazeta/tools/web_search"
)

// collectCMD runs one collection for an ad-hoc topic and prints the result as
// JSON, without touching the database.
func collectCMD() *cobra.Command {
	var title string
	var description string
	var mode string
	var cfgPath string

	var collect = &cobra.Command{
		Use:   "collect",
		Short: "Collect news for a topic once and print JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				return fmt.Errorf("--title is required")
			}
			cfg := config.LoadConfig(cfgPath)
			if mode == "" {
				mode = cfg.Search.Mode
			}

			var llm provider.Provider
			if cfg.LLM.APIKey != "" {
				var err error
				llm, err = provider.NewProvider(provider.OpenAI, cfg.LLM)
				if err != nil {
					return err
				}
			}
			if collector.Mode(mode) == collector.ModeOpenAI && llm == nil {
				return fmt.Errorf("openai mode requires llm.api_key")
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

			logger := log.New(os.Stderr, "[COLLECT] ", log.LstdFlags)
			orch := web_search.NewOrchestrator(engines, web_search.EngineName(cfg.Search.PreferredEngine), logger)
			fetcher, err := web_fetch.NewWebFetcher(web_fetch.FetcherType(cfg.Fetch.Type), cfg.Fetch.Timeout, cfg.Fetch.MaxChars)
			if err != nil {
				return err
			}

			c := collector.New(collector.Mode(mode), llm, orch, fetcher, cfg.Search.MaxResults, logger)
			topic := models.Topic{ID: uuid.NewString(), Title: title, Description: description}
			news, err := c.Collect(context.Background(), topic)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(news)
		},
	}
	collect.Flags().StringVar(&title, "title", "", "topic title")
	collect.Flags().StringVar(&description, "description", "", "topic description")
	collect.Flags().StringVar(&mode, "mode", "", "collection mode: web or openai (default from config)")
	collect.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return collect
}
