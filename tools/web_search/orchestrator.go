package web_search

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/mohammad-safakhou/gazeta/internal/telemetry"
	"github.com/mohammad-safakhou/gazeta/tools/web_search/models"
)

var errNoResults = errors.New("no results")

// Orchestrator tries engines in preference order. Each engine is invoked with
// retry; the first nonempty result set wins. Engine failures are logged and
// suppressed, so Search never returns an error to its caller.
type Orchestrator struct {
	engines map[EngineName]Engine
	order   []EngineName
	logger  *log.Logger

	// Retry policy per engine. Zero values fall back to the defaults below.
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

const (
	defaultAttempts  = 3
	defaultBaseDelay = 1 * time.Second
	defaultMaxDelay  = 10 * time.Second
)

// NewOrchestrator builds an orchestrator over the given engines. A recognized
// preferred engine is promoted to the front of the default order without
// removing or duplicating the others.
func NewOrchestrator(engines map[EngineName]Engine, preferred EngineName, logger *log.Logger) *Orchestrator {
	order := []EngineName{GoogleEngine, DuckDuckGoEngine}
	if _, ok := engines[preferred]; ok && preferred != "" {
		promoted := []EngineName{preferred}
		for _, name := range order {
			if name != preferred {
				promoted = append(promoted, name)
			}
		}
		order = promoted
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[SEARCH] ", log.LstdFlags)
	}
	return &Orchestrator{
		engines:   engines,
		order:     order,
		logger:    logger,
		Attempts:  defaultAttempts,
		BaseDelay: defaultBaseDelay,
		MaxDelay:  defaultMaxDelay,
	}
}

// Order exposes the engine preference order.
func (o *Orchestrator) Order() []EngineName { return o.order }

// Search fans through the engines in order and returns the first nonempty
// result set. Empty and failing attempts are retried with exponential backoff
// before moving on; if every engine exhausts its attempts the result is empty.
func (o *Orchestrator) Search(ctx context.Context, q string, k int) []models.Result {
	for _, name := range o.order {
		engine, ok := o.engines[name]
		if !ok {
			continue
		}
		results, err := o.withRetry(ctx, name, func() ([]models.Result, error) {
			return engine.Search(ctx, q, k)
		})
		if err != nil {
			o.logger.Printf("engine %s exhausted: %v", name, err)
			continue
		}
		o.logger.Printf("engine %s returned %d results", name, len(results))
		return results
	}
	return nil
}

// withRetry runs fn up to o.Attempts times with exponential backoff (base
// delay doubling up to the ceiling). An attempt that returns zero results
// counts as a failure so a flaky engine gets its full retry budget.
func (o *Orchestrator) withRetry(ctx context.Context, name EngineName, fn func() ([]models.Result, error)) ([]models.Result, error) {
	attempts, base, ceiling := o.Attempts, o.BaseDelay, o.MaxDelay
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	if base <= 0 {
		base = defaultBaseDelay
	}
	if ceiling <= 0 {
		ceiling = defaultMaxDelay
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = base
	bo.Multiplier = 2
	bo.MaxInterval = ceiling
	bo.MaxElapsedTime = 0
	bo.RandomizationFactor = 0

	var out []models.Result
	op := func() error {
		results, err := fn()
		if err != nil {
			telemetry.CountSearchAttempt(string(name), "error")
			o.logger.Printf("engine %s attempt failed: %v", name, err)
			return err
		}
		if len(results) == 0 {
			telemetry.CountSearchAttempt(string(name), "empty")
			return errNoResults
		}
		telemetry.CountSearchAttempt(string(name), "ok")
		out = results
		return nil
	}
	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(attempts-1)), ctx))
	return out, err
}
