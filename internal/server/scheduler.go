package server

import (
	"context"
	"log"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/redis/go-redis/v9"

	"github.com/mohammad-safakhou/gazeta/repository"
)

// Scheduler periodically collects news for topics whose cron schedule is due.
// A Redis SetNX lock keeps concurrent replicas from collecting the same topic
// twice.
type Scheduler struct {
	Repo    repository.Repository
	Collect *CollectService
	Rdb     *redis.Client
	Stop    chan struct{}
	Logger  *log.Logger

	// Interval between due checks; zero means hourly.
	Interval time.Duration
}

func (s *Scheduler) Start() {
	if s.Logger == nil {
		s.Logger = log.New(log.Writer(), "[SCHED] ", log.LstdFlags)
	}
	interval := s.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-s.Stop:
				ticker.Stop()
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

func (s *Scheduler) tick() {
	ctx := context.Background()
	topics, err := s.Repo.GetAllTopics(ctx)
	if err != nil {
		s.Logger.Printf("list topics: %v", err)
		return
	}
	for _, t := range topics {
		if t.ScheduleCron == "" {
			continue
		}
		var last *time.Time
		if news, err := s.Repo.GetLatestNews(ctx, t.ID); err == nil {
			last = &news.CreatedAt
		}
		if !isDue(t.ScheduleCron, last) {
			continue
		}

		// distributed lock to avoid duplicate runs
		if s.Rdb != nil {
			lockKey := "sched:lock:" + t.ID
			ok, _ := s.Rdb.SetNX(ctx, lockKey, "1", 2*time.Minute).Result()
			if !ok {
				continue
			}
		}

		if _, err := s.Collect.Run(ctx, t, ""); err != nil {
			s.Logger.Printf("scheduled collect failed for topic %s: %v", t.ID, err)
			continue
		}
		s.Logger.Printf("scheduled collect done for topic %s", t.ID)
	}
}

// isDue determines if a topic with cronSpec should run now based on last run time.
// Supports "@daily", "@hourly", and standard 5-field cron expressions.
func isDue(cronSpec string, last *time.Time) bool {
	now := time.Now()
	switch cronSpec {
	case "@daily":
		if last == nil {
			return true
		}
		return now.Sub(*last) >= 24*time.Hour
	case "@hourly":
		if last == nil {
			return true
		}
		return now.Sub(*last) >= time.Hour
	default:
		expr, err := cronexpr.Parse(cronSpec)
		if err != nil {
			// Fallback: treat as @daily if invalid
			if last == nil {
				return true
			}
			return now.Sub(*last) >= 24*time.Hour
		}
		if last == nil {
			return true
		}
		next := expr.Next(*last)
		return !next.After(now)
	}
}
