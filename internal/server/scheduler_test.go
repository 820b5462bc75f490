package server

import (
	"testing"
	"time"
)

func TestIsDue(t *testing.T) {
	now := time.Now()
	recent := now.Add(-10 * time.Minute)
	old := now.Add(-25 * time.Hour)

	cases := []struct {
		name string
		spec string
		last *time.Time
		want bool
	}{
		{"daily never run", "@daily", nil, true},
		{"daily recent", "@daily", &recent, false},
		{"daily stale", "@daily", &old, true},
		{"hourly recent", "@hourly", &recent, false},
		{"hourly stale", "@hourly", &old, true},
		{"cron never run", "0 * * * *", nil, true},
		{"cron stale", "0 * * * *", &old, true},
		{"invalid spec falls back to daily", "not a cron", &old, true},
		{"invalid spec recent", "not a cron", &recent, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isDue(tc.spec, tc.last); got != tc.want {
				t.Errorf("isDue(%q) = %v, want %v", tc.spec, got, tc.want)
			}
		})
	}
}
