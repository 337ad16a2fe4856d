package domain

import (
	"time"
)

type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

func (e RateLimitEntry) Expired(now time.Time) bool {
	return now.After(e.ResetTime)
}

type RateLimitResult struct {
	Allow      bool
	Remaining  int
	RetryAfter time.Duration
}
