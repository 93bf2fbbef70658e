package engine

import (
	"math/rand"
)

// MediaConfig describes how media for one recipient is assembled: a fixed
// prefix plus a random draw from a pool.
type MediaConfig struct {
	FixedURLs   []string `json:"fixed_urls"`
	RandomPool  []string `json:"random_pool"`
	RandomCount int      `json:"random_count"`
}

// SelectMedia produces the final ordered media list. The fixed URLs keep
// their order; the random draw is without replacement, clamped to the pool
// size, and its order must not be relied upon.
func SelectMedia(cfg *MediaConfig, legacyURL string) []string {
	if cfg == nil {
		if legacyURL != "" {
			return []string{legacyURL}
		}
		return []string{}
	}

	// RandomCount comes straight from request JSON; clamp it into [0, |pool|].
	count := cfg.RandomCount
	if count < 0 {
		count = 0
	}
	if count > len(cfg.RandomPool) {
		count = len(cfg.RandomPool)
	}

	urls := make([]string, 0, len(cfg.FixedURLs)+count)
	urls = append(urls, cfg.FixedURLs...)
	if count > 0 {
		pool := make([]string, len(cfg.RandomPool))
		copy(pool, cfg.RandomPool)
		rand.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		urls = append(urls, pool[:count]...)
	}

	return urls
}
