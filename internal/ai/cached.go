package ai

import (
	"context"

	"github.com/vannoorsab/FINAI/internal/cache"
	"github.com/vannoorsab/FINAI/internal/logger"
)

// CachedGenerator memoizes successful completions by prompt.
type CachedGenerator struct {
	next  TextGenerator
	cache *cache.Cache
}

// NewCachedGenerator wraps next. A nil cache disables memoization.
func NewCachedGenerator(next TextGenerator, c *cache.Cache) *CachedGenerator {
	return &CachedGenerator{next: next, cache: c}
}

func (g *CachedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := cache.Key("gemini", prompt)
	if text, ok := cache.Lookup[string](g.cache, key); ok {
		log := logger.FromContext(ctx)
		log.Debug().Str("cache_key", key).Msg("Model response served from cache")
		return text, nil
	}

	text, err := g.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if g.cache != nil {
		g.cache.Set(key, text)
	}
	return text, nil
}
