package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/typescatter/pkg/cache"
	"github.com/matzehuels/typescatter/pkg/config"
	"github.com/matzehuels/typescatter/pkg/errors"
	"github.com/matzehuels/typescatter/pkg/fonts"
	"github.com/matzehuels/typescatter/pkg/httputil"
	"github.com/matzehuels/typescatter/pkg/measure"
	"github.com/matzehuels/typescatter/pkg/scatter"
	"github.com/matzehuels/typescatter/pkg/shapes"
)

// =============================================================================
// Runtime Wiring
// =============================================================================

// env bundles the collaborators every command renders with.
type env struct {
	cache    cache.Cache
	fonts    *fonts.Set
	registry *shapes.Registry
	loader   *shapes.Loader
	logger   *log.Logger
}

// newEnv builds the cache, font set and shape loader from the configuration.
// The caller must close the env.
func (c *CLI) newEnv(ctx context.Context, noCache bool) (*env, error) {
	logger := loggerFromContext(ctx)

	ch, err := newCache(ctx, c.cfg, noCache, logger)
	if err != nil {
		return nil, err
	}
	set, err := fonts.LoadSet(c.cfg.FontPaths())
	if err != nil {
		ch.Close()
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load fonts")
	}
	fetcher := httputil.NewFetcher(cache.Scoped(ch, "typescatter:"), c.cfg.Cache.TTL.Duration)

	return &env{
		cache:    ch,
		fonts:    set,
		registry: &shapes.Registry{},
		loader:   shapes.NewLoader(fetcher),
		logger:   logger,
	}, nil
}

func (e *env) Close() error { return e.cache.Close() }

// loadShapes loads source synchronously. Used by one-shot commands that
// render right away.
func (e *env) loadShapes(ctx context.Context, source string) {
	e.registry.Load(ctx, e.loader, source, e.logger)
}

// loadShapesAsync starts a background load, as interactive hosts do.
func (e *env) loadShapesAsync(ctx context.Context, source string) <-chan struct{} {
	return e.registry.LoadAsync(ctx, e.loader, source, e.logger)
}

// renderOptions returns the renderer options shared by all commands.
func (e *env) renderOptions() []scatter.Option {
	return []scatter.Option{
		scatter.WithMeasurer(measure.NewFonts(e.fonts)),
		scatter.WithShapes(e.registry),
		scatter.WithLogger(e.logger),
	}
}

// newRenderer builds a renderer; a zero seed keeps it unseeded.
func (e *env) newRenderer(seed uint64) *scatter.Renderer {
	opts := e.renderOptions()
	if seed != 0 {
		opts = append(opts, scatter.WithSeed(seed))
	}
	return scatter.New(opts...)
}

func newCache(ctx context.Context, cfg config.Config, noCache bool, logger *log.Logger) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			logger.Warn("redis cache unavailable, continuing without cache", "addr", cfg.Cache.RedisAddr, "err", err)
			return cache.NewNullCache(), nil
		}
		return rc, nil
	default:
		dir, err := cfg.CacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}
