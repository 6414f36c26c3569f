package shapes

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/typescatter/pkg/observability"
)

// Registry holds the process-wide template library. It starts empty and is
// set at most once; readers never observe a partially built library.
type Registry struct {
	lib atomic.Pointer[Library]
}

var defaultRegistry Registry

// Default returns the process-wide registry.
func Default() *Registry { return &defaultRegistry }

// Library returns the loaded library, or [Empty] before a successful load.
func (r *Registry) Library() *Library {
	if lib := r.lib.Load(); lib != nil {
		return lib
	}
	return Empty
}

// Loaded reports whether a library was installed.
func (r *Registry) Loaded() bool { return r.lib.Load() != nil }

// Set installs lib if none is installed yet and reports whether it did.
func (r *Registry) Set(lib *Library) bool {
	if lib == nil {
		return false
	}
	return r.lib.CompareAndSwap(nil, lib)
}

// LoadAsync starts a fire-and-forget load of source into the registry.
// Failures are logged at debug level and leave the registry empty. The
// returned channel is closed once the attempt finished.
func (r *Registry) LoadAsync(ctx context.Context, l *Loader, source string, logger *log.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Load(ctx, l, source, logger)
	}()
	return done
}

// Load synchronously loads source into the registry. It never fails: a
// missing or broken asset yields an empty registry.
func (r *Registry) Load(ctx context.Context, l *Loader, source string, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	if source == "" {
		logger.Debug("decorative shapes disabled")
		return
	}

	start := time.Now()
	lib, err := l.Load(ctx, source)
	observability.Asset().OnAssetLoaded(ctx, source, lib.Len(), time.Since(start), err)
	if err != nil {
		logger.Debug("decorative shapes unavailable", "source", source, "err", err)
		return
	}
	if r.Set(lib) {
		logger.Debug("loaded decorative shapes", "source", source, "templates", lib.Len(), "duration", time.Since(start).Round(time.Millisecond))
	}
}
