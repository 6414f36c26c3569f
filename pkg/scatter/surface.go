package scatter

import "sync"

// Surface is the host area a composition is mounted into.
type Surface interface {
	// Width returns the current usable width in pixels.
	Width() float64
	// Clear removes the current composition.
	Clear()
	// Mount installs c as the only content.
	Mount(c *Composition)
}

// MemorySurface keeps the mounted composition in memory. It is safe for
// concurrent use.
type MemorySurface struct {
	mu    sync.RWMutex
	width float64
	comp  *Composition
}

// NewMemorySurface returns an empty surface of the given width.
func NewMemorySurface(width float64) *MemorySurface {
	return &MemorySurface{width: width}
}

func (s *MemorySurface) Width() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width
}

// SetWidth changes the width used by the next render.
func (s *MemorySurface) SetWidth(w float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = w
}

func (s *MemorySurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comp = nil
}

func (s *MemorySurface) Mount(c *Composition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comp = c
}

// Composition returns the mounted composition, or nil when empty.
func (s *MemorySurface) Composition() *Composition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.comp
}

// Children returns the number of elements currently mounted.
func (s *MemorySurface) Children() int {
	return s.Composition().Children()
}

var _ Surface = (*MemorySurface)(nil)
