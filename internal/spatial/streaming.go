package spatial

import (
	"context"
	"sync"
)

// CellState is a cell's position in the load/unload state machine:
// Unloaded -> Loading -> Active -> Unloading -> Unloaded.
type CellState int

const (
	Unloaded CellState = iota
	Loading
	Active
	Unloading
)

func (s CellState) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Active:
		return "active"
	case Unloading:
		return "unloading"
	default:
		return "unknown"
	}
}

// EventKind tags a streaming event.
type EventKind int

const (
	CellLoadStarted EventKind = iota
	CellLoaded
	CellUnloadStarted
	CellUnloaded
	CellLoadFailed
)

// Event is one streaming lifecycle notification, emitted in causal
// order per cell.
type Event struct {
	Kind  EventKind
	Coord GridCoord
	Err   error
}

// CellLoader loads and unloads the opaque per-cell payload. Load MUST respect ctx cancellation promptly.
type CellLoader interface {
	Load(ctx context.Context, coord GridCoord) (any, error)
	Unload(coord GridCoord, payload any)
}

type cellEntry struct {
	state       CellState
	payload     any
	lastTouched uint64
	cancel      context.CancelFunc
}

// StreamingMetrics is a point-in-time view of the manager's counters.
type StreamingMetrics struct {
	ActiveCells  int
	LoadingCells int
	CacheHits    int64
	CacheMisses  int64
}

// Manager is the world-partition streaming manager: it tracks per-cell
// state and bounds concurrent loads. ForceLoadCell/ForceUnloadCell act
// once and record no override, so a later UpdateTarget can reverse them.
type Manager struct {
	mu sync.Mutex

	loader           CellLoader
	cellSize         float64
	activationRadius float64
	maxConcurrent    int

	cells     map[GridCoord]*cellEntry
	inflight  int
	tick      uint64
	events    chan Event
	cacheHits int64
	cacheMiss int64

	lru *lruTracker
}

// NewManager creates a Manager. events is buffered generously so
// emitting never blocks a load/unload goroutine; callers that care
// about backpressure should drain it promptly.
func NewManager(loader CellLoader, cellSize, activationRadius float64, maxConcurrent int, lruCapacity int) *Manager {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Manager{
		loader:           loader,
		cellSize:         cellSize,
		activationRadius: activationRadius,
		maxConcurrent:    maxConcurrent,
		cells:            make(map[GridCoord]*cellEntry),
		events:           make(chan Event, 256),
		lru:              newLRUTracker(lruCapacity),
	}
}

// Events returns the channel streaming lifecycle events are published
// on.
func (m *Manager) Events() <-chan Event { return m.events }

// State returns coord's current state, Unloaded if never seen.
func (m *Manager) State(coord GridCoord) CellState {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.cells[coord]
	if !ok {
		return Unloaded
	}
	return entry.state
}

// IsCellActive reports whether coord is currently Active.
func (m *Manager) IsCellActive(coord GridCoord) bool {
	return m.State(coord) == Active
}

// UpdateTarget recomputes the target cell set around (x,y,z) and
// initiates loads/unloads accordingly. The target set is the cube of
// cells reaching int(activationRadius/cellSize)+1 cells along each
// axis from the cell containing (x,y,z); it is not clipped to
// activationRadius, so it also holds cells farther away than that.
// Unloaded cells in the set start loading while load slots are free;
// Active cells outside it (and outside the LRU grace window) start
// unloading.
func (m *Manager) UpdateTarget(ctx context.Context, x, y, z float64) {
	m.mu.Lock()
	m.tick++
	center := FromWorldPos(x, y, z, m.cellSize)
	target := targetSet(center, m.activationRadius, m.cellSize)
	m.mu.Unlock()

	for coord := range target {
		m.requestLoad(ctx, coord)
	}

	m.mu.Lock()
	var toUnload []GridCoord
	for coord, entry := range m.cells {
		if entry.state != Active {
			continue
		}
		if _, inTarget := target[coord]; inTarget {
			continue
		}
		if m.lru.withinGrace(coord, m.tick) {
			continue
		}
		toUnload = append(toUnload, coord)
	}
	m.mu.Unlock()

	for _, coord := range toUnload {
		m.requestUnload(coord)
	}
}

func targetSet(center GridCoord, radius, cellSize float64) map[GridCoord]struct{} {
	cellRadius := int32(radius/cellSize) + 1
	out := make(map[GridCoord]struct{})
	for dx := -cellRadius; dx <= cellRadius; dx++ {
		for dy := -cellRadius; dy <= cellRadius; dy++ {
			for dz := -cellRadius; dz <= cellRadius; dz++ {
				out[GridCoord{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz}] = struct{}{}
			}
		}
	}
	return out
}

// ForceLoadCell starts loading coord if it is Unloaded and a load slot
// is free, whether or not coord is in the current target set. When all
// maxConcurrent slots are busy it starts no load. No override is
// recorded: a later UpdateTarget unloads the cell once it is Active
// outside the target set and the LRU grace window.
func (m *Manager) ForceLoadCell(ctx context.Context, coord GridCoord) {
	m.requestLoad(ctx, coord)
}

// ForceUnloadCell unloads coord if it is Active, or cancels its load if
// it is Loading. No override is recorded: a later UpdateTarget loads
// the cell again if it is in the target set.
func (m *Manager) ForceUnloadCell(coord GridCoord) {
	m.requestUnload(coord)
}

func (m *Manager) requestLoad(ctx context.Context, coord GridCoord) {
	m.mu.Lock()
	entry, ok := m.cells[coord]
	if ok {
		m.lru.touch(coord, m.tick)
		if entry.state != Unloaded {
			if entry.state == Active {
				m.cacheHits++
			}
			m.mu.Unlock()
			return
		}
	} else {
		entry = &cellEntry{state: Unloaded}
		m.cells[coord] = entry
	}
	m.cacheMiss++

	if m.inflight >= m.maxConcurrent {
		m.mu.Unlock()
		return
	}

	loadCtx, cancel := context.WithCancel(ctx)
	entry.state = Loading
	entry.cancel = cancel
	m.inflight++
	m.mu.Unlock()

	m.emit(Event{Kind: CellLoadStarted, Coord: coord})
	go m.runLoad(loadCtx, coord)
}

func (m *Manager) runLoad(ctx context.Context, coord GridCoord) {
	payload, err := m.loader.Load(ctx, coord)

	var toEmit *Event

	m.mu.Lock()
	m.inflight--

	entry, ok := m.cells[coord]
	switch {
	case !ok || entry.state != Loading:
		// Cancelled mid-flight (unload arrived first): leave Unloaded,
		// never observe a partially-initialized Active state.
	case ctx.Err() != nil:
		entry.state = Unloaded
		entry.cancel = nil
	case err != nil:
		entry.state = Unloaded
		entry.cancel = nil
		toEmit = &Event{Kind: CellLoadFailed, Coord: coord, Err: err}
	default:
		entry.state = Active
		entry.payload = payload
		entry.cancel = nil
		entry.lastTouched = m.tick
		m.lru.touch(coord, m.tick)
		toEmit = &Event{Kind: CellLoaded, Coord: coord}
	}
	m.mu.Unlock()

	if toEmit != nil {
		m.emit(*toEmit)
	}
}

func (m *Manager) requestUnload(coord GridCoord) {
	m.mu.Lock()
	entry, ok := m.cells[coord]
	if !ok {
		m.mu.Unlock()
		return
	}

	switch entry.state {
	case Loading:
		// Cancel the in-flight load; it converges to Unloaded without
		// ever becoming Active.
		if entry.cancel != nil {
			entry.cancel()
		}
		entry.state = Unloaded
		entry.cancel = nil
		m.mu.Unlock()
		return
	case Active:
		entry.state = Unloading
		payload := entry.payload
		m.mu.Unlock()
		m.emit(Event{Kind: CellUnloadStarted, Coord: coord})

		m.loader.Unload(coord, payload)

		m.mu.Lock()
		entry.state = Unloaded
		entry.payload = nil
		m.mu.Unlock()
		m.emit(Event{Kind: CellUnloaded, Coord: coord})
		return
	default:
		m.mu.Unlock()
		return
	}
}

func (m *Manager) emit(e Event) {
	select {
	case m.events <- e:
	default:
	}
}

// Metrics returns a point-in-time view of the manager's counters.
func (m *Manager) Metrics() StreamingMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	var active, loading int
	for _, entry := range m.cells {
		switch entry.state {
		case Active:
			active++
		case Loading:
			loading++
		}
	}
	return StreamingMetrics{
		ActiveCells:  active,
		LoadingCells: loading,
		CacheHits:    m.cacheHits,
		CacheMisses:  m.cacheMiss,
	}
}

// lruTracker provides hysteresis for recently-active cells so they
// survive briefly outside the target set instead of thrashing load/
// unload every tick a camera wobbles near a boundary.
type lruTracker struct {
	capacity int
	touched  map[GridCoord]uint64
}

func newLRUTracker(capacity int) *lruTracker {
	return &lruTracker{capacity: capacity, touched: make(map[GridCoord]uint64)}
}

func (l *lruTracker) touch(coord GridCoord, tick uint64) {
	l.touched[coord] = tick
}

func (l *lruTracker) withinGrace(coord GridCoord, currentTick uint64) bool {
	last, ok := l.touched[coord]
	if !ok {
		return false
	}
	return currentTick-last < uint64(l.capacity)
}
