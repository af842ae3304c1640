package wavedb

import (
	"container/list"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ripopov/wavescout"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the number of decoded signals kept in the LRU cache
// before the least-recently-used entry is evicted.
const DefaultCacheSize = 1000

// DB is the caching facade over a Backend. It is safe for concurrent use:
// GetSignal coalesces concurrent lookups of the same handle via singleflight, and
// the LRU cache is guarded by a mutex.
type DB struct {
	backend Backend

	varsOnce sync.Once
	varsErr  error
	vars     []Var
	byHandle map[wavescout.SignalHandle][]Var
	byPath   map[string]wavescout.SignalHandle

	timeRange struct {
		start, end wavescout.Time
	}
	timescale     wavescout.Timescale
	timeTable     []wavescout.Time
	timeTableOnce sync.Once
	timeTableErr  error

	cacheSize int
	mu        sync.Mutex
	cache     map[wavescout.SignalHandle]*list.Element // handle -> lru node
	lru       *list.List                                // front = most recent

	group  singleflight.Group
	closed bool
}

type cacheEntry struct {
	handle wavescout.SignalHandle
	signal *Signal
}

// HandleVars groups one signal handle with every Var (hierarchical name)
// that aliases it, for IterHandlesAndVars.
type HandleVars struct {
	Handle wavescout.SignalHandle
	Vars   []Var
}

// TimeValue pairs a transition time with the raw value it carries, for
// Transitions range queries.
type TimeValue struct {
	Time  wavescout.Time
	Value any
}

// New wraps backend in a DB with the default cache size.
func New(backend Backend) *DB {
	return NewWithCacheSize(backend, DefaultCacheSize)
}

// NewWithCacheSize wraps backend in a DB whose LRU cache holds at most size
// decoded signals.
func NewWithCacheSize(backend Backend, size int) *DB {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &DB{
		backend:   backend,
		cacheSize: size,
		cache:     make(map[wavescout.SignalHandle]*list.Element),
		lru:       list.New(),
	}
}

// ensureHierarchy loads and caches the backend's hierarchy on first use.
func (db *DB) ensureHierarchy(ctx context.Context) error {
	db.mu.Lock()
	closed := db.closed
	db.mu.Unlock()
	if closed {
		return ErrClosed
	}
	db.varsOnce.Do(func() {
		vars, err := db.backend.Hierarchy(ctx)
		if err != nil {
			db.varsErr = fmt.Errorf("%w: %v", ErrBackendFailure, err)
			return
		}
		db.vars = vars
		db.byHandle = make(map[wavescout.SignalHandle][]Var, len(vars))
		db.byPath = make(map[string]wavescout.SignalHandle, len(vars))
		for _, v := range vars {
			if !v.IsScope {
				db.byHandle[v.Handle] = append(db.byHandle[v.Handle], v)
				db.byPath[v.Name] = v.Handle
			}
		}
		start, end, err := db.backend.TimeRange(ctx)
		if err != nil {
			db.varsErr = fmt.Errorf("%w: %v", ErrBackendFailure, err)
			return
		}
		db.timeRange.start, db.timeRange.end = start, end
		ts, err := db.backend.Timescale(ctx)
		if err != nil {
			db.varsErr = fmt.Errorf("%w: %v", ErrBackendFailure, err)
			return
		}
		db.timescale = ts
	})
	return db.varsErr
}

// Hierarchy returns the backend's full scope/variable tree.
func (db *DB) Hierarchy(ctx context.Context) ([]Var, error) {
	if err := db.ensureHierarchy(ctx); err != nil {
		return nil, err
	}
	return db.vars, nil
}

// VarFromHandle looks up the Var describing handle. When handle has more
// than one alias, the first one encountered in hierarchy order is returned;
// use IterHandlesAndVars to see every alias.
func (db *DB) VarFromHandle(ctx context.Context, handle wavescout.SignalHandle) (Var, error) {
	if err := db.ensureHierarchy(ctx); err != nil {
		return Var{}, err
	}
	vs, ok := db.byHandle[handle]
	if !ok {
		return Var{}, fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}
	return vs[0], nil
}

// FindHandleByPath resolves a full hierarchical name (e.g. "top.cpu.clk") to
// its signal handle. ok is false when no variable in the hierarchy has that
// path.
func (db *DB) FindHandleByPath(ctx context.Context, fullName string) (wavescout.SignalHandle, bool, error) {
	if err := db.ensureHierarchy(ctx); err != nil {
		return 0, false, err
	}
	h, ok := db.byPath[fullName]
	return h, ok, nil
}

// IterHandlesAndVars returns every distinct signal handle in the hierarchy
// paired with the full list of Vars (hierarchical names) that alias it, so
// callers can discover aliasing relationships without reconstructing them
// from Hierarchy's flat list.
func (db *DB) IterHandlesAndVars(ctx context.Context) ([]HandleVars, error) {
	if err := db.ensureHierarchy(ctx); err != nil {
		return nil, err
	}
	out := make([]HandleVars, 0, len(db.byHandle))
	seen := make(map[wavescout.SignalHandle]bool, len(db.byHandle))
	for _, v := range db.vars {
		if v.IsScope || seen[v.Handle] {
			continue
		}
		seen[v.Handle] = true
		out = append(out, HandleVars{Handle: v.Handle, Vars: db.byHandle[v.Handle]})
	}
	return out, nil
}

// TimeRange returns the recording's [start, end] bounds.
func (db *DB) TimeRange(ctx context.Context) (wavescout.Time, wavescout.Time, error) {
	if err := db.ensureHierarchy(ctx); err != nil {
		return 0, 0, err
	}
	return db.timeRange.start, db.timeRange.end, nil
}

// Timescale returns the recording's declared timescale.
func (db *DB) Timescale(ctx context.Context) (wavescout.Timescale, error) {
	if err := db.ensureHierarchy(ctx); err != nil {
		return wavescout.Timescale{}, err
	}
	return db.timescale, nil
}

// TimeTable returns every distinct timestamp at which any signal in the
// recording transitions, loaded from the backend once and cached for the
// life of the DB.
func (db *DB) TimeTable(ctx context.Context) ([]wavescout.Time, error) {
	if err := db.ensureHierarchy(ctx); err != nil {
		return nil, err
	}
	db.timeTableOnce.Do(func() {
		tt, err := db.backend.TimeTable(ctx)
		if err != nil {
			db.timeTableErr = fmt.Errorf("%w: %v", ErrBackendFailure, err)
			return
		}
		db.timeTable = tt
	})
	if db.timeTableErr != nil {
		return nil, db.timeTableErr
	}
	return db.timeTable, nil
}

// GetSignal returns the decoded transition list for handle, serving it from
// the LRU cache when present. Concurrent callers requesting the same handle
// while it is loading coalesce into a single Backend.Signal call, so a burst
// of repeated requests for a signal that is still loading does not each
// trigger their own backend fetch.
func (db *DB) GetSignal(ctx context.Context, handle wavescout.SignalHandle) (*Signal, error) {
	if err := db.ensureHierarchy(ctx); err != nil {
		return nil, err
	}
	if _, ok := db.byHandle[handle]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}

	if sig, ok := db.lookupCache(handle); ok {
		return sig, nil
	}

	key := fmt.Sprintf("%d", handle)
	v, err, _ := db.group.Do(key, func() (any, error) {
		if sig, ok := db.lookupCache(handle); ok {
			return sig, nil
		}
		sig, err := db.backend.Signal(ctx, handle)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
		}
		db.storeCache(handle, sig)
		return sig, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Signal), nil
}

// PreloadSignals fetches and caches every handle in handles concurrently,
// bounded by errgroup's default unlimited concurrency (the caller controls
// parallelism by the size of handles). Useful for warming the cache for a
// set of signals expected to become visible soon, rather than waiting for
// each to be requested individually.
func (db *DB) PreloadSignals(ctx context.Context, handles []wavescout.SignalHandle) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, h := range handles {
		h := h
		g.Go(func() error {
			_, err := db.GetSignal(gctx, h)
			return err
		})
	}
	return g.Wait()
}

// Sample returns the raw value handle carries at time t. It is a thin
// wrapper over GetSignal and Signal.Query for callers that only need the
// value, not the next-transition time.
func (db *DB) Sample(ctx context.Context, handle wavescout.SignalHandle, t wavescout.Time) (any, error) {
	sig, err := db.GetSignal(ctx, handle)
	if err != nil {
		return nil, err
	}
	value, _, _ := sig.Query(t)
	return value, nil
}

// Transitions returns every (time, value) pair recorded for handle within
// [t0, t1], ordered by time. A transition active at or before t0 but not
// landing inside the range is not included; callers that need the value
// active at t0 should pair this with Sample.
func (db *DB) Transitions(ctx context.Context, handle wavescout.SignalHandle, t0, t1 wavescout.Time) ([]TimeValue, error) {
	sig, err := db.GetSignal(ctx, handle)
	if err != nil {
		return nil, err
	}
	lo := sort.Search(len(sig.Times), func(i int) bool { return sig.Times[i] >= t0 })
	out := make([]TimeValue, 0, len(sig.Times)-lo)
	for i := lo; i < len(sig.Times) && sig.Times[i] <= t1; i++ {
		out = append(out, TimeValue{Time: sig.Times[i], Value: sig.Values[i]})
	}
	return out, nil
}

// IsSignalCached reports whether handle's decoded transitions are currently
// held in the LRU cache, without triggering a load.
func (db *DB) IsSignalCached(handle wavescout.SignalHandle) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.cache[handle]
	return ok
}

// ClearSignalCache evicts every decoded signal from the LRU cache. Hierarchy
// and time-range data loaded by ensureHierarchy are unaffected; the next
// GetSignal call for any handle re-fetches from the backend.
func (db *DB) ClearSignalCache() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.cache = make(map[wavescout.SignalHandle]*list.Element)
	db.lru = list.New()
}

func (db *DB) lookupCache(handle wavescout.SignalHandle) (*Signal, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	elem, ok := db.cache[handle]
	if !ok {
		return nil, false
	}
	db.lru.MoveToFront(elem)
	return elem.Value.(*cacheEntry).signal, true
}

func (db *DB) storeCache(handle wavescout.SignalHandle, sig *Signal) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if elem, ok := db.cache[handle]; ok {
		elem.Value.(*cacheEntry).signal = sig
		db.lru.MoveToFront(elem)
		return
	}
	elem := db.lru.PushFront(&cacheEntry{handle: handle, signal: sig})
	db.cache[handle] = elem
	for db.lru.Len() > db.cacheSize {
		oldest := db.lru.Back()
		if oldest == nil {
			break
		}
		db.lru.Remove(oldest)
		delete(db.cache, oldest.Value.(*cacheEntry).handle)
	}
}

// Close releases the underlying backend and marks the DB unusable.
func (db *DB) Close() error {
	db.mu.Lock()
	db.closed = true
	db.mu.Unlock()
	return db.backend.Close()
}
