// Package loader implements an asynchronous clip loader for the paging
// manager.
//
// Each clip has two independently tracked parts: its primary payload (audio
// samples) and its metadata (annotations). Load starts fetches on background
// goroutines and returns immediately; Unload drops the data at once.
//
// Cancellation is explicit: every clip entry carries a request token. A fetch
// result is applied only if the clip's current token still equals the token
// the fetch was issued under. Unload retires the token, so results that
// arrive after an unload (or after an unload followed by a new load) for the
// old request are discarded.
package loader

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/clipcache/internal/logging"
	"github.com/IvanBrykalov/clipcache/internal/singleflight"
)

type constError string

func (e constError) Error() string { return string(e) }

// ErrNoFetcher is returned by New when Options.FetchPayload is nil.
const ErrNoFetcher = constError("loader: no payload fetcher provided")

// Status is the load status of one part of a clip.
type Status int

const (
	// Unloaded: no data is held and no fetch is pending.
	Unloaded Status = iota
	// Loading: a fetch was requested and its result has not been applied yet.
	Loading
	// Loaded: the fetched data is held.
	Loaded
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "unloaded"
	}
}

// Part names a separately loaded part of a clip.
type Part int

const (
	// Payload is the clip's primary data (audio samples).
	Payload Part = iota
	// Metadata is the clip's annotations.
	Metadata

	numParts = 2
)

func (p Part) String() string {
	if p == Metadata {
		return "metadata"
	}
	return "payload"
}

// Metrics exposes loader-level observability hooks.
type Metrics interface {
	// Fetched is called when a fetch result was applied (ok=false: fetch failed).
	Fetched(part Part, ok bool)
	// Discarded is called when a result arrived for a retired request.
	Discarded(part Part)
}

// NoopMetrics is the default Metrics implementation.
type NoopMetrics struct{}

func (NoopMetrics) Fetched(Part, bool) {}
func (NoopMetrics) Discarded(Part)     {}

var _ Metrics = NoopMetrics{}

// Options configures a Loader. Defaults applied in New():
//   - nil FetchMetadata => metadata is marked loaded without a fetch
//   - nil Metrics       => NoopMetrics
//   - nil Logger        => no-op logger
type Options[K comparable] struct {
	// FetchPayload retrieves a clip's primary payload. Required.
	FetchPayload func(ctx context.Context, k K) ([]byte, error)
	// FetchMetadata retrieves a clip's annotations (name -> value).
	FetchMetadata func(ctx context.Context, k K) (map[string]string, error)

	// OnChange is called after a part's status changes. It runs on the
	// goroutine that caused the change (caller of Load/Unload or a fetch
	// goroutine) without the loader lock held; keep it lightweight.
	OnChange func(k K, part Part, status Status)

	Metrics Metrics
	Logger  *slog.Logger
}

// entry is the per-clip state. It exists from the first Load until Unload.
type entry struct {
	token       uuid.UUID
	status      [numParts]Status
	payload     []byte
	annotations map[string]string
}

// Loader loads clip data asynchronously. It implements cache.Loader[K].
// All methods are safe for concurrent use.
type Loader[K comparable] struct {
	opt Options[K]
	log *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	g      errgroup.Group

	payloads singleflight.Group[K, []byte]
	metas    singleflight.Group[K, map[string]string]

	// ---- guarded by mu ----
	mu     sync.Mutex
	clips  map[K]*entry
	closed bool
}

// New constructs a Loader.
func New[K comparable](opt Options[K]) (*Loader[K], error) {
	if opt.FetchPayload == nil {
		return nil, ErrNoFetcher
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader[K]{
		opt:    opt,
		log:    logging.NewComponentLogger(opt.Logger, "loader"),
		ctx:    ctx,
		cancel: cancel,
		clips:  make(map[K]*entry),
	}, nil
}

// IsUnloaded reports whether the clip's payload is unloaded.
// A clip whose payload is loading counts as not unloaded.
func (l *Loader[K]) IsUnloaded(k K) bool {
	return l.Status(k, Payload) == Unloaded
}

// Status returns the status of one part of a clip.
func (l *Loader[K]) Status(k K, part Part) Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.clips[k]; ok {
		return e.status[part]
	}
	return Unloaded
}

// Payload returns the clip's payload if it is loaded.
// Callers must not modify the returned slice.
func (l *Loader[K]) Payload(k K) ([]byte, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.clips[k]; ok && e.status[Payload] == Loaded {
		return e.payload, true
	}
	return nil, false
}

// Annotations returns a copy of the clip's annotations if they are loaded.
func (l *Loader[K]) Annotations(k K) (map[string]string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.clips[k]; ok && e.status[Metadata] == Loaded {
		return maps.Clone(e.annotations), true
	}
	return nil, false
}

// Load starts fetching every unloaded part of the clip. Parts that are
// loading or loaded are left alone, so repeated calls are no-ops.
// Load never blocks on the fetch.
func (l *Loader[K]) Load(k K) {
	type change struct {
		part   Part
		status Status
	}
	var changes []change
	var pending []Part

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	e, ok := l.clips[k]
	if !ok {
		e = &entry{token: uuid.New()}
		l.clips[k] = e
	}
	token := e.token
	for part := Part(0); part < numParts; part++ {
		if e.status[part] != Unloaded {
			continue
		}
		if part == Metadata && l.opt.FetchMetadata == nil {
			e.status[part] = Loaded
			changes = append(changes, change{part, Loaded})
			continue
		}
		e.status[part] = Loading
		changes = append(changes, change{part, Loading})
		pending = append(pending, part)
	}
	l.mu.Unlock()

	for _, c := range changes {
		l.notify(k, c.part, c.status)
	}
	if len(pending) == 0 {
		return
	}

	// Fetches start after the Loading notifications so observers never see
	// Loaded before Loading. An Unload in between retires token and the
	// results are discarded.
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	for _, part := range pending {
		l.fetch(k, part, token)
	}
}

// Unload drops the clip's data, resets both parts to Unloaded and retires
// the clip's request token. In-flight fetches are not interrupted; their
// results are discarded on arrival.
func (l *Loader[K]) Unload(k K) {
	l.mu.Lock()
	e, ok := l.clips[k]
	if !ok {
		l.mu.Unlock()
		return
	}
	delete(l.clips, k)
	l.mu.Unlock()

	for part := Part(0); part < numParts; part++ {
		if e.status[part] != Unloaded {
			l.notify(k, part, Unloaded)
		}
	}
}

// Wait blocks until all fetches started so far have delivered (or discarded)
// their results.
func (l *Loader[K]) Wait() {
	_ = l.g.Wait()
}

// Close stops accepting loads, cancels the fetch context and waits for
// running fetches to finish. It always returns nil.
func (l *Loader[K]) Close() error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.cancel()
	l.Wait()
	return nil
}

// ---- internals ----

// fetch starts a background fetch of one part. Called with l.mu held.
func (l *Loader[K]) fetch(k K, part Part, token uuid.UUID) {
	l.g.Go(func() error {
		switch part {
		case Payload:
			data, err, _ := l.payloads.Do(l.ctx, k, func() ([]byte, error) {
				return l.opt.FetchPayload(l.ctx, k)
			})
			l.deliver(k, part, token, err, func(e *entry) { e.payload = data })
		case Metadata:
			ann, err, _ := l.metas.Do(l.ctx, k, func() (map[string]string, error) {
				return l.opt.FetchMetadata(l.ctx, k)
			})
			l.deliver(k, part, token, err, func(e *entry) { e.annotations = ann })
		}
		// Fetch errors are reported through status and metrics, not the group.
		return nil
	})
}

// deliver applies a fetch result if token is still current for the clip.
// On error the part returns to Unloaded so a later Load retries it.
func (l *Loader[K]) deliver(k K, part Part, token uuid.UUID, err error, apply func(*entry)) {
	l.mu.Lock()
	e, ok := l.clips[k]
	if !ok || e.token != token || e.status[part] != Loading || l.closed {
		l.mu.Unlock()
		l.opt.Metrics.Discarded(part)
		l.log.Debug("discarded fetch result for retired request",
			slog.Any("clip", k), slog.String("part", part.String()))
		return
	}
	status := Loaded
	if err != nil {
		status = Unloaded
	} else {
		apply(e)
	}
	e.status[part] = status
	l.mu.Unlock()

	l.opt.Metrics.Fetched(part, err == nil)
	if err != nil {
		l.log.Warn("clip fetch failed",
			slog.Any("clip", k), slog.String("part", part.String()), slog.Any("error", err))
	}
	l.notify(k, part, status)
}

func (l *Loader[K]) notify(k K, part Part, status Status) {
	if cb := l.opt.OnChange; cb != nil {
		cb(k, part, status)
	}
}
