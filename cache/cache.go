package cache

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/IvanBrykalov/clipcache/internal/logging"
	"github.com/IvanBrykalov/clipcache/policy"
)

// manager is the Manager implementation. It owns the pagination, the current
// page number, the loaded-page set and the running loaded-clip count.
//
// Invariant: loadedClips == sum of Size(p) for p in loaded.
type manager[C any] struct {
	clips  []C
	cfg    Config
	loader Loader[C]
	pol    policy.PagePolicy

	metrics Metrics
	log     *slog.Logger

	pagination  Pagination // nil until the first Update
	pageNum     int        // -1 until the first Update
	loaded      map[int]struct{}
	loadedClips int
}

// New constructs a Manager and applies Options.Pagination/PageNum as the
// first Update.
// Defaults:
//   - nil Metrics -> NoopMetrics
//   - nil Logger  -> no-op logger
func New[C any](opt Options[C]) (Manager[C], error) {
	if opt.Loader == nil {
		return nil, ErrNoLoader
	}
	if opt.Policy == nil {
		return nil, ErrNoPolicy
	}
	if err := opt.Config.Validate(); err != nil {
		return nil, err
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}

	m := &manager[C]{
		clips:   opt.Clips,
		cfg:     opt.Config,
		loader:  opt.Loader,
		metrics: opt.Metrics,
		log:     logging.NewComponentLogger(opt.Logger, "clipcache"),
		pageNum: -1,
		loaded:  make(map[int]struct{}),
	}
	m.pol = opt.Policy.New(managerHooks[C]{m: m})

	if err := m.Update(opt.Pagination, opt.PageNum); err != nil {
		return nil, err
	}
	// return pointer-to-impl as the interface (avoids unexported-return lint)
	return m, nil
}

// ---- Manager[C] implementation ----

// Update validates its arguments, re-paginates if the boundaries changed,
// and applies the policy plan if the page number changed (or after a
// re-pagination).
func (m *manager[C]) Update(p Pagination, pageNum int) error {
	if err := p.Validate(len(m.clips)); err != nil {
		return err
	}
	if pageNum < 0 || pageNum >= p.NumPages() {
		return fmt.Errorf("%w: page %d not in [0, %d)", ErrPageOutOfRange, pageNum, p.NumPages())
	}

	switch {
	case m.pagination == nil || !m.pagination.Equal(p):
		m.repaginate(p, pageNum)
		m.updatePageNum(pageNum)
	case pageNum != m.pageNum:
		m.updatePageNum(pageNum)
	}
	return nil
}

func (m *manager[C]) Clips() []C             { return m.clips }
func (m *manager[C]) Config() Config         { return m.cfg }
func (m *manager[C]) Pagination() Pagination { return slices.Clone(m.pagination) }
func (m *manager[C]) PageNum() int           { return m.pageNum }
func (m *manager[C]) LoadedClips() int       { return m.loadedClips }

func (m *manager[C]) LoadedPages() []int {
	return slices.Sorted(maps.Keys(m.loaded))
}

func (m *manager[C]) IsPageLoaded(p int) bool {
	_, ok := m.loaded[p]
	return ok
}

func (m *manager[C]) PageStatus(p int) PageStatus {
	start, end := m.pagination.Range(p)
	return InspectPage(m.clips[start:end], m.loader.IsUnloaded)
}

// ---- internals ----

// repaginate adopts p. When a pagination was already in place, the loaded
// set is rebuilt from clip-level state under the new boundaries: loaded
// pages are re-registered, partially loaded pages are completed if required
// for pageNum and cleared otherwise.
func (m *manager[C]) repaginate(p Pagination, pageNum int) {
	first := m.pagination == nil
	m.pagination = slices.Clone(p)
	if first {
		return
	}

	clear(m.loaded)
	m.loadedClips = 0

	var required map[int]struct{} // computed on first partial page
	var completed, cleared int
	for page := range p.NumPages() {
		switch m.PageStatus(page) {
		case PageLoaded:
			m.register(page)
		case PagePartiallyLoaded:
			if required == nil {
				required = make(map[int]struct{})
				for _, r := range m.pol.RequiredPages(pageNum) {
					required[r] = struct{}{}
				}
			}
			if _, ok := required[page]; ok {
				m.loadPage(page)
				completed++
			} else {
				m.clearPage(page)
				cleared++
			}
		}
	}

	m.log.Debug("repaginated",
		slog.Int("pages", p.NumPages()),
		slog.Int("loaded_pages", len(m.loaded)),
		slog.Int("completed_partial", completed),
		slog.Int("cleared_partial", cleared),
	)
}

// updatePageNum applies the policy plan for pageNum (unloads first) and
// then records pageNum as current.
// A page listed in both halves of the plan stays loaded: its Unload is
// skipped, and since it is still loaded its Load is a no-op, so the Loader
// sees neither Unload nor Load calls for its clips.
func (m *manager[C]) updatePageNum(pageNum int) {
	plan := m.pol.UpdatePlan(pageNum)

	keep := make(map[int]struct{}, len(plan.Load))
	for _, p := range plan.Load {
		keep[p] = struct{}{}
	}
	for _, p := range plan.Unload {
		if _, ok := keep[p]; ok {
			continue
		}
		m.unloadPage(p)
	}
	for _, p := range plan.Load {
		m.loadPage(p)
	}
	m.pageNum = pageNum

	m.metrics.Size(len(m.loaded), m.loadedClips)
	if budget := m.cfg.MaxLoadedClips; budget > 0 && m.loadedClips > budget {
		m.metrics.Overflow(m.loadedClips - budget)
		m.log.Warn("loaded-clip budget exceeded by required pages",
			slog.Int("page", pageNum),
			slog.Int("loaded_clips", m.loadedClips),
			slog.Int("max_loaded_clips", budget),
		)
	}
	m.log.Debug("page plan applied",
		slog.Int("page", pageNum),
		slog.Any("unload", plan.Unload),
		slog.Any("load", plan.Load),
		slog.Int("loaded_clips", m.loadedClips),
	)
}

// loadPage requests every clip of page p and registers the page.
// No-op if p is already loaded.
func (m *manager[C]) loadPage(p int) {
	if m.IsPageLoaded(p) {
		return
	}
	if !m.validPage(p) {
		return
	}
	start, end := m.pagination.Range(p)
	for _, c := range m.clips[start:end] {
		m.loader.Load(c)
	}
	m.register(p)
	m.metrics.PageLoaded(end - start)
}

// unloadPage discards every clip of page p and unregisters the page.
// No-op if p is not loaded.
func (m *manager[C]) unloadPage(p int) {
	if !m.IsPageLoaded(p) {
		return
	}
	start, end := m.pagination.Range(p)
	for _, c := range m.clips[start:end] {
		m.loader.Unload(c)
	}
	delete(m.loaded, p)
	m.loadedClips -= end - start
	m.metrics.PageUnloaded(end-start, UnloadPlan)
}

// clearPage unloads the loaded clips of an unregistered page (partial after
// re-pagination). Clips that are already unloaded are left alone.
func (m *manager[C]) clearPage(p int) {
	start, end := m.pagination.Range(p)
	cleared := 0
	for _, c := range m.clips[start:end] {
		if m.loader.IsUnloaded(c) {
			continue
		}
		m.loader.Unload(c)
		cleared++
	}
	m.metrics.PageUnloaded(cleared, UnloadRepaginate)
}

// register adds p to the loaded set without touching clip data.
func (m *manager[C]) register(p int) {
	m.loaded[p] = struct{}{}
	m.loadedClips += m.pagination.Size(p)
}

func (m *manager[C]) validPage(p int) bool {
	if p >= 0 && p < m.pagination.NumPages() {
		return true
	}
	m.log.Warn("policy planned a page outside the pagination", slog.Int("page", p))
	return false
}

// -------------------- policy hooks --------------------

// managerHooks adapts the manager's state to policy.Hooks.
type managerHooks[C any] struct{ m *manager[C] }

func (h managerHooks[C]) Config() policy.Config { return h.m.cfg }
func (h managerHooks[C]) NumPages() int         { return h.m.pagination.NumPages() }
func (h managerHooks[C]) PageNum() int          { return h.m.pageNum }
func (h managerHooks[C]) PageSize(p int) int    { return h.m.pagination.Size(p) }
func (h managerHooks[C]) IsLoaded(p int) bool   { return h.m.IsPageLoaded(p) }
func (h managerHooks[C]) LoadedPages() []int    { return h.m.LoadedPages() }
func (h managerHooks[C]) LoadedClips() int      { return h.m.loadedClips }
