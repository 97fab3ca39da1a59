package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/IvanBrykalov/clipcache/cache"
	"github.com/IvanBrykalov/clipcache/config"
	"github.com/IvanBrykalov/clipcache/loader"
	"github.com/IvanBrykalov/clipcache/metrics/prom"
	"github.com/IvanBrykalov/clipcache/policy"
	"github.com/IvanBrykalov/clipcache/policy/lru"
	"github.com/IvanBrykalov/clipcache/policy/preload"
	"github.com/IvanBrykalov/clipcache/policy/simple"
)

var classifications = []string{"NFC.AMRE", "NFC.WTSP", "NFC.SWTH", "Noise"}

// newPolicy resolves a configured policy name.
func newPolicy(name string) (policy.Policy, error) {
	switch name {
	case config.PolicySimple:
		return simple.New(), nil
	case config.PolicyPreload:
		return preload.New(), nil
	case config.PolicyLRU:
		return lru.New(), nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}

type sessionOptions struct {
	NumClips int
	// StartPage is applied by the manager's first update.
	StartPage int
	// Latency delays every synthetic fetch.
	Latency time.Duration
	Metrics *prom.Adapter
	Logger  *slog.Logger
}

// session pages through synthetic clips numbered 0..NumClips-1.
type session struct {
	clips []int
	ld    *loader.Loader[int]
	mgr   cache.Manager[int]
}

func newSession(cfg *config.Config, opt sessionOptions) (*session, error) {
	if opt.NumClips <= 0 {
		return nil, fmt.Errorf("clip count must be positive, got %d", opt.NumClips)
	}
	pol, err := newPolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}

	lopt := loader.Options[int]{
		FetchPayload: func(ctx context.Context, k int) ([]byte, error) {
			if err := sleep(ctx, opt.Latency); err != nil {
				return nil, err
			}
			return []byte("clip-" + strconv.Itoa(k)), nil
		},
		FetchMetadata: func(ctx context.Context, k int) (map[string]string, error) {
			if err := sleep(ctx, opt.Latency); err != nil {
				return nil, err
			}
			return map[string]string{"Classification": classifications[k%len(classifications)]}, nil
		},
		Logger: opt.Logger,
	}
	if opt.Metrics != nil {
		lopt.Metrics = opt.Metrics
	}
	ld, err := loader.New(lopt)
	if err != nil {
		return nil, err
	}

	clips := make([]int, opt.NumClips)
	for i := range clips {
		clips[i] = i
	}
	pg, err := cache.Uniform(len(clips), cfg.Paging.PageSize)
	if err != nil {
		_ = ld.Close()
		return nil, err
	}

	mopt := cache.Options[int]{
		Config:     cfg.PolicyConfig(),
		Clips:      clips,
		Pagination: pg,
		PageNum:    opt.StartPage,
		Loader:     ld,
		Policy:     pol,
		Logger:     opt.Logger,
	}
	if opt.Metrics != nil {
		mopt.Metrics = opt.Metrics
	}
	mgr, err := cache.New(mopt)
	if err != nil {
		_ = ld.Close()
		return nil, err
	}
	return &session{clips: clips, ld: ld, mgr: mgr}, nil
}

// goTo moves to pageNum under a uniform pagination of pageSize clips.
func (s *session) goTo(pageNum, pageSize int) error {
	pg, err := cache.Uniform(len(s.clips), pageSize)
	if err != nil {
		return err
	}
	return s.mgr.Update(pg, pageNum)
}

// rows describes every page that is current, registered as loaded, or has
// clip data present.
func (s *session) rows() [][]string {
	pg := s.mgr.Pagination()
	var rows [][]string
	for p := range pg.NumPages() {
		status := s.mgr.PageStatus(p)
		current := p == s.mgr.PageNum()
		if !current && status == cache.PageUnloaded && !s.mgr.IsPageLoaded(p) {
			continue
		}
		start, end := pg.Range(p)
		fetched := 0
		for _, c := range s.clips[start:end] {
			if s.ld.Status(c, loader.Payload) == loader.Loaded {
				fetched++
			}
		}
		marker := ""
		if current {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			strconv.Itoa(p),
			fmt.Sprintf("%d-%d", start, end-1),
			status.String(),
			strconv.Itoa(fetched) + "/" + strconv.Itoa(end-start),
		})
	}
	return rows
}

func (s *session) summary() string {
	return fmt.Sprintf("loaded_pages=%v loaded_clips=%d/%d",
		s.mgr.LoadedPages(), s.mgr.LoadedClips(), s.mgr.Config().MaxLoadedClips)
}

func (s *session) close() error { return s.ld.Close() }

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
