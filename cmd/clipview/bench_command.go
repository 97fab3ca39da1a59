package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// benchStats accumulates counters across bench workers.
type benchStats struct {
	updates     atomic.Uint64
	jumps       atomic.Uint64
	overBudget  atomic.Uint64
	loadedClips atomic.Uint64 // summed after every update
}

func newBenchCommand(ctx *commandContext) *cobra.Command {
	var (
		numClips  int
		workers   int
		duration  time.Duration
		jumpPct   int
		zipfS     float64
		seed      int64
		pprofAddr string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Drive independent paging sessions with a synthetic navigation workload",
		Long: `Each worker owns a session and navigates mostly to adjacent pages, jumping
by a Zipf-distributed distance with probability --jump percent. Fetches
complete immediately, so the run measures manager and loader overhead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = 1
			}
			if zipfS <= 1 {
				return fmt.Errorf("--zipf-s must be > 1, got %v", zipfS)
			}

			if pprofAddr != "" {
				go func() {
					logger.Info("pprof serving", slog.String("addr", pprofAddr))
					_ = http.ListenAndServe(pprofAddr, nil)
				}()
			}

			runCtx, cancel := context.WithTimeout(cmd.Context(), duration)
			defer cancel()

			var stats benchStats
			start := time.Now()
			g, gctx := errgroup.WithContext(runCtx)
			for w := range workers {
				g.Go(func() error {
					s, err := newSession(cfg, sessionOptions{NumClips: numClips, Logger: logger})
					if err != nil {
						return err
					}
					defer func() { _ = s.close() }()

					// rand.Rand is not goroutine-safe: one per worker.
					r := rand.New(rand.NewSource(seed + int64(w)*9973))
					numPages := s.mgr.Pagination().NumPages()
					zipf := rand.NewZipf(r, zipfS, 1, uint64(max(numPages-1, 1)))
					pg := s.mgr.Pagination()
					budget := cfg.Paging.MaxLoadedClips

					page := 0
					for gctx.Err() == nil {
						step := 1
						if r.Intn(100) < jumpPct {
							step = int(zipf.Uint64()) + 1
							stats.jumps.Add(1)
						}
						if r.Intn(2) == 0 {
							step = -step
						}
						page = ((page+step)%numPages + numPages) % numPages
						if err := s.mgr.Update(pg, page); err != nil {
							return err
						}
						stats.updates.Add(1)
						loaded := s.mgr.LoadedClips()
						stats.loadedClips.Add(uint64(loaded))
						if budget > 0 && loaded > budget {
							stats.overBudget.Add(1)
						}
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			elapsed := time.Since(start)

			updates := stats.updates.Load()
			avgLoaded := 0.0
			if updates > 0 {
				avgLoaded = float64(stats.loadedClips.Load()) / float64(updates)
			}
			out := cmd.OutOrStdout()
			rows := [][]string{
				{"policy", cfg.Policy},
				{"clips", fmt.Sprint(numClips)},
				{"page size", fmt.Sprint(cfg.Paging.PageSize)},
				{"workers", fmt.Sprint(workers)},
				{"duration", elapsed.Round(time.Millisecond).String()},
				{"updates", fmt.Sprint(updates)},
				{"updates/s", fmt.Sprintf("%.0f", float64(updates)/elapsed.Seconds())},
				{"jumps", fmt.Sprint(stats.jumps.Load())},
				{"avg loaded clips", fmt.Sprintf("%.1f", avgLoaded)},
				{"over budget", fmt.Sprint(stats.overBudget.Load())},
			}
			fmt.Fprintln(out, renderTable(out, []string{"Metric", "Value"}, rows,
				[]columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().IntVar(&numClips, "clips", 10_000, "Number of synthetic clips per session")
	cmd.Flags().IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "Number of concurrent sessions")
	cmd.Flags().DurationVar(&duration, "duration", 5*time.Second, "Benchmark duration")
	cmd.Flags().IntVar(&jumpPct, "jump", 20, "Percentage of steps that jump instead of moving to an adjacent page")
	cmd.Flags().Float64Var(&zipfS, "zipf-s", 1.1, "Zipf s > 1 (skew of jump distances)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "Random seed")
	cmd.Flags().StringVar(&pprofAddr, "pprof", "", "Serve pprof at addr (e.g. :6060); empty = disabled")
	return cmd
}
