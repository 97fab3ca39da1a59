package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/IvanBrykalov/clipcache/metrics/prom"
)

func newSimulateCommand(ctx *commandContext) *cobra.Command {
	var (
		numClips    int
		pages       []int
		repageAt    int
		repageSize  int
		latency     time.Duration
		noWait      bool
		policyName  string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Page through synthetic clips and print the page table after each step",
		Example: `  clipview simulate --clips 500 --pages 0,1,2,5,4
  clipview simulate --pages 0,3,3 --repage-at 2 --repage-size 25
  clipview simulate --latency 50ms --metrics-addr 127.0.0.1:9464`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if p := strings.TrimSpace(policyName); p != "" {
				cfg.Policy = strings.ToLower(p)
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if a := strings.TrimSpace(metricsAddr); a != "" {
				cfg.Metrics.Addr = a
			}
			if len(pages) == 0 {
				return errors.New("at least one page is required")
			}
			if repageAt >= 0 && repageSize <= 0 {
				return errors.New("--repage-size must be positive when --repage-at is set")
			}

			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var adapter *prom.Adapter
			var srv *http.Server
			if cfg.Metrics.Addr != "" {
				reg := prometheus.NewRegistry()
				adapter = prom.New(reg, cfg.Metrics.Namespace, "", nil)
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
				srv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("metrics server stopped", slog.Any("error", err))
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			pageSize := cfg.Paging.PageSize
			s, err := newSession(cfg, sessionOptions{
				NumClips:  numClips,
				StartPage: pages[0],
				Latency:   latency,
				Metrics:   adapter,
				Logger:    logger,
			})
			if err != nil {
				return err
			}
			defer func() { _ = s.close() }()

			out := cmd.OutOrStdout()
			for i, page := range pages {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				if i == repageAt {
					pageSize = repageSize
				}
				if err := s.goTo(page, pageSize); err != nil {
					return fmt.Errorf("step %d: %w", i, err)
				}
				if !noWait {
					s.ld.Wait()
				}
				fmt.Fprintf(out, "Step %d: page %d (page size %d) %s\n", i, page, pageSize, s.summary())
				fmt.Fprintln(out, renderTable(out,
					[]string{"", "Page", "Clips", "Status", "Fetched"},
					s.rows(),
					[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignRight},
				))
			}

			if srv != nil {
				fmt.Fprintf(out, "Serving metrics at http://%s/metrics (interrupt to stop)\n", cfg.Metrics.Addr)
				<-cmd.Context().Done()
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&numClips, "clips", 500, "Number of synthetic clips")
	cmd.Flags().IntSliceVar(&pages, "pages", []int{0, 1, 2, 3, 5, 4}, "Page numbers to visit, in order")
	cmd.Flags().IntVar(&repageAt, "repage-at", -1, "Step index at which the page size changes (-1 = never)")
	cmd.Flags().IntVar(&repageSize, "repage-size", 0, "Page size used from --repage-at onwards")
	cmd.Flags().DurationVar(&latency, "latency", 0, "Artificial latency of every fetch")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Print each step without waiting for fetches to finish")
	cmd.Flags().StringVar(&policyName, "policy", "", "Override the configured paging policy")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics at this address")
	return cmd
}
