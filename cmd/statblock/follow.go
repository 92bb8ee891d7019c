package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/rjkroege/statblock/doctree"
	"github.com/rjkroege/statblock/gozen"
	"github.com/rjkroege/statblock/internal/watch"
	"github.com/rjkroege/statblock/live"
)

func (s *settings) overlay(reg prometheus.Registerer) *live.Overlay {
	return live.NewOverlay(
		live.WithLocale(s.cfg),
		live.WithLogger(s.log),
		live.WithRegisterer(reg),
	)
}

// serveMetrics exposes reg on addr until ctx is done.
func (s *settings) serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			s.log.Warn("metrics server shutdown", "addr", addr, "err", err)
		}
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Warn("metrics server", "addr", addr, "err", err)
		}
	}()
}

func newWatchCmd(s *settings) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Recompute the decorations of a file every time it is written",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if !cmd.Flags().Changed("metrics-addr") {
				metricsAddr = s.cfg.MetricsAddr
			}
			reg := prometheus.NewRegistry()
			if metricsAddr != "" {
				s.serveMetrics(ctx, metricsAddr, reg)
			}
			o := s.overlay(reg)

			recompute := func() error {
				doc, err := readDoc(ctx, args[0])
				if err != nil {
					return err
				}
				return writeState(out, o.Update(doc))
			}
			if err := recompute(); err != nil {
				return err
			}

			w, err := watch.New(args[0], func(c watch.Change) {
				if c.Removed() {
					s.log.Info("file went away, waiting for it to return", "path", c.Path)
					return
				}
				if err := recompute(); err != nil {
					s.log.Warn("recompute failed", "path", c.Path, "err", err)
				}
			}, watch.WithDebounce(s.cfg.Debounce), watch.WithLogger(s.log))
			if err != nil {
				return err
			}
			return w.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	return cmd
}

func newAcmeCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "acme WINID|NAME",
		Short: "Follow an acme or edwood window and report to its +Stats window",
		Long: `Follow an acme or edwood window. Every body edit recomputes the
decorations and replaces the contents of the +Stats window in the same
directory. Executing Stats in the window tag recomputes without an edit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			win, name, err := gozen.Attach(args[0])
			if err != nil {
				return err
			}
			defer win.CloseFiles()

			rep, err := gozen.OpenWin(gozen.StatsName(name), gozen.Scratch())
			if err != nil {
				return err
			}
			defer rep.CloseFiles()
			report := gozen.NewWindowWriter("body", rep)

			o := s.overlay(nil)
			return gozen.Follow(ctx, win, func(body []byte, edits []live.EditRecord) error {
				doc, err := doctree.ParseMarkdown(ctx, body)
				if err != nil {
					return err
				}
				var b strings.Builder
				if err := writeState(&b, o.Apply(edits, doc)); err != nil {
					return err
				}
				return report.Replace(b.String())
			})
		},
	}
}
