package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/rdb-retention/internal/config"
	"github.com/raoulx24/rdb-retention/internal/logging"
	"github.com/raoulx24/rdb-retention/internal/mailbox"
	"github.com/raoulx24/rdb-retention/internal/metrics"
	"github.com/raoulx24/rdb-retention/internal/retention"
	"github.com/raoulx24/rdb-retention/internal/watcher"
	"github.com/raoulx24/rdb-retention/internal/worker"
)

func newWatchCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-classify an archive directory whenever it changes",
		Long: `Watch an archive directory and print a new classification every time a
snapshot appears or disappears. SIGHUP reloads the config file; SIGINT or
SIGTERM stop the watch. Nothing is ever deleted.

Examples:
  rdb-retention watch --config retention.yaml
  rdb-retention watch --dir /srv/redis/archive --keep-last 24 --keep-daily 7 --metrics-listen :9300`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := watchConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reload := make(chan os.Signal, 1)
			signal.Notify(reload, syscall.SIGHUP)
			defer signal.Stop(reload)

			return runWatch(ctx, cmd, cfg, stdout, stderr, reload)
		},
	}
	cmd.Flags().String("dir", "", "Archive directory to watch (default archive.path from config)")
	cmd.Flags().String("metrics-listen", "", "Serve Prometheus metrics on this address, e.g. :9300")
	addPolicyFlags(cmd)
	return cmd
}

// watchConfig loads the config and applies every watch flag.
func watchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := applyPolicyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("dir") {
		cfg.Archive.Path, _ = cmd.Flags().GetString("dir")
	}
	if cmd.Flags().Changed("metrics-listen") {
		cfg.Metrics.Listen, _ = cmd.Flags().GetString("metrics-listen")
	}
	if cfg.Archive.Path == "" {
		return nil, errors.New("no archive to watch: set archive.path or --dir")
	}
	return cfg, nil
}

func runWatch(ctx context.Context, cmd *cobra.Command, cfg *config.Config, stdout, stderr io.Writer, reload <-chan os.Signal) error {
	log, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	defer log.Sync()

	ret, err := retention.New(cfg, log)
	if err != nil {
		return err
	}

	collector := metrics.New(nil)
	mb := mailbox.New[worker.Job]()
	w := worker.New(cfg, log, ret, mb, nil, stdout, collector)
	watch := watcher.New(cfg.Archive, log, mb, nil)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		w.Start(ctx)
	}()

	watchErr := make(chan error, 1)
	go func() {
		defer wg.Done()
		if err := watch.Start(ctx); err != nil {
			watchErr <- err
			cancel()
		}
	}()

	if cfg.Metrics.Listen != "" {
		srv := serveMetrics(cfg.Metrics.Listen, collector, log)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	log.Info("watching archive", "path", cfg.Archive.Path, "mode", cfg.Archive.Watch.Mode, "policy", ret.Policy().String())

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-reload:
			newCfg, err := watchConfig(cmd)
			if err != nil {
				log.Error("config reload failed", "error", err)
				continue
			}
			if err := ret.UpdateConfig(newCfg); err != nil {
				log.Error("config reload failed", "error", err)
				continue
			}
			w.UpdateConfig(newCfg)
			watch.UpdateConfig(newCfg.Archive)
			mb.Put(worker.Job{Reason: "reload", At: time.Now()})
			log.Info("config reloaded")
		}
	}

	wg.Wait()
	log.Info("watch stopped")

	select {
	case err := <-watchErr:
		return err
	default:
		return nil
	}
}

func serveMetrics(addr string, c *metrics.Collector, log logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "error", err)
		}
	}()
	return srv
}
