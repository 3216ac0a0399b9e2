package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/accesslog"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/admin"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/bootstrap"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/config"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/filecache"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/handler"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/job"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/metrics"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/migrations"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/repository/sqlite"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/respond"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/security"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/server"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/storage"
	"github.com/lowkeyarhan/Socket-P-assignment/internal/support/logging"
)

var serveFlags struct {
	host    string
	port    int
	workers int
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.host, "host", "", "listen host (overrides config)")
	serveCmd.Flags().IntVar(&serveFlags.port, "port", 0, "listen port (overrides config)")
	serveCmd.Flags().IntVar(&serveFlags.workers, "workers", 0, "worker pool size (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveFlags.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serveFlags.port
	}
	if cmd.Flags().Changed("workers") {
		cfg.Server.Workers = serveFlags.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(logging.Options{
		Level:     cfg.Log.SlogLevel(),
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})

	uploads, err := storage.NewStore(filepath.Join(cfg.Server.ResourcesDir, cfg.Server.UploadsSubdir))
	if err != nil {
		return err
	}

	var cache *filecache.Cache
	if cfg.Cache.Enabled {
		cache = filecache.New(filecache.Options{
			TTL:           cfg.Cache.TTL,
			MaxEntryBytes: cfg.Cache.MaxEntryBytes,
		})
	}

	writer := respond.NewWriter(cfg.Server.Name, cfg.Server.ReadTimeout, cfg.Server.MaxRequests)
	h := handler.New(handler.Config{
		Root:       cfg.Server.ResourcesDir,
		DefaultDoc: cfg.Server.DefaultDocument,
		Uploads:    uploads,
		Cache:      cache,
		Writer:     writer,
		Logger:     logger,
	})

	m := metrics.New(metrics.Config{Subsystem: "http"})

	var recorder *accesslog.Recorder
	var store *sqlite.Store
	if cfg.DB.Path != "" {
		db, err := bootstrap.OpenSQLite(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := migrations.Up(db); err != nil {
			return err
		}
		store = sqlite.NewStore(db)
		recorder = accesslog.NewRecorder(store.AccessLogs(), logger)
		defer recorder.Close()
	}

	srv, err := server.New(server.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Workers:        cfg.Server.Workers,
		QueueCapacity:  cfg.Server.QueueCapacity,
		ReadTimeout:    cfg.Server.ReadTimeout,
		MaxRequests:    cfg.Server.MaxRequests,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
	}, server.Deps{
		Logger:   logger,
		Handler:  h,
		Writer:   writer,
		Metrics:  m,
		Recorder: recorder,
		Audit:    security.NewAuditor(logger),
	})
	if err != nil {
		return err
	}

	if cfg.Admin.Enabled {
		go admin.New(cfg.Admin.Addr, m.Registry(), logger).Run(ctx)
	}

	if cfg.Jobs.Enabled {
		scheduler := job.NewScheduler(logger)
		if _, err := scheduler.Register("@hourly", &job.UploadRetention{
			Uploads: uploads,
			MaxAge:  cfg.Jobs.UploadRetention,
			Logger:  logger,
		}); err != nil {
			return err
		}
		if store != nil {
			if _, err := scheduler.Register("@hourly", &job.AccessLogCleanup{
				Store:     store.AccessLogs(),
				Retention: cfg.Jobs.AccessLogRetention,
				Logger:    logger,
			}); err != nil {
				return err
			}
		}
		if _, err := scheduler.Register(cfg.Jobs.StatsInterval, &job.SystemStats{
			Logger:            logger,
			ActiveConnections: srv.ActiveConnections,
		}); err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			stopCtx := scheduler.Stop()
			select {
			case <-stopCtx.Done():
			case <-time.After(10 * time.Second):
			}
		}()
	}

	return srv.Run(ctx)
}
