package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"family-meal-planner/internal/app"
	"family-meal-planner/internal/chef"
	"family-meal-planner/internal/clipper"
	"family-meal-planner/internal/config"
	"family-meal-planner/internal/database"
	"family-meal-planner/internal/httpapi"
	"family-meal-planner/internal/llm"
	"family-meal-planner/internal/logging"
	"family-meal-planner/internal/metrics"
	"family-meal-planner/internal/room"
	"family-meal-planner/internal/session"
	"family-meal-planner/internal/storage"
	"family-meal-planner/internal/storage/memory"
	"family-meal-planner/internal/storage/sqlite"
	"family-meal-planner/internal/telegram"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	configPath := fs.String("config", "", "Optional YAML config file")

	switch cmd {
	case "serve":
		fs.Parse(args)
		serve(*configPath)
	case "create-room":
		name := fs.String("name", "", "Room name")
		password := fs.String("password", "", "Room password")
		defaults := fs.Bool("defaults", false, "Seed the room with the starter household")
		fs.Parse(args)
		withApp(*configPath, func(ctx context.Context, rt *runtime) error {
			r, err := rt.app.CreateRoom(ctx, app.CreateRoomInput{Name: *name, Password: *password, WithDefaults: *defaults})
			if err != nil {
				return err
			}
			fmt.Printf("Created room %q with id %s\n", r.Name, r.ID)
			return nil
		})
	case "export-room":
		id := fs.String("id", "", "Room id")
		fs.Parse(args)
		withApp(*configPath, func(ctx context.Context, rt *runtime) error {
			snapshots, err := storage.NewSnapshotStore(rt.cfg.SnapshotDir)
			if err != nil {
				return err
			}
			path, err := rt.app.ExportRoom(ctx, *id, snapshots)
			if err != nil {
				return err
			}
			fmt.Printf("Exported room %s to %s\n", *id, path)
			return nil
		})
	case "import-room":
		file := fs.String("file", "", "Snapshot file to import")
		id := fs.String("id", "", "Import the newest snapshot of this room from SNAPSHOT_DIR")
		fs.Parse(args)
		withApp(*configPath, func(ctx context.Context, rt *runtime) error {
			var (
				r   *room.Room
				err error
			)
			switch {
			case *file != "":
				r, err = rt.app.ImportRoom(ctx, *file)
			case *id != "":
				snapshots, serr := storage.NewSnapshotStore(rt.cfg.SnapshotDir)
				if serr != nil {
					return serr
				}
				r, err = rt.app.ImportLatest(ctx, *id, snapshots)
			default:
				return errors.New("import-room needs -file or -id")
			}
			if err != nil {
				return err
			}
			fmt.Printf("Imported room %q with id %s\n", r.Name, r.ID)
			return nil
		})
	case "metrics-cleanup":
		days := fs.Int("days", 30, "Keep records for the last N days")
		fs.Parse(args)
		withApp(*configPath, func(ctx context.Context, rt *runtime) error {
			if rt.metricsStore == nil {
				return errors.New("metrics-cleanup needs the sqlite store")
			}
			affected, err := rt.metricsStore.Cleanup(ctx, *days)
			if err != nil {
				return err
			}
			fmt.Printf("Successfully removed %d old metric records.\n", affected)
			return nil
		})
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: family-meal-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  serve              Run the HTTP API")
	fmt.Println("  create-room        Create a room (-name, -password, -defaults)")
	fmt.Println("  export-room        Write a room snapshot to SNAPSHOT_DIR (-id)")
	fmt.Println("  import-room        Recreate a room from a snapshot (-file or -id)")
	fmt.Println("  metrics-cleanup    Remove old AI call records (-days)")
	fmt.Println("\nEvery command accepts -config <file.yaml>.")
}

// runtime is everything a command needs, wired from the configuration.
type runtime struct {
	cfg          *config.Config
	app          *app.App
	store        storage.Store
	metricsStore *metrics.Store
	collectors   *metrics.Collectors
	closers      []io.Closer
}

func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i].Close(); err != nil {
			slog.Warn("close failed", "error", err)
		}
	}
}

func bootstrap(ctx context.Context, configPath string) *runtime {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rt := &runtime{cfg: cfg, collectors: metrics.NewCollectors()}
	rt.closers = append(rt.closers, logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}))

	switch cfg.Store {
	case config.StoreMemory:
		rt.store = memory.New()
	default:
		db, err := database.NewDB(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		rt.store = sqlite.New(db.SQL)
		rt.metricsStore = metrics.NewStore(db.SQL)
	}
	rt.closers = append(rt.closers, rt.store)

	textGen, genCloser, err := llm.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	rt.closers = append(rt.closers, genCloser)

	gateway := chef.New(textGen,
		chef.WithTimeout(cfg.AITimeout),
		chef.WithRecorder(metrics.NewRecorder(rt.metricsStore, rt.collectors)),
	)

	opts := []app.Option{
		app.WithGateway(gateway),
		app.WithImporter(clipper.NewClipper(textGen)),
	}
	if cfg.TelegramEnabled() {
		notifier, err := telegram.NewNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			slog.Warn("telegram announcements disabled", "error", err)
		} else {
			opts = append(opts, app.WithNotifier(notifier))
		}
	}

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	rt.app = app.NewApp(rt.store, sessions, opts...)
	slog.Info("application initialized", "store", cfg.Store, "ai_provider", cfg.AIProvider)
	return rt
}

func withApp(configPath string, fn func(ctx context.Context, rt *runtime) error) {
	ctx := context.Background()
	rt := bootstrap(ctx, configPath)
	err := fn(ctx, rt)
	rt.Close()
	if err != nil {
		log.Fatalf("Command failed: %v", err)
	}
}

func serve(configPath string) {
	ctx := context.Background()
	rt := bootstrap(ctx, configPath)
	defer rt.Close()

	api := httpapi.New(rt.app,
		httpapi.WithCollectors(rt.collectors),
		httpapi.WithOrigins(rt.cfg.Origins()),
		httpapi.WithDiskUsage(map[string]string{
			"database":  filepath.Dir(rt.cfg.DatabasePath),
			"snapshots": rt.cfg.SnapshotDir,
		}),
	)

	srv := &http.Server{
		Addr:              rt.cfg.Addr(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	slog.Info("server exiting")
}
