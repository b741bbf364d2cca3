package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/vbonduro/labinv/internal/backend/httpapi"
	"github.com/vbonduro/labinv/internal/backend/local"
	"github.com/vbonduro/labinv/internal/config"
	"github.com/vbonduro/labinv/internal/docstore"
	"github.com/vbonduro/labinv/internal/inventory"
	"github.com/vbonduro/labinv/internal/logging"
)

type app struct {
	cfg     *config.Config
	seed    bool
	verbose bool

	logger  *slog.Logger
	store   *inventory.SyncStore
	closers []func()
}

// run executes the command line in args and releases backend resources
// afterwards. A nil logger means one is created from the --verbose flag and the
// LOG_FILE setting.
func run(cfg *config.Config, logger *slog.Logger, args []string, out io.Writer) error {
	a := &app{cfg: cfg, logger: logger}
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	return root.Execute()
}

func (a *app) rootCmd() *cobra.Command {
	cfg := a.cfg
	root := &cobra.Command{
		Use:          "labinvctl",
		Short:        "Manage lab inventory items and locations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return a.open(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	f := root.PersistentFlags()
	f.StringVar(&cfg.Backend, "backend", cfg.Backend, "storage backend: http, file or redis")
	f.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "labinv API base URL (http backend)")
	f.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for the inventory document (file backend)")
	f.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address (redis backend)")
	f.StringVar(&cfg.StorageKey, "storage-key", cfg.StorageKey, "document key (file and redis backends)")
	f.BoolVar(&a.seed, "seed", cfg.SeedSampleData, "seed sample data into an empty document store")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newItemsCmd(a), newLocationsCmd(a), newSearchCmd(a))
	return root
}

// open builds the backend selected by flags and loads the inventory mirror.
func (a *app) open(cmd *cobra.Command) error {
	if a.logger == nil {
		level := "warn"
		if a.verbose {
			level = "debug"
		}
		logger, cleanup, err := logging.New(level, a.cfg.LogFile)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
		a.closers = append(a.closers, cleanup)
	}

	backend, err := a.newBackend()
	if err != nil {
		return err
	}
	a.store = inventory.New(backend, a.logger)
	return a.store.Load(cmd.Context())
}

func (a *app) newBackend() (inventory.Backend, error) {
	switch a.cfg.Backend {
	case "http":
		return httpapi.NewClient(a.cfg.APIURL, a.cfg.HTTPTimeout), nil
	case "file":
		files, err := docstore.NewFileStorage(a.cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return local.New(files, a.cfg.StorageKey, a.seed, a.logger), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: a.cfg.RedisAddr})
		a.closers = append(a.closers, func() {
			if err := rdb.Close(); err != nil {
				a.logger.Error("failed to close redis client", "error", err)
			}
		})
		return local.New(docstore.NewRedisStorage(rdb, ""), a.cfg.StorageKey, a.seed, a.logger), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want http, file or redis)", a.cfg.Backend)
	}
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
