package cmd

import (
	"os/signal"
	"syscall"

	"github.com/folio-site/folio/backend/internal/config"
	"github.com/folio-site/folio/backend/internal/server"
	"github.com/folio-site/folio/backend/internal/storage"
	"github.com/folio-site/folio/backend/pkg/logger"
	"github.com/spf13/cobra"
)

var serverMemory bool

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the HTTP API server",
	Long: `Starts the HTTP API server. Usage:

	folio server
	folio server --memory   # no database, data is lost on exit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if !serverMemory {
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger.Infof("config loaded: mongo=%v redis=%v storage=%s", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Storage.Backend)
			return server.Run(ctx, cfg)
		}

		if cfg.JWT.Secret == "" {
			return config.ErrMissingJWTSecret
		}
		store, err := storage.New(cfg.Storage)
		if err != nil {
			return err
		}
		logger.Warnf("running with in-memory repositories; nothing will be persisted")
		return server.Serve(ctx, cfg, server.MemoryDeps(store))
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().BoolVar(&serverMemory, "memory", false, "use in-memory repositories instead of MongoDB")
}
