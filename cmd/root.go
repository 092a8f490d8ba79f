package cmd

import (
	"fmt"
	"os"

	"github.com/folio-site/folio/backend/internal/config"
	"github.com/folio-site/folio/backend/pkg/logger"
	"github.com/spf13/cobra"
)

var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Backend for the portfolio website",
	Long: `Serves the portfolio, achievements and contact APIs and provides
admin tooling for the site's database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
		logger.InitWithFormat(cfg.Log.Level, cfg.Log.Format)
		logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
