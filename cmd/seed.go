package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/folio-site/folio/backend/internal/server"
	"github.com/folio-site/folio/backend/internal/users"
	"github.com/folio-site/folio/backend/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the admin user or reset its password",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()
		client, err := server.ConnectMongo(ctx, cfg.MongoDB)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		col := client.Database(cfg.MongoDB.Database).Collection(server.UsersCollection)
		repo, err := users.NewMongoUserRepository(ctx, col)
		if err != nil {
			return fmt.Errorf("users repository: %w", err)
		}
		u, err := users.NewService(repo).Provision(ctx, username, password)
		if err != nil {
			return err
		}
		logger.Infof("admin user %q ready (id=%s)", u.Username, u.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().String("username", "admin", "admin username")
	seedCmd.Flags().String("password", "", "admin password")
	_ = seedCmd.MarkFlagRequired("password")
}
