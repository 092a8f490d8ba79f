package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/folio-site/folio/backend/internal/server"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var checkDBCmd = &cobra.Command{
	Use:   "check-db",
	Short: "Print every collection as indented JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()
		client, err := server.ConnectMongo(ctx, cfg.MongoDB)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		return dumpCollections(ctx, client.Database(cfg.MongoDB.Database), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(checkDBCmd)
}

var dumpOrder = []string{
	server.UsersCollection,
	server.PortfolioCollection,
	server.AchievementsCollection,
	server.ContactsCollection,
}

func dumpCollections(ctx context.Context, db *mongo.Database, w io.Writer) error {
	for _, name := range dumpOrder {
		// never print password hashes
		var proj bson.M
		if name == server.UsersCollection {
			proj = bson.M{"passwordHash": 0}
		}
		cur, err := db.Collection(name).Find(ctx, bson.M{}, findWithProjection(proj))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		docs := []bson.M{}
		if err := cur.All(ctx, &docs); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := writeCollection(w, name, docs); err != nil {
			return err
		}
	}
	return nil
}

func writeCollection(w io.Writer, name string, docs []bson.M) error {
	out, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s (%d):\n%s\n\n", name, len(docs), out)
	return err
}

func findWithProjection(proj bson.M) *options.FindOptions {
	o := options.Find()
	if proj != nil {
		o.SetProjection(proj)
	}
	return o
}
