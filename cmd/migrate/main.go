package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/mpalmerin/storefront-backend/pkg/config"
	"github.com/mpalmerin/storefront-backend/pkg/db"
	"github.com/mpalmerin/storefront-backend/pkg/logger"
	"github.com/mpalmerin/storefront-backend/pkg/migrate"
	"go.uber.org/multierr"
)

func main() {
	var (
		dir  = flag.String("dir", migrate.DefaultDir, "directory holding SQL migrations")
		name = flag.String("name", "", "name for a new migration (create only)")
	)
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	logg := logger.New(logger.Options{ServiceName: "storefront-migrate"})
	ctx := context.Background()

	if command == "create" {
		path, err := migrate.CreateSQLMigration(*dir, *name)
		if err != nil {
			logg.Error(ctx, "create migration failed", err)
			os.Exit(1)
		}
		logg.Info(logg.WithField(ctx, "path", path), "migration created")
		return
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "configuration failed", err)
		os.Exit(1)
	}

	var extra []string
	if flag.NArg() > 1 {
		extra = flag.Args()[1:]
	}

	if err := run(ctx, cfg, logg, *dir, command, extra...); err != nil {
		logg.Error(ctx, "migration failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, dir, command string, args ...string) (err error) {
	client, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, client.Close())
	}()

	sqlDB, err := client.DB().DB()
	if err != nil {
		return err
	}

	return migrate.Run(ctx, sqlDB, dir, command, args...)
}
