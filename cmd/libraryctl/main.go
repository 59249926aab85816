package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"libraryapi/internal/cache"
	"libraryapi/internal/config"
	"libraryapi/internal/db"
	"libraryapi/internal/repository"
	"libraryapi/internal/seed"
	"libraryapi/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dbURI string

	root := &cobra.Command{
		Use:          "libraryctl",
		Short:        "Operate the library database",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dbURI, "db", "", "database connection string (defaults to DB_URI)")

	connect := func() (*gorm.DB, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if dbURI == "" {
			dbURI = cfg.DatabaseURI
		}
		return db.Open(dbURI)
	}

	root.AddCommand(newMigrateCmd(connect), newSeedCmd(connect))
	return root
}

func newMigrateCmd(connect func() (*gorm.DB, error)) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, err := connect()
			if err != nil {
				return err
			}
			if reset {
				log.Println("--reset given, dropping all tables...")
				if err := db.Reset(gormDB); err != nil {
					return err
				}
			}
			if err := db.Migrate(gormDB); err != nil {
				return err
			}
			log.Println("Database migrations completed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "drop all tables before migrating")
	return cmd
}

func newSeedCmd(connect func() (*gorm.DB, error)) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import books from a JSON catalogue file or URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			log.Printf("Loading catalogue from: %s", from)
			entries, err := seed.LoadCatalogue(ctx, from)
			if err != nil {
				return err
			}
			log.Printf("Loaded %d catalogue entries", len(entries))

			gormDB, err := connect()
			if err != nil {
				return err
			}
			var noCache *cache.Client
			bookService := service.NewBookService(repository.NewBookRepository(gormDB), noCache)

			res, err := seed.Books(ctx, bookService, entries)
			if err != nil {
				return err
			}
			log.Printf("Seed completed successfully!")
			log.Printf("  - Books created: %d", res.Created)
			log.Printf("  - Entries skipped: %d", res.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "catalogue file path or http(s) URL")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}
