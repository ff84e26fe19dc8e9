package main

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/satvocab/vocab-api/internal/config"
)

type migrateOptions struct {
	configPath     string
	migrationsPath string
}

func newMigrateCmd() *cobra.Command {
	opts := &migrateOptions{}
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Миграции PostgreSQL",
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "config/config.yaml", "файл конфигурации")
	cmd.PersistentFlags().StringVar(&opts.migrationsPath, "migrations", "", "каталог миграций (по умолчанию из конфигурации)")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Применяет все новые миграции",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrate(opts, func(m *migrate.Migrate) error {
				err := m.Up()
				if errors.Is(err, migrate.ErrNoChange) {
					fmt.Fprintln(cmd.OutOrStdout(), "No new migrations")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "force <version>",
		Short: "Устанавливает версию схемы и снимает флаг dirty после неудачной миграции",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := parseVersion(args[0])
			if err != nil {
				return err
			}
			return withMigrate(opts, func(m *migrate.Migrate) error {
				if err := m.Force(version); err != nil {
					return fmt.Errorf("failed to force version %d: %w", version, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Schema version forced to %d\n", version)
				return nil
			})
		},
	})

	return cmd
}

func parseVersion(raw string) (int, error) {
	version, err := strconv.Atoi(raw)
	if err != nil || version < -1 {
		return 0, fmt.Errorf("invalid migration version %q", raw)
	}
	return version, nil
}

// withMigrate открывает PostgreSQL через lib/pq и передает экземпляр migrate в fn
func withMigrate(opts *migrateOptions, fn func(m *migrate.Migrate) error) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if cfg.Database.Driver != "postgres" {
		return fmt.Errorf("migrate supports postgres only, configured driver is %q", cfg.Database.Driver)
	}
	migrationsPath := opts.migrationsPath
	if migrationsPath == "" {
		migrationsPath = cfg.Database.MigrationsPath
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresURL())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return err
	}
	return fn(m)
}
