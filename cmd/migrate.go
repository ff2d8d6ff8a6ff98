// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/canonical/workspace-service/migrations"
)

const latestVersion = -1

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|status|check] [version]",
	Short: "Run database migrations",
	Long: `Apply or inspect the workspace schema migrations.

"down" rolls back one migration, or every migration above the given version.
"check" exits with an error while migrations are pending.`,
	Args: validateMigrateArgs,
	Run: func(cmd *cobra.Command, args []string) {
		command, version := parseMigrateArgs(args)

		dsn, _ := cmd.Flags().GetString("dsn")
		if dsn == "" {
			dsn = os.Getenv("DSN")
		}
		format, _ := cmd.Flags().GetString("format")

		if err := migrate(cmd.Context(), dsn, command, version, newMigrationReporter(format, cmd.OutOrStdout())); err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}
	},
}

func init() {
	migrateCmd.Flags().String("dsn", "", "PostgreSQL DSN connection string, defaults to $DSN")
	migrateCmd.Flags().StringP("format", "f", "text", "Output format (text or json)")

	rootCmd.AddCommand(migrateCmd)
}

func validateMigrateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(0, 2)(cmd, args); err != nil {
		return err
	}

	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "up", "down", "status", "check":
	default:
		return fmt.Errorf("invalid first argument: %q", args[0])
	}

	if len(args) == 2 {
		if args[0] != "down" {
			return fmt.Errorf("invalid argument combination: %q", args)
		}
		if v, err := strconv.Atoi(args[1]); err != nil || v < 0 {
			return fmt.Errorf("invalid version number: %q", args[1])
		}
	}

	return nil
}

func parseMigrateArgs(args []string) (string, int64) {
	command, version := "up", int64(latestVersion)

	if len(args) > 0 {
		command = args[0]
	}
	if len(args) > 1 {
		v, _ := strconv.Atoi(args[1])
		version = int64(v)
	}

	return command, version
}

// migrationReporter renders migration results either as JSON documents or as plain text.
type migrationReporter struct {
	json bool
	out  io.Writer
}

func newMigrationReporter(format string, out io.Writer) *migrationReporter {
	return &migrationReporter{json: format == "json", out: out}
}

func (r *migrationReporter) applied(results []*goose.MigrationResult) error {
	if !r.json {
		for _, res := range results {
			fmt.Fprintf(r.out, "%-8s %s (%s)\n", res.Direction, res.Source.Path, res.Duration.Round(time.Millisecond))
		}
		return nil
	}

	if results == nil {
		results = []*goose.MigrationResult{}
	}
	return json.NewEncoder(r.out).Encode(map[string]interface{}{"applied": results})
}

func (r *migrationReporter) status(statuses []*goose.MigrationStatus) error {
	if r.json {
		return json.NewEncoder(r.out).Encode(statuses)
	}

	fmt.Fprintln(r.out, "    Applied At                  Migration")
	fmt.Fprintln(r.out, "    =======================================")
	for _, s := range statuses {
		appliedAt := "Pending"
		if s.State == goose.StateApplied {
			appliedAt = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(r.out, "    %-24s -- %s\n", appliedAt, s.Source.Path)
	}
	return nil
}

func (r *migrationReporter) check(pending bool, version int64, versionErr error) error {
	state := "ok"
	switch {
	case pending:
		state = "pending"
	case versionErr != nil:
		state = "unknown"
	}

	if r.json {
		return json.NewEncoder(r.out).Encode(map[string]interface{}{"status": state, "version": version})
	}

	if pending {
		return fmt.Errorf("migrations are pending: current version %d", version)
	}
	if versionErr != nil {
		fmt.Fprintln(r.out, "Database is up to date")
		return nil
	}
	fmt.Fprintf(r.out, "Database is up to date (version %d)\n", version)
	return nil
}

func openMigrationDB(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("no DSN provided, use --dsn or set DSN")
	}

	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("DSN validation failed, shutting down, err: %v", err)
	}

	db := stdlib.OpenDB(*config)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("DB connection failed, shutting down, err: %v", err)
	}

	return db, nil
}

func migrate(ctx context.Context, dsn, command string, version int64, report *migrationReporter) error {
	db, err := openMigrationDB(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	var opts []goose.ProviderOption
	if report.json {
		opts = append(opts, goose.WithLogger(goose.NopLogger()))
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations, opts...)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	switch command {
	case "down":
		if version == latestVersion {
			res, err := provider.Down(ctx)
			if err != nil {
				return err
			}
			return report.applied([]*goose.MigrationResult{res})
		}

		results, err := provider.DownTo(ctx, version)
		if err != nil {
			return err
		}
		return report.applied(results)
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		return report.status(statuses)
	case "check":
		pending, err := provider.HasPending(ctx)
		if err != nil {
			return fmt.Errorf("failed to check pending migrations: %w", err)
		}
		current, verr := provider.GetDBVersion(ctx)
		return report.check(pending, current, verr)
	default:
		results, err := provider.Up(ctx)
		if err != nil {
			return err
		}
		return report.applied(results)
	}
}
