package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/pressly/goose/v3"

	"github.com/jhoicas/empresas-api/internal/infrastructure/postgres/migrations"
)

// Migrate aplica las migraciones embebidas. command: up, down (una versión) o status.
func Migrate(ctx context.Context, db *sql.DB, command string, out io.Writer) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations)
	if err != nil {
		return fmt.Errorf("crear provider goose: %w", err)
	}

	switch command {
	case "", "up":
		results, err := provider.Up(ctx)
		for _, r := range results {
			fmt.Fprintln(out, r.String())
		}
		return err
	case "down":
		r, err := provider.Down(ctx)
		if r != nil {
			fmt.Fprintln(out, r.String())
		}
		return err
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			applied := "pendiente"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(out, "%-30s %s\n", s.Source.Path, applied)
		}
		return nil
	default:
		return fmt.Errorf("comando de migración desconocido: %q", command)
	}
}
