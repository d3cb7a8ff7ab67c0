package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/empresas-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Aplica o revierte las migraciones embebidas",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		command := "up"
		if len(args) == 1 {
			command = args[0]
		}
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		db, err := postgres.OpenDB(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.Migrate(ctx, db, command, cmd.OutOrStdout()); err != nil {
			log.Error().Err(err).Str("command", command).Msg("migración fallida")
			return err
		}
		log.Info().Str("command", command).Msg("migración completada")
		return nil
	},
}
