package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/empresas-api/pkg/config"
	"github.com/jhoicas/empresas-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "empresas-api",
	Short: "API de empresas, usuarios, productos y proveedores",
	// Sin subcomando se levanta el servidor.
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap carga la configuración y crea el logger raíz.
func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	return cfg, log, nil
}
