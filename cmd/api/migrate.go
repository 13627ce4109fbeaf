package main

import (
	"github.com/spf13/cobra"

	"blogpessoal/internal/config"
	"blogpessoal/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log := logging.Stdout(cfg.Location())

		b, err := openBackend(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer b.Close()

		return b.migrate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
