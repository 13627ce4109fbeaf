package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"blogpessoal/internal/config"
	"blogpessoal/internal/logging"
)

// rootCmd runs the server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:           "blogpessoal",
	Short:         "Blog Pessoal REST API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// @title Blog Pessoal API
// @version 1.0
// @description REST API for posts (postagens), topics (temas) and authors (usuarios).
// @BasePath /
func main() {
	if err := rootCmd.Execute(); err != nil {
		cfg := config.Load()
		logging.Stdout(cfg.Location()).Error("command_failed", err, map[string]any{"command": os.Args[1:]})
		os.Exit(1)
	}
}
