package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "A minimal blogging web application",
	Long: `blog serves a small server-rendered blog. Posts are kept in MongoDB,
SQLite, PostgreSQL or in memory, selected with --db-driver.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema migrations and exit",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")
	flags.String(flagEnv, "", "environment, dev or pro (env ENV)")
	flags.String(flagAddr, "", "listen address, empty for automatic TLS on :443 (env ADDRESS_LISTEN)")
	flags.String(flagDBDriver, "", "database driver: mongodb, sqlite, postgres or memory (env DB_DRIVER)")
	flags.String(flagDBURL, "", "database connection string (env DB_URL)")
	flags.String(flagDBName, "", "database name, mongodb only (env DB_NAME)")

	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
