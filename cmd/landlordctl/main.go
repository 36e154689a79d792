package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	databaseURL string
)

var rootCmd = &cobra.Command{
	Use:   "landlordctl",
	Short: "Operational tooling for the landlord-heaven service",
	Long: `landlordctl seeds compliance rule packs, lints question pack
catalogs and inspects wizard sessions.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database", os.Getenv("DATABASE_URL"),
		"Postgres connection URL (defaults to DATABASE_URL)")

	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
