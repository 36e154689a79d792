package main

import (
	"database/sql"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/woodhall335/landlord-heaven/wizard"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect wizard sessions",
}

var sessionDumpCmd = &cobra.Command{
	Use:   "dump <session-id>",
	Short: "Print a session and its facts record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if databaseURL == "" {
			return fmt.Errorf("database URL is required, use --database or DATABASE_URL")
		}

		db, err := sql.Open("postgres", databaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		store := wizard.NewPostgresSessionStore(db)
		session, err := store.Get(args[0])
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		spew.Fdump(cmd.OutOrStdout(), session)
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionDumpCmd)
}
