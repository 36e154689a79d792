package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/woodhall335/landlord-heaven/wizard"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with question pack catalogs",
}

var catalogLintCmd = &cobra.Command{
	Use:   "lint <dir>",
	Short: "Validate every question pack under a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := wizard.LoadCatalog(args[0])
		if err != nil {
			return err
		}

		for _, caseType := range catalog.CaseTypes() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions\n",
				caseType, len(catalog.Questions(caseType)))
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogLintCmd)
}
