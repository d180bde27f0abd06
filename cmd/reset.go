package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillnav/internal/session"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Sign out by clearing the remembered session",
	Long:  "Clears the remembered session. Accounts and their saved pathways are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		if err := session.NewStore(rt.store.KVRepo(), rt.logger).Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Println("Session cleared.")
		return nil
	},
}
