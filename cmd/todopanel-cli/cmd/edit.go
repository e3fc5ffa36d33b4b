package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <item-id> <text>",
	Short: "Replace the text of a pending item",
	Long: `Replace the text of a pending manual item.

Done and notebook-derived items cannot be edited.

Examples:
  todopanel-cli edit 5f3a... "review pull request again"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := GetController()
		store := ctrl.Store()
		if !store.BeginEdit(args[0]) {
			return fmt.Errorf("no pending manual item with id %s", args[0])
		}
		if !store.CommitEdit(args[1]) {
			return fmt.Errorf("item text must not be empty")
		}
		ctrl.SaveNow(context.Background())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
