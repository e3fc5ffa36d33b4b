package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a new todo item",
	Long: `Add a new pending item at the top of the list.

Examples:
  todopanel-cli add "review pull request"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := GetController()
		item := ctrl.Store().Add(args[0])
		if item == nil {
			return fmt.Errorf("item text must not be empty")
		}
		ctrl.SaveNow(context.Background())
		fmt.Printf("added %s\n", item.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
