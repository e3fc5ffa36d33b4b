package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <item-id>",
	Short: "Remove an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := GetController()
		if !ctrl.Store().Remove(args[0]) {
			return fmt.Errorf("no manual item with id %s", args[0])
		}
		ctrl.SaveNow(context.Background())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
