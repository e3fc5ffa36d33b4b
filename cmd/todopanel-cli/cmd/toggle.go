package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <item-id>",
	Short: "Toggle an item between pending and done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := GetController()
		if !ctrl.Store().Toggle(args[0]) {
			return fmt.Errorf("no manual item with id %s", args[0])
		}
		ctrl.SaveNow(context.Background())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
