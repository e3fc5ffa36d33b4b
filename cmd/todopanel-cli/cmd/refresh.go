package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload items from the remote endpoint and notebooks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := GetController()
		ctrl.Refresh(context.Background())
		fmt.Printf("%d items\n", ctrl.Store().Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
