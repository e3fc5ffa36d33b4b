package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todo items",
	Long: `List todo items, pending first, most recently completed last.

Notebook-derived items are hidden unless --show-notebook is set.

Examples:
  todopanel-cli list
  todopanel-cli list --show-notebook`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := GetController()
		for _, item := range ctrl.Store().Visible(ctrl.ShowNotebook()) {
			mark := " "
			if item.Done {
				mark = "x"
			}
			if item.IsNotebook() {
				locator := item.OriginPath
				if item.OriginLine != nil {
					locator = fmt.Sprintf("%s:%d", locator, *item.OriginLine+1)
				}
				fmt.Printf("[%s] %s  (%s)\n", mark, item.Text, locator)
				continue
			}
			fmt.Printf("[%s] %s  %s\n", mark, item.Text, item.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
