package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var docsetsCmd = &cobra.Command{
	Use:   "docsets",
	Short: "List the docsets declared in the registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		docsets, err := mgr.ListDocsets()
		if err != nil {
			return err
		}

		for _, ds := range docsets {
			status := "enabled"
			if !ds.IsEnabled() {
				status = "disabled"
			}
			fmt.Printf("%-24s %-10s %s\n", ds.DocsetID, status, ds.RootPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsetsCmd)
}
