package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex [docset-id...]",
	Short: "Rebuild the index for one or more docsets, or all docsets if none are given",
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		if err := mgr.Reindex(cmd.Context(), args); err != nil {
			return err
		}
		fmt.Printf("reindex complete in %s\n", time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
