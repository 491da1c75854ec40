package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var assetCmd = &cobra.Command{
	Use:   "asset <docset-id> <relative-path>",
	Short: "Resolve a docset-relative asset path to a filesystem path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := mgr.AssetPath(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assetCmd)
}
