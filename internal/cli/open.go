package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <doc-ref>",
	Short: "Print the full section content for a doc_ref",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := mgr.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		section := resp.Section

		fmt.Printf("docset:  %s (version %s)\n", section.DocsetID, resp.Version)
		fmt.Printf("file:    %s%s\n", section.FilePath, section.Anchor)
		fmt.Printf("heading: %s\n\n", strings.Join(section.HeadingPath, " > "))
		fmt.Println(section.Text)

		for _, block := range section.CodeBlocks {
			fmt.Println("\n---")
			fmt.Println(block)
		}

		for i, a := range section.Assets {
			fmt.Printf("\nasset: %s", a.Src)
			if resp.AssetURLs[i] != "" {
				fmt.Printf(" -> %s", resp.AssetURLs[i])
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
