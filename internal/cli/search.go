package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/docsearch/internal/router"
)

var (
	searchSourceHint string
	searchLanguage   string
	searchDeps       []string
	searchTopK       int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the indexed docsets and print ranked results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		resp, err := mgr.Search(cmd.Context(), query, searchSourceHint, router.Context{
			Language:     searchLanguage,
			Dependencies: searchDeps,
		}, searchTopK)
		if err != nil {
			return err
		}

		fmt.Println("routing:")
		for _, sel := range resp.Routing {
			fmt.Printf("  %-24s %s\n", sel.DocsetID, sel.Reason)
		}

		fmt.Println("results:")
		for i, r := range resp.Results {
			fmt.Printf("%d. [%.4f] %s (%s)\n   %s\n   %s\n", i+1, r.Score, r.Title, r.DocsetID, r.URL, r.SnippetText)
		}

		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchSourceHint, "source-hint", "", "preferred docset id")
	searchCmd.Flags().StringVar(&searchLanguage, "language", "", "language context hint")
	searchCmd.Flags().StringSliceVar(&searchDeps, "dependency", nil, "dependency context hint (repeatable)")
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 0, "number of results to return (default from config)")
	rootCmd.AddCommand(searchCmd)
}
