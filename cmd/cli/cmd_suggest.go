package main

import (
	"bible-study-be/internal/config"
	"bible-study-be/pkg/suggestion"

	"github.com/spf13/cobra"
)

var suggestCount int

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Print random sample queries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := suggestion.Default()
		if file := config.Load().Suggestions.File; file != "" {
			var err error
			if catalog, err = suggestion.LoadFile(file, nil); err != nil {
				return err
			}
		}
		renderSuggestions(cmd.OutOrStdout(), catalog.Pick(suggestCount))
		return nil
	},
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestCount, "count", "n", suggestion.DefaultPickSize, "number of suggestions")
}
