package main

import (
	"strings"

	"bible-study-be/internal/service"

	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [query...]",
	Short: "Explore a topic, passage or question",
	Long: `Signs in if needed, submits the query and prints the structured
explanation with key verses, related verses and further study topics.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExplore,
}

func runExplore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	container, err := openContainer(ctx)
	if err != nil {
		return err
	}
	defer container.Close()

	if !container.Shell.View().State.SignedIn() {
		if _, err := container.Shell.SignIn(ctx); err != nil {
			return err
		}
	}

	view, err := container.Shell.SubmitQuery(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	renderView(cmd.OutOrStdout(), view)
	if view.State == service.StateError {
		return errExplorationShown
	}
	return nil
}
