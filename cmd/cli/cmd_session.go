package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// With SESSION_STORAGE=redis these commands share the session with running
// servers and other terminals.

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with the simulated identity provider",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := openContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer container.Close()

		view, err := container.Shell.SignIn(cmd.Context())
		if err != nil {
			return err
		}
		renderSession(cmd.OutOrStdout(), view.Session)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out; harmless when already signed out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := openContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer container.Close()

		if _, err := container.Shell.SignOut(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada.")
		return nil
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := openContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer container.Close()

		renderSession(cmd.OutOrStdout(), container.Sessions.GetCurrentSession(cmd.Context()))
		return nil
	},
}
