package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"bible-study-be/internal/config"
	"bible-study-be/pkg/events"
	pktNats "bible-study-be/pkg/nats"

	"github.com/spf13/cobra"
)

var eventsSubject string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Follow session and exploration events from NATS",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url := config.Load().App.NatsURL
		if url == "" {
			return errors.New("NATS_URL is not set")
		}

		sub, err := pktNats.NewSubscriber(url)
		if err != nil {
			return err
		}
		defer sub.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.ErrOrStderr(), "Following %s (Ctrl+C to stop)\n", eventsSubject)
		return sub.Follow(ctx, eventsSubject, func(ctx context.Context, event events.Event) error {
			renderEvent(cmd.OutOrStdout(), event)
			return nil
		})
	},
}

func init() {
	eventsCmd.Flags().StringVar(&eventsSubject, "subject", "events.>", "subject filter")
}
