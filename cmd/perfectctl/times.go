package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"perfect-widget/internal/domain/reservation"
	"perfect-widget/internal/pkg/clock"

	"github.com/spf13/cobra"
)

func newPartySizesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "party-sizes",
		Short: "List the party sizes the restaurant accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := newRemote(opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if _, err := r.client.Authenticate(ctx); err != nil {
				return fmt.Errorf("%s: %w", reservation.MsgActivationError, err)
			}
			sizes, err := r.client.FetchPartySizes(ctx)
			if err != nil {
				return err
			}
			for _, n := range sizes {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func newTimesCmd(opts *rootOptions) *cobra.Command {
	var (
		partySize int
		date      string
	)

	c := &cobra.Command{
		Use:   "times",
		Short: "List available reservation times for a party on a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := newRemote(opts)
			if err != nil {
				return err
			}
			day, err := resolveDate(date, r)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if _, err := r.client.Authenticate(ctx); err != nil {
				return fmt.Errorf("%s: %w", reservation.MsgActivationError, err)
			}
			return printTimes(ctx, cmd, r, partySize, day)
		},
	}
	c.Flags().IntVar(&partySize, "party", 2, "party size")
	c.Flags().StringVar(&date, "date", "", "reservation date YYYY-MM-DD (default today)")
	return c
}

func printTimes(ctx context.Context, cmd *cobra.Command, r *remote, partySize int, date time.Time) error {
	slots, err := r.client.FetchAvailableTimes(ctx, partySize, date)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(slots) == 0 {
		fmt.Fprintln(out, reservation.NoAvailabilityMessage(partySize, date))
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tTIME")
	for _, id := range slots {
		fmt.Fprintf(tw, "%s\t%s\n", id, reservation.LabelOrRaw(id))
	}
	return tw.Flush()
}

// resolveDate defaults to today and rejects past dates.
func resolveDate(value string, r *remote) (time.Time, error) {
	today := clock.Today(clock.NewRealClock(), r.loc)
	if value == "" {
		return today, nil
	}
	date, err := reservation.ParseDate(value, r.loc)
	if err != nil {
		return time.Time{}, errors.New(reservation.MsgDateInvalid)
	}
	if date.Before(today) {
		return time.Time{}, errors.New(reservation.MsgDateInPast)
	}
	return date, nil
}
