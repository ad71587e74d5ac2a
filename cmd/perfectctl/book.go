package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"perfect-widget/internal/domain/reservation"
	"perfect-widget/internal/pkg/clock"
	"perfect-widget/internal/pkg/errs"
	"perfect-widget/internal/usecase"

	"github.com/spf13/cobra"
)

const softLimitDays = 30

type bookOptions struct {
	partySize int
	date      string
	slot      string
	name      string
	phone     string
	email     string
	yes       bool
}

func newBookCmd(opts *rootOptions) *cobra.Command {
	b := &bookOptions{}

	c := &cobra.Command{
		Use:   "book",
		Short: "Validate, review and create a reservation",
		Long: "book walks the same steps as the embedded widget: pick party and date, " +
			"choose an offered time, validate the contact details, review, then confirm.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := newRemote(opts)
			if err != nil {
				return err
			}
			return runBook(cmd, r, b)
		},
	}
	c.Flags().IntVar(&b.partySize, "party", 2, "party size")
	c.Flags().StringVar(&b.date, "date", "", "reservation date YYYY-MM-DD (default today)")
	c.Flags().StringVar(&b.slot, "time", "", "slot id as listed by the times command (default first available)")
	c.Flags().StringVar(&b.name, "name", "", "guest name")
	c.Flags().StringVar(&b.phone, "phone", "", "10 digit phone number")
	c.Flags().StringVar(&b.email, "email", "", "guest email")
	c.Flags().BoolVarP(&b.yes, "yes", "y", false, "confirm without prompting")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("phone")
	return c
}

func runBook(cmd *cobra.Command, r *remote, b *bookOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if b.date != "" {
		if _, err := resolveDate(b.date, r); err != nil {
			return err
		}
	}
	if _, err := r.client.Authenticate(ctx); err != nil {
		return fmt.Errorf("%s: %w", reservation.MsgActivationError, err)
	}
	partySizes, err := r.client.FetchPartySizes(ctx)
	if err != nil {
		r.logger.Warn("party sizes unavailable", "error", err)
	}

	flow := usecase.NewReservationFlow(r.client, r.client, clock.NewRealClock(), r.logger,
		usecase.FlowOptions{Location: r.loc, SoftLimitDays: softLimitDays, Timeout: r.cfg.RequestTimeout}, partySizes)

	if err := flow.SetPartySize(ctx, b.partySize); err != nil {
		renderAlerts(out, flow.Snapshot())
		return err
	}
	if b.date != "" {
		if err := flow.SetDate(ctx, b.date); err != nil {
			return err
		}
	}
	if err := flow.UpdateContact(ctx, b.name, b.phone, b.email); err != nil {
		return err
	}

	snap := flow.Snapshot()
	renderAlerts(out, snap)
	if snap.Degraded {
		return errors.New("availability could not be loaded, try again later")
	}
	if b.slot != "" {
		if err := flow.SelectTime(reservation.SlotID(b.slot)); err != nil {
			renderOptions(out, snap)
			return err
		}
	}

	if _, err := flow.Submit(); err != nil {
		renderAlerts(out, flow.Snapshot())
		return err
	}
	renderConfirmation(out, flow.Snapshot())

	if !b.yes {
		ok, err := prompt(cmd.InOrStdin(), out, "Book this table? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			return flow.Cancel()
		}
	}

	if err := flow.Confirm(ctx); err != nil {
		renderAlerts(out, flow.Snapshot())
		if errs.Is(err, errs.ErrBookingRejected) {
			return errors.New("reservation was not created")
		}
		return err
	}

	snap = flow.Snapshot()
	fmt.Fprintf(out, "Reservation created for %s.\n", snap.Confirmation.Name)
	if snap.ReservationID != "" {
		fmt.Fprintf(out, "Reference: %s\n", snap.ReservationID)
	}
	return nil
}

func renderAlerts(w io.Writer, snap usecase.FlowSnapshot) {
	for _, a := range snap.Alerts {
		fmt.Fprintf(w, "! %s: %s\n", a.Field, a.Message)
	}
}

func renderOptions(w io.Writer, snap usecase.FlowSnapshot) {
	if len(snap.TimeOptions) == 0 {
		return
	}
	labels := make([]string, 0, len(snap.TimeOptions))
	for _, o := range snap.TimeOptions {
		labels = append(labels, fmt.Sprintf("%s (%s)", o.ID, o.Label))
	}
	fmt.Fprintf(w, "available: %s\n", strings.Join(labels, ", "))
}

func renderConfirmation(w io.Writer, snap usecase.FlowSnapshot) {
	c := snap.Confirmation
	if c == nil {
		return
	}
	fmt.Fprintln(w, "Please confirm your reservation")
	fmt.Fprintf(w, "  Party size: %d\n", c.PartySize)
	fmt.Fprintf(w, "  Time:       %s\n", c.TimeLabel)
	fmt.Fprintf(w, "  Date:       %s\n", c.Date)
	fmt.Fprintf(w, "  Name:       %s\n", c.Name)
}

func prompt(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprint(out, question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
