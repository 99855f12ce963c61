package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-RentalSchedule/internal/integrations/scheduleapi"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var (
		resourceID int64
		start      string
		end        string
		exclude    int64
		watch      time.Duration
		count      int
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a resource is free for [start, end)",
		Long: `Check whether a resource is free for [start, end).

With --watch the check is repeated on every tick and a line is printed only
when the answer changes. A check still in flight when the next one starts is
cancelled and its answer is discarded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startAt, err := time.Parse(time.RFC3339, start)
			if err != nil {
				return fmt.Errorf("invalid --start (want RFC 3339): %w", err)
			}
			endAt, err := time.Parse(time.RFC3339, end)
			if err != nil {
				return fmt.Errorf("invalid --end (want RFC 3339): %w", err)
			}
			if watch < 0 {
				return fmt.Errorf("invalid --watch: %s", watch)
			}

			client, err := opts.client(cmd)
			if err != nil {
				return err
			}

			q := scheduleapi.AvailabilityQuery{ResourceID: resourceID, Start: startAt, End: endAt}
			if exclude != 0 {
				q.ExcludeBookingID = &exclude
			}

			if watch == 0 {
				availability, err := client.CheckAvailability(cmd.Context(), q)
				if err != nil {
					return err
				}
				printAvailability(cmd.OutOrStdout(), resourceID, availability)
				return nil
			}

			w := &availabilityWatch{
				tracker: scheduleapi.NewLatestTracker(client),
				query:   q,
				every:   watch,
				count:   count,
				out:     cmd.OutOrStdout(),
				errOut:  cmd.ErrOrStderr(),
			}
			return w.run(cmd.Context())
		},
	}

	cmd.Flags().Int64Var(&resourceID, "resource", 0, "resource ID (required)")
	cmd.Flags().StringVar(&start, "start", "", "interval start, RFC 3339 (required)")
	cmd.Flags().StringVar(&end, "end", "", "interval end, RFC 3339 (required)")
	cmd.Flags().Int64Var(&exclude, "exclude-booking", 0, "booking ID to ignore, e.g. when extending it")
	cmd.Flags().DurationVar(&watch, "watch", 0, "repeat the check at this interval until interrupted")
	cmd.Flags().IntVar(&count, "count", 0, "with --watch, stop after this many checks (0 means no limit)")
	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func printAvailability(out io.Writer, resourceID int64, availability *scheduleapi.Availability) {
	if availability.IsAvailable {
		fmt.Fprintf(out, "resource #%d is free\n", resourceID)
		return
	}
	fmt.Fprintf(out, "resource #%d is busy:\n", resourceID)
	for _, c := range availability.Conflicts {
		fmt.Fprintf(out, "  %s\n", c)
	}
}

type checkResult struct {
	availability *scheduleapi.Availability
	err          error
}

// availabilityWatch периодически повторяет проверку через LatestTracker.
// Учитывается только ответ на последнюю отправленную проверку.
type availabilityWatch struct {
	tracker *scheduleapi.LatestTracker
	query   scheduleapi.AvailabilityQuery
	every   time.Duration
	count   int
	out     io.Writer
	errOut  io.Writer
}

func (w *availabilityWatch) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	results := make(chan checkResult)
	launch := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			availability, err := w.tracker.Check(ctx, w.query)
			select {
			case results <- checkResult{availability: availability, err: err}:
			case <-ctx.Done():
			}
		}()
	}

	ticker := time.NewTicker(w.every)
	defer ticker.Stop()

	sent, received := 1, 0
	launch()

	var last string
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if w.count > 0 && sent >= w.count {
				continue
			}
			sent++
			launch()
		case res := <-results:
			received++
			switch {
			case errors.Is(res.err, scheduleapi.ErrStale):
				// вытеснена более новой проверкой
			case res.err != nil:
				fmt.Fprintf(w.errOut, "check failed: %v\n", res.err)
			default:
				if summary := summarize(res.availability); summary != last {
					last = summary
					printAvailability(w.out, w.query.ResourceID, res.availability)
				}
			}
			if w.count > 0 && received >= w.count {
				return nil
			}
		}
	}
}

func summarize(availability *scheduleapi.Availability) string {
	if availability.IsAvailable {
		return "free"
	}
	return "busy:" + strings.Join(availability.Conflicts, "\n")
}
