package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-RentalSchedule/internal/integrations/scheduleapi"
)

func newBookCmd(opts *globalOptions) *cobra.Command {
	var (
		req     scheduleapi.CreateBookingRequest
		notes   string
		reserve bool
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book one or more resources for [start, end)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.userID == 0 {
				return errors.New("--user is required for booking")
			}
			if notes != "" {
				req.Notes = &notes
			}
			if reserve {
				req.Status = "reserved"
			}

			client, err := opts.client(cmd)
			if err != nil {
				return err
			}

			created, err := client.CreateBooking(cmd.Context(), req)
			if err != nil {
				var conflictErr *scheduleapi.ConflictError
				if errors.As(err, &conflictErr) {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s:\n", conflictErr.Message)
					for _, c := range conflictErr.Conflicts {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", c)
					}
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created bookings %v\n", created.BookingIDs)
			return nil
		},
	}

	cmd.Flags().Int64SliceVar(&req.ResourceIDs, "resource", nil, "resource IDs to book together (required)")
	cmd.Flags().StringVar(&req.Start, "start", "", "interval start, RFC 3339 (required)")
	cmd.Flags().StringVar(&req.End, "end", "", "interval end, RFC 3339 (required)")
	cmd.Flags().StringVar(&req.UserName, "name", "", "who occupies the resource (required)")
	cmd.Flags().StringVar(&req.Project, "project", "", "project or event")
	cmd.Flags().IntVar(&req.PeopleCount, "people", 1, "number of people")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().BoolVar(&reserve, "reserve", false, "create as reserved instead of draft")
	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
