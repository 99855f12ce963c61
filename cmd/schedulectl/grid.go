package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-RentalSchedule/internal/integrations/scheduleapi"
)

type scheduleFlags struct {
	resourceIDs []int64
	kind        string
	startDate   string
	endDate     string
}

func (f *scheduleFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64SliceVar(&f.resourceIDs, "resource", nil, "resource IDs (repeat or comma-separate); several IDs give the aggregated view")
	cmd.Flags().StringVar(&f.kind, "kind", "", "resource kind filter: room or equipment")
	cmd.Flags().StringVar(&f.startDate, "from", "", "first date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&f.endDate, "to", "", "last date, YYYY-MM-DD (defaults to --from)")
	_ = cmd.MarkFlagRequired("from")
}

func (f *scheduleFlags) query(view string) scheduleapi.ScheduleQuery {
	return scheduleapi.ScheduleQuery{
		ResourceIDs: f.resourceIDs,
		Kind:        f.kind,
		StartDate:   f.startDate,
		EndDate:     f.endDate,
		View:        view,
	}
}

func newGridCmd(opts *globalOptions) *cobra.Command {
	flags := &scheduleFlags{}

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the slot grid for one or more resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}

			schedule, err := client.GetSchedule(cmd.Context(), flags.query("grid"))
			if err != nil {
				return err
			}

			printGrid(cmd.OutOrStdout(), schedule)
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func printGrid(out io.Writer, schedule *scheduleapi.Schedule) {
	printResources(out, schedule)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	for _, day := range schedule.Days {
		fmt.Fprintf(w, "%s %s\t\t\n", day.Date, day.DayShort)
		for _, slot := range day.Slots {
			fmt.Fprintf(w, "  %s-%s\t%s\t%s\n", slot.StartTime, slot.EndTime, slot.Status, describeSlot(slot.Info, slot.Rooms))
		}
	}
}

func printResources(out io.Writer, schedule *scheduleapi.Schedule) {
	names := make([]string, 0, len(schedule.Resources))
	for _, r := range schedule.Resources {
		names = append(names, fmt.Sprintf("%s (#%d)", r.Name, r.ID))
	}
	if len(names) == 0 {
		fmt.Fprintln(out, "no resources")
		return
	}

	mode := "single"
	if schedule.Aggregated {
		mode = "aggregated"
	}
	fmt.Fprintf(out, "%s view: %s\n", mode, strings.Join(names, ", "))
}

func describeSlot(info *scheduleapi.Occupant, rooms []string) string {
	if len(rooms) > 0 {
		return strings.Join(rooms, ", ")
	}
	if info == nil {
		return ""
	}
	who := info.UserName
	if info.Project != "" {
		who = fmt.Sprintf("%s (%s)", who, info.Project)
	}
	return fmt.Sprintf("%s [%s]", who, info.Status)
}
