package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-RentalSchedule/internal/domain"
	"github.com/m04kA/SMC-RentalSchedule/internal/integrations/scheduleapi"
	"github.com/m04kA/SMC-RentalSchedule/internal/scheduling"
)

func newTimelineCmd(opts *globalOptions) *cobra.Command {
	flags := &scheduleFlags{}

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print consecutive free and busy blocks per day",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client(cmd)
			if err != nil {
				return err
			}

			schedule, err := client.GetSchedule(cmd.Context(), flags.query("grid"))
			if err != nil {
				return err
			}

			return printTimeline(cmd.OutOrStdout(), schedule)
		},
	}
	flags.bind(cmd)
	return cmd
}

// printTimeline группирует слоты на стороне клиента, так же как это делает браузер
func printTimeline(out io.Writer, schedule *scheduleapi.Schedule) error {
	loc, err := schedule.Config.Location()
	if err != nil {
		return err
	}

	printResources(out, schedule)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	for _, day := range schedule.Days {
		slots, err := day.DomainSlots(loc)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s %s\t\t\t\n", day.Date, day.DayShort)
		for _, group := range scheduling.Group(slots) {
			fmt.Fprintf(w, "  %s-%s\t%d slot(s)\t%s\t%s\n",
				group.StartTime.Format(domain.TimeFormat),
				group.EndTime.Format(domain.TimeFormat),
				len(group.Slots),
				group.Type,
				describeGroup(group))
		}
	}
	return nil
}

func describeGroup(group domain.SlotGroup) string {
	if group.Type != domain.SlotOccupied {
		return ""
	}
	var info *scheduleapi.Occupant
	if group.Info != nil {
		info = &scheduleapi.Occupant{
			UserName: group.Info.UserName,
			Project:  group.Info.Project,
			Status:   string(group.Info.Status),
		}
	}
	return describeSlot(info, group.Rooms)
}
