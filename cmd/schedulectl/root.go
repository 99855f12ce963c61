package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-RentalSchedule/internal/integrations/scheduleapi"
	"github.com/m04kA/SMC-RentalSchedule/pkg/logger"
)

type globalOptions struct {
	server   string
	userID   int64
	timeout  time.Duration
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "schedulectl",
		Short:         "Inspect room and equipment schedules and book free time",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultServer := os.Getenv("SCHEDULE_API_URL")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}

	root.PersistentFlags().StringVar(&opts.server, "server", defaultServer, "schedule service base URL (env SCHEDULE_API_URL)")
	root.PersistentFlags().Int64Var(&opts.userID, "user", 0, "user ID sent as X-User-ID for bookings")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP request timeout")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newGridCmd(opts))
	root.AddCommand(newTimelineCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newBookCmd(opts))

	return root
}

func (o *globalOptions) client(cmd *cobra.Command) (*scheduleapi.Client, error) {
	log, err := logger.NewWithWriter(cmd.ErrOrStderr(), o.logLevel)
	if err != nil {
		return nil, err
	}
	return scheduleapi.NewClient(o.server, o.userID, o.timeout, log), nil
}
