package app

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cyp0633/davkit/davclient"
)

func calDAVHandler(s *session, name string) (*davclient.CalDAVHandler, error) {
	cfg, err := s.server(name)
	if err != nil {
		return nil, err
	}
	return davclient.NewCalDAVHandler(cfg, s.clientOptions()...)
}

func newCalendarsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "calendars NAME",
		Short: "List the calendars of a server",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			h, err := calDAVHandler(s, args[0])
			if err != nil {
				return err
			}
			calendars, err := h.ListCalendars(cmd.Context())
			if err != nil {
				return err
			}
			return s.print(calendars)
		}),
	}
}

func newEventsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Query and change calendar events",
	}
	cmd.AddCommand(newEventsListCmd(opts))
	cmd.AddCommand(newEventsCreateCmd(opts))
	cmd.AddCommand(newEventsDeleteCmd(opts))
	return cmd
}

func newEventsListCmd(opts *globalOptions) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "list NAME CALENDAR_PATH",
		Short: "List the events of a calendar",
		Long:  "List the events of a calendar. --start and --end take RFC 3339 times or raw iCalendar UTC date-times such as 20231201T000000Z.",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			h, err := calDAVHandler(s, args[0])
			if err != nil {
				return err
			}

			var events []davclient.CalendarEvent
			startTime, startErr := time.Parse(time.RFC3339, start)
			endTime, endErr := time.Parse(time.RFC3339, end)
			if startErr == nil && endErr == nil {
				events, err = h.GetEventsBetween(cmd.Context(), args[1], startTime, endTime)
			} else {
				events, err = h.GetEvents(cmd.Context(), args[1], start, end)
			}
			if err != nil {
				return err
			}
			return s.print(events)
		}),
	}
	cmd.Flags().StringVar(&start, "start", "", "Start of the time range")
	cmd.Flags().StringVar(&end, "end", "", "End of the time range")
	return cmd
}

func newEventsCreateCmd(opts *globalOptions) *cobra.Command {
	var ev davclient.CalendarEvent

	cmd := &cobra.Command{
		Use:   "create NAME CALENDAR_PATH",
		Short: "Create an event",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			h, err := calDAVHandler(s, args[0])
			if err != nil {
				return err
			}
			path, err := h.CreateEvent(cmd.Context(), args[1], ev)
			if err != nil {
				return err
			}
			return s.print(map[string]string{"path": path})
		}),
	}
	cmd.Flags().StringVar(&ev.UID, "uid", "", "Event UID, generated when empty")
	cmd.Flags().StringVar(&ev.Summary, "summary", "", "Event title")
	cmd.Flags().StringVar(&ev.Start, "start", "", "DTSTART value, e.g. 20231201T100000Z")
	cmd.Flags().StringVar(&ev.End, "end", "", "DTEND value")
	cmd.Flags().StringVar(&ev.Description, "description", "", "Event description")
	cmd.Flags().StringVar(&ev.Location, "location", "", "Event location")
	cmd.Flags().StringVar(&ev.Status, "status", "", "CONFIRMED|TENTATIVE|CANCELLED")
	_ = cmd.MarkFlagRequired("summary")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newEventsDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME EVENT_PATH",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			h, err := calDAVHandler(s, args[0])
			if err != nil {
				return err
			}
			if err := h.DeleteEvent(cmd.Context(), args[1]); err != nil {
				return err
			}
			return s.print(map[string]string{"deleted": args[1]})
		}),
	}
}
