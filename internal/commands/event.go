package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"splitup/internal/calendar"
	"splitup/internal/models"
)

var eventCmd = &cobra.Command{
	Use:     "event",
	Aliases: []string{"events", "cal"},
	Short:   "Manage calendar events",
	Long:    "Add, list and delete events in the calendar notebook",
}

var eventAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add an event",
	Example: `  splitup event add "Dentist" --date 2025-03-04 --time 09:30
  splitup event add "Pay rent" --date tomorrow --notes "transfer"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dateText, _ := cmd.Flags().GetString("date")
		clockText, _ := cmd.Flags().GetString("time")
		notes, _ := cmd.Flags().GetString("notes")

		date, err := calendar.ParseDate(dateText, time.Now(), time.Local)
		if err != nil {
			return fail("%v", err)
		}
		clock, err := calendar.ParseClock(clockText, date)
		if err != nil {
			return fail("%v", err)
		}

		e, err := calendar.NewEvent(args[0], date, clock, notes)
		if err != nil {
			return fail("%v", err)
		}

		ws, err := openWorkspace()
		if err != nil {
			return fail("%v", err)
		}
		defer ws.Close()

		e, err = ws.events.Add(cmd.Context(), e)
		if err != nil {
			return fail("error adding event: %v", err)
		}
		color.Green("Event added: %s on %s at %s (ID: %s)",
			e.Title, e.Date.Format(calendar.DateLayout), e.Time.Format(calendar.ClockLayout), shortID(e.ID))
		return nil
	},
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events for a day, or upcoming events",
	RunE: func(cmd *cobra.Command, args []string) error {
		dateText, _ := cmd.Flags().GetString("date")
		limit, _ := cmd.Flags().GetInt("limit")

		ws, err := openWorkspace()
		if err != nil {
			return fail("%v", err)
		}
		defer ws.Close()

		events, err := ws.events.List(cmd.Context())
		if err != nil {
			return fail("error listing events: %v", err)
		}

		if dateText != "" {
			day, err := calendar.ParseDate(dateText, time.Now(), time.Local)
			if err != nil {
				return fail("%v", err)
			}
			printEvents(fmt.Sprintf("Events on %s:", day.Format("Mon, 02 Jan 2006")), calendar.ForDay(events, day))
			return nil
		}

		printEvents("Upcoming events:", calendar.Upcoming(events, startOfToday(), limit))
		return nil
	},
}

var eventDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an event by id or id prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return fail("%v", err)
		}
		defer ws.Close()

		if err := ws.events.Delete(cmd.Context(), args[0]); err != nil {
			return fail("%v", err)
		}
		color.Green("Event deleted.")
		return nil
	},
}

func printEvents(title string, events []models.CalendarEvent) {
	if len(events) == 0 {
		fmt.Println("No events.")
		return
	}

	fmt.Println(title)
	fmt.Println()
	for _, e := range events {
		fmt.Printf("  %s %s  %s  ",
			e.Date.Local().Format("Mon 02 Jan"),
			color.CyanString(e.Time.Local().Format(calendar.ClockLayout)),
			e.Title,
		)
		color.New(color.FgHiBlack).Printf("[%s]\n", shortID(e.ID))
		if e.Notes != "" {
			fmt.Printf("      %s\n", e.Notes)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func startOfToday() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func init() {
	rootCmd.AddCommand(eventCmd)

	eventCmd.AddCommand(eventAddCmd)
	eventCmd.AddCommand(eventListCmd)
	eventCmd.AddCommand(eventDeleteCmd)

	eventAddCmd.Flags().String("date", "today", "Date (YYYY-MM-DD, today, tomorrow)")
	eventAddCmd.Flags().String("time", "", "Time of day (HH:MM)")
	eventAddCmd.Flags().String("notes", "", "Notes")

	eventListCmd.Flags().String("date", "", "Only show events on this date")
	eventListCmd.Flags().Int("limit", 10, "Maximum number of upcoming events")
}
