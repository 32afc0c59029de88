package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"splitup/internal/calendar"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show progress across projects and what is coming up",
	Long:  `Display every saved project with its progress and deadline, followed by today's and upcoming events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return fail("%v", err)
		}
		defer ws.Close()

		projects, err := ws.projects.List(cmd.Context())
		if err != nil {
			return fail("error listing projects: %v", err)
		}
		events, err := ws.events.List(cmd.Context())
		if err != nil {
			return fail("error listing events: %v", err)
		}

		now := time.Now()

		fmt.Println("Projects:")
		if len(projects) == 0 {
			fmt.Println("  (none)")
		}
		for _, p := range projects {
			line := fmt.Sprintf("  %-24s %5.1f%%  %d/%d cells", p.ProjectName, p.Percent(), p.FilledCount(), len(p.Cells))
			switch {
			case len(p.Cells) > 0 && p.FilledCount() == len(p.Cells):
				color.Green(line + "  done")
			case p.Overdue(now):
				color.Red(line + "  overdue since " + p.Deadline.Format(calendar.DateLayout))
			case p.Deadline != nil:
				fmt.Println(line + "  due " + p.Deadline.Format(calendar.DateLayout))
			default:
				fmt.Println(line)
			}
		}
		fmt.Println()

		today := calendar.ForDay(events, now)
		fmt.Println("Today:")
		if len(today) == 0 {
			fmt.Println("  (nothing planned)")
		}
		for _, e := range today {
			fmt.Printf("  %s  %s\n", color.CyanString(e.Time.Local().Format(calendar.ClockLayout)), e.Title)
		}
		fmt.Println()

		tomorrow := startOfToday().AddDate(0, 0, 1)
		printEvents("Coming up:", calendar.Upcoming(events, tomorrow, 5))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
