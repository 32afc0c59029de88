package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"splitup/internal/state"
)

var progressCmd = &cobra.Command{
	Use:   "progress [project] [goal#] [amount]",
	Short: "Record progress on a goal",
	Long: `Credit an amount to a goal and color a proportional number of randomly
chosen cells. The amount must be a whole number no larger than what remains.`,
	Example: `  splitup progress "New bike" 1 50`,
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordProgress(cmd, args[0], args[1], func(c *state.Controller, goalID string) (int, error) {
			return c.RecordProgress(goalID, args[2])
		})
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete [project] [goal#]",
	Short: "Mark a goal as complete",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordProgress(cmd, args[0], args[1], func(c *state.Controller, goalID string) (int, error) {
			return c.CompleteGoal(goalID)
		})
	},
}

func recordProgress(cmd *cobra.Command, projectRef, goalRef string, apply func(*state.Controller, string) (int, error)) error {
	ws, err := openWorkspace()
	if err != nil {
		return fail("%v", err)
	}
	defer ws.Close()

	c, err := ws.loadSession(cmd.Context(), projectRef)
	if err != nil {
		return fail("%v", err)
	}

	g, err := goalArg(c, goalRef)
	if err != nil {
		return fail("%v", err)
	}
	if g.IsCompleted {
		color.Yellow("Goal %q is already complete.", g.Text)
		return nil
	}

	colored, err := apply(c, g.ID)
	if err != nil {
		return fail("%v", err)
	}

	if _, err := ws.saveSession(cmd.Context(), c); err != nil {
		return fail("error saving project: %v", err)
	}

	updated, _ := goalArg(c, goalRef)
	s := c.Session()
	color.Green("%s: %s", updated.Text, updated.Progress())
	fmt.Printf("Colored %d cells, %d of %d revealed\n", colored, s.FilledCount(), len(s.Cells))
	if updated.IsCompleted {
		color.New(color.FgGreen, color.Bold).Println("Goal complete!")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(completeCmd)

	progressCmd.ValidArgsFunction = completeProjects
	completeCmd.ValidArgsFunction = completeProjects
}
