package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"splitup/internal/grid"
	"splitup/internal/ui"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Show, hide or reset a project's grid",
}

var gridShowCmd = &cobra.Command{
	Use:   "show [project]",
	Short: "Turn the grid on and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setGridVisible(cmd, args[0], true)
	},
}

var gridHideCmd = &cobra.Command{
	Use:   "hide [project]",
	Short: "Turn the grid off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setGridVisible(cmd, args[0], false)
	},
}

var gridResetCmd = &cobra.Command{
	Use:   "reset [project]",
	Short: "Start over: uncolor every cell and restore every goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return fail("%v", err)
		}
		defer ws.Close()

		c, err := ws.loadSession(cmd.Context(), args[0])
		if err != nil {
			return fail("%v", err)
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm(fmt.Sprintf("Reset all progress on '%s'? (y/n): ", c.Session().Name)) {
			fmt.Println("Reset cancelled.")
			return nil
		}

		c.Restart()
		if _, err := ws.saveSession(cmd.Context(), c); err != nil {
			return fail("error saving project: %v", err)
		}
		color.Green("Progress reset.")
		return nil
	},
}

func setGridVisible(cmd *cobra.Command, ref string, show bool) error {
	ws, err := openWorkspace()
	if err != nil {
		return fail("%v", err)
	}
	defer ws.Close()

	c, err := ws.loadSession(cmd.Context(), ref)
	if err != nil {
		return fail("%v", err)
	}

	c.SetShowGrid(show)
	if _, err := ws.saveSession(cmd.Context(), c); err != nil {
		return fail("error saving project: %v", err)
	}

	s := c.Session()
	if show {
		rows, cols := grid.Dimensions(len(s.Cells))
		fmt.Printf("%d cells in %d rows x %d columns\n\n", len(s.Cells), rows, cols)
		fmt.Println(ui.RenderGrid(s.Cells))
	} else {
		fmt.Println("Grid hidden.")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(gridCmd)

	gridCmd.AddCommand(gridShowCmd)
	gridCmd.AddCommand(gridHideCmd)
	gridCmd.AddCommand(gridResetCmd)

	for _, c := range []*cobra.Command{gridShowCmd, gridHideCmd, gridResetCmd} {
		c.ValidArgsFunction = completeProjects
	}

	gridResetCmd.Flags().Bool("force", false, "Reset without confirmation")
}
