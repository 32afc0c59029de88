package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"splitup/internal/grid"
	"splitup/internal/models"
	"splitup/internal/report"
	"splitup/internal/state"
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals"},
	Short:   "Manage a project's goals",
	Long:    "Add, edit, delete, list, import and export the goals of a project",
}

var goalAddCmd = &cobra.Command{
	Use:   "add [project] [text] [amount]",
	Short: "Add a goal",
	Example: `  splitup goal add "New bike" "Save money" 500 --unit usd
  splitup goal add Reading "Read pages" 3000`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := unitFlag(cmd)
		if err != nil {
			return fail("%v", err)
		}

		ws, err := openWorkspace()
		if err != nil {
			return fail("%v", err)
		}
		defer ws.Close()

		c, err := ws.loadSession(cmd.Context(), args[0])
		if err != nil {
			return fail("%v", err)
		}

		g, err := c.AddGoal(args[1], args[2], unit)
		if err != nil {
			return fail("%v", err)
		}
		if g.Total() == 0 {
			color.Yellow("Warning: %q is not a positive whole number; the goal adds no cells", args[2])
		}

		if _, err := ws.saveSession(cmd.Context(), c); err != nil {
			return fail("error saving project: %v", err)
		}

		color.Green("Goal added: %s (%s)", g.Text, g.Progress())
		fmt.Printf("Cells: %d (1 cell = %d %s), grid total: %d\n", grid.CellCount(g), g.Scale, g.Unit, len(c.Session().Cells))
		return nil
	},
}

var goalEditCmd = &cobra.Command{
	Use:   "edit [project] [goal#] [text] [amount]",
	Short: "Edit a goal",
	Long: `Replace a goal's text, total and unit. The remaining amount is reset to the
new total; cells that are already colored stay colored.`,
	Args: cobra.ExactArgs(4),
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

		g, err := goalArg(c, args[1])
		if err != nil {
			return fail("%v", err)
		}

		unit := g.Unit
		if cmd.Flags().Changed("unit") {
			if unit, err = unitFlag(cmd); err != nil {
				return fail("%v", err)
			}
		}

		updated, err := c.UpdateGoal(g.ID, args[2], args[3], unit)
		if err != nil {
			return fail("%v", err)
		}

		if _, err := ws.saveSession(cmd.Context(), c); err != nil {
			return fail("error saving project: %v", err)
		}
		color.Green("Goal updated: %s (%s)", updated.Text, updated.Progress())
		return nil
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete [project] [goal#]",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(2),
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

		g, err := goalArg(c, args[1])
		if err != nil {
			return fail("%v", err)
		}
		if err := c.DeleteGoal(g.ID); err != nil {
			return fail("%v", err)
		}

		if _, err := ws.saveSession(cmd.Context(), c); err != nil {
			return fail("error saving project: %v", err)
		}
		color.Green("Goal deleted: %s", g.Text)
		return nil
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list [project]",
	Short: "List a project's goals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return fail("%v", err)
		}
		defer ws.Close()

		p, err := ws.projects.Resolve(cmd.Context(), args[0])
		if err != nil {
			return fail("%v", err)
		}
		printGoals(p.Goals)
		return nil
	},
}

var goalImportCmd = &cobra.Command{
	Use:   "import [project] [file.yaml]",
	Short: "Add goals from a YAML file",
	Example: `  # goals.yaml
  goals:
    - text: Save money
      amount: 500
      unit: usd
    - text: Read pages
      amount: 3000
      unit: pieces`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fail("error reading %s: %v", args[1], err)
		}
		specs, err := report.ImportGoals(data)
		if err != nil {
			return fail("%v", err)
		}

		ws, err := openWorkspace()
		if err != nil {
			return fail("%v", err)
		}
		defer ws.Close()

		c, err := ws.loadSession(cmd.Context(), args[0])
		if err != nil {
			return fail("%v", err)
		}

		for _, spec := range specs {
			g, err := c.AddGoal(spec.Text, strconv.Itoa(spec.Amount), models.GoalUnit(spec.Unit))
			if err != nil {
				return fail("goal %q: %v", spec.Text, err)
			}
			// Credit what the file says is already done
			if spec.Remaining != nil && *spec.Remaining < spec.Amount {
				if _, err := c.RecordProgress(g.ID, strconv.Itoa(spec.Amount-*spec.Remaining)); err != nil {
					return fail("goal %q: %v", spec.Text, err)
				}
			}
		}

		if _, err := ws.saveSession(cmd.Context(), c); err != nil {
			return fail("error saving project: %v", err)
		}
		color.Green("Imported %d goals", len(specs))
		return nil
	},
}

var goalExportCmd = &cobra.Command{
	Use:   "export [project]",
	Short: "Print a project's goals as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return fail("%v", err)
		}
		defer ws.Close()

		p, err := ws.projects.Resolve(cmd.Context(), args[0])
		if err != nil {
			return fail("%v", err)
		}

		data, err := report.ExportGoals(p.Goals)
		if err != nil {
			return fail("%v", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

// unitFlag parses --unit, falling back to the configured default
func unitFlag(cmd *cobra.Command) (models.GoalUnit, error) {
	raw, _ := cmd.Flags().GetString("unit")
	if raw == "" {
		return defaultUnit(), nil
	}
	return models.ParseUnit(raw)
}

// goalArg resolves a 1-based goal number as printed by 'goal list'
func goalArg(c *state.Controller, arg string) (models.Goal, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil {
		return models.Goal{}, fmt.Errorf("%w: %q is not a goal number", models.ErrGoalNotFound, arg)
	}
	return c.GoalAt(n)
}

// printGoals prints goals numbered from 1
func printGoals(goals []models.Goal) {
	if len(goals) == 0 {
		fmt.Println("No goals yet. Add one with 'splitup goal add <project> <text> <amount>'")
		return
	}

	fmt.Println("Goals:")
	for i, g := range goals {
		line := fmt.Sprintf("  %d. %s  %s  (%d cells)", i+1, g.Text, g.Progress(), grid.CellCount(g))
		if g.IsCompleted {
			color.Green(line + "  done")
		} else {
			fmt.Println(line)
		}
	}
}

func init() {
	rootCmd.AddCommand(goalCmd)

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalEditCmd)
	goalCmd.AddCommand(goalDeleteCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalImportCmd)
	goalCmd.AddCommand(goalExportCmd)

	for _, c := range []*cobra.Command{goalAddCmd, goalEditCmd, goalDeleteCmd, goalListCmd, goalImportCmd, goalExportCmd} {
		c.ValidArgsFunction = completeProjects
	}

	unitHelp := "Unit symbol or alias (pieces, kg, usd, eur, days, hours, ...)"
	goalAddCmd.Flags().String("unit", "", unitHelp)
	goalEditCmd.Flags().String("unit", "", unitHelp)
}
