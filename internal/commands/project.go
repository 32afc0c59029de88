package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"splitup/internal/calendar"
	"splitup/internal/grid"
	"splitup/internal/imaging"
	"splitup/internal/report"
	"splitup/internal/ui"
	"splitup/internal/util"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects"},
	Short:   "Manage saved projects",
	Long:    "Create, list, show, rename, export and delete saved projects",
}

var projectNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Start a new project from an image",
	Long:  "Create a project from an image file. Goals are added afterwards with 'splitup goal add'.",
	Example: `  splitup project new "New bike" --image bike.jpg
  splitup project new --image trip.png --deadline 2025-08-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath, _ := cmd.Flags().GetString("image")
		deadlineText, _ := cmd.Flags().GetString("deadline")

		if imagePath == "" {
			return fail("an image is required (use --image <path>)")
		}

		full, thumb, err := imaging.Load(imagePath)
		if err != nil {
			return fail("%v", err)
		}

		ws, err := openWorkspace()
		if err != nil {
			return fail("%v", err)
		}
		defer ws.Close()

		c := newController()
		c.SetImage(full, thumb)
		if len(args) == 1 {
			c.SetName(args[0])
		}
		if deadlineText != "" {
			deadline, err := calendar.ParseDate(deadlineText, time.Now(), time.Local)
			if err != nil {
				return fail("%v", err)
			}
			c.SetDeadline(&deadline)
		}

		project, err := ws.saveSession(cmd.Context(), c)
		if err != nil {
			return fail("error saving project: %v", err)
		}

		color.Green("Project created successfully!")
		fmt.Printf("ID: %s\n", project.ID)
		fmt.Printf("Name: %s\n", project.ProjectName)
		fmt.Printf("Image: %s\n", util.FormatSize(int64(len(project.ImageData))))
		fmt.Println()
		fmt.Printf("Add goals with: splitup goal add %q <text> <amount>\n", project.ProjectName)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved projects",
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

		if len(projects) == 0 {
			fmt.Println("No saved projects. Create one with 'splitup project new --image <path>'")
			return nil
		}

		fmt.Printf("Saved projects:\n\n")
		now := time.Now()
		for i, p := range projects {
			fmt.Printf("%d. %s (ID: %s)\n", i+1, p.ProjectName, p.ID)
			fmt.Printf("   Goals: %d, cells: %d/%d (%.0f%%)\n", len(p.Goals), p.FilledCount(), len(p.Cells), p.Percent())
			if p.Deadline != nil {
				line := fmt.Sprintf("   Deadline: %s", p.Deadline.Format(calendar.DateLayout))
				if p.Overdue(now) {
					color.Red(line + " (overdue)")
				} else {
					fmt.Println(line)
				}
			}
			fmt.Println()
		}
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project]",
	Short: "Show a project's goals and grid",
	Long:  "Show goals and the grid of a project. The project may be given by id or name.",
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

		fmt.Printf("Project Details:\n\n")
		fmt.Printf("ID: %s\n", p.ID)
		fmt.Printf("Name: %s\n", p.ProjectName)
		fmt.Printf("Image: %s\n", util.FormatSize(int64(len(p.ImageData))))
		if p.Deadline != nil {
			fmt.Printf("Deadline: %s\n", p.Deadline.Format(calendar.DateLayout))
		}
		if !p.UpdatedAt.IsZero() {
			fmt.Printf("Updated: %s\n", p.UpdatedAt.Local().Format(time.RFC1123))
		}
		fmt.Println()

		printGoals(p.Goals)

		if p.ShowGrid && len(p.Cells) > 0 {
			fmt.Println()
			fmt.Println(ui.RenderGrid(p.Cells))
		}
		fmt.Printf("\n%d of %d cells colored (%.1f%%)\n", p.FilledCount(), len(p.Cells), p.Percent())
		return nil
	},
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename [project] [new name]",
	Short: "Rename a project",
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
		c.SetName(args[1])

		if _, err := ws.saveSession(cmd.Context(), c); err != nil {
			return fail("error saving project: %v", err)
		}
		color.Green("Project renamed to %q", c.Session().Name)
		return nil
	},
}

var projectDeadlineCmd = &cobra.Command{
	Use:   "deadline [project] [YYYY-MM-DD|none]",
	Short: "Set or clear a project's deadline",
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

		if strings.EqualFold(args[1], "none") {
			c.SetDeadline(nil)
		} else {
			deadline, err := calendar.ParseDate(args[1], time.Now(), time.Local)
			if err != nil {
				return fail("%v", err)
			}
			c.SetDeadline(&deadline)
		}

		if _, err := ws.saveSession(cmd.Context(), c); err != nil {
			return fail("error saving project: %v", err)
		}
		color.Green("Deadline updated.")
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project]",
	Short: "Delete a saved project",
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

		// Confirm deletion
		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm(fmt.Sprintf("Are you sure you want to delete project '%s'? (y/n): ", p.ProjectName)) {
			fmt.Println("Project deletion cancelled.")
			return nil
		}

		if err := ws.projects.Delete(cmd.Context(), p.ID); err != nil {
			return fail("error deleting project: %v", err)
		}
		color.Green("Project deleted successfully!")
		return nil
	},
}

var projectExportCmd = &cobra.Command{
	Use:   "export [project]",
	Short: "Export a project's progress to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("xlsx")
		if out == "" {
			return fail("an output path is required (use --xlsx <file>)")
		}

		ws, err := openWorkspace()
		if err != nil {
			return fail("%v", err)
		}
		defer ws.Close()

		p, err := ws.projects.Resolve(cmd.Context(), args[0])
		if err != nil {
			return fail("%v", err)
		}

		if err := report.WriteWorkbook(p, out); err != nil {
			return fail("%v", err)
		}
		color.Green("Progress written to %s", out)
		return nil
	},
}

var projectRenderCmd = &cobra.Command{
	Use:   "render [project]",
	Short: "Render the revealed image to a PNG file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return fail("an output path is required (use --out <file.png>)")
		}

		ws, err := openWorkspace()
		if err != nil {
			return fail("%v", err)
		}
		defer ws.Close()

		p, err := ws.projects.Resolve(cmd.Context(), args[0])
		if err != nil {
			return fail("%v", err)
		}

		img := imaging.Reveal(imaging.Decode(p.ImageData), p.Cells, p.ShowGrid)
		data, err := imaging.EncodePNG(img)
		if err != nil {
			return fail("%v", err)
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fail("error writing %s: %v", out, err)
		}

		rows, cols := grid.Dimensions(len(p.Cells))
		color.Green("Rendered %dx%d grid to %s (%s)", rows, cols, out, util.FormatSize(int64(len(data))))
		return nil
	},
}

// confirm asks a yes/no question on stdin
func confirm(prompt string) bool {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.TrimSpace(scanner.Text())
	return answer == "y" || answer == "Y"
}

// resolveProjectName is used by shell completion
func resolveProjectName(ctx context.Context, toComplete string) []string {
	ws, err := openWorkspace()
	if err != nil {
		return nil
	}
	defer ws.Close()

	projects, err := ws.projects.List(ctx)
	if err != nil {
		return nil
	}
	var names []string
	for _, p := range projects {
		if strings.HasPrefix(strings.ToLower(p.ProjectName), strings.ToLower(toComplete)) {
			names = append(names, p.ProjectName)
		}
	}
	return names
}

func completeProjects(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return resolveProjectName(cmd.Context(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectRenameCmd)
	projectCmd.AddCommand(projectDeadlineCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectExportCmd)
	projectCmd.AddCommand(projectRenderCmd)

	for _, c := range []*cobra.Command{projectShowCmd, projectRenameCmd, projectDeadlineCmd, projectDeleteCmd, projectExportCmd, projectRenderCmd} {
		c.ValidArgsFunction = completeProjects
	}

	projectNewCmd.Flags().String("image", "", "Image file to split into cells")
	projectNewCmd.Flags().String("deadline", "", "Optional deadline (YYYY-MM-DD)")

	projectDeleteCmd.Flags().Bool("force", false, "Force deletion without confirmation")

	projectExportCmd.Flags().String("xlsx", "", "Output spreadsheet path")
	projectRenderCmd.Flags().String("out", "", "Output PNG path")
}
