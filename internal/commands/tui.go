package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"splitup/internal/models"
	"splitup/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:               "tui [project]",
	Aliases:           []string{"open"},
	Short:             "Open a project in the interactive grid view",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeProjects,
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

		save := func(ctx context.Context, p models.Project) (models.Project, error) {
			return ws.projects.Save(ctx, p)
		}

		ctx := cmd.Context()
		p := tea.NewProgram(ui.NewModel(ctx, c, save), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fail("error running interface: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
