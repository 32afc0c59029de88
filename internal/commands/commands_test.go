package commands

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitup/internal/config"
	"splitup/internal/imaging"
	"splitup/internal/models"
)

// setupHome points the config directory at a temp dir and returns an image path
func setupHome(t *testing.T, backend string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("SPLITUP_HOME", home)

	cfg := config.Default()
	cfg.Backend = backend
	cfg.Seed = 7
	globalConfig = cfg
	t.Cleanup(func() { globalConfig = nil })

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.Set(0, 0, color.White)
	data, err := imaging.EncodePNG(img)
	require.NoError(t, err)

	path := filepath.Join(home, "bike.png")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func run(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
}

func loadProject(t *testing.T, name string) models.Project {
	t.Helper()
	ws, err := openWorkspace()
	require.NoError(t, err)
	defer ws.Close()

	p, err := ws.projects.FindByName(context.Background(), name)
	require.NoError(t, err)
	return p
}

func TestProjectLifecycle(t *testing.T) {
	for _, backend := range []string{config.BackendJSON, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			imagePath := setupHome(t, backend)

			run(t, "project", "new", "Bike", "--image", imagePath)
			run(t, "goal", "add", "Bike", "Save money", "100", "--unit", "usd")

			p := loadProject(t, "Bike")
			require.Len(t, p.Goals, 1)
			assert.Equal(t, models.UnitDollar, p.Goals[0].Unit)
			assert.Len(t, p.Cells, 100)
			assert.Zero(t, p.FilledCount())

			run(t, "progress", "Bike", "1", "25")
			p = loadProject(t, "Bike")
			assert.Equal(t, 25, p.FilledCount())
			assert.Equal(t, "75", p.Goals[0].RemainingNumber)

			// Over the remaining amount: rejected, nothing changes
			run(t, "progress", "Bike", "1", "500")
			p = loadProject(t, "Bike")
			assert.Equal(t, 25, p.FilledCount())

			run(t, "complete", "Bike", "1")
			p = loadProject(t, "Bike")
			assert.Equal(t, 100, p.FilledCount())
			assert.True(t, p.Goals[0].IsCompleted)

			run(t, "grid", "reset", "Bike", "--force")
			p = loadProject(t, "Bike")
			assert.Zero(t, p.FilledCount())
			assert.Equal(t, "100", p.Goals[0].RemainingNumber)
			assert.False(t, p.Goals[0].IsCompleted)

			run(t, "project", "delete", "Bike", "--force")
			ws, err := openWorkspace()
			require.NoError(t, err)
			defer ws.Close()
			projects, err := ws.projects.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, projects)
		})
	}
}

func TestProjectNewRequiresImage(t *testing.T) {
	setupHome(t, config.BackendJSON)

	run(t, "project", "new", "Nothing", "--image", "")

	ws, err := openWorkspace()
	require.NoError(t, err)
	defer ws.Close()
	projects, err := ws.projects.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestEventAddAndDelete(t *testing.T) {
	setupHome(t, config.BackendJSON)

	run(t, "event", "add", "Dentist", "--date", "2030-01-02", "--time", "09:30", "--notes", "bring card")

	ws, err := openWorkspace()
	require.NoError(t, err)
	events, err := ws.events.List(context.Background())
	require.NoError(t, err)
	ws.Close()
	require.Len(t, events, 1)
	assert.Equal(t, "Dentist", events[0].Title)
	assert.Equal(t, 9, events[0].Time.Hour())
	assert.Equal(t, 30, events[0].Time.Minute())

	run(t, "event", "delete", events[0].ID[:8])

	ws, err = openWorkspace()
	require.NoError(t, err)
	defer ws.Close()
	events, err = ws.events.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}
