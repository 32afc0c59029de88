package commands

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"splitup/internal/config"
	"splitup/internal/logging"
	"splitup/internal/models"
	"splitup/internal/state"
	"splitup/internal/store"
)

var globalConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "splitup",
	Short: "SplitUp - reveal a picture one goal at a time",
	Long: `SplitUp splits an image into a grid of cells and colors them in as you make
progress on numeric goals ("save $500", "read 300 pages"). It also keeps a small
calendar notebook and a gallery of saved projects.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configDir, err := config.GetGlobalConfigDir()
		if err != nil {
			return
		}
		// Logging is best effort; commands still work without a log file
		if err := initLogging(configDir); err != nil {
			color.Yellow("Warning: logging disabled: %v", err)
		}
	},
}

// Execute runs the root command
func Execute(ctx context.Context, cfg *config.Config) error {
	globalConfig = cfg
	return rootCmd.ExecuteContext(ctx)
}

// workspace bundles everything a command needs to read and write saved state
type workspace struct {
	configDir string
	kv        store.KV
	projects  *store.ProjectRepository
	events    *store.EventRepository
	log       *zap.Logger
}

// openWorkspace opens the blob store selected by the global config
func openWorkspace() (*workspace, error) {
	configDir, err := config.GetGlobalConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting config directory: %w", err)
	}

	cfg := globalConfig
	if cfg == nil {
		cfg = config.Default()
	}

	log := logging.Log
	kv, err := store.Open(cfg, cfg.ResolveDataDir(configDir))
	if err != nil {
		return nil, fmt.Errorf("error opening store: %w", err)
	}

	return &workspace{
		configDir: configDir,
		kv:        kv,
		projects:  store.NewProjectRepository(kv, log),
		events:    store.NewEventRepository(kv, log),
		log:       log,
	}, nil
}

func (w *workspace) Close() {
	if err := w.kv.Close(); err != nil {
		w.log.Warn("closing store", zap.Error(err))
	}
}

// newController returns a controller seeded from config, or from the clock
func newController() *state.Controller {
	seed := time.Now().UnixNano()
	if globalConfig != nil && globalConfig.Seed != 0 {
		seed = globalConfig.Seed
	}
	return state.NewController(rand.New(rand.NewSource(seed)), logging.Log)
}

// defaultUnit returns the configured default unit, falling back to pieces
func defaultUnit() models.GoalUnit {
	if globalConfig != nil && globalConfig.DefaultUnit != "" {
		if u, err := models.ParseUnit(globalConfig.DefaultUnit); err == nil {
			return u
		}
	}
	return models.UnitPieces
}

// fail prints a user-facing error and returns nil so cobra does not print usage
func fail(format string, args ...interface{}) error {
	color.New(color.FgRed).Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return nil
}

// logPath returns the log file location inside the config directory
func logPath(configDir string) string {
	return filepath.Join(configDir, "splitup.log")
}

// initLogging installs the file logger for this run
func initLogging(configDir string) error {
	level := "info"
	if globalConfig != nil && globalConfig.LogLevel != "" {
		level = globalConfig.LogLevel
	}
	_, err := logging.New(level, logPath(configDir))
	return err
}

// loadSession resolves a project reference and loads it into a fresh controller
func (w *workspace) loadSession(ctx context.Context, ref string) (*state.Controller, error) {
	project, err := w.projects.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	c := newController()
	c.Load(project)
	return c, nil
}

// saveSession stores the controller's session, replacing the loaded project by id
func (w *workspace) saveSession(ctx context.Context, c *state.Controller) (models.Project, error) {
	saved, err := w.projects.Save(ctx, c.Snapshot())
	if err != nil {
		return models.Project{}, err
	}
	c.Saved(saved)
	return saved, nil
}
