package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"splitup/internal/config"
	"splitup/internal/models"
)

var (
	// Variables to hold flag values
	backend     string
	dataDir     string
	logLevel    string
	unitDefault string
	seed        int64
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage SplitUp configuration",
	Long:  "View and update SplitUp configuration settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get configuration value",
	Long:  "Display specific configuration value or all configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// If no argument is provided, show all config
		if len(args) == 0 {
			fmt.Println("Current configuration:")
			fmt.Printf("Backend: %s\n", cfg.Backend)
			fmt.Printf("Log level: %s\n", cfg.LogLevel)
			if cfg.DataDir != "" {
				fmt.Printf("Data directory: %s\n", cfg.DataDir)
			}
			if cfg.DefaultUnit != "" {
				fmt.Printf("Default unit: %s\n", cfg.DefaultUnit)
			}
			if cfg.Seed != 0 {
				fmt.Printf("Seed: %d\n", cfg.Seed)
			}
			return nil
		}

		// Show specific config value
		switch args[0] {
		case "backend":
			fmt.Println(cfg.Backend)
		case "data-dir":
			fmt.Println(cfg.DataDir)
		case "log-level":
			fmt.Println(cfg.LogLevel)
		case "default-unit":
			fmt.Println(cfg.DefaultUnit)
		case "seed":
			fmt.Println(cfg.Seed)
		default:
			return fmt.Errorf("unknown configuration key: %s", args[0])
		}

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	Long:  "Update configuration settings like the storage backend or default unit",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetGlobalConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		// Read the file alone so environment overrides are not written back
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		changed, err := applyConfigFlags(cmd, cfg)
		if err != nil {
			return err
		}

		// Save configuration if it was updated
		if changed {
			if err := config.SaveGlobalConfig(cfg); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			fmt.Println("Configuration updated successfully.")
		} else {
			fmt.Println("No changes were made to the configuration.")
		}

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  "Create a new configuration file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetGlobalConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		// Check if config file exists
		if _, err := os.Stat(configPath); err == nil {
			fmt.Println("Configuration file already exists.")
			fmt.Println("Use 'splitup config set' to modify existing configuration.")
			return nil
		}

		// Override defaults with provided flags
		cfg := config.Default()
		if _, err := applyConfigFlags(cmd, cfg); err != nil {
			return err
		}

		if err := config.SaveGlobalConfig(cfg); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		fmt.Println("Configuration initialized successfully.")
		fmt.Printf("Configuration file created at: %s\n", configPath)
		return nil
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show configuration file paths",
	Long:  "Display paths to the configuration, data and log files",
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := config.GetGlobalConfigDir()
		if err != nil {
			return err
		}
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		paths := []struct {
			label string
			path  string
		}{
			{"Config file", filepath.Join(configDir, "config.json")},
			{"Env file", filepath.Join(configDir, ".env")},
			{"Data directory", cfg.ResolveDataDir(configDir)},
			{"Log file", logPath(configDir)},
		}

		fmt.Println("Paths:")
		fmt.Printf("- Config directory: %s\n", configDir)
		for _, p := range paths {
			fmt.Printf("- %s: %s\n", p.label, p.path)
		}

		// Check existence
		fmt.Println("\nExistence status:")
		for _, p := range paths {
			if _, err := os.Stat(p.path); os.IsNotExist(err) {
				fmt.Printf("- %s: Does not exist\n", p.label)
			} else {
				fmt.Printf("- %s: Exists\n", p.label)
			}
		}

		return nil
	},
}

// applyConfigFlags copies explicitly set flags into cfg and reports whether anything changed
func applyConfigFlags(cmd *cobra.Command, cfg *config.Config) (bool, error) {
	changed := false

	if cmd.Flags().Changed("backend") {
		if backend != config.BackendJSON && backend != config.BackendSQLite {
			return false, fmt.Errorf("unknown backend %q (want %s or %s)", backend, config.BackendJSON, config.BackendSQLite)
		}
		fmt.Printf("Backend updated: %s -> %s\n", cfg.Backend, backend)
		cfg.Backend = backend
		changed = true
	}
	if cmd.Flags().Changed("data-dir") {
		fmt.Printf("Data directory updated: %q -> %q\n", cfg.DataDir, dataDir)
		cfg.DataDir = dataDir
		changed = true
	}
	if cmd.Flags().Changed("log-level") {
		fmt.Printf("Log level updated: %s -> %s\n", cfg.LogLevel, logLevel)
		cfg.LogLevel = logLevel
		changed = true
	}
	if cmd.Flags().Changed("default-unit") {
		unit, err := models.ParseUnit(unitDefault)
		if err != nil {
			return false, err
		}
		fmt.Printf("Default unit updated: %q -> %q\n", cfg.DefaultUnit, unit)
		cfg.DefaultUnit = string(unit)
		changed = true
	}
	if cmd.Flags().Changed("seed") {
		fmt.Printf("Seed updated: %s -> %s\n", strconv.FormatInt(cfg.Seed, 10), strconv.FormatInt(seed, 10))
		cfg.Seed = seed
		changed = true
	}

	return changed, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathsCmd)

	for _, c := range []*cobra.Command{configSetCmd, configInitCmd} {
		c.Flags().StringVar(&backend, "backend", "", "Storage backend (json or sqlite)")
		c.Flags().StringVar(&dataDir, "data-dir", "", "Directory for saved projects and events")
		c.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
		c.Flags().StringVar(&unitDefault, "default-unit", "", "Unit used when --unit is omitted")
		c.Flags().Int64Var(&seed, "seed", 0, "Seed for cell selection (0 uses the clock)")
	}
}
