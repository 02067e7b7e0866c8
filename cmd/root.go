package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/tourpref/internal/config"
	"github.com/abhisek/tourpref/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "tourpref",
	Short: "Tourism preference questionnaire",
	Long: `tourpref asks the signed-in tourist a short, randomly sampled set of
questions and sends the resulting travel preferences to the recommendations
service.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: tourpref.yaml in ., ./config or the XDG config dir)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TOURPREF_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Signed-in tourist ID (overrides TOURPREF_USER env var)")
	rootCmd.PersistentFlags().String("endpoint", "", "Preferences service URL (overrides TOURPREF_ENDPOINT env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(submissionsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration and applies flag overrides, which take
// precedence over files and the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.LoadOptions{ConfigFile: cfgFile})
	if err != nil {
		return nil, err
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		cfg.User = u
	}
	if e, _ := cmd.Flags().GetString("endpoint"); e != "" {
		cfg.Endpoint = e
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db or the db config key
// (highest priority), then TOURPREF_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store named by cfg.
func openStore(cfg *config.Config) (*store.Store, string, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, "", fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}
	return s, filepath.Dir(dbPath), nil
}
