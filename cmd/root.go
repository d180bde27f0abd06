package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/config"
	"github.com/abhisek/skillnav/internal/logging"
	"github.com/abhisek/skillnav/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "skillnav [link]",
	Short: "AI vocational skill pathway navigator",
	Long: "Skill Navigator AI builds personalized vocational training pathways aligned with\n" +
		"India's NSQF levels, with exam preparation plans and an AI assistant.\n\n" +
		"Pass a shared pathway link, or --pathway <id>, to open a shared pathway.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link := ""
		if len(args) == 1 {
			link = args[0]
		}
		return runApp(cmd, link)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SKILLNAV_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/skillnav/config.yaml)")
	rootCmd.PersistentFlags().String("env-file", "", "dotenv file to load (default .env when present)")
	rootCmd.PersistentFlags().Bool("log-stderr", false, "Also log to stderr")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().String("pathway", "", "Open the shared pathway with this id")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(pathwaysCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// runtime is what every command shares once flags are resolved.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	close  func()
}

// setup loads the configuration, builds the logger and opens the store.
// stderr forces a console log sink for commands that own no terminal UI.
func setup(cmd *cobra.Command, stderr bool) (*runtime, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(config.Options{File: cfgFile, EnvFile: envFile})
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetBool("log-stderr"); v {
		cfg.Log.Stderr = true
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := logging.New(logging.Config{
		File:   logPath,
		Level:  cfg.Log.Level,
		Stderr: cfg.Log.Stderr || stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))

	return &runtime{
		cfg:    cfg,
		logger: logger,
		store:  st,
		close: func() {
			if err := st.Close(); err != nil {
				logger.Warn("close store", zap.Error(err))
			}
			_ = closeLog()
		},
	}, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the db config key, then SKILLNAV_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = cfg.DB
	}
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
