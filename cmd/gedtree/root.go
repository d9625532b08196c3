package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gedtree/gedtree/gedtree/session"
)

var (
	// Global flags that apply to all commands
	gedcomPath string
	format     string
	logLevel   string
	verbose    bool

	cfg = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "gedtree",
	Short: "GEDCOM genealogical graph tool",
	Long: `Gedtree parses GEDCOM files into an in-memory graph and answers
relationship queries, builds tree projections, detects duplicates, and
applies validated mutations.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (GEDTREE_*)
3. Configuration file (./gedtree.yaml or ~/.gedtree/gedtree.yaml)

Examples:
  # Validate a file and report record counts
  gedtree --file family.ged parse

  # Relationship queries accept a GEDCOM ID or a full name
  gedtree --file family.ged parents @I3@
  gedtree --file family.ged cousins "Johann Schmidt"

  # Ancestor tree, four generations, as JSON
  gedtree --file family.ged tree @I1@ --direction ancestor --depth 4 --format json`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = cfg.BindPFlags(cmd.Flags())
		return initLogging(cfg.GetString("log-level"), cfg.GetBool("verbose"))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&gedcomPath, "file", "F", "", "path to GEDCOM file (required)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "text", "output format: text|json|yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also log to stderr")

	if configFile := os.Getenv("GEDTREE_CONFIG"); configFile != "" {
		cfg.SetConfigFile(configFile)
	} else {
		cfg.SetConfigName("gedtree")
		cfg.SetConfigType("yaml")
		cfg.AddConfigPath(".")
		cfg.AddConfigPath("$HOME/.gedtree")
	}
	cfg.AutomaticEnv()
	cfg.SetEnvPrefix("GEDTREE")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	_ = cfg.ReadInConfig()

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	for _, c := range relationCommands() {
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dedupeCmd)
	rootCmd.AddCommand(addPersonCmd)
}

// loadSession loads the GEDCOM file named by --file (or GEDTREE_FILE)
// into a fresh session.
func loadSession(ctx context.Context) (*session.Session, error) {
	path := cfg.GetString("file")
	if path == "" {
		return nil, fmt.Errorf("GEDCOM file path is required (use --file or GEDTREE_FILE)")
	}

	s := session.New(session.WithLogger(mainLogger))
	if err := s.LoadFile(ctx, path); err != nil {
		return nil, err
	}
	return s, nil
}
