// Package main implements the rollcall CLI, a thin surface over the
// attendance ledger. Commands parse identifiers, dates and status strings,
// invoke ledger operations and print the returned structures; all record
// keeping lives in internal/ledger.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rollcall/internal/config"
	"rollcall/internal/ledger"
)

var (
	// Global flags
	cfgFile string
	dataDir string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rollcall",
	Short: "rollcall - attendance tracking on plain JSON files",
	Long: `rollcall keeps a small attendance ledger on local disk: students,
daily attendance records, cached daily reports and settings, each stored as
its own human-readable JSON document.

All operations are synchronous and single-process; the tool assumes it is
the only writer of the data directory.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else if lvl, perr := zapcore.ParseLevel(cfg.Logging.Level); perr == nil {
			zcfg.Level = zap.NewAtomicLevelAt(lvl)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".rollcall.yaml", "path to the rollcall config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the configured data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// openLedger opens the ledger on the configured data directory. Opening runs
// the one-time backup check as a side effect.
func openLedger() (*ledger.Ledger, error) {
	return ledger.Open(cfg.DataDir, ledger.WithLogger(logger))
}

// printJSON pretty-prints a returned structure to stdout.
func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", v)
		return
	}
	fmt.Println(string(data))
}

// parseJSONObject decodes a {"key": value} CLI argument.
func parseJSONObject(arg string) (map[string]interface{}, error) {
	m := make(map[string]interface{})
	if arg == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(arg), &m); err != nil {
		return nil, fmt.Errorf("expected a JSON object, got %q: %w", arg, err)
	}
	return m, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
