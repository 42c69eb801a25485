// Package main implements the settings and backup commands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// settingsCmd groups the settings commands
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the ledger settings",
	RunE:  runSettingsShow,
}

// settingsShowCmd prints the current settings table
var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	RunE:  runSettingsShow,
}

// settingsSetCmd merges updates into the settings table
var settingsSetCmd = &cobra.Command{
	Use:   "set <updates-json>",
	Short: "Merge key/value updates into the settings",
	Long: `Merges a JSON object into the settings table. Changes persist
immediately and affect all subsequent validation:

  rollcall settings set '{"allowed_statuses":["present","absent","late","excused","remote"]}'`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsSet,
}

// backupCmd snapshots all four tables now
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot all ledger tables into a dated backup directory",
	RunE:  runBackup,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(backupCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	l, err := openLedger()
	if err != nil {
		return err
	}
	printJSON(l.Settings())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	updates, err := parseJSONObject(args[0])
	if err != nil {
		return err
	}

	l, err := openLedger()
	if err != nil {
		return err
	}
	if err := l.UpdateSettings(updates); err != nil {
		return err
	}
	printJSON(l.Settings())
	return nil
}

func runBackup(cmd *cobra.Command, args []string) error {
	l, err := openLedger()
	if err != nil {
		return err
	}
	dir, err := l.Backup()
	if err != nil {
		return err
	}
	fmt.Printf("Backup written to %s\n", dir)
	return nil
}
