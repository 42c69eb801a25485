// Package main implements the attendance marking commands.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"rollcall/internal/ledger"
)

var (
	markDate  string
	markNotes string
	bulkDate  string
)

// markCmd records a single attendance entry
var markCmd = &cobra.Command{
	Use:   "mark <student-id> <status>",
	Short: "Mark one student's attendance",
	Long: `Marks attendance for one student. The date defaults to today; the
status must be in the configured vocabulary (see "rollcall settings show").
Marking the same student and date again overwrites the earlier record.`,
	Args: cobra.ExactArgs(2),
	RunE: runMark,
}

// bulkCmd records attendance for several students at once
var bulkCmd = &cobra.Command{
	Use:   "bulk <entries-json>",
	Short: "Mark attendance for several students at once",
	Long: `Marks attendance for several students on one date. Entries map
student IDs to either a bare status or an object with status and notes:

  rollcall bulk '{"S001":"present","S002":{"status":"absent","notes":"sick"}}'

The day's report is regenerated after the batch, whatever the outcomes.`,
	Args: cobra.ExactArgs(1),
	RunE: runBulk,
}

func init() {
	markCmd.Flags().StringVar(&markDate, "date", "", "attendance date (YYYY-MM-DD, default today)")
	markCmd.Flags().StringVar(&markNotes, "notes", "", "free-text notes for the record")
	bulkCmd.Flags().StringVar(&bulkDate, "date", "", "attendance date (YYYY-MM-DD, default today)")

	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(bulkCmd)
}

func runMark(cmd *cobra.Command, args []string) error {
	id, status := args[0], args[1]

	l, err := openLedger()
	if err != nil {
		return err
	}
	ok, err := l.Mark(id, markDate, status, markNotes)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("could not mark %s: unknown student or disallowed status %q", id, status)
	}
	fmt.Printf("Marked %s for %s\n", status, id)
	return nil
}

func runBulk(cmd *cobra.Command, args []string) error {
	entries := make(map[string]ledger.BulkEntry)
	if err := json.Unmarshal([]byte(args[0]), &entries); err != nil {
		return fmt.Errorf("expected a JSON object of id -> status entries: %w", err)
	}

	l, err := openLedger()
	if err != nil {
		return err
	}
	res, err := l.BulkMark(bulkDate, entries)
	if err != nil {
		return err
	}
	printJSON(res)
	if len(res.Failed) > 0 {
		return fmt.Errorf("%d of %d entries failed", len(res.Failed), len(entries))
	}
	return nil
}
