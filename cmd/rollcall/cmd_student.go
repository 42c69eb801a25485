// Package main implements the student roster commands.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rollcall/internal/ledger"
)

var (
	studentExtra string
	historyStart string
	historyEnd   string
)

// studentCmd groups the roster commands
var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Manage the student roster",
}

// studentAddCmd registers a new student
var studentAddCmd = &cobra.Command{
	Use:   "add <id> <name>",
	Short: "Register a new student",
	Long: `Registers a new student with today's registration date and status
"active". Additional attributes can be supplied as a JSON object:

  rollcall student add S001 "John Smith" --extra '{"grade":"5"}'`,
	Args: cobra.ExactArgs(2),
	RunE: runStudentAdd,
}

// studentUpdateCmd overwrites fields on an existing student
var studentUpdateCmd = &cobra.Command{
	Use:   "update <id> <fields-json>",
	Short: "Update fields on an existing student",
	Args:  cobra.ExactArgs(2),
	RunE:  runStudentUpdate,
}

// studentHistoryCmd prints a student's attendance history
var studentHistoryCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show a student's attendance over a date range",
	Long: `Shows the attendance records for one student between --start and
--end inclusive. The end date defaults to today, the start date to 30 days
before the end date.`,
	Args: cobra.ExactArgs(1),
	RunE: runStudentHistory,
}

func init() {
	studentAddCmd.Flags().StringVar(&studentExtra, "extra", "", "additional attributes as a JSON object")
	studentHistoryCmd.Flags().StringVar(&historyStart, "start", "", "range start (YYYY-MM-DD)")
	studentHistoryCmd.Flags().StringVar(&historyEnd, "end", "", "range end (YYYY-MM-DD)")

	studentCmd.AddCommand(studentAddCmd)
	studentCmd.AddCommand(studentUpdateCmd)
	studentCmd.AddCommand(studentHistoryCmd)
	rootCmd.AddCommand(studentCmd)
}

func runStudentAdd(cmd *cobra.Command, args []string) error {
	id, name := args[0], args[1]
	extra, err := parseJSONObject(studentExtra)
	if err != nil {
		return err
	}

	l, err := openLedger()
	if err != nil {
		return err
	}
	ok, err := l.AddStudent(id, name, extra)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("student ID %s already exists", id)
	}
	fmt.Printf("Added student: %s (ID: %s)\n", name, id)
	return nil
}

func runStudentUpdate(cmd *cobra.Command, args []string) error {
	id := args[0]
	updates, err := parseJSONObject(args[1])
	if err != nil {
		return err
	}

	l, err := openLedger()
	if err != nil {
		return err
	}
	ok, err := l.UpdateStudent(id, updates)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("student ID %s not found", id)
	}
	fmt.Printf("Updated student %s (%d fields)\n", id, len(updates))
	return nil
}

func runStudentHistory(cmd *cobra.Command, args []string) error {
	id := args[0]

	var start, end time.Time
	var err error
	if historyStart != "" {
		if start, err = time.Parse(ledger.DateLayout, historyStart); err != nil {
			return fmt.Errorf("invalid --start date %q: %w", historyStart, err)
		}
	}
	if historyEnd != "" {
		if end, err = time.Parse(ledger.DateLayout, historyEnd); err != nil {
			return fmt.Errorf("invalid --end date %q: %w", historyEnd, err)
		}
	}

	l, err := openLedger()
	if err != nil {
		return err
	}
	history, ok := l.History(id, start, end)
	if !ok {
		return fmt.Errorf("student ID %s not found", id)
	}
	printJSON(history)
	return nil
}
