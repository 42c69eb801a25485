package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testTime is the frozen wall clock used by test ledgers: 2026-03-15 10:00.
var testTime = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

// newTestLedger opens a ledger on a temp directory with a frozen clock.
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return newTestLedgerAt(t, t.TempDir(), testTime)
}

func newTestLedgerAt(t *testing.T, dir string, now time.Time) *Ledger {
	t.Helper()
	l, err := Open(dir, WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return l
}

// addStudents registers the given IDs with placeholder names.
func addStudents(t *testing.T, l *Ledger, ids ...string) {
	t.Helper()
	for _, id := range ids {
		ok, err := l.AddStudent(id, "Student "+id, nil)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestOpenCreatesDefaults(t *testing.T) {
	l := newTestLedger(t)

	s := l.Settings()
	require.Equal(t, []string{"present", "absent", "late", "excused"}, s.AllowedStatuses)
	require.Equal(t, "present", s.DefaultStatus)
	require.True(t, s.AutoBackup)
	require.Equal(t, 7, s.BackupIntervalDays)
}

func TestTablesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	l := newTestLedgerAt(t, dir, testTime)
	addStudents(t, l, "S001")
	ok, err := l.Mark("S001", "", "present", "on time")
	require.NoError(t, err)
	require.True(t, ok)

	reopened := newTestLedgerAt(t, dir, testTime)
	student, found := reopened.Student("S001")
	require.True(t, found)
	require.Equal(t, "Student S001", student.Name)
	require.Equal(t, "2026-03-15", student.RegisteredOn)

	history, found := reopened.History("S001", time.Time{}, time.Time{})
	require.True(t, found)
	require.Len(t, history.Records, 1)
	require.Equal(t, "present", history.Records["2026-03-15"].Status)
	require.Equal(t, "on time", history.Records["2026-03-15"].Notes)
}

func TestUpdateSettingsAffectsValidationImmediately(t *testing.T) {
	l := newTestLedger(t)
	addStudents(t, l, "S001")

	ok, err := l.Mark("S001", "", "remote", "")
	require.NoError(t, err)
	require.False(t, ok, "status outside the vocabulary must be rejected")

	err = l.UpdateSettings(map[string]interface{}{
		"allowed_statuses": []string{"present", "absent", "late", "excused", "remote"},
	})
	require.NoError(t, err)

	ok, err = l.Mark("S001", "", "remote", "")
	require.NoError(t, err)
	require.True(t, ok, "the identical call must succeed after the vocabulary change")
}

func TestUpdateSettingsKeepsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	l := newTestLedgerAt(t, dir, testTime)

	err := l.UpdateSettings(map[string]interface{}{
		"school_name":          "Riverside Primary",
		"backup_interval_days": 14,
	})
	require.NoError(t, err)

	reopened := newTestLedgerAt(t, dir, testTime)
	s := reopened.Settings()
	require.Equal(t, 14, s.BackupIntervalDays)
	require.Equal(t, "Riverside Primary", s.Extra["school_name"])
}
