package ledger

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCountsAndRate(t *testing.T) {
	l := newTestLedger(t)
	addStudents(t, l, "S001", "S002", "S003")

	ok, err := l.Mark("S001", "2026-03-15", "present", "")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = l.Mark("S002", "2026-03-15", "absent", "")
	require.NoError(t, err)
	require.True(t, ok)
	// S003 stays unmarked.

	got, err := l.Report("2026-03-15")
	require.NoError(t, err)

	want := DailyReport{
		Date:          "2026-03-15",
		TotalStudents: 3,
		Recorded:      2,
		Missing:       1,
		Stats:         map[string]int{"present": 1, "absent": 1, "late": 0, "excused": 0},
		Rate:          33.33,
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(DailyReport{}, "GeneratedAt")); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestReportNoRecords(t *testing.T) {
	l := newTestLedger(t)
	addStudents(t, l, "S001")

	report, err := l.Report("2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", report.Date)
	assert.Equal(t, "No records for this date", report.Message)
	assert.NotEmpty(t, report.GeneratedAt)
	assert.Nil(t, report.Stats)
}

func TestReportZeroStudentsRate(t *testing.T) {
	l := newTestLedger(t)
	addStudents(t, l, "S001")
	ok, err := l.Mark("S001", "2026-03-15", "present", "")
	require.NoError(t, err)
	require.True(t, ok)

	// Roster shrinks to zero before the report is generated; rate is defined
	// as 0 rather than dividing by zero.
	delete(l.students, "S001")
	report, err := l.Report("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalStudents)
	assert.Equal(t, float64(0), report.Rate)
}

// A record whose status has since left the configured vocabulary still
// counts as recorded but is excluded from the tallies.
func TestReportIgnoresUnknownStatuses(t *testing.T) {
	l := newTestLedger(t)
	addStudents(t, l, "S001", "S002")

	err := l.UpdateSettings(map[string]interface{}{
		"allowed_statuses": []string{"present", "absent", "late", "excused", "remote"},
	})
	require.NoError(t, err)
	ok, err := l.Mark("S001", "2026-03-15", "remote", "")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = l.Mark("S002", "2026-03-15", "present", "")
	require.NoError(t, err)
	require.True(t, ok)

	err = l.UpdateSettings(map[string]interface{}{
		"allowed_statuses": []string{"present", "absent", "late", "excused"},
	})
	require.NoError(t, err)

	report, err := l.Report("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Recorded)
	assert.Equal(t, 1, report.Stats["present"])
	assert.NotContains(t, report.Stats, "remote")
}

func TestReportCachePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	l := newTestLedgerAt(t, dir, testTime)
	addStudents(t, l, "S001")
	ok, err := l.Mark("S001", "2026-03-15", "present", "")
	require.NoError(t, err)
	require.True(t, ok)
	first, err := l.Report("2026-03-15")
	require.NoError(t, err)

	reopened := newTestLedgerAt(t, dir, testTime)
	second, err := reopened.Report("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
