package ledger

import (
	"encoding/json"
	"sort"

	"go.uber.org/zap"
)

// Mark records one attendance entry for (date, student). Date defaults to
// today when empty. It reports false when the student is unknown or the
// status is not in the currently configured vocabulary. A prior record for
// the same (date, student) key is overwritten without trace.
//
// Mark deliberately does not touch the cached report for the date; see
// BulkMark and Report for the paths that do.
func (l *Ledger) Mark(studentID, date, status, notes string) (bool, error) {
	if date == "" {
		date = l.today()
	}
	if _, exists := l.students[studentID]; !exists {
		l.log.Debug("mark rejected: student not found", zap.String("id", studentID))
		return false, nil
	}
	if !l.settings.Allows(status) {
		l.log.Debug("mark rejected: status not allowed",
			zap.String("id", studentID), zap.String("status", status))
		return false, nil
	}

	day := l.attendance[date]
	if day == nil {
		day = make(map[string]Record)
		l.attendance[date] = day
	}
	day[studentID] = Record{
		Status:    status,
		Timestamp: l.timestamp(),
		Notes:     notes,
	}

	if err := l.saveAttendance(); err != nil {
		return false, err
	}
	l.log.Info("attendance marked",
		zap.String("id", studentID), zap.String("date", date), zap.String("status", status))
	return true, nil
}

// BulkEntry is one value in a bulk-marking request: either a bare status or
// a status with notes. Any other JSON shape decodes as invalid and fails
// that entry without disturbing the rest of the batch.
type BulkEntry struct {
	Status  string
	Notes   string
	invalid bool
}

// PlainStatus is a bulk entry carrying only a status.
func PlainStatus(status string) BulkEntry {
	return BulkEntry{Status: status}
}

// StatusWithNotes is a bulk entry carrying a status and free-text notes.
func StatusWithNotes(status, notes string) BulkEntry {
	return BulkEntry{Status: status, Notes: notes}
}

// UnmarshalJSON accepts either "present" or {"status": "...", "notes": "..."}.
func (e *BulkEntry) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*e = PlainStatus(plain)
		return nil
	}
	var structured struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := json.Unmarshal(data, &structured); err == nil && structured.Status != "" {
		*e = StatusWithNotes(structured.Status, structured.Notes)
		return nil
	}
	// Wrong shape. Keep the entry so the batch can report it as failed.
	*e = BulkEntry{invalid: true}
	return nil
}

// BulkResult lists which student IDs were marked and which were rejected,
// each sorted ascending.
type BulkResult struct {
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
}

// BulkMark marks attendance for several students on one date, delegating
// each entry to Mark. After processing all entries, regardless of outcome,
// it regenerates the day's report so the cache reflects the batch. This is
// the one path that replaces an already-cached report.
func (l *Ledger) BulkMark(date string, entries map[string]BulkEntry) (BulkResult, error) {
	if date == "" {
		date = l.today()
	}

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var res BulkResult
	for _, id := range ids {
		entry := entries[id]
		if entry.invalid {
			res.Failed = append(res.Failed, id)
			continue
		}
		ok, err := l.Mark(id, date, entry.Status, entry.Notes)
		if err != nil {
			return res, err
		}
		if ok {
			res.Succeeded = append(res.Succeeded, id)
		} else {
			res.Failed = append(res.Failed, id)
		}
	}

	if _, err := l.generateReport(date); err != nil {
		return res, err
	}
	l.log.Info("bulk mark finished", zap.String("date", date),
		zap.Int("succeeded", len(res.Succeeded)), zap.Int("failed", len(res.Failed)))
	return res, nil
}
