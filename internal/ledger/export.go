package ledger

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"rollcall/internal/export"
)

const exportsDir = "exports"

// ExportMonthly writes the attendance records for one year-month to the
// exports directory in the requested format and returns the written path.
// The month filter is a textual prefix match on the stored date keys. The
// export covers only students with at least one record that month; a record
// whose student has since been deleted renders with the name "Unknown".
// An unsupported format returns export.ErrUnsupportedFormat and writes
// nothing.
func (l *Ledger) ExportMonthly(year int, month time.Month, format string) (string, error) {
	prefix := fmt.Sprintf("%04d-%02d", year, int(month))

	m := export.Monthly{
		Period:      prefix,
		GeneratedAt: l.timestamp(),
		Students:    make(map[string]string),
		Records:     make(map[string]map[string]export.Record),
	}
	for date, day := range l.attendance {
		if !strings.HasPrefix(date, prefix) {
			continue
		}
		out := make(map[string]export.Record, len(day))
		for id, rec := range day {
			out[id] = export.Record{Status: rec.Status, Timestamp: rec.Timestamp, Notes: rec.Notes}
			if student, ok := l.students[id]; ok {
				m.Students[id] = student.Name
			} else {
				m.Students[id] = "Unknown"
			}
		}
		m.Records[date] = out
	}

	path, err := export.Write(filepath.Join(l.dir, exportsDir), m, format)
	if err != nil {
		return "", err
	}
	l.log.Info("monthly report exported", zap.String("period", prefix),
		zap.String("format", format), zap.String("path", path))
	return path, nil
}
