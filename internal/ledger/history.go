package ledger

import (
	"time"

	"go.uber.org/zap"
)

// History is a student's attendance over a date range, with a per-status
// tally and a rate computed over exactly the matched records.
type History struct {
	StudentID string            `json:"student_id"`
	Name      string            `json:"name"`
	Start     string            `json:"start"`
	End       string            `json:"end"`
	Records   map[string]Record `json:"records"`
	Stats     map[string]int    `json:"stats"`
	Rate      float64           `json:"attendance_rate"`
}

// History returns the attendance records for studentID between start and end
// inclusive. A zero end defaults to today and a zero start defaults to 30
// calendar days before the end. It reports false for an unknown student.
// Stored date keys that fail to parse are skipped rather than failing the
// query; an empty match is a valid history with rate 0, not an error.
func (l *Ledger) History(studentID string, start, end time.Time) (History, bool) {
	student, exists := l.students[studentID]
	if !exists {
		l.log.Debug("history rejected: student not found", zap.String("id", studentID))
		return History{}, false
	}

	if end.IsZero() {
		end = l.now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -30)
	}
	startDay := start.Format(DateLayout)
	endDay := end.Format(DateLayout)

	matched := make(map[string]Record)
	for date, day := range l.attendance {
		if _, err := time.Parse(DateLayout, date); err != nil {
			continue
		}
		if date < startDay || date > endDay {
			continue
		}
		if rec, ok := day[studentID]; ok {
			matched[date] = rec
		}
	}

	stats := make(map[string]int, len(l.settings.AllowedStatuses))
	for _, status := range l.settings.AllowedStatuses {
		stats[status] = 0
	}
	for _, rec := range matched {
		if _, known := stats[rec.Status]; known {
			stats[rec.Status]++
		}
	}

	return History{
		StudentID: studentID,
		Name:      student.Name,
		Start:     startDay,
		End:       endDay,
		Records:   matched,
		Stats:     stats,
		Rate:      roundRate(stats["present"], len(matched)),
	}, true
}
