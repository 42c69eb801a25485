package ledger

import "go.uber.org/zap"

// Report returns the daily report for date (today when empty). A cached
// report is returned unchanged even when the roster or the day's records
// have since moved on; staleness is accepted until a bulk mark or this
// being the first request for the date forces a fresh computation.
func (l *Ledger) Report(date string) (DailyReport, error) {
	if date == "" {
		date = l.today()
	}
	if cached, ok := l.reports[date]; ok {
		return cached, nil
	}
	return l.generateReport(date)
}

// generateReport computes the report for date from the current tables,
// replaces any cached entry and persists the cache. A date with no records
// yields a minimal report with a message instead of stats; that report is
// returned but not cached, so the first real records still produce numbers.
func (l *Ledger) generateReport(date string) (DailyReport, error) {
	day := l.attendance[date]
	if len(day) == 0 {
		return DailyReport{
			Date:        date,
			GeneratedAt: l.timestamp(),
			Message:     "No records for this date",
		}, nil
	}

	stats := make(map[string]int, len(l.settings.AllowedStatuses))
	for _, status := range l.settings.AllowedStatuses {
		stats[status] = 0
	}
	for _, rec := range day {
		// A record whose status has since left the configured vocabulary
		// still counts as recorded but is excluded from the tallies.
		if _, known := stats[rec.Status]; known {
			stats[rec.Status]++
		}
	}

	total := len(l.students)
	report := DailyReport{
		Date:          date,
		TotalStudents: total,
		Recorded:      len(day),
		Missing:       total - len(day),
		Stats:         stats,
		Rate:          roundRate(stats["present"], total),
		GeneratedAt:   l.timestamp(),
	}

	l.reports[date] = report
	if err := l.saveReports(); err != nil {
		return DailyReport{}, err
	}
	l.log.Info("daily report generated", zap.String("date", date),
		zap.Int("recorded", report.Recorded), zap.Float64("rate", report.Rate))
	return report, nil
}
