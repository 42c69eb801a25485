package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Ledger owns the four attendance tables and their on-disk documents. It is
// single-threaded by design: one exclusive process owns the data directory
// at a time, every operation runs to completion before returning, and each
// mutating operation rewrites its owning table before it returns.
type Ledger struct {
	dir string
	log *zap.Logger
	now func() time.Time

	students   map[string]Student
	attendance map[string]map[string]Record // date -> student ID -> record
	reports    map[string]DailyReport       // date -> cached report
	settings   Settings
}

// Option configures a Ledger at construction time.
type Option func(*Ledger)

// WithLogger sets the diagnostic logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// Open loads (or creates with defaults) the four tables under dir and runs
// the one-time backup check. A table file that exists but does not parse is
// replaced by an empty default with a diagnostic; a read or write failure is
// returned as an error.
func Open(dir string, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		dir:        dir,
		log:        zap.NewNop(),
		now:        time.Now,
		students:   make(map[string]Student),
		attendance: make(map[string]map[string]Record),
		reports:    make(map[string]DailyReport),
		settings:   DefaultSettings(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	tables := []struct {
		file string
		v    interface{}
	}{
		{studentsFile, &l.students},
		{attendanceFile, &l.attendance},
		{reportsFile, &l.reports},
		{settingsFile, &l.settings},
	}
	for _, t := range tables {
		path := filepath.Join(dir, t.file)
		_, corrupt, err := loadDocument(path, t.v)
		if err != nil {
			return nil, err
		}
		if corrupt {
			l.log.Warn("table file is not valid JSON, starting from an empty table",
				zap.String("file", t.file))
			l.resetTable(t.file)
		}
	}
	// Maps decoded from an empty or corrupt document may be nil.
	if l.students == nil {
		l.students = make(map[string]Student)
	}
	if l.attendance == nil {
		l.attendance = make(map[string]map[string]Record)
	}
	if l.reports == nil {
		l.reports = make(map[string]DailyReport)
	}

	if err := l.maybeBackup(); err != nil {
		return nil, err
	}
	return l, nil
}

// resetTable restores the in-memory defaults for one table after a corrupt
// load. The file itself is only rewritten on the next mutation of that table.
func (l *Ledger) resetTable(file string) {
	switch file {
	case studentsFile:
		l.students = make(map[string]Student)
	case attendanceFile:
		l.attendance = make(map[string]map[string]Record)
	case reportsFile:
		l.reports = make(map[string]DailyReport)
	case settingsFile:
		l.settings = DefaultSettings()
	}
}

// Dir returns the data directory the ledger was opened on.
func (l *Ledger) Dir() string { return l.dir }

// Settings returns a copy of the current settings table.
func (l *Ledger) Settings() Settings { return l.settings }

// Student returns the roster entry for id, if present.
func (l *Ledger) Student(id string) (Student, bool) {
	s, ok := l.students[id]
	return s, ok
}

// today returns the current calendar date in the persisted layout.
func (l *Ledger) today() string {
	return l.now().Format(DateLayout)
}

// timestamp returns the current wall-clock time in the persisted layout.
func (l *Ledger) timestamp() string {
	return l.now().Format(TimestampLayout)
}

func (l *Ledger) saveStudents() error {
	return saveDocument(filepath.Join(l.dir, studentsFile), l.students)
}

func (l *Ledger) saveAttendance() error {
	return saveDocument(filepath.Join(l.dir, attendanceFile), l.attendance)
}

func (l *Ledger) saveReports() error {
	return saveDocument(filepath.Join(l.dir, reportsFile), l.reports)
}

func (l *Ledger) saveSettings() error {
	return saveDocument(filepath.Join(l.dir, settingsFile), l.settings)
}

// UpdateSettings merges key/value updates into the settings table and
// persists it. The merge itself always succeeds; only the write can fail.
// Changes take effect for all subsequent validation.
func (l *Ledger) UpdateSettings(updates map[string]interface{}) error {
	l.settings.Apply(updates)
	if err := l.saveSettings(); err != nil {
		return err
	}
	l.log.Info("settings updated", zap.Int("keys", len(updates)))
	return nil
}
