// Package ledger implements the attendance ledger: an in-memory copy of the
// students, attendance, report and settings tables, each persisted as its own
// pretty-printed JSON document under the data directory. The ledger is the
// sole writer of those documents; every mutating operation rewrites the
// owning table in full before returning.
package ledger

import (
	"encoding/json"
	"math"
)

// Date and timestamp layouts used in all persisted documents.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Student is one roster entry. ID is the map key in the students table and
// is immutable once created. Extra holds caller-supplied attributes beyond
// the built-in fields; on disk they are flattened into the same object.
type Student struct {
	Name         string
	RegisteredOn string
	Status       string
	Extra        map[string]interface{}
}

// builtin student keys, kept out of Extra when decoding.
const (
	keyName         = "name"
	keyRegisteredOn = "registration_date"
	keyStatus       = "status"
)

// MarshalJSON flattens Extra into the student object.
func (s Student) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(s.Extra)+3)
	m[keyName] = s.Name
	m[keyRegisteredOn] = s.RegisteredOn
	m[keyStatus] = s.Status
	for k, v := range s.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON splits the built-in fields back out of the flat object.
func (s *Student) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if v, ok := m[keyName].(string); ok {
		s.Name = v
	}
	if v, ok := m[keyRegisteredOn].(string); ok {
		s.RegisteredOn = v
	}
	if v, ok := m[keyStatus].(string); ok {
		s.Status = v
	}
	delete(m, keyName)
	delete(m, keyRegisteredOn)
	delete(m, keyStatus)
	if len(m) > 0 {
		s.Extra = m
	}
	return nil
}

// Record is one attendance entry, keyed in the attendance table by date and
// then by student ID. Timestamp is the wall-clock time of the marking call,
// not the attendance date.
type Record struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Notes     string `json:"notes"`
}

// DailyReport is the cached aggregate for one date. Stats carries a count
// for every status configured at generation time, zero-filled. A report for
// a date with no records carries Message and no stats.
type DailyReport struct {
	Date          string         `json:"date"`
	TotalStudents int            `json:"total_students"`
	Recorded      int            `json:"recorded_students"`
	Missing       int            `json:"missing_records"`
	Stats         map[string]int `json:"stats,omitempty"`
	Rate          float64        `json:"attendance_rate"`
	GeneratedAt   string         `json:"generated_at"`
	Message       string         `json:"message,omitempty"`
}

// Settings is the process-wide configuration table. AllowedStatuses is
// ordered; validation of Mark calls always reads the current value. Extra
// holds caller-defined keys and flattens into the same object on disk, like
// Student.Extra.
type Settings struct {
	AllowedStatuses    []string
	DefaultStatus      string
	AutoBackup         bool
	BackupIntervalDays int
	LastBackup         string
	Extra              map[string]interface{}
}

const (
	keyAllowedStatuses    = "allowed_statuses"
	keyDefaultStatus      = "default_status"
	keyAutoBackup         = "auto_backup"
	keyBackupIntervalDays = "backup_interval_days"
	keyLastBackup         = "last_backup"
)

// DefaultSettings returns the settings used when no settings document exists.
func DefaultSettings() Settings {
	return Settings{
		AllowedStatuses:    []string{"present", "absent", "late", "excused"},
		DefaultStatus:      "present",
		AutoBackup:         true,
		BackupIntervalDays: 7,
	}
}

// Allows reports whether status is in the configured vocabulary.
func (s Settings) Allows(status string) bool {
	for _, v := range s.AllowedStatuses {
		if v == status {
			return true
		}
	}
	return false
}

// MarshalJSON flattens Extra into the settings object.
func (s Settings) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(s.Extra)+5)
	m[keyAllowedStatuses] = s.AllowedStatuses
	m[keyDefaultStatus] = s.DefaultStatus
	m[keyAutoBackup] = s.AutoBackup
	m[keyBackupIntervalDays] = s.BackupIntervalDays
	m[keyLastBackup] = s.LastBackup
	for k, v := range s.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON splits the typed fields back out of the flat object.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if v, ok := m[keyAllowedStatuses]; ok {
		if list, ok := toStringSlice(v); ok {
			s.AllowedStatuses = list
		}
	}
	if v, ok := m[keyDefaultStatus].(string); ok {
		s.DefaultStatus = v
	}
	if v, ok := m[keyAutoBackup].(bool); ok {
		s.AutoBackup = v
	}
	if v, ok := m[keyBackupIntervalDays].(float64); ok {
		s.BackupIntervalDays = int(v)
	}
	if v, ok := m[keyLastBackup].(string); ok {
		s.LastBackup = v
	}
	for _, k := range []string{keyAllowedStatuses, keyDefaultStatus, keyAutoBackup, keyBackupIntervalDays, keyLastBackup} {
		delete(m, k)
	}
	if len(m) > 0 {
		s.Extra = m
	}
	return nil
}

// Apply merges key/value updates into the settings. Recognized keys land on
// the typed fields (with best-effort coercion for JSON-decoded values);
// everything else goes to Extra. Apply never fails: a value of the wrong
// shape for a typed field is kept in Extra instead.
func (s *Settings) Apply(updates map[string]interface{}) {
	for k, v := range updates {
		switch k {
		case keyAllowedStatuses:
			if list, ok := toStringSlice(v); ok {
				s.AllowedStatuses = list
				continue
			}
		case keyDefaultStatus:
			if str, ok := v.(string); ok {
				s.DefaultStatus = str
				continue
			}
		case keyAutoBackup:
			if b, ok := v.(bool); ok {
				s.AutoBackup = b
				continue
			}
		case keyBackupIntervalDays:
			if n, ok := toInt(v); ok {
				s.BackupIntervalDays = n
				continue
			}
		case keyLastBackup:
			if str, ok := v.(string); ok {
				s.LastBackup = str
				continue
			}
		}
		if s.Extra == nil {
			s.Extra = make(map[string]interface{})
		}
		s.Extra[k] = v
	}
}

func toStringSlice(v interface{}) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, e := range list {
			str, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// roundRate rounds an attendance percentage to two decimals.
func roundRate(present, total int) float64 {
	if total <= 0 {
		return 0
	}
	rate := float64(present) / float64(total) * 100
	return math.Round(rate*100) / 100
}
