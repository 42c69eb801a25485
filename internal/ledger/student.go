package ledger

import "go.uber.org/zap"

// AddStudent registers a new student. It reports false when the ID is
// already taken; the existing entry is left untouched. Extra attributes are
// merged into the entry and take precedence over the built-in fields when
// keys collide.
func (l *Ledger) AddStudent(id, name string, extra map[string]interface{}) (bool, error) {
	if _, exists := l.students[id]; exists {
		l.log.Debug("student already exists", zap.String("id", id))
		return false, nil
	}

	s := Student{
		Name:         name,
		RegisteredOn: l.today(),
		Status:       "active",
	}
	applyStudentFields(&s, extra)

	l.students[id] = s
	if err := l.saveStudents(); err != nil {
		return false, err
	}
	l.log.Info("student added", zap.String("id", id), zap.String("name", s.Name))
	return true, nil
}

// UpdateStudent overwrites the named fields on an existing student, adding
// any that are new. It reports false for an unknown ID.
func (l *Ledger) UpdateStudent(id string, updates map[string]interface{}) (bool, error) {
	s, exists := l.students[id]
	if !exists {
		l.log.Debug("student not found", zap.String("id", id))
		return false, nil
	}

	applyStudentFields(&s, updates)

	l.students[id] = s
	if err := l.saveStudents(); err != nil {
		return false, err
	}
	l.log.Info("student updated", zap.String("id", id), zap.Int("fields", len(updates)))
	return true, nil
}

// applyStudentFields routes known keys onto the typed fields and everything
// else into Extra. String values are required for the typed fields; other
// shapes are kept in Extra under the same key.
func applyStudentFields(s *Student, fields map[string]interface{}) {
	for k, v := range fields {
		switch k {
		case keyName:
			if str, ok := v.(string); ok {
				s.Name = str
				continue
			}
		case keyRegisteredOn:
			if str, ok := v.(string); ok {
				s.RegisteredOn = str
				continue
			}
		case keyStatus:
			if str, ok := v.(string); ok {
				s.Status = str
				continue
			}
		}
		if s.Extra == nil {
			s.Extra = make(map[string]interface{})
		}
		s.Extra[k] = v
	}
}
