package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddStudent(t *testing.T) {
	l := newTestLedger(t)

	ok, err := l.AddStudent("S001", "John Smith", nil)
	require.NoError(t, err)
	require.True(t, ok)

	s, found := l.Student("S001")
	require.True(t, found)
	assert.Equal(t, "John Smith", s.Name)
	assert.Equal(t, "2026-03-15", s.RegisteredOn)
	assert.Equal(t, "active", s.Status)
}

func TestAddStudentDuplicateKeepsOriginal(t *testing.T) {
	l := newTestLedger(t)

	ok, err := l.AddStudent("S001", "John Smith", nil)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = l.AddStudent("S001", "Someone Else", nil)
	require.NoError(t, err)
	assert.False(t, ok, "second add with the same ID must fail")

	s, _ := l.Student("S001")
	assert.Equal(t, "John Smith", s.Name, "first call's data must be unchanged")
}

func TestAddStudentExtrasWinOnCollision(t *testing.T) {
	l := newTestLedger(t)

	ok, err := l.AddStudent("S001", "John Smith", map[string]interface{}{
		"status": "probation",
		"grade":  "5",
	})
	require.NoError(t, err)
	require.True(t, ok)

	s, _ := l.Student("S001")
	assert.Equal(t, "probation", s.Status, "extra attributes take precedence over built-ins")
	assert.Equal(t, "5", s.Extra["grade"])
}

func TestUpdateStudent(t *testing.T) {
	l := newTestLedger(t)
	addStudents(t, l, "S001")

	ok, err := l.UpdateStudent("S001", map[string]interface{}{
		"name":     "Johnny Smith",
		"guardian": "A. Smith",
	})
	require.NoError(t, err)
	require.True(t, ok)

	s, _ := l.Student("S001")
	assert.Equal(t, "Johnny Smith", s.Name)
	assert.Equal(t, "A. Smith", s.Extra["guardian"])
}

func TestUpdateStudentUnknown(t *testing.T) {
	l := newTestLedger(t)

	ok, err := l.UpdateStudent("missing", map[string]interface{}{"name": "X"})
	require.NoError(t, err)
	assert.False(t, ok)
}
