package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSession() *FocusSession {
	return &FocusSession{
		ID:            "s1",
		StartTime:     time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC),
		DurationValue: 1500,
		Records: []SessionRecord{
			{Kind: RecordFocus, DurationValue: 1500},
			{Kind: RecordBreak, DurationValue: 300},
			{Kind: RecordFocus, DurationValue: 1500, OverTimeValue: 60},
			{Kind: RecordBreak, DurationValue: 300},
		},
		Task: Task{ID: "t1", Name: "Write report"},
	}
}

func TestBreakCount(t *testing.T) {
	s := validSession()
	assert.Equal(t, 2, s.BreakCount())

	empty := &FocusSession{}
	assert.Equal(t, 0, empty.BreakCount())
}

func TestFocusValue(t *testing.T) {
	assert.Equal(t, 3000.0, validSession().FocusValue())
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, validSession().Validate())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *FocusSession)
		contains string
	}{
		{"missing id", func(s *FocusSession) { s.ID = "" }, "ID is required"},
		{"zero start", func(s *FocusSession) { s.StartTime = time.Time{} }, "start time"},
		{"negative duration", func(s *FocusSession) { s.DurationValue = -1 }, "non-negative"},
		{"nan duration", func(s *FocusSession) { s.DurationValue = math.NaN() }, "non-negative"},
		{"unknown kind", func(s *FocusSession) { s.Records[1].Kind = "nap" }, "unknown kind"},
		{"negative record", func(s *FocusSession) { s.Records[0].DurationValue = -5 }, "record 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSession()
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestRecordKindValid(t *testing.T) {
	assert.True(t, RecordFocus.Valid())
	assert.True(t, RecordBreak.Valid())
	assert.False(t, RecordKind("").Valid())
}

func TestTaskValidate(t *testing.T) {
	assert.NoError(t, (&Task{ID: "t", Name: "Read"}).Validate())
	assert.Error(t, (&Task{ID: "t", Name: "  "}).Validate())
	assert.Error(t, (&Task{Name: "Read"}).Validate())
}
