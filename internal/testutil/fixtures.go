package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/focuslog/internal/domain"
	"github.com/google/uuid"
)

var testTaskCounter atomic.Int64

func NewTestTask(name string) *domain.Task {
	if name == "" {
		name = fmt.Sprintf("Task %d", testTaskCounter.Add(1))
	}
	return &domain.Task{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Session options
type SessionOption func(*domain.FocusSession)

func WithStartTime(t time.Time) SessionOption {
	return func(s *domain.FocusSession) {
		s.StartTime = t
	}
}

func WithRecords(records ...domain.SessionRecord) SessionOption {
	return func(s *domain.FocusSession) {
		s.Records = records
	}
}

// WithPomodoros appends n focus/break pairs with the given lengths.
func WithPomodoros(n int, focus, rest float64) SessionOption {
	return func(s *domain.FocusSession) {
		for i := 0; i < n; i++ {
			s.Records = append(s.Records,
				domain.SessionRecord{Kind: domain.RecordFocus, DurationValue: focus},
				domain.SessionRecord{Kind: domain.RecordBreak, DurationValue: rest},
			)
		}
	}
}

func WithSessionID(id string) SessionOption {
	return func(s *domain.FocusSession) {
		s.ID = id
	}
}

func NewTestSession(task *domain.Task, value float64, opts ...SessionOption) *domain.FocusSession {
	now := time.Now().UTC()
	s := &domain.FocusSession{
		ID:            uuid.New().String(),
		StartTime:     now,
		DurationValue: value,
		Task:          *task,
		CreatedAt:     now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
