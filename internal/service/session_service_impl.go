package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focuslog/internal/db"
	"github.com/alexanderramin/focuslog/internal/domain"
	"github.com/alexanderramin/focuslog/internal/repository"
	"github.com/google/uuid"
)

type sessionService struct {
	sessions repository.FocusSessionRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSessionService(sessions repository.FocusSessionRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SessionService {
	return &sessionService{sessions: sessions, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Log stores a session and its records atomically. The session's task is
// resolved by ID, or by name when no ID is set, inside the transaction.
func (s *sessionService) Log(ctx context.Context, session *domain.FocusSession) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "log-session",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"records": len(session.Records),
				"value":   session.DurationValue,
			},
		})
	}()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.CreatedAt = time.Now().UTC()
	if err = session.Validate(); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txSessions := repository.NewSQLiteFocusSessionRepo(tx)

		task, err := resolveTask(ctx, txTasks, session.Task)
		if err != nil {
			return err
		}
		session.Task = *task

		return txSessions.Create(ctx, session)
	})
}

func resolveTask(ctx context.Context, tasks repository.TaskRepo, ref domain.Task) (*domain.Task, error) {
	if ref.ID != "" {
		t, err := tasks.GetByID(ctx, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", ref.ID, err)
		}
		return t, nil
	}
	name := strings.TrimSpace(ref.Name)
	if name == "" {
		return nil, fmt.Errorf("session task is required")
	}
	t, err := tasks.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("task %q: %w", name, err)
	}
	return t, nil
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*domain.FocusSession, error) {
	return s.sessions.GetByID(ctx, id)
}

// ListDay returns the sessions that started on the calendar day of day in loc.
func (s *sessionService) ListDay(ctx context.Context, day time.Time, loc *time.Location) ([]*domain.FocusSession, error) {
	start, end := domain.DayWindow(day, loc)
	return s.sessions.ListBetween(ctx, start, end)
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}
