package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/focuslog/internal/domain"
)

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetByName(ctx context.Context, name string) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
}

type FocusSessionRepo interface {
	// Create inserts the session row and its records. Callers that need
	// atomicity run it on a transaction-scoped repo.
	Create(ctx context.Context, s *domain.FocusSession) error
	GetByID(ctx context.Context, id string) (*domain.FocusSession, error)
	// ListBetween returns sessions whose start lies in [start, end], both
	// inclusive, ordered by start time, with records and task populated.
	ListBetween(ctx context.Context, start, end time.Time) ([]*domain.FocusSession, error)
	Delete(ctx context.Context, id string) error
}
