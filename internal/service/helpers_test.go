package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/focuslog/internal/db"
	"github.com/alexanderramin/focuslog/internal/repository"
	"github.com/alexanderramin/focuslog/internal/testutil"
)

func setupRepos(t *testing.T) (
	repository.TaskRepo,
	repository.FocusSessionRepo,
	db.UnitOfWork,
) {
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteTaskRepo(database),
		repository.NewSQLiteFocusSessionRepo(database),
		testutil.NewTestUoW(database)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}
